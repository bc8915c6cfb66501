package httpapi

import (
	"net/http"

	"github.com/fridayfut/fridayfut/internal/usecase"
)

type leaderboardRowDTO struct {
	Player playerDTO `json:"player"`
	Stats  statsDTO  `json:"stats"`
	Form   formDTO   `json:"form"`
	Rating int       `json:"rating"`
}

type squadMemberDTO struct {
	Player playerDTO `json:"player"`
	Rating int       `json:"rating"`
	Status string    `json:"status,omitempty"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	view := usecase.ViewAllTime
	if raw := r.URL.Query().Get("view"); raw != "" {
		view = usecase.View(raw)
	}

	rows, err := h.leaderboardService.Table(ctx, view)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "view", string(view), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowDTO{
			Player: playerToDTO(row.Player),
			Stats:  statsToDTO(row.Stats),
			Form:   formToDTO(row.Form),
			Rating: row.Rating,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	members, err := h.leaderboardService.Squad(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get squad failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]squadMemberDTO, 0, len(members))
	for _, member := range members {
		items = append(items, squadMemberDTO{
			Player: playerToDTO(member.Player),
			Rating: member.Rating,
			Status: string(member.Status),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
