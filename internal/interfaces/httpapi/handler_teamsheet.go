package httpapi

import (
	"net/http"

	"github.com/fridayfut/fridayfut/internal/usecase"
)

type moveTeamPlayerRequest struct {
	BlueIDs  []string `json:"blueIds" validate:"required"`
	WhiteIDs []string `json:"whiteIds" validate:"required"`
	PlayerID string   `json:"playerId" validate:"required"`
}

type publishTeamsRequest struct {
	BlueIDs  []string `json:"blueIds" validate:"required,min=1"`
	WhiteIDs []string `json:"whiteIds" validate:"required,min=1"`
}

type teamPlayerDTO struct {
	Player playerDTO `json:"player"`
	Rating int       `json:"rating"`
}

type generatedTeamsDTO struct {
	Blue         []teamPlayerDTO `json:"blue"`
	White        []teamPlayerDTO `json:"white"`
	BlueAverage  int             `json:"blueAverage"`
	WhiteAverage int             `json:"whiteAverage"`
}

func generatedTeamsToDTO(teams usecase.GeneratedTeams) generatedTeamsDTO {
	toDTO := func(slots []usecase.TeamPlayer) []teamPlayerDTO {
		out := make([]teamPlayerDTO, 0, len(slots))
		for _, slot := range slots {
			out = append(out, teamPlayerDTO{
				Player: playerToDTO(slot.Player),
				Rating: slot.Rating,
			})
		}

		return out
	}

	return generatedTeamsDTO{
		Blue:         toDTO(teams.Blue),
		White:        toDTO(teams.White),
		BlueAverage:  teams.BlueAverage,
		WhiteAverage: teams.WhiteAverage,
	}
}

func (h *Handler) GenerateTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateTeams")
	defer span.End()

	teams, err := h.teamsheetService.Generate(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "generate teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, generatedTeamsToDTO(teams))
}

func (h *Handler) MoveTeamPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MoveTeamPlayer")
	defer span.End()

	var req moveTeamPlayerRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamsheetService.Move(ctx, usecase.MoveInput{
		BlueIDs:  req.BlueIDs,
		WhiteIDs: req.WhiteIDs,
		PlayerID: req.PlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "move team player failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, generatedTeamsToDTO(teams))
}

func (h *Handler) PublishTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishTeams")
	defer span.End()

	var req publishTeamsRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	published, err := h.teamsheetService.Publish(ctx, req.BlueIDs, req.WhiteIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "publish teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, publishedTeamsToDTO(published))
}

func (h *Handler) GetCurrentTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentTeams")
	defer span.End()

	published, found, err := h.teamsheetService.Current(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get current teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, publishedTeamsToDTO(published))
}

func (h *Handler) ClearCurrentTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCurrentTeams")
	defer span.End()

	if err := h.teamsheetService.Clear(ctx); err != nil {
		h.logger.WarnContext(ctx, "clear current teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}
