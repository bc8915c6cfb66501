package httpapi

import (
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/fridayfut/fridayfut/internal/usecase"
)

type dashboardDTO struct {
	Players []playerDTO        `json:"players"`
	Matches []matchDTO         `json:"matches"`
	Queue   []checkinDTO       `json:"queue"`
	Teams   *publishedTeamsDTO `json:"teams,omitempty"`
}

func dashboardToDTO(snapshot usecase.DashboardSnapshot) dashboardDTO {
	players := make([]playerDTO, 0, len(snapshot.Players))
	for _, p := range snapshot.Players {
		players = append(players, playerToDTO(p))
	}

	matches := make([]matchDTO, 0, len(snapshot.Matches))
	for _, m := range snapshot.Matches {
		matches = append(matches, matchToDTO(m))
	}

	dto := dashboardDTO{
		Players: players,
		Matches: matches,
		Queue:   checkinsToDTO(snapshot.Queue),
	}
	if snapshot.Teams != nil {
		teams := publishedTeamsToDTO(*snapshot.Teams)
		dto.Teams = &teams
	}

	return dto
}

// WatchDashboard streams dashboard snapshots over server-sent events. The
// first frame is the current state; each store change pushes a fresh one.
func (h *Handler) WatchDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WatchDashboard")
	defer span.End()

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.ErrorContext(ctx, "response writer does not support streaming")
		writeInternalError(ctx, w)
		return
	}

	snapshots, stop, err := h.liveService.Watch(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "start dashboard watch failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, open := <-snapshots:
			if !open {
				return
			}

			frame, err := sonic.Marshal(dashboardToDTO(snapshot))
			if err != nil {
				h.logger.ErrorContext(ctx, "encode dashboard frame failed", "error", err)
				return
			}
			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
