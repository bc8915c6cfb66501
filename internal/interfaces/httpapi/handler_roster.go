package httpapi

import (
	"net/http"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/usecase"
)

type createPlayerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
}

type attributesPayload struct {
	Fitness  float64 `json:"fitness" validate:"min=1,max=5"`
	Control  float64 `json:"control" validate:"min=1,max=5"`
	Shooting float64 `json:"shooting" validate:"min=1,max=5"`
	Defense  float64 `json:"defense" validate:"min=1,max=5"`
}

type updateAttributesRequest struct {
	// A null attributes block switches the player back to statistical rating.
	Attributes *attributesPayload `json:"attributes"`
}

type setPhotoRequest struct {
	PhotoURL string `json:"photoUrl" validate:"required,url"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.rosterService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	p, err := h.rosterService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.rosterService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(p))
}

func (h *Handler) UpdatePlayerAttributes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerAttributes")
	defer span.End()

	playerID := r.PathValue("playerID")
	var req updateAttributesRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var attrs *roster.Attributes
	if req.Attributes != nil {
		if err := h.validateRequest(ctx, *req.Attributes); err != nil {
			writeError(ctx, w, err)
			return
		}
		attrs = &roster.Attributes{
			Fitness:  req.Attributes.Fitness,
			Control:  req.Attributes.Control,
			Shooting: req.Attributes.Shooting,
			Defense:  req.Attributes.Defense,
		}
	}

	p, err := h.rosterService.UpdateAttributes(ctx, playerID, attrs)
	if err != nil {
		h.logger.WarnContext(ctx, "update attributes failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) SetPlayerPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPlayerPhoto")
	defer span.End()

	playerID := r.PathValue("playerID")
	var req setPhotoRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.rosterService.SetPhoto(ctx, playerID, req.PhotoURL)
	if err != nil {
		h.logger.WarnContext(ctx, "set photo failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.rosterService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
