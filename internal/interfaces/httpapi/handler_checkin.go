package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fridayfut/fridayfut/internal/usecase"
)

type checkInRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type unlockTimeRequest struct {
	// RFC 3339; null clears the gate and opens the queue.
	UnlockTime *string `json:"unlockTime"`
}

type queueDTO struct {
	Starting   []checkinDTO `json:"starting"`
	Waitlist   []checkinDTO `json:"waitlist"`
	UnlockTime *string      `json:"unlockTime,omitempty"`
	Unlocked   bool         `json:"unlocked"`
}

func queueToDTO(view usecase.QueueView) queueDTO {
	dto := queueDTO{
		Starting: checkinsToDTO(view.Starting),
		Waitlist: checkinsToDTO(view.Waitlist),
		Unlocked: view.Unlocked,
	}
	if view.UnlockTime != nil {
		formatted := view.UnlockTime.UTC().Format(time.RFC3339)
		dto.UnlockTime = &formatted
	}

	return dto
}

func (h *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetQueue")
	defer span.End()

	view, err := h.checkinService.Queue(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get queue failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, queueToDTO(view))
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckIn")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req checkInRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	c, err := h.checkinService.CheckIn(ctx, usecase.CheckInInput{
		PlayerID: req.PlayerID,
		AsAdmin:  principal.IsAdmin(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "check-in failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, checkinToDTO(c))
}

func (h *Handler) RemoveCheckin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveCheckin")
	defer span.End()

	checkinID := r.PathValue("checkinID")
	if err := h.checkinService.Remove(ctx, checkinID); err != nil {
		h.logger.WarnContext(ctx, "remove check-in failed", "checkin_id", checkinID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) SetUnlockTime(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetUnlockTime")
	defer span.End()

	var req unlockTimeRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var unlockTime *time.Time
	if req.UnlockTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.UnlockTime)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: unlockTime must be RFC 3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		unlockTime = &parsed
	}

	if err := h.checkinService.SetUnlockTime(ctx, unlockTime); err != nil {
		h.logger.WarnContext(ctx, "set unlock time failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}
