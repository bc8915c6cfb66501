package httpapi

import (
	"net/http"
)

type seedSummaryDTO struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

func (h *Handler) SeedLegends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedLegends")
	defer span.End()

	summary, err := h.adminService.SeedLegends(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "seed legends failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seedSummaryDTO(summary))
}

func (h *Handler) ResetGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetGroup")
	defer span.End()

	if err := h.adminService.Reset(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset group failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}
