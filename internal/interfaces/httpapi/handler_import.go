package httpapi

import (
	"net/http"
)

type importRequest struct {
	CSV string `json:"csv" validate:"required"`
}

type importSummaryDTO struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

func (h *Handler) ImportAllTime(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportAllTime")
	defer span.End()

	var req importRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.importService.ImportAllTime(ctx, req.CSV)
	if err != nil {
		h.logger.WarnContext(ctx, "all-time import failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importSummaryDTO(summary))
}

func (h *Handler) ImportSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSeason")
	defer span.End()

	var req importRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.importService.ImportSeason(ctx, req.CSV)
	if err != nil {
		h.logger.WarnContext(ctx, "season import failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importSummaryDTO(summary))
}

func (h *Handler) DownloadAllTimeTemplate(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.DownloadAllTimeTemplate")
	defer span.End()

	writeCSV(w, "alltime-template.csv", h.importService.TemplateAllTime())
}

func (h *Handler) DownloadSeasonTemplate(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.DownloadSeasonTemplate")
	defer span.End()

	writeCSV(w, "season-template.csv", h.importService.TemplateSeason())
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
