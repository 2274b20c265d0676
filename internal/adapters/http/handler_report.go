package http

import (
	"net/http"

	"github.com/viralforge/courierdesk/internal/domain"
)

func reportFiltersFromQuery(r *http.Request) domain.ReportFilters {
	q := r.URL.Query()
	status := q.Get("status")
	if status == "" {
		status = "all"
	}
	return domain.ReportFilters{
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
		Status:     status,
		SearchTerm: q.Get("q"),
	}
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Report(r.Context(), reportFiltersFromQuery(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toEntryPayloads(rows))
}

func (h *Handler) exportReportCSV(w http.ResponseWriter, r *http.Request) {
	name, csv, err := h.service.ExportReportCSV(r.Context(), reportFiltersFromQuery(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
