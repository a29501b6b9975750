package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

// ReportService defines the interface for admin reports
type ReportService interface {
	Summary(ctx context.Context, auth entities.AuthContext, r entities.ReportRange) (*entities.ReportSummary, error)
	Monthly(ctx context.Context, auth entities.AuthContext, year int) (*entities.MonthlyReport, error)
	DoctorPerformance(ctx context.Context, auth entities.AuthContext, r entities.ReportRange) ([]entities.DoctorPerformance, error)
	TopRated(ctx context.Context, auth entities.AuthContext, n, minReviews int) ([]entities.TopRatedDoctor, error)
}

// ReportHandler handles report requests
type ReportHandler struct {
	service ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Summary handles GET /api/reports/summary?from=&to=
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rng, ok := reportRange(w, r)
	if !ok {
		return
	}
	summary, err := h.service.Summary(r.Context(), caller(r), rng)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

// Monthly handles GET /api/reports/monthly?year=
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(w, r, "year")
	if !ok {
		return
	}
	report, err := h.service.Monthly(r.Context(), caller(r), year)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// DoctorPerformance handles GET /api/reports/doctors?from=&to=
func (h *ReportHandler) DoctorPerformance(w http.ResponseWriter, r *http.Request) {
	rng, ok := reportRange(w, r)
	if !ok {
		return
	}
	rows, err := h.service.DoctorPerformance(r.Context(), caller(r), rng)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": rows,
		"count":   len(rows),
	})
}

// TopRated handles GET /api/reports/top-rated?limit=&min_reviews=
func (h *ReportHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	n, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	minReviews, ok := queryInt(w, r, "min_reviews")
	if !ok {
		return
	}
	rows, err := h.service.TopRated(r.Context(), caller(r), n, minReviews)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": rows,
		"count":   len(rows),
	})
}

func reportRange(w http.ResponseWriter, r *http.Request) (entities.ReportRange, bool) {
	from, ok := queryDate(w, r, "from")
	if !ok {
		return entities.ReportRange{}, false
	}
	to, ok := queryDate(w, r, "to")
	if !ok {
		return entities.ReportRange{}, false
	}
	return entities.ReportRange{From: from, To: to}, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		respondWithError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}
