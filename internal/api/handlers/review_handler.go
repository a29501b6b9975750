package handlers

import (
	"context"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/pagination"
)

// ReviewService defines the interface for doctor reviews
type ReviewService interface {
	ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*entities.Review, error)
	Create(ctx context.Context, auth entities.AuthContext, input entities.ReviewInput) (*entities.Review, error)
}

// ReviewHandler handles doctor review requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List handles GET /api/doctors/{id}/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r)
	if !ok {
		return
	}
	page := pagination.FromRequest(r)

	reviews, err := h.service.ListByDoctor(r.Context(), doctorID, page.Limit, page.Offset)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// Create handles POST /api/doctors/{id}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r)
	if !ok {
		return
	}
	// The path names the doctor; a doctor_id in the body is overridden
	input := entities.ReviewInput{DoctorID: doctorID}
	if !decodeJSON(w, r, &input) {
		return
	}
	input.DoctorID = doctorID

	review, err := h.service.Create(r.Context(), caller(r), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}
