package handlers

import (
	"context"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/pagination"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	List(ctx context.Context, auth entities.AuthContext, q services.AppointmentQuery) ([]*entities.AppointmentView, int, error)
	Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.AppointmentView, error)
	Create(ctx context.Context, auth entities.AuthContext, input entities.AppointmentInput) (*entities.Appointment, error)
	UpdateStatus(ctx context.Context, auth entities.AuthContext, id int64, update entities.AppointmentStatusUpdate) error
	Delete(ctx context.Context, auth entities.AuthContext, id int64) error
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	q := services.AppointmentQuery{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	var ok bool
	if q.DoctorID, ok = queryInt64(w, r, "doctor_id"); !ok {
		return
	}
	if q.PatientID, ok = queryInt64(w, r, "patient_id"); !ok {
		return
	}
	if q.CityID, ok = queryInt64(w, r, "city_id"); !ok {
		return
	}
	if q.From, ok = queryDate(w, r, "from"); !ok {
		return
	}
	if q.To, ok = queryDate(w, r, "to"); !ok {
		return
	}

	appointments, total, err := h.service.List(r.Context(), caller(r), q)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagination.NewResponse(appointments, total, page))
}

// Get handles GET /api/appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	appointment, err := h.service.Get(r.Context(), caller(r), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, appointment)
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entities.AppointmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	appointment, err := h.service.Create(r.Context(), caller(r), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, appointment)
}

// UpdateStatus handles PATCH /api/appointments/{id}/status
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var update entities.AppointmentStatusUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	auth := caller(r)
	if err := h.service.UpdateStatus(r.Context(), auth, id, update); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	appointment, err := h.service.Get(r.Context(), auth, id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, appointment)
}

// Delete handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller(r), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
