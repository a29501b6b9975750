package handlers

import (
	"context"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

// DashboardService defines the interface for role dashboards
type DashboardService interface {
	Admin(ctx context.Context, auth entities.AuthContext) (*entities.AdminDashboard, error)
	Doctor(ctx context.Context, auth entities.AuthContext) (*entities.DoctorDashboard, error)
	Patient(ctx context.Context, auth entities.AuthContext) (*entities.PatientDashboard, error)
}

// DashboardHandler serves the caller's dashboard
type DashboardHandler struct {
	service DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get handles GET /api/dashboard, choosing the dashboard by the caller's role
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	auth := caller(r)

	var (
		dashboard any
		err       error
	)
	switch auth.Role {
	case entities.RoleAdmin:
		dashboard, err = h.service.Admin(r.Context(), auth)
	case entities.RoleDoctor:
		dashboard, err = h.service.Doctor(r.Context(), auth)
	case entities.RolePatient:
		dashboard, err = h.service.Patient(r.Context(), auth)
	default:
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}
