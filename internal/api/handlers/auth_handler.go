package handlers

import (
	"context"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

// Authenticator verifies credentials
type Authenticator interface {
	Login(ctx context.Context, login, password string) (*services.LoginResult, error)
}

// AccountService reads and updates the caller's own account
type AccountService interface {
	Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.User, error)
	ChangePassword(ctx context.Context, auth entities.AuthContext, current, next string) error
}

// PatientRegistrar creates patient accounts from the public sign-up form
type PatientRegistrar interface {
	Register(ctx context.Context, input entities.PatientInput) (*entities.PatientView, error)
}

// AuthHandler handles sign-in, sign-up and account requests
type AuthHandler struct {
	auth     Authenticator
	accounts AccountService
	patients PatientRegistrar
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth Authenticator, accounts AccountService, patients PatientRegistrar) *AuthHandler {
	return &AuthHandler{auth: auth, accounts: accounts, patients: patients}
}

type loginRequest struct {
	Login    string `json:"login" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input entities.PatientInput
	if !decodeJSON(w, r, &input) {
		return
	}

	patient, err := h.patients.Register(r.Context(), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, patient)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	auth := caller(r)
	user, err := h.accounts.Get(r.Context(), auth, auth.UserID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":       user,
		"profile_id": auth.ProfileID,
	})
}

// ChangePassword handles PUT /api/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), caller(r), req.CurrentPassword, req.NewPassword); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
