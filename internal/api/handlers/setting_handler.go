package handlers

import (
	"context"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

// SettingService defines the interface for site settings
type SettingService interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, auth entities.AuthContext, key, value string) error
	SetMany(ctx context.Context, auth entities.AuthContext, values map[string]string) error
}

// SettingHandler handles site setting requests
type SettingHandler struct {
	service SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(service SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

type settingValue struct {
	Value string `json:"value" validate:"max=1000"`
}

// List handles GET /api/settings
func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	values, err := h.service.All(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, values)
}

// UpdateMany handles PUT /api/settings
func (h *SettingHandler) UpdateMany(w http.ResponseWriter, r *http.Request) {
	values := map[string]string{}
	if !decodeJSON(w, r, &values) {
		return
	}
	if err := h.service.SetMany(r.Context(), caller(r), values); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	h.List(w, r)
}

// Update handles PUT /api/settings/{key}
func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body settingValue
	if !decodeJSON(w, r, &body) {
		return
	}
	key := r.PathValue("key")
	if err := h.service.Set(r.Context(), caller(r), key, body.Value); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{key: body.Value})
}
