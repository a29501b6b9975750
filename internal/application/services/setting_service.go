package services

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	"github.com/anushahashmi071/CareGroup-sub001/internal/presentation"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// SettingService reads and writes site settings
type SettingService struct {
	repo repositories.SettingRepository
	bus  providers.EventBus
}

// NewSettingService creates a new setting service
func NewSettingService(repo repositories.SettingRepository, bus providers.EventBus) *SettingService {
	return &SettingService{repo: repo, bus: bus}
}

// Get returns the stored value of key, or def when it is not set. Lookup
// failures other than NotFound are logged and also yield def.
func (s *SettingService) Get(ctx context.Context, key, def string) string {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to read setting")
		}
		return def
	}
	return setting.Value
}

// All returns every stored setting as a key/value map
func (s *SettingService) All(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

// Set stores value under key. Admin only; the last write wins.
func (s *SettingService) Set(ctx context.Context, auth entities.AuthContext, key, value string) error {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if err := validateSetting(key, value); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, key, value); err != nil {
		return err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventSettingChanged, entities.ChangeActionUpdated, 0))
	return nil
}

// SetMany stores several settings, stopping at the first invalid one
func (s *SettingService) SetMany(ctx context.Context, auth entities.AuthContext, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := validateSetting(strings.TrimSpace(k), strings.TrimSpace(values[k])); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if err := s.Set(ctx, auth, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Formatter builds the date/time formatter from the date_format and
// time_format settings
func (s *SettingService) Formatter(ctx context.Context) presentation.Formatter {
	return presentation.NewFormatter(
		s.Get(ctx, entities.SettingDateFormat, ""),
		s.Get(ctx, entities.SettingTimeFormat, ""),
	)
}

var validate = validator.New()

func validateSetting(key, value string) error {
	if !slices.Contains(entities.KnownSettings, key) {
		return apperrors.NewValidationError("unknown setting: " + key)
	}
	if len(value) > 1000 {
		return apperrors.NewValidationError(key + " is too long")
	}
	switch key {
	case entities.SettingSiteName:
		if value == "" {
			return apperrors.NewValidationError("site_name is required")
		}
	case entities.SettingContactEmail:
		if value != "" {
			if err := validate.Var(value, "email"); err != nil {
				return apperrors.NewValidationError("contact_email must be a valid email address")
			}
		}
	case entities.SettingTimezone:
		if _, err := time.LoadLocation(value); err != nil {
			return apperrors.NewValidationError("timezone must be an IANA time zone name")
		}
	case entities.SettingDateFormat:
		if !presentation.ValidDateFormat(value) {
			return apperrors.NewValidationError("unsupported date_format")
		}
	case entities.SettingTimeFormat:
		if !presentation.ValidTimeFormat(value) {
			return apperrors.NewValidationError("unsupported time_format")
		}
	case entities.SettingSlotMinutes:
		n, err := strconv.Atoi(value)
		if err != nil || n < 5 || n > 240 {
			return apperrors.NewValidationError("appointment_slot_minutes must be between 5 and 240")
		}
	}
	return nil
}
