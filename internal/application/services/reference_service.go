package services

import (
	"context"
	"strings"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// ReferenceService manages specializations and cities. Reads are public;
// writes are admin only.
type ReferenceService struct {
	specializations repositories.SpecializationRepository
	cities          repositories.CityRepository
	bus             providers.EventBus
}

// NewReferenceService creates a new reference data service
func NewReferenceService(
	specializations repositories.SpecializationRepository,
	cities repositories.CityRepository,
	bus providers.EventBus,
) *ReferenceService {
	return &ReferenceService{specializations: specializations, cities: cities, bus: bus}
}

func (s *ReferenceService) Specializations(ctx context.Context) ([]*entities.Specialization, error) {
	return s.specializations.List(ctx)
}

func (s *ReferenceService) Specialization(ctx context.Context, id int64) (*entities.Specialization, error) {
	return s.specializations.GetByID(ctx, id)
}

func (s *ReferenceService) CreateSpecialization(ctx context.Context, auth entities.AuthContext, input entities.LookupInput) (*entities.Specialization, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	sp := &entities.Specialization{}
	if err := applyLookup(&sp.Name, &sp.Description, input.Name, input.Description); err != nil {
		return nil, err
	}
	if err := s.specializations.Create(ctx, sp); err != nil {
		return nil, err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventReference, entities.ChangeActionCreated, sp.ID))
	return sp, nil
}

func (s *ReferenceService) UpdateSpecialization(ctx context.Context, auth entities.AuthContext, id int64, input entities.LookupInput) (*entities.Specialization, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	sp := &entities.Specialization{ID: id}
	if err := applyLookup(&sp.Name, &sp.Description, input.Name, input.Description); err != nil {
		return nil, err
	}
	if err := s.specializations.Update(ctx, sp); err != nil {
		return nil, err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventReference, entities.ChangeActionUpdated, id))
	return sp, nil
}

// DeleteSpecialization removes a specialization no doctor references
func (s *ReferenceService) DeleteSpecialization(ctx context.Context, auth entities.AuthContext, id int64) error {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return err
	}
	if err := s.specializations.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventReference, entities.ChangeActionDeleted, id))
	return nil
}

func (s *ReferenceService) Cities(ctx context.Context) ([]*entities.City, error) {
	return s.cities.List(ctx)
}

func (s *ReferenceService) City(ctx context.Context, id int64) (*entities.City, error) {
	return s.cities.GetByID(ctx, id)
}

func (s *ReferenceService) CreateCity(ctx context.Context, auth entities.AuthContext, input entities.LookupInput) (*entities.City, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	c := &entities.City{}
	if err := applyLookup(&c.Name, &c.State, input.Name, input.State); err != nil {
		return nil, err
	}
	if err := s.cities.Create(ctx, c); err != nil {
		return nil, err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventReference, entities.ChangeActionCreated, c.ID))
	return c, nil
}

func (s *ReferenceService) UpdateCity(ctx context.Context, auth entities.AuthContext, id int64, input entities.LookupInput) (*entities.City, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	c := &entities.City{ID: id}
	if err := applyLookup(&c.Name, &c.State, input.Name, input.State); err != nil {
		return nil, err
	}
	if err := s.cities.Update(ctx, c); err != nil {
		return nil, err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventReference, entities.ChangeActionUpdated, id))
	return c, nil
}

// DeleteCity removes a city no doctor or patient references
func (s *ReferenceService) DeleteCity(ctx context.Context, auth entities.AuthContext, id int64) error {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return err
	}
	if err := s.cities.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventReference, entities.ChangeActionDeleted, id))
	return nil
}

func applyLookup(name, extra *string, inName, inExtra string) error {
	*name = strings.TrimSpace(inName)
	if *name == "" {
		return apperrors.NewValidationError("name is required")
	}
	*extra = strings.TrimSpace(inExtra)
	return nil
}
