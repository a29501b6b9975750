package services

import (
	"context"
	"strings"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// PatientQuery narrows the patient list.
type PatientQuery struct {
	Search string
	CityID int64
	Limit  int
	Offset int
}

// PatientService manages patient profiles
type PatientService struct {
	repo repositories.PatientRepository
	bus  providers.EventBus
}

// NewPatientService creates a new patient service
func NewPatientService(repo repositories.PatientRepository, bus providers.EventBus) *PatientService {
	return &PatientService{repo: repo, bus: bus}
}

// List returns patients for admins and doctors.
func (s *PatientService) List(ctx context.Context, auth entities.AuthContext, q PatientQuery) ([]*entities.PatientView, int, error) {
	if err := requireRole(auth, entities.RoleAdmin, entities.RoleDoctor); err != nil {
		return nil, 0, err
	}
	where := query.And(
		query.BuildSearchFilter(q.Search, query.PatientSearchFields...),
		query.BuildIDFilter(query.PatientCityID, q.CityID),
	)
	patients, err := s.repo.List(ctx, repositories.ListQuery{
		Where:  where,
		Order:  query.PatientOrder(),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, where)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// Get returns a patient. Patients may only read their own profile.
func (s *PatientService) Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.PatientView, error) {
	if auth.IsPatient() && auth.ProfileID != id {
		return nil, apperrors.NewForbiddenError("insufficient permissions")
	}
	return s.repo.GetByID(ctx, id)
}

// Register creates a patient account from the public sign-up form.
func (s *PatientService) Register(ctx context.Context, input entities.PatientInput) (*entities.PatientView, error) {
	return s.create(ctx, entities.AuthContext{}, input)
}

// Create adds a patient and its login account. Admin only.
func (s *PatientService) Create(ctx context.Context, auth entities.AuthContext, input entities.PatientInput) (*entities.PatientView, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	return s.create(ctx, auth, input)
}

func (s *PatientService) create(ctx context.Context, auth entities.AuthContext, input entities.PatientInput) (*entities.PatientView, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username, email and password are required")
	}
	patient := &entities.Patient{}
	if err := applyPatientInput(patient, input); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         entities.RolePatient,
		Status:       entities.UserStatusActive,
	}
	if err := s.repo.Create(ctx, patient, user); err != nil {
		return nil, err
	}

	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventPatient, entities.ChangeActionCreated, patient.ID))
	return s.repo.GetByID(ctx, patient.ID)
}

// Update edits a patient profile. Patients may edit their own.
func (s *PatientService) Update(ctx context.Context, auth entities.AuthContext, id int64, input entities.PatientInput) (*entities.PatientView, error) {
	if !auth.IsAdmin() && !(auth.IsPatient() && auth.ProfileID == id) {
		return nil, apperrors.NewForbiddenError("insufficient permissions")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patient := current.Patient
	if err := applyPatientInput(&patient, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &patient); err != nil {
		return nil, err
	}

	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventPatient, entities.ChangeActionUpdated, id))
	return s.repo.GetByID(ctx, id)
}

// Delete removes a patient without appointments or reviews. Admin only.
func (s *PatientService) Delete(ctx context.Context, auth entities.AuthContext, id int64) error {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventPatient, entities.ChangeActionDeleted, id))
	return nil
}

func applyPatientInput(p *entities.Patient, in entities.PatientInput) error {
	if dob := strings.TrimSpace(in.DateOfBirth); dob != "" {
		d, err := entities.ParseDate(dob)
		if err != nil {
			return apperrors.NewValidationError("invalid date_of_birth: " + in.DateOfBirth)
		}
		p.DateOfBirth = d
	} else {
		p.DateOfBirth = entities.Date{}
	}
	p.FullName = strings.TrimSpace(in.FullName)
	p.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	p.BloodGroup = strings.TrimSpace(in.BloodGroup)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Address = strings.TrimSpace(in.Address)
	p.Allergies = strings.TrimSpace(in.Allergies)
	p.MedicalHistory = strings.TrimSpace(in.MedicalHistory)
	p.CityID = in.CityID
	return nil
}
