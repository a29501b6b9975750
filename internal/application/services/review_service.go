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

// ReviewService records patient ratings of doctors
type ReviewService struct {
	repo         repositories.ReviewRepository
	appointments repositories.AppointmentRepository
	bus          providers.EventBus
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ReviewRepository, appointments repositories.AppointmentRepository, bus providers.EventBus) *ReviewService {
	return &ReviewService{repo: repo, appointments: appointments, bus: bus}
}

// ListByDoctor returns a doctor's reviews, newest first
func (s *ReviewService) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*entities.Review, error) {
	return s.repo.ListByDoctor(ctx, doctorID, limit, offset)
}

// Create stores a review. Patients may only review doctors they have a
// completed appointment with.
func (s *ReviewService) Create(ctx context.Context, auth entities.AuthContext, input entities.ReviewInput) (*entities.Review, error) {
	if err := requireRole(auth, entities.RolePatient); err != nil {
		return nil, err
	}
	if err := requireProfile(auth); err != nil {
		return nil, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	completed, err := query.BuildAppointmentFilter(string(entities.AppointmentStatusCompleted))
	if err != nil {
		return nil, err
	}
	n, err := s.appointments.Count(ctx, query.And(
		completed,
		query.BuildIDFilter(query.AppointmentDoctorID, input.DoctorID),
		query.BuildIDFilter(query.AppointmentPatientID, auth.ProfileID),
	))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperrors.NewForbiddenError("you can only review doctors you have completed an appointment with")
	}

	review := &entities.Review{
		DoctorID:  input.DoctorID,
		PatientID: auth.ProfileID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	event := changeEvent(auth, entities.ChangeEventDoctor, entities.ChangeActionUpdated, input.DoctorID)
	event.DoctorID = input.DoctorID
	event.PatientID = auth.ProfileID
	publish(ctx, s.bus, event)
	return review, nil
}
