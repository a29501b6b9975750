package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// AppointmentQuery is the parsed filter selection of the appointment list.
type AppointmentQuery struct {
	Status    string
	Search    string
	DoctorID  int64
	PatientID int64
	CityID    int64
	From      entities.Date
	To        entities.Date
	Limit     int
	Offset    int
}

// AppointmentService handles appointment booking and status changes
type AppointmentService struct {
	repo    repositories.AppointmentRepository
	doctors repositories.DoctorRepository
	bus     providers.EventBus
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	repo repositories.AppointmentRepository,
	doctors repositories.DoctorRepository,
	bus providers.EventBus,
) *AppointmentService {
	return &AppointmentService{repo: repo, doctors: doctors, bus: bus}
}

// scope restricts doctors and patients to their own appointments. Admins may
// narrow by any doctor or patient.
func scope(auth entities.AuthContext, doctorID, patientID int64) query.Predicate {
	switch {
	case auth.IsDoctor():
		return query.BuildIDFilter(query.AppointmentDoctorID, auth.ProfileID)
	case auth.IsPatient():
		return query.BuildIDFilter(query.AppointmentPatientID, auth.ProfileID)
	}
	return query.And(
		query.BuildIDFilter(query.AppointmentDoctorID, doctorID),
		query.BuildIDFilter(query.AppointmentPatientID, patientID),
	)
}

// Predicate builds the WHERE condition for q as seen by auth.
func (q AppointmentQuery) Predicate(auth entities.AuthContext) (query.Predicate, error) {
	status, err := query.BuildAppointmentFilter(q.Status)
	if err != nil {
		return query.Predicate{}, err
	}
	var from, to *time.Time
	if !q.From.IsZero() {
		from = &q.From.Time
	}
	if !q.To.IsZero() {
		to = &q.To.Time
	}
	return query.And(
		status,
		query.BuildSearchFilter(q.Search, query.AppointmentSearchFields...),
		scope(auth, q.DoctorID, q.PatientID),
		query.BuildIDFilter(query.DoctorCityID, q.CityID),
		query.BuildDateRange(query.AppointmentDate, from, to),
	), nil
}

// List returns one page of appointments visible to auth, with the total
// number of matches
func (s *AppointmentService) List(ctx context.Context, auth entities.AuthContext, q AppointmentQuery) ([]*entities.AppointmentView, int, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.List",
		attribute.String("auth.role", string(auth.Role)),
		attribute.String("filter.status", q.Status),
	)
	defer span.End()

	if err := requireProfile(auth); err != nil {
		return nil, 0, err
	}
	where, err := q.Predicate(auth)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.repo.List(ctx, repositories.ListQuery{
		Where:  where,
		Order:  query.AppointmentOrder(),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, where)
	if err != nil {
		observability.RecordError(span, err)
		return nil, 0, err
	}
	return items, total, nil
}

// Get returns one appointment if auth may see it
func (s *AppointmentService) Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.AppointmentView, error) {
	if err := requireProfile(auth); err != nil {
		return nil, err
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(auth, v.DoctorID, v.PatientID) {
		return nil, apperrors.NewNotFoundError("appointment not found")
	}
	return v, nil
}

func visible(auth entities.AuthContext, doctorID, patientID int64) bool {
	switch {
	case auth.IsAdmin():
		return true
	case auth.IsDoctor():
		return auth.ProfileID == doctorID
	case auth.IsPatient():
		return auth.ProfileID == patientID
	}
	return false
}

// Create books an appointment. Patients always book for themselves.
func (s *AppointmentService) Create(ctx context.Context, auth entities.AuthContext, input entities.AppointmentInput) (*entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.Create")
	defer span.End()

	if err := requireRole(auth, entities.RoleAdmin, entities.RolePatient); err != nil {
		return nil, err
	}
	if err := requireProfile(auth); err != nil {
		return nil, err
	}

	patientID := input.PatientID
	if auth.IsPatient() {
		patientID = auth.ProfileID
	}
	if patientID == 0 {
		return nil, apperrors.NewValidationError("patient_id is required")
	}

	date, err := entities.ParseDate(input.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("appointment_date must be YYYY-MM-DD")
	}
	clock, err := entities.ParseClock(input.Time)
	if err != nil {
		return nil, apperrors.NewValidationError("appointment_time must be HH:MM")
	}

	doctor, err := s.doctors.GetByID(ctx, input.DoctorID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewValidationError("doctor does not exist")
		}
		return nil, err
	}
	if doctor.Status != entities.DoctorStatusActive {
		return nil, apperrors.NewValidationError("doctor is not accepting appointments")
	}

	taken, err := s.repo.SlotTaken(ctx, doctor.ID, date, clock)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("doctor already has an appointment at that time")
	}

	appt := &entities.Appointment{
		PatientID: patientID,
		DoctorID:  doctor.ID,
		Date:      date,
		Time:      clock,
		Status:    entities.AppointmentStatusScheduled,
		Symptoms:  strings.TrimSpace(input.Symptoms),
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("appointment_id", appt.ID).
		Int64("doctor_id", appt.DoctorID).
		Str("date", appt.Date.String()).
		Msg("appointment booked")
	s.notify(ctx, auth, entities.ChangeActionCreated, appt.ID, appt.DoctorID, appt.PatientID)
	return appt, nil
}

// UpdateStatus changes the status of an appointment. Only admins and the
// appointment's doctor may do so.
func (s *AppointmentService) UpdateStatus(ctx context.Context, auth entities.AuthContext, id int64, update entities.AppointmentStatusUpdate) error {
	if err := requireRole(auth, entities.RoleAdmin, entities.RoleDoctor); err != nil {
		return err
	}
	status, err := entities.ParseAppointmentStatus(update.Status)
	if err != nil {
		return err
	}

	v, err := s.Get(ctx, auth, id)
	if err != nil {
		return err
	}

	outcome := repositories.AppointmentOutcome{Status: status}
	if status == entities.AppointmentStatusCompleted {
		outcome.Diagnosis = strings.TrimSpace(update.Diagnosis)
		outcome.Prescription = strings.TrimSpace(update.Prescription)
	}
	outcome.Notes = strings.TrimSpace(update.Notes)

	if err := s.repo.UpdateStatus(ctx, id, outcome); err != nil {
		return err
	}
	s.notify(ctx, auth, entities.ChangeActionUpdated, id, v.DoctorID, v.PatientID)
	return nil
}

// Delete removes an appointment. Admin only.
func (s *AppointmentService) Delete(ctx context.Context, auth entities.AuthContext, id int64) error {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return err
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, auth, entities.ChangeActionDeleted, id, v.DoctorID, v.PatientID)
	return nil
}

func (s *AppointmentService) notify(ctx context.Context, auth entities.AuthContext, action entities.ChangeAction, id, doctorID, patientID int64) {
	e := changeEvent(auth, entities.ChangeEventAppointment, action, id)
	e.DoctorID = doctorID
	e.PatientID = patientID
	publish(ctx, s.bus, e)
}
