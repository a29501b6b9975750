package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{client: client}
}

// joined is the appointment view FROM clause without a projection.
func (a *AppointmentAdapter) joined() *goqu.SelectDataset {
	return from("appointments", query.AliasAppointments).
		Join(goqu.T("patients").As(query.AliasPatients), goqu.On(query.PatientID.Ident().Eq(query.AppointmentPatientID.Ident()))).
		Join(goqu.T("doctors").As(query.AliasDoctors), goqu.On(query.DoctorID.Ident().Eq(query.AppointmentDoctorID.Ident()))).
		LeftJoin(goqu.T("specializations").As(query.AliasSpecializations), goqu.On(goqu.T(query.AliasSpecializations).Col("specialization_id").Eq(query.DoctorSpecialization.Ident()))).
		LeftJoin(goqu.T("cities").As(query.AliasCities), goqu.On(goqu.T(query.AliasCities).Col("city_id").Eq(query.DoctorCityID.Ident())))
}

func (a *AppointmentAdapter) view() *goqu.SelectDataset {
	ta := goqu.T(query.AliasAppointments)
	return a.joined().Select(
		ta.Col("appointment_id"),
		ta.Col("patient_id"),
		ta.Col("doctor_id"),
		ta.Col("appointment_date"),
		goqu.Cast(ta.Col("appointment_time"), "TEXT").As("appointment_time"),
		ta.Col("status"),
		ta.Col("symptoms"),
		ta.Col("diagnosis"),
		ta.Col("prescription"),
		ta.Col("notes"),
		ta.Col("created_at"),
		query.PatientName.Ident().As("patient_name"),
		query.DoctorName.Ident().As("doctor_name"),
		blank(query.SpecializationName.Ident()).As("specialization_name"),
		query.DoctorCityID.Ident().As("city_id"),
		blank(query.CityName.Ident()).As("city_name"),
	)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointmentView(row rowScanner) (*entities.AppointmentView, error) {
	v := &entities.AppointmentView{}
	var symptoms, diagnosis, prescription, notes sql.NullString
	err := row.Scan(
		&v.ID,
		&v.PatientID,
		&v.DoctorID,
		&v.Date,
		&v.Time,
		&v.Status,
		&symptoms,
		&diagnosis,
		&prescription,
		&notes,
		&v.CreatedAt,
		&v.PatientName,
		&v.DoctorName,
		&v.SpecializationName,
		&v.CityID,
		&v.CityName,
	)
	if err != nil {
		return nil, err
	}
	v.Symptoms = symptoms.String
	v.Diagnosis = diagnosis.String
	v.Prescription = prescription.String
	v.Notes = notes.String
	return v, nil
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"patient_id":       appointment.PatientID,
		"doctor_id":        appointment.DoctorID,
		"appointment_date": appointment.Date,
		"appointment_time": appointment.Time,
		"status":           string(appointment.Status),
		"symptoms":         nullString(appointment.Symptoms),
	}

	sqlStr, args, err := dialect.Insert("appointments").Prepared(true).
		Rows(record).
		Returning("appointment_id", "created_at").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	err = a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&appointment.ID, &appointment.CreatedAt)
	if err != nil {
		return mapError(err, "failed to create appointment")
	}
	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id int64) (*entities.AppointmentView, error) {
	sqlStr, args, err := a.view().Where(query.AppointmentID.Ident().Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	v, err := scanAppointmentView(a.client.DB().QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("appointment", id)
	}
	if err != nil {
		return nil, mapError(err, "failed to get appointment")
	}
	return v, nil
}

// List retrieves appointments matching q
func (a *AppointmentAdapter) List(ctx context.Context, q repositories.ListQuery) ([]*entities.AppointmentView, error) {
	sqlStr, args, err := paginate(a.view(), q).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list appointments")
	}
	defer rows.Close()

	views := []*entities.AppointmentView{}
	for rows.Next() {
		v, err := scanAppointmentView(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan appointment")
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate appointments")
	}
	return views, nil
}

// Count returns the number of appointments matching where
func (a *AppointmentAdapter) Count(ctx context.Context, where query.Predicate) (int, error) {
	return countRows(ctx, a.client.DB(), where.Apply(a.joined()), "appointments")
}

// SlotTaken reports whether the doctor already has a scheduled appointment at date and clock
func (a *AppointmentAdapter) SlotTaken(ctx context.Context, doctorID int64, date entities.Date, clock string) (bool, error) {
	sqlStr, args, err := dialect.From("appointments").Prepared(true).
		Select(goqu.L("1")).
		Where(goqu.Ex{
			"doctor_id":        doctorID,
			"appointment_date": date,
			"appointment_time": clock,
			"status":           string(entities.AppointmentStatusScheduled),
		}).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var one int
	err = a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapError(err, "failed to check appointment slot")
	}
	return true, nil
}

// UpdateStatus updates the status and outcome of an appointment
func (a *AppointmentAdapter) UpdateStatus(ctx context.Context, id int64, update repositories.AppointmentOutcome) error {
	record := goqu.Record{"status": string(update.Status)}
	if update.Diagnosis != "" {
		record["diagnosis"] = update.Diagnosis
	}
	if update.Prescription != "" {
		record["prescription"] = update.Prescription
	}
	if update.Notes != "" {
		record["notes"] = update.Notes
	}

	sqlStr, args, err := dialect.Update("appointments").Prepared(true).
		Set(record).
		Where(goqu.C("appointment_id").Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "failed to update appointment")
	}
	return checkAffected(result, "appointment", id)
}

// Delete deletes an appointment
func (a *AppointmentAdapter) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, a.client.DB(), "appointments", "appointment_id", "appointment", id)
}
