package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	client *postgres.Client
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{client: client}
}

func (a *PatientAdapter) joined() *goqu.SelectDataset {
	return from("patients", query.AliasPatients).
		Join(goqu.T("users").As(query.AliasUsers), goqu.On(query.UserID.Ident().Eq(goqu.T(query.AliasPatients).Col("user_id")))).
		LeftJoin(goqu.T("cities").As(query.AliasCities), goqu.On(goqu.T(query.AliasCities).Col("city_id").Eq(query.PatientCityID.Ident())))
}

func (a *PatientAdapter) view() *goqu.SelectDataset {
	tp := goqu.T(query.AliasPatients)
	return a.joined().Select(
		tp.Col("patient_id"),
		tp.Col("user_id"),
		tp.Col("full_name"),
		tp.Col("gender"),
		tp.Col("date_of_birth"),
		tp.Col("blood_group"),
		tp.Col("phone"),
		tp.Col("address"),
		tp.Col("allergies"),
		tp.Col("medical_history"),
		tp.Col("city_id"),
		tp.Col("created_at"),
		blank(query.CityName.Ident()).As("city_name"),
		query.UserEmail.Ident(),
		query.UserName.Ident(),
	)
}

func scanPatientView(row rowScanner) (*entities.PatientView, error) {
	v := &entities.PatientView{}
	var blood, phone, address, allergies, history sql.NullString
	var cityID sql.NullInt64
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.FullName,
		&v.Gender,
		&v.DateOfBirth,
		&blood,
		&phone,
		&address,
		&allergies,
		&history,
		&cityID,
		&v.CreatedAt,
		&v.CityName,
		&v.Email,
		&v.Username,
	)
	if err != nil {
		return nil, err
	}
	v.BloodGroup = blood.String
	v.Phone = phone.String
	v.Address = address.String
	v.Allergies = allergies.String
	v.MedicalHistory = history.String
	v.CityID = cityID.Int64
	return v, nil
}

func patientRecord(p *entities.Patient) goqu.Record {
	return goqu.Record{
		"full_name":       p.FullName,
		"gender":          p.Gender,
		"date_of_birth":   p.DateOfBirth,
		"blood_group":     nullString(p.BloodGroup),
		"phone":           nullString(p.Phone),
		"address":         nullString(p.Address),
		"allergies":       nullString(p.Allergies),
		"medical_history": nullString(p.MedicalHistory),
		"city_id":         nullID(p.CityID),
	}
}

// Create creates the patient's account and profile in one transaction
func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient, user *entities.User) error {
	return a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		patient.UserID = user.ID

		record := patientRecord(patient)
		record["user_id"] = patient.UserID
		sqlStr, args, err := dialect.Insert("patients").Prepared(true).
			Rows(record).
			Returning("patient_id", "created_at").
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if err := tx.QueryRowContext(ctx, sqlStr, args...).Scan(&patient.ID, &patient.CreatedAt); err != nil {
			return mapError(err, "failed to create patient")
		}
		return nil
	})
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id int64) (*entities.PatientView, error) {
	return a.getBy(ctx, query.PatientID.Ident().Eq(id), id)
}

// GetByUserID retrieves the patient linked to an account
func (a *PatientAdapter) GetByUserID(ctx context.Context, userID int64) (*entities.PatientView, error) {
	v, err := a.getBy(ctx, goqu.T(query.AliasPatients).Col("user_id").Eq(userID), userID)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no patient profile for user %d", userID))
	}
	return v, err
}

func (a *PatientAdapter) getBy(ctx context.Context, where exp.Expression, id int64) (*entities.PatientView, error) {
	sqlStr, args, err := a.view().Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	v, err := scanPatientView(a.client.DB().QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("patient", id)
	}
	if err != nil {
		return nil, mapError(err, "failed to get patient")
	}
	return v, nil
}

// List retrieves patients matching q
func (a *PatientAdapter) List(ctx context.Context, q repositories.ListQuery) ([]*entities.PatientView, error) {
	sqlStr, args, err := paginate(a.view(), q).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list patients")
	}
	defer rows.Close()

	patients := []*entities.PatientView{}
	for rows.Next() {
		v, err := scanPatientView(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan patient")
		}
		patients = append(patients, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate patients")
	}
	return patients, nil
}

// Count returns the number of patients matching where
func (a *PatientAdapter) Count(ctx context.Context, where query.Predicate) (int, error) {
	return countRows(ctx, a.client.DB(), where.Apply(a.joined()), "patients")
}

// Update updates a patient profile
func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	sqlStr, args, err := dialect.Update("patients").Prepared(true).
		Set(patientRecord(patient)).
		Where(goqu.C("patient_id").Eq(patient.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "failed to update patient")
	}
	return checkAffected(result, "patient", patient.ID)
}

// Delete deletes a patient without appointments or reviews, and its account
func (a *PatientAdapter) Delete(ctx context.Context, id int64) error {
	return a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := restrict(ctx, tx, "patient", id, "patient_id", "appointments", "reviews"); err != nil {
			return err
		}
		return deleteProfile(ctx, tx, "patients", "patient_id", "patient", id)
	})
}
