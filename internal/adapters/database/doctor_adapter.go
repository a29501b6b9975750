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

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	client *postgres.Client
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{client: client}
}

func (a *DoctorAdapter) joined() *goqu.SelectDataset {
	return from("doctors", query.AliasDoctors).
		Join(goqu.T("users").As(query.AliasUsers), goqu.On(query.UserID.Ident().Eq(goqu.T(query.AliasDoctors).Col("user_id")))).
		LeftJoin(goqu.T("specializations").As(query.AliasSpecializations), goqu.On(goqu.T(query.AliasSpecializations).Col("specialization_id").Eq(query.DoctorSpecialization.Ident()))).
		LeftJoin(goqu.T("cities").As(query.AliasCities), goqu.On(goqu.T(query.AliasCities).Col("city_id").Eq(query.DoctorCityID.Ident())))
}

func (a *DoctorAdapter) view() *goqu.SelectDataset {
	td := goqu.T(query.AliasDoctors)
	return a.joined().Select(
		td.Col("doctor_id"),
		td.Col("user_id"),
		td.Col("full_name"),
		td.Col("specialization_id"),
		td.Col("city_id"),
		td.Col("qualification"),
		td.Col("experience_years"),
		td.Col("registration_number"),
		td.Col("consultation_fee"),
		td.Col("phone"),
		td.Col("bio"),
		td.Col("status"),
		td.Col("created_at"),
		blank(query.SpecializationName.Ident()).As("specialization_name"),
		blank(query.CityName.Ident()).As("city_name"),
		query.UserEmail.Ident(),
		query.UserName.Ident(),
	)
}

func scanDoctorView(row rowScanner) (*entities.DoctorView, error) {
	v := &entities.DoctorView{}
	var phone, bio sql.NullString
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.FullName,
		&v.SpecializationID,
		&v.CityID,
		&v.Qualification,
		&v.ExperienceYears,
		&v.RegistrationNumber,
		&v.ConsultationFee,
		&phone,
		&bio,
		&v.Status,
		&v.CreatedAt,
		&v.SpecializationName,
		&v.CityName,
		&v.Email,
		&v.Username,
	)
	if err != nil {
		return nil, err
	}
	v.Phone = phone.String
	v.Bio = bio.String
	return v, nil
}

func doctorRecord(d *entities.Doctor) goqu.Record {
	return goqu.Record{
		"full_name":           d.FullName,
		"specialization_id":   d.SpecializationID,
		"city_id":             d.CityID,
		"qualification":       d.Qualification,
		"experience_years":    d.ExperienceYears,
		"registration_number": d.RegistrationNumber,
		"consultation_fee":    d.ConsultationFee,
		"phone":               nullString(d.Phone),
		"bio":                 nullString(d.Bio),
		"status":              string(d.Status),
	}
}

// Create creates the doctor's account and profile in one transaction
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor, user *entities.User) error {
	return a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		doctor.UserID = user.ID

		record := doctorRecord(doctor)
		record["user_id"] = doctor.UserID
		sqlStr, args, err := dialect.Insert("doctors").Prepared(true).
			Rows(record).
			Returning("doctor_id", "created_at").
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if err := tx.QueryRowContext(ctx, sqlStr, args...).Scan(&doctor.ID, &doctor.CreatedAt); err != nil {
			return mapError(err, "failed to create doctor")
		}
		return nil
	})
}

// GetByID retrieves a doctor by ID
func (a *DoctorAdapter) GetByID(ctx context.Context, id int64) (*entities.DoctorView, error) {
	return a.getBy(ctx, query.DoctorID.Ident().Eq(id), id)
}

// GetByUserID retrieves the doctor linked to an account
func (a *DoctorAdapter) GetByUserID(ctx context.Context, userID int64) (*entities.DoctorView, error) {
	v, err := a.getBy(ctx, goqu.T(query.AliasDoctors).Col("user_id").Eq(userID), userID)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no doctor profile for user %d", userID))
	}
	return v, err
}

func (a *DoctorAdapter) getBy(ctx context.Context, where exp.Expression, id int64) (*entities.DoctorView, error) {
	sqlStr, args, err := a.view().Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	v, err := scanDoctorView(a.client.DB().QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("doctor", id)
	}
	if err != nil {
		return nil, mapError(err, "failed to get doctor")
	}
	return v, nil
}

// List retrieves doctors matching q
func (a *DoctorAdapter) List(ctx context.Context, q repositories.ListQuery) ([]*entities.DoctorView, error) {
	sqlStr, args, err := paginate(a.view(), q).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list doctors")
	}
	defer rows.Close()

	doctors := []*entities.DoctorView{}
	for rows.Next() {
		v, err := scanDoctorView(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan doctor")
		}
		doctors = append(doctors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate doctors")
	}
	return doctors, nil
}

// Count returns the number of doctors matching where
func (a *DoctorAdapter) Count(ctx context.Context, where query.Predicate) (int, error) {
	return countRows(ctx, a.client.DB(), where.Apply(a.joined()), "doctors")
}

// Update updates a doctor profile
func (a *DoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	sqlStr, args, err := dialect.Update("doctors").Prepared(true).
		Set(doctorRecord(doctor)).
		Where(goqu.C("doctor_id").Eq(doctor.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "failed to update doctor")
	}
	return checkAffected(result, "doctor", doctor.ID)
}

// Delete deletes a doctor without appointments or reviews, and its account
func (a *DoctorAdapter) Delete(ctx context.Context, id int64) error {
	return a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := restrict(ctx, tx, "doctor", id, "doctor_id", "appointments", "reviews"); err != nil {
			return err
		}
		return deleteProfile(ctx, tx, "doctors", "doctor_id", "doctor", id)
	})
}

// restrict fails with a Conflict error when any of tables references id.
func restrict(ctx context.Context, db queryer, entity string, id int64, column string, tables ...string) error {
	for _, table := range tables {
		n, err := countReferences(ctx, db, table, column, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperrors.NewConflictError(fmt.Sprintf("%s %d still has %d %s", entity, id, n, table))
		}
	}
	return nil
}

// deleteProfile removes a doctor or patient row and the account it links to.
func deleteProfile(ctx context.Context, tx *sql.Tx, table, idColumn, entity string, id int64) error {
	sqlStr, args, err := dialect.Delete(table).Prepared(true).
		Where(goqu.C(idColumn).Eq(id)).
		Returning("user_id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	var userID int64
	err = tx.QueryRowContext(ctx, sqlStr, args...).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(entity, id)
	}
	if err != nil {
		return mapError(err, "failed to delete "+entity)
	}

	return deleteUser(ctx, tx, userID)
}
