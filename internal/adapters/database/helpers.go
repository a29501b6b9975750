package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// PostgreSQL error codes the adapters translate.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// constraintMessages turns unique constraint names into user-facing messages.
var constraintMessages = map[string]string{
	"users_username_key":              "username is already taken",
	"users_email_key":                 "email is already registered",
	"doctors_registration_number_key": "registration number is already registered",
	"doctors_user_id_key":             "account is already linked to a doctor",
	"patients_user_id_key":            "account is already linked to a patient",
	"specializations_name_key":        "specialization already exists",
	"cities_name_state_key":           "city already exists",
	"appointments_doctor_slot_uq":     "doctor already has an appointment at that time",
	"settings_pkey":                   "setting already exists",
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dialect builds prepared PostgreSQL statements.
var dialect = goqu.Dialect("postgres")

func from(table, alias string) *goqu.SelectDataset {
	return dialect.From(goqu.T(table).As(alias)).Prepared(true)
}

// mapError translates driver errors into application errors. Unique
// violations become validation errors, except double bookings which are
// conflicts; foreign key violations are conflicts.
func mapError(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			msg, ok := constraintMessages[pqErr.Constraint]
			if !ok {
				msg = "a record with the same value already exists"
			}
			if pqErr.Constraint == "appointments_doctor_slot_uq" {
				return apperrors.NewConflictError(msg)
			}
			return apperrors.NewValidationError(msg)
		case pqForeignKeyViolation:
			return apperrors.NewConflictError("the record is referenced by other data")
		}
	}
	return apperrors.NewQueryError(message, err)
}

// checkAffected turns a zero rows-affected result into a NotFound error.
func checkAffected(result sql.Result, entity string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewQueryError("failed to get rows affected", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", entity, id))
	}
	return nil
}

func notFound(entity string, id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", entity, id))
}

func paginate(ds *goqu.SelectDataset, q repositories.ListQuery) *goqu.SelectDataset {
	ds = q.Order.Apply(q.Where.Apply(ds))
	if q.Limit > 0 {
		ds = ds.Limit(uint(q.Limit))
	}
	if q.Offset > 0 {
		ds = ds.Offset(uint(q.Offset))
	}
	return ds
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// blank reads a nullable text column as '' without adding a bind argument.
func blank(col any) exp.SQLFunctionExpression {
	return goqu.COALESCE(col, goqu.L("''"))
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// countRows runs a COUNT(*) over ds with its filters applied.
func countRows(ctx context.Context, db queryer, ds *goqu.SelectDataset, entity string) (int, error) {
	query, args, err := ds.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err, "failed to count "+entity)
	}
	return n, nil
}

// countReferences returns how many rows of table reference id through column.
func countReferences(ctx context.Context, db queryer, table, column string, id int64) (int, error) {
	query, args, err := dialect.From(table).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(column).Eq(id)).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build reference query", err)
	}
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err, "failed to count "+table)
	}
	return n, nil
}
