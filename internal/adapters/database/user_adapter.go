package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{client: client}
}

func (a *UserAdapter) view() *goqu.SelectDataset {
	tu := goqu.T(query.AliasUsers)
	return from("users", query.AliasUsers).Select(
		tu.Col("user_id"),
		tu.Col("username"),
		tu.Col("email"),
		tu.Col("password_hash"),
		tu.Col("role"),
		tu.Col("status"),
		tu.Col("created_at"),
		tu.Col("last_login"),
	)
}

func scanUser(row rowScanner) (*entities.User, error) {
	u := &entities.User{}
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

// insertUser inserts an account through db and sets its ID and CreatedAt.
func insertUser(ctx context.Context, db queryer, user *entities.User) error {
	record := goqu.Record{
		"username":      user.Username,
		"email":         strings.ToLower(user.Email),
		"password_hash": user.PasswordHash,
		"role":          string(user.Role),
		"status":        string(user.Status),
	}
	sqlStr, args, err := dialect.Insert("users").Prepared(true).
		Rows(record).
		Returning("user_id", "created_at").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if err := db.QueryRowContext(ctx, sqlStr, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		return mapError(err, "failed to create user")
	}
	return nil
}

func deleteUser(ctx context.Context, db queryer, id int64) error {
	return deleteRow(ctx, db, "users", "user_id", "user", id)
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	return insertUser(ctx, a.client.DB(), user)
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	sqlStr, args, err := a.view().Where(query.UserID.Ident().Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	u, err := scanUser(a.client.DB().QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, mapError(err, "failed to get user")
	}
	return u, nil
}

// GetByLogin retrieves a user by username or email
func (a *UserAdapter) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	login = strings.TrimSpace(login)
	sqlStr, args, err := a.view().Where(goqu.Or(
		query.UserName.Ident().Eq(login),
		query.UserEmail.Ident().Eq(strings.ToLower(login)),
	)).Limit(1).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	u, err := scanUser(a.client.DB().QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, mapError(err, "failed to get user")
	}
	return u, nil
}

// List retrieves users matching q
func (a *UserAdapter) List(ctx context.Context, q repositories.ListQuery) ([]*entities.User, error) {
	sqlStr, args, err := paginate(a.view(), q).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list users")
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan user")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate users")
	}
	return users, nil
}

// Count returns the number of users matching where
func (a *UserAdapter) Count(ctx context.Context, where query.Predicate) (int, error) {
	return countRows(ctx, a.client.DB(), where.Apply(from("users", query.AliasUsers)), "users")
}

// Update updates username, email, role and status
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	return a.update(ctx, user.ID, goqu.Record{
		"username": user.Username,
		"email":    strings.ToLower(user.Email),
		"role":     string(user.Role),
		"status":   string(user.Status),
	})
}

// UpdatePassword replaces the stored password hash
func (a *UserAdapter) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return a.update(ctx, id, goqu.Record{"password_hash": hash})
}

// TouchLastLogin records a successful sign-in
func (a *UserAdapter) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return a.update(ctx, id, goqu.Record{"last_login": at})
}

func (a *UserAdapter) update(ctx context.Context, id int64, record goqu.Record) error {
	sqlStr, args, err := dialect.Update("users").Prepared(true).
		Set(record).
		Where(goqu.C("user_id").Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "failed to update user")
	}
	return checkAffected(result, "user", id)
}

// Delete deletes an account no doctor or patient profile links to
func (a *UserAdapter) Delete(ctx context.Context, id int64) error {
	return a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := restrict(ctx, tx, "user", id, "user_id", "doctors", "patients"); err != nil {
			return err
		}
		return deleteUser(ctx, tx, id)
	})
}
