package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// SpecializationAdapter implements the SpecializationRepository interface
type SpecializationAdapter struct {
	client *postgres.Client
}

// NewSpecializationAdapter creates a new specialization adapter
func NewSpecializationAdapter(client *postgres.Client) repositories.SpecializationRepository {
	return &SpecializationAdapter{client: client}
}

func (a *SpecializationAdapter) view() *goqu.SelectDataset {
	return dialect.From("specializations").Prepared(true).
		Select("specialization_id", "name", blank(goqu.C("description")).As("description"))
}

// List returns all specializations ordered by name
func (a *SpecializationAdapter) List(ctx context.Context) ([]*entities.Specialization, error) {
	sqlStr, args, err := a.view().Order(goqu.C("name").Asc(), goqu.C("specialization_id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list specializations")
	}
	defer rows.Close()

	items := []*entities.Specialization{}
	for rows.Next() {
		s := &entities.Specialization{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, mapError(err, "failed to scan specialization")
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate specializations")
	}
	return items, nil
}

// GetByID retrieves a specialization by ID
func (a *SpecializationAdapter) GetByID(ctx context.Context, id int64) (*entities.Specialization, error) {
	sqlStr, args, err := a.view().Where(goqu.C("specialization_id").Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	s := &entities.Specialization{}
	err = a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&s.ID, &s.Name, &s.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("specialization", id)
	}
	if err != nil {
		return nil, mapError(err, "failed to get specialization")
	}
	return s, nil
}

// Create creates a new specialization
func (a *SpecializationAdapter) Create(ctx context.Context, s *entities.Specialization) error {
	sqlStr, args, err := dialect.Insert("specializations").Prepared(true).
		Rows(goqu.Record{"name": s.Name, "description": nullString(s.Description)}).
		Returning("specialization_id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if err := a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&s.ID); err != nil {
		return mapError(err, "failed to create specialization")
	}
	return nil
}

// Update updates a specialization
func (a *SpecializationAdapter) Update(ctx context.Context, s *entities.Specialization) error {
	sqlStr, args, err := dialect.Update("specializations").Prepared(true).
		Set(goqu.Record{"name": s.Name, "description": nullString(s.Description)}).
		Where(goqu.C("specialization_id").Eq(s.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "failed to update specialization")
	}
	return checkAffected(result, "specialization", s.ID)
}

// Delete deletes a specialization no doctor references
func (a *SpecializationAdapter) Delete(ctx context.Context, id int64) error {
	return a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := restrict(ctx, tx, "specialization", id, "specialization_id", "doctors"); err != nil {
			return err
		}
		return deleteRow(ctx, tx, "specializations", "specialization_id", "specialization", id)
	})
}

// CityAdapter implements the CityRepository interface
type CityAdapter struct {
	client *postgres.Client
}

// NewCityAdapter creates a new city adapter
func NewCityAdapter(client *postgres.Client) repositories.CityRepository {
	return &CityAdapter{client: client}
}

func (a *CityAdapter) view() *goqu.SelectDataset {
	return dialect.From("cities").Prepared(true).
		Select("city_id", "name", blank(goqu.C("state")).As("state"))
}

// List returns all cities ordered by name
func (a *CityAdapter) List(ctx context.Context) ([]*entities.City, error) {
	sqlStr, args, err := a.view().Order(goqu.C("name").Asc(), goqu.C("city_id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list cities")
	}
	defer rows.Close()

	items := []*entities.City{}
	for rows.Next() {
		c := &entities.City{}
		if err := rows.Scan(&c.ID, &c.Name, &c.State); err != nil {
			return nil, mapError(err, "failed to scan city")
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate cities")
	}
	return items, nil
}

// GetByID retrieves a city by ID
func (a *CityAdapter) GetByID(ctx context.Context, id int64) (*entities.City, error) {
	sqlStr, args, err := a.view().Where(goqu.C("city_id").Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	c := &entities.City{}
	err = a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&c.ID, &c.Name, &c.State)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("city", id)
	}
	if err != nil {
		return nil, mapError(err, "failed to get city")
	}
	return c, nil
}

// Create creates a new city
func (a *CityAdapter) Create(ctx context.Context, c *entities.City) error {
	sqlStr, args, err := dialect.Insert("cities").Prepared(true).
		Rows(goqu.Record{"name": c.Name, "state": nullString(c.State)}).
		Returning("city_id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if err := a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&c.ID); err != nil {
		return mapError(err, "failed to create city")
	}
	return nil
}

// Update updates a city
func (a *CityAdapter) Update(ctx context.Context, c *entities.City) error {
	sqlStr, args, err := dialect.Update("cities").Prepared(true).
		Set(goqu.Record{"name": c.Name, "state": nullString(c.State)}).
		Where(goqu.C("city_id").Eq(c.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "failed to update city")
	}
	return checkAffected(result, "city", c.ID)
}

// Delete deletes a city no doctor or patient references
func (a *CityAdapter) Delete(ctx context.Context, id int64) error {
	return a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := restrict(ctx, tx, "city", id, "city_id", "doctors", "patients"); err != nil {
			return err
		}
		return deleteRow(ctx, tx, "cities", "city_id", "city", id)
	})
}

func deleteRow(ctx context.Context, db queryer, table, idColumn, entity string, id int64) error {
	sqlStr, args, err := dialect.Delete(table).Prepared(true).
		Where(goqu.C(idColumn).Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	result, err := db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "failed to delete "+entity)
	}
	return checkAffected(result, entity, id)
}
