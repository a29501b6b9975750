package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog/log"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// SettingAdapter implements the SettingRepository interface
type SettingAdapter struct {
	client *postgres.Client
}

// NewSettingAdapter creates a new setting adapter
func NewSettingAdapter(client *postgres.Client) repositories.SettingRepository {
	return &SettingAdapter{client: client}
}

func (a *SettingAdapter) view() *goqu.SelectDataset {
	return dialect.From("settings").Prepared(true).
		Select("setting_key", "setting_value", "updated_at")
}

// Get retrieves a setting by key
func (a *SettingAdapter) Get(ctx context.Context, key string) (*entities.Setting, error) {
	sqlStr, args, err := a.view().Where(goqu.C("setting_key").Eq(key)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	s := &entities.Setting{}
	err = a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("setting %q not found", key))
	}
	if err != nil {
		return nil, mapError(err, "failed to get setting")
	}
	return s, nil
}

// All returns every stored setting ordered by key
func (a *SettingAdapter) All(ctx context.Context) ([]*entities.Setting, error) {
	sqlStr, args, err := a.view().Order(goqu.C("setting_key").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list settings")
	}
	defer rows.Close()

	settings := []*entities.Setting{}
	for rows.Next() {
		s := &entities.Setting{}
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, mapError(err, "failed to scan setting")
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate settings")
	}
	return settings, nil
}

// Set upserts a setting
func (a *SettingAdapter) Set(ctx context.Context, key, value string) error {
	sqlStr, args, err := dialect.Insert("settings").Prepared(true).
		Rows(goqu.Record{"setting_key": key, "setting_value": value}).
		OnConflict(goqu.DoUpdate("setting_key", goqu.Record{
			"setting_value": goqu.L("EXCLUDED.setting_value"),
			"updated_at":    goqu.L("NOW()"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, sqlStr, args...); err != nil {
		return mapError(err, "failed to save setting")
	}
	return nil
}

const settingsCacheKey = "settings:all"

// CachedSettingAdapter serves settings from the cache and drops the cached
// copy on every write.
type CachedSettingAdapter struct {
	adapter repositories.SettingRepository
	cache   providers.CacheProvider
	ttl     time.Duration
}

// NewCachedSettingAdapter wraps adapter with a cache of the full settings list
func NewCachedSettingAdapter(adapter repositories.SettingRepository, cache providers.CacheProvider, ttl time.Duration) repositories.SettingRepository {
	return &CachedSettingAdapter{adapter: adapter, cache: cache, ttl: ttl}
}

// Get returns a setting from the cached list
func (a *CachedSettingAdapter) Get(ctx context.Context, key string) (*entities.Setting, error) {
	settings, err := a.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range settings {
		if s.Key == key {
			return s, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("setting %q not found", key))
}

// All returns every setting, reading through the cache
func (a *CachedSettingAdapter) All(ctx context.Context) ([]*entities.Setting, error) {
	if cached, err := a.cache.Get(ctx, settingsCacheKey); err == nil {
		var settings []*entities.Setting
		if err := json.Unmarshal(cached, &settings); err == nil {
			return settings, nil
		}
		log.Warn().Err(err).Msg("discarding unreadable cached settings")
	}

	settings, err := a.adapter.All(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(settings); err == nil {
		if err := a.cache.Set(ctx, settingsCacheKey, data, a.ttl); err != nil {
			log.Warn().Err(err).Msg("failed to cache settings")
		}
	}
	return settings, nil
}

// Set writes through to the database and invalidates the cached list
func (a *CachedSettingAdapter) Set(ctx context.Context, key, value string) error {
	if err := a.adapter.Set(ctx, key, value); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, settingsCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate cached settings")
	}
	return nil
}
