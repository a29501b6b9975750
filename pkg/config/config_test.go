package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TYPESENSE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "caregroup", cfg.Database.Database)
	assert.Equal(t, "", cfg.Typesense.URL)
	assert.Equal(t, "development-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Reporting.TopN)
	assert.Equal(t, 6, cfg.Reporting.TrendMonths)
	assert.Equal(t, "uploads/news", cfg.Uploads.Dir)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com, https://portal.example.com")
	t.Setenv("REPORT_STATS_CACHE_TTL", "30s")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://admin.example.com", "https://portal.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Reporting.StatsCacheTTL)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_RequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsShortTrend(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("REPORT_TREND_MONTHS", "1")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "caregroup", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=caregroup sslmode=disable", c.DatabaseDSN())
}

func TestLoad_BoundsTokenTTL(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	t.Setenv("JWT_TTL", "72h")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_TTL", "0s")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("JWT_TTL", "30m")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}
