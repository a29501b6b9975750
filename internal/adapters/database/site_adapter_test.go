package database_test

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anushahashmi071/CareGroup-sub001/internal/adapters/database"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string][]byte{}} }

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) DeletePrefix(context.Context, string) error { return nil }

var userColumns = []string{"user_id", "username", "email", "password_hash", "role", "status", "created_at", "last_login"}

func TestUserAdapter_GetByLogin_MatchesUsernameOrEmail(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewUserAdapter(client)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (("u"."username" = $1) OR ("u"."email" = $2)) LIMIT $3`)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "admin", "admin@clinic.io", "hash", "admin", "active", time.Now(), nil))

	u, err := adapter.GetByLogin(context.Background(), " Admin@Clinic.io ")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, u.Role)
	assert.Nil(t, u.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAdapter_Delete_RefusesLinkedAccount(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewUserAdapter(client)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "doctors"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM "patients"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := adapter.Delete(context.Background(), 9)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAdapter_TouchLastLogin(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewUserAdapter(client)
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "last_login"=$1 WHERE ("user_id" = $2)`)).
		WithArgs(at, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.TouchLastLogin(context.Background(), 3, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityAdapter_Delete_RefusesReferencedCity(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewCityAdapter(client)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "doctors" WHERE ("city_id" = $1)`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := adapter.Delete(context.Background(), 5)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.Contains(t, err.Error(), "city 5 still has 2 doctors")
}

func TestSpecializationAdapter_List(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewSpecializationAdapter(client)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY "name" ASC, "specialization_id" ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"specialization_id", "name", "description"}).
			AddRow(2, "Cardiology", "").
			AddRow(1, "Neurology", "Brain"))

	items, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Cardiology", items[0].Name)
}

func TestSettingAdapter_Set_Upserts(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewSettingAdapter(client)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "settings" ("setting_key", "setting_value") VALUES ($1, $2) ON CONFLICT (setting_key) DO UPDATE SET`)).
		WithArgs("site_name", "North Clinic").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.Set(context.Background(), "site_name", "North Clinic"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingAdapter_Get_NotFound(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewSettingAdapter(client)

	mock.ExpectQuery(`FROM "settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"setting_key", "setting_value", "updated_at"}))

	_, err := adapter.Get(context.Background(), "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCachedSettingAdapter_ReadsThroughAndInvalidates(t *testing.T) {
	client, mock := newMock(t)
	cache := newMemoryCache()
	adapter := database.NewCachedSettingAdapter(database.NewSettingAdapter(client), cache, time.Minute)
	columns := []string{"setting_key", "setting_value", "updated_at"}

	mock.ExpectQuery(`FROM "settings"`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("site_name", "CareGroup", time.Now()))

	// second read is served from the cache
	for i := 0; i < 2; i++ {
		s, err := adapter.Get(context.Background(), "site_name")
		require.NoError(t, err)
		assert.Equal(t, "CareGroup", s.Value)
	}

	mock.ExpectExec(`INSERT INTO "settings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, adapter.Set(context.Background(), "site_name", "North"))

	mock.ExpectQuery(`FROM "settings"`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("site_name", "North", time.Now()))
	s, err := adapter.Get(context.Background(), "site_name")
	require.NoError(t, err)
	assert.Equal(t, "North", s.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsAdapter_CountPublished(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewNewsAdapter(client)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "news" AS "n" WHERE ("n"."status" = $1)`)).
		WithArgs("published").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	published, err := query.BuildNewsStatusFilter("published")
	require.NoError(t, err)

	n, err := adapter.Count(context.Background(), published)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestReportAdapter_Totals(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewReportAdapter(client)

	mock.ExpectQuery(regexp.QuoteMeta(`(SELECT COUNT(*) FROM doctors WHERE status = $1) AS "active_doctors"`)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"doctors", "active_doctors", "patients", "appointments", "users"}).
			AddRow(5, 4, 30, 120, 36))

	totals, err := adapter.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.Totals{Doctors: 5, ActiveDoctors: 4, Patients: 30, Appointments: 120, Users: 36}, *totals)
}

func TestReportAdapter_AppointmentFacts(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewReportAdapter(client)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY "a"."appointment_date" ASC, "a"."appointment_id" ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"appointment_id", "appointment_date", "status", "doctor_id", "doctor_name", "patient_id",
			"specialization_id", "specialization_name", "city_id", "city_name",
		}).
			AddRow(1, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), "completed", 2, "Dr. Khan", 7, 1, "Cardiology", 3, "Lahore").
			AddRow(2, time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC), "cancelled", 2, "Dr. Khan", 8, 1, "Cardiology", 3, "Lahore"))

	facts, err := adapter.AppointmentFacts(context.Background(), query.MatchAll)
	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "2024-01-03", facts[0].Date.String())
	assert.Equal(t, entities.AppointmentStatusCancelled, facts[1].Status)
	assert.Equal(t, "Cardiology", facts[1].SpecializationName)
}

func TestReportAdapter_RatingSummaries_ForDoctor(t *testing.T) {
	client, mock := newMock(t)
	adapter := database.NewReportAdapter(client)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE ("r"."doctor_id" = $1) GROUP BY "r"."doctor_id", "d"."full_name", "s"."name"`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"doctor_id", "full_name", "specialization_name", "average_rating", "review_count"}).
			AddRow(2, "Dr. Khan", "Cardiology", "4.50", 6))

	summaries, err := adapter.RatingSummaries(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 4.5, summaries[0].AverageRating, 0.001)
	assert.Equal(t, 6, summaries[0].ReviewCount)
	assert.Equal(t, "Dr. Khan", summaries[0].FullName)
}
