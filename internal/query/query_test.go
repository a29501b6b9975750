package query_test

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

type row map[string]any

func (r row) Field(key string) any { return r[key] }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func toSQL(t *testing.T, p query.Predicate, o query.OrderSpec) (string, []interface{}) {
	t.Helper()
	ds := goqu.Dialect("postgres").From(goqu.T("appointments").As("a")).Prepared(true)
	ds = o.Apply(p.Apply(ds))
	sql, args, err := ds.ToSQL()
	require.NoError(t, err)
	return sql, args
}

func TestBuildAppointmentFilter_MatchAll(t *testing.T) {
	for _, v := range []string{"", "all", "ALL", "  all "} {
		p, err := query.BuildAppointmentFilter(v)
		require.NoError(t, err, v)
		assert.True(t, p.MatchesAll(), v)
	}
}

func TestBuildAppointmentFilter_Status(t *testing.T) {
	for _, v := range []string{"scheduled", "completed", "cancelled", "missed"} {
		p, err := query.BuildAppointmentFilter(v)
		require.NoError(t, err)
		assert.False(t, p.MatchesAll())

		sql, args := toSQL(t, p, query.OrderSpec{})
		assert.Contains(t, sql, `"a"."status" = $1`)
		assert.Equal(t, []interface{}{v}, args)
		assert.True(t, p.Matches(row{"status": v}))
		assert.False(t, p.Matches(row{"status": "other"}))
	}
}

func TestBuildAppointmentFilter_RejectsUnknown(t *testing.T) {
	for _, v := range []string{"done", "pending", "scheduled;DROP TABLE appointments", "active"} {
		_, err := query.BuildAppointmentFilter(v)
		require.Error(t, err, v)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidFilter), v)
	}
}

func TestBuildSearchFilter_BlankMatchesAll(t *testing.T) {
	for _, term := range []string{"", " ", "\t\n"} {
		p := query.BuildSearchFilter(term, query.AppointmentSearchFields...)
		assert.True(t, p.MatchesAll())
		assert.True(t, p.Matches(row{}))
	}
}

func TestBuildSearchFilter_BindsTermAsArgument(t *testing.T) {
	term := "o'brien'; DROP TABLE users; --"
	p := query.BuildSearchFilter(term, query.PatientName, query.DoctorName)

	sql, args := toSQL(t, p, query.OrderSpec{})
	assert.NotContains(t, sql, "DROP TABLE")
	assert.Contains(t, sql, `"p"."full_name" ILIKE $1`)
	assert.Contains(t, sql, `"d"."full_name" ILIKE $2`)
	assert.Contains(t, sql, " OR ")
	assert.Equal(t, []interface{}{"%" + term + "%", "%" + term + "%"}, args)
}

func TestBuildSearchFilter_EscapesWildcards(t *testing.T) {
	p := query.BuildSearchFilter("50%_off", query.AppointmentSymptoms)
	_, args := toSQL(t, p, query.OrderSpec{})
	assert.Equal(t, []interface{}{`%50\%\_off%`}, args)
}

func TestBuildSearchFilter_InMemoryCaseInsensitive(t *testing.T) {
	p := query.BuildSearchFilter("SMITH", query.PatientName, query.DoctorName)

	assert.True(t, p.Matches(row{"patient_name": "Anna Smithson", "doctor_name": "Dr. Lee"}))
	assert.True(t, p.Matches(row{"patient_name": "Bo", "doctor_name": "Dr. smith"}))
	assert.False(t, p.Matches(row{"patient_name": "Bo", "doctor_name": "Dr. Lee"}))
}

func TestAnd_DropsMatchAll(t *testing.T) {
	status, err := query.BuildAppointmentFilter("scheduled")
	require.NoError(t, err)

	p := query.And(query.MatchAll, status, query.BuildIDFilter(query.AppointmentDoctorID, 0))
	sql, args := toSQL(t, p, query.OrderSpec{})
	assert.Contains(t, sql, `"a"."status" = $1`)
	assert.Equal(t, []interface{}{"scheduled"}, args)

	assert.True(t, query.And().MatchesAll())
}

func TestAnd_CombinesScopes(t *testing.T) {
	status, err := query.BuildAppointmentFilter("completed")
	require.NoError(t, err)
	p := query.And(status, query.BuildIDFilter(query.AppointmentDoctorID, 4))

	assert.True(t, p.Matches(row{"status": "completed", "doctor_id": int64(4)}))
	assert.False(t, p.Matches(row{"status": "completed", "doctor_id": int64(5)}))
	assert.False(t, p.Matches(row{"status": "missed", "doctor_id": int64(4)}))
}

func TestIn(t *testing.T) {
	p := query.In(query.DoctorID, []int64{3, 8})
	sql, args := toSQL(t, p, query.OrderSpec{})
	assert.Contains(t, sql, `"d"."doctor_id" IN ($1, $2)`)
	assert.Equal(t, []interface{}{int64(3), int64(8)}, args)
	assert.True(t, p.Matches(row{"doctor_id": int64(8)}))
	assert.False(t, p.Matches(row{"doctor_id": int64(4)}))

	none := query.In(query.DoctorID, nil)
	assert.False(t, none.MatchesAll())
	assert.False(t, none.Matches(row{"doctor_id": int64(3)}))
}

func TestBuildDateRange(t *testing.T) {
	from, to := date("2024-01-01"), date("2024-01-31")
	p := query.BuildDateRange(query.AppointmentDate, &from, &to)

	assert.True(t, p.Matches(row{"appointment_date": date("2024-01-01")}))
	assert.True(t, p.Matches(row{"appointment_date": date("2024-01-31")}))
	assert.False(t, p.Matches(row{"appointment_date": date("2024-02-01")}))
	assert.False(t, p.Matches(row{}))

	assert.True(t, query.BuildDateRange(query.AppointmentDate, nil, nil).MatchesAll())
}

func TestBuildUserFilter(t *testing.T) {
	p, err := query.BuildUserFilter("doctor", "all")
	require.NoError(t, err)
	assert.True(t, p.Matches(row{"role": "doctor", "user_status": "suspended"}))
	assert.False(t, p.Matches(row{"role": "admin"}))

	_, err = query.BuildUserFilter("superuser", "")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidFilter))

	_, err = query.BuildUserFilter("", "deleted")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidFilter))
}

func TestAppointmentOrder_SQL(t *testing.T) {
	sql, _ := toSQL(t, query.MatchAll, query.AppointmentOrder())
	assert.Contains(t, sql, `ORDER BY "a"."appointment_date" DESC, "a"."appointment_time" DESC, "a"."appointment_id" ASC`)
}

func TestWithTieBreak_NotDuplicated(t *testing.T) {
	o := query.OrderBy(query.Desc(query.AppointmentID)).WithTieBreak(query.AppointmentID)
	assert.Len(t, o.Fields(), 1)
	assert.Equal(t, query.Descending, o.Fields()[0].Direction)
}

func TestOrderBy_PanicsOnInvalidColumn(t *testing.T) {
	assert.Panics(t, func() {
		query.OrderBy(query.Asc(query.Column{}))
	})
}

func TestSort_TieBreakIsDeterministic(t *testing.T) {
	rows := []row{
		{"appointment_id": int64(9), "appointment_date": date("2024-01-10"), "appointment_time": "09:00:00"},
		{"appointment_id": int64(3), "appointment_date": date("2024-01-10"), "appointment_time": "09:00:00"},
		{"appointment_id": int64(5), "appointment_date": date("2024-01-11"), "appointment_time": "08:00:00"},
		{"appointment_id": int64(4), "appointment_date": date("2024-01-10"), "appointment_time": "10:30:00"},
	}

	query.Sort(rows, query.AppointmentOrder())

	var ids []int64
	for _, r := range rows {
		ids = append(ids, r["appointment_id"].(int64))
	}
	assert.Equal(t, []int64{5, 4, 3, 9}, ids)
}

func TestFilterAndSort_ScheduledByDateDescending(t *testing.T) {
	rows := []row{
		{"appointment_id": int64(1), "status": "scheduled", "appointment_date": date("2024-01-10")},
		{"appointment_id": int64(2), "status": "completed", "appointment_date": date("2024-01-12")},
		{"appointment_id": int64(3), "status": "scheduled", "appointment_date": date("2024-02-01")},
	}

	p, err := query.BuildAppointmentFilter("scheduled")
	require.NoError(t, err)

	got := query.Filter(rows, p)
	query.Sort(got, query.AppointmentOrder())

	require.Len(t, got, 2)
	assert.Equal(t, date("2024-02-01"), got[0]["appointment_date"])
	assert.Equal(t, date("2024-01-10"), got[1]["appointment_date"])
}
