package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

func TestParseAppointmentStatus(t *testing.T) {
	s, err := ParseAppointmentStatus(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, AppointmentStatusCompleted, s)

	_, err = ParseAppointmentStatus("done")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestParseRoleAndStatuses(t *testing.T) {
	r, err := ParseRole("DOCTOR")
	require.NoError(t, err)
	assert.Equal(t, RoleDoctor, r)

	_, err = ParseRole("root")
	assert.Error(t, err)

	st, err := ParseUserStatus("suspended")
	require.NoError(t, err)
	assert.Equal(t, UserStatusSuspended, st)

	_, err = ParseDoctorStatus("retired")
	assert.Error(t, err)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 15)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(b))

	var out Date
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, d.Equal(out.Time))

	require.NoError(t, json.Unmarshal([]byte("null"), &out))
	assert.True(t, out.IsZero())

	zero, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(zero))

	assert.Error(t, json.Unmarshal([]byte(`"15/03/2024"`), &out))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-10", d.String())

	require.NoError(t, d.Scan([]byte("2024-02-01T00:00:00Z")))
	assert.Equal(t, "2024-02-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = NewDate(2024, time.January, 2).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", v)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("9:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", c)

	c, err = ParseClock("14:05:00")
	require.NoError(t, err)
	assert.Equal(t, "14:05:00", c)

	_, err = ParseClock("2pm")
	assert.Error(t, err)
}

func TestAppointmentView_Field(t *testing.T) {
	v := AppointmentView{
		Appointment: Appointment{ID: 7, Status: AppointmentStatusMissed, Date: NewDate(2024, 5, 1), DoctorID: 3},
		PatientName: "Ana",
		CityID:      11,
	}
	assert.Equal(t, int64(7), v.Field("appointment_id"))
	assert.Equal(t, "missed", v.Field("status"))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), v.Field("appointment_date"))
	assert.Equal(t, "Ana", v.Field("patient_name"))
	assert.Equal(t, int64(11), v.Field("city_id"))
	assert.Nil(t, v.Field("unknown"))
}

func TestNewChangeEvent(t *testing.T) {
	e := NewChangeEvent(ChangeEventAppointment, ChangeActionCreated, 9)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, int64(9), e.EntityID)
	assert.False(t, e.Timestamp.IsZero())
}
