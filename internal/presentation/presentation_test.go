package presentation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/anushahashmi071/CareGroup-sub001/internal/aggregation"
	"github.com/anushahashmi071/CareGroup-sub001/internal/presentation"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "March 15, 2024", presentation.FormatDate("2024-03-15"))
	assert.Equal(t, "March 15, 2024", presentation.FormatDate("2024-03-15 08:00:00"))
	assert.Equal(t, "March 15, 2024", presentation.FormatDate("2024-03-15T08:00:00Z"))

	for _, v := range []string{"", "   ", "not a date", "2024-13-40"} {
		assert.Equal(t, presentation.NotAvailable, presentation.FormatDate(v), v)
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "2:30 PM", presentation.FormatTime("14:30:00"))
	assert.Equal(t, "9:05 AM", presentation.FormatTime("09:05"))
	assert.Equal(t, "12:00 AM", presentation.FormatTime("00:00:00"))
	assert.Equal(t, presentation.NotAvailable, presentation.FormatTime(""))
	assert.Equal(t, presentation.NotAvailable, presentation.FormatTime("25:00"))
}

func TestFormatter_UsesSettingLayouts(t *testing.T) {
	f := presentation.NewFormatter("d/m/Y", "H:i")
	assert.Equal(t, "15/03/2024", f.FormatDate("2024-03-15"))
	assert.Equal(t, "14:30", f.FormatTime("14:30:00"))

	fallback := presentation.NewFormatter("bogus", "")
	assert.Equal(t, "March 15, 2024", fallback.FormatDate("2024-03-15"))
}

func TestFormatDateValue(t *testing.T) {
	f := presentation.NewFormatter("Y-m-d", "")
	assert.Equal(t, "2024-03-15", f.FormatDateValue(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, presentation.NotAvailable, f.FormatDateValue(time.Time{}))
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]presentation.Badge{
		"scheduled": {Label: "Scheduled", Class: presentation.BadgePrimary},
		"completed": {Label: "Completed", Class: presentation.BadgeSuccess},
		"cancelled": {Label: "Cancelled", Class: presentation.BadgeDanger},
		"missed":    {Label: "Missed", Class: presentation.BadgeWarning},
		"active":    {Label: "Active", Class: presentation.BadgeSuccess},
		"inactive":  {Label: "Inactive", Class: presentation.BadgeSecondary},
		"suspended": {Label: "Suspended", Class: presentation.BadgeDanger},
		"pending":   {Label: "Pending", Class: presentation.BadgeInfo},
		"ARCHIVED":  {Label: "Archived", Class: presentation.BadgeSecondary},
		"":          {Label: presentation.NotAvailable, Class: presentation.BadgeSecondary},
	}
	for in, want := range cases {
		assert.Equal(t, want, presentation.StatusLabel(in), in)
	}
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "J", presentation.Initials("jane doe"))
	assert.Equal(t, "Ö", presentation.Initials("  özil"))
	assert.Equal(t, "?", presentation.Initials(""))
	assert.Equal(t, "?", presentation.Initials("   "))
}

func TestBars(t *testing.T) {
	bars := presentation.Bars([]string{"Cardiology", "Dermatology", "Neurology"}, []int{8, 4, 0})
	assert.Equal(t, []presentation.Bar{
		{Label: "Cardiology", Count: 8, Percent: 100},
		{Label: "Dermatology", Count: 4, Percent: 50},
		{Label: "Neurology", Count: 0, Percent: 0},
	}, bars)

	empty := presentation.Bars([]string{"A"}, []int{0})
	assert.Equal(t, 0.0, empty[0].Percent)
}

func TestShare(t *testing.T) {
	assert.Equal(t, 33.3, presentation.Share(1, 3))
	assert.Equal(t, 0.0, presentation.Share(4, 0))
	assert.Equal(t, 100.0, presentation.Share(5, 4))
	assert.Equal(t, 0.0, presentation.Share(-1, 4))
	assert.Equal(t, aggregation.Round(aggregation.PercentOf(2, 7), 1), presentation.Share(2, 7))
}
