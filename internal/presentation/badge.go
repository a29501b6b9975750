package presentation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anushahashmi071/CareGroup-sub001/internal/aggregation"
)

// BadgeClass is the visual category of a status badge.
type BadgeClass string

const (
	BadgePrimary   BadgeClass = "primary"
	BadgeSuccess   BadgeClass = "success"
	BadgeDanger    BadgeClass = "danger"
	BadgeWarning   BadgeClass = "warning"
	BadgeSecondary BadgeClass = "secondary"
	BadgeInfo      BadgeClass = "info"
)

// Badge is a display label with its visual category.
type Badge struct {
	Label string     `json:"label"`
	Class BadgeClass `json:"class"`
}

var badgeClasses = map[string]BadgeClass{
	"scheduled": BadgePrimary,
	"completed": BadgeSuccess,
	"cancelled": BadgeDanger,
	"missed":    BadgeWarning,
	"active":    BadgeSuccess,
	"inactive":  BadgeSecondary,
	"suspended": BadgeDanger,
	"pending":   BadgeInfo,
	"published": BadgeSuccess,
	"draft":     BadgeSecondary,
}

// StatusLabel maps a status value to its badge. Unknown statuses keep their
// capitalized text and get the neutral class.
func StatusLabel(status string) Badge {
	s := strings.ToLower(strings.TrimSpace(status))
	class, ok := badgeClasses[s]
	if !ok {
		class = BadgeSecondary
	}
	if s == "" {
		return Badge{Label: NotAvailable, Class: class}
	}
	return Badge{Label: capitalize(s), Class: class}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Bars scales counts against the largest one so the longest bar is 100%.
func Bars(labels []string, counts []int) []Bar {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	out := make([]Bar, 0, len(labels))
	for i, l := range labels {
		c := 0
		if i < len(counts) {
			c = counts[i]
		}
		out = append(out, Bar{
			Label:   l,
			Count:   c,
			Percent: percent(c, max),
		})
	}
	return out
}

// Share is a count with its percentage of the total.
func Share(count, total int) float64 {
	return percent(count, total)
}

// percent is count/max as a percentage in [0, 100], one decimal place.
func percent(count, max int) float64 {
	return aggregation.Round(aggregation.PercentOf(float64(count), float64(max)), 1)
}
