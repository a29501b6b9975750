// Package presentation turns stored values into display values for the API
// responses: formatted dates and times, status badges, chart percentages and
// avatar initials. It holds no business rules.
package presentation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// NotAvailable is returned for null, empty or unreadable values.
const NotAvailable = "N/A"

// InitialsPlaceholder is shown for an empty name.
const InitialsPlaceholder = "?"

const (
	DefaultDateLayout = "January 2, 2006"
	DefaultTimeLayout = "3:04 PM"
)

// dateFormats maps the date_format setting values onto Go layouts.
var dateFormats = map[string]string{
	"F j, Y": DefaultDateLayout,
	"M j, Y": "Jan 2, 2006",
	"Y-m-d":  "2006-01-02",
	"d/m/Y":  "02/01/2006",
	"m/d/Y":  "01/02/2006",
	"d-m-Y":  "02-01-2006",
}

var timeFormats = map[string]string{
	"g:i A": DefaultTimeLayout,
	"h:i A": "03:04 PM",
	"H:i":   "15:04",
}

var dateInputs = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

var timeInputs = []string{
	"15:04:05",
	"15:04",
	"15:04:05.999999",
}

// Formatter formats dates and times with configurable layouts.
type Formatter struct {
	dateLayout string
	timeLayout string
}

// NewFormatter builds a Formatter from the date_format and time_format
// setting values. Unknown or empty values fall back to the defaults.
func NewFormatter(dateFormat, timeFormat string) Formatter {
	f := Formatter{dateLayout: DefaultDateLayout, timeLayout: DefaultTimeLayout}
	if l, ok := dateFormats[strings.TrimSpace(dateFormat)]; ok {
		f.dateLayout = l
	}
	if l, ok := timeFormats[strings.TrimSpace(timeFormat)]; ok {
		f.timeLayout = l
	}
	return f
}

// DefaultFormatter uses "March 15, 2024" and "2:30 PM".
var DefaultFormatter = NewFormatter("", "")

// FormatDate renders a stored date string.
func (f Formatter) FormatDate(value string) string {
	t, ok := parseAny(value, dateInputs)
	if !ok {
		return NotAvailable
	}
	return t.Format(f.dateLayout)
}

// FormatDateValue renders t, or N/A for the zero time.
func (f Formatter) FormatDateValue(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(f.dateLayout)
}

// FormatTime renders a stored time-of-day string.
func (f Formatter) FormatTime(value string) string {
	t, ok := parseAny(value, timeInputs)
	if !ok {
		return NotAvailable
	}
	return t.Format(f.timeLayout)
}

// FormatDate renders value with the default layout.
func FormatDate(value string) string { return DefaultFormatter.FormatDate(value) }

// FormatTime renders value with the default layout.
func FormatTime(value string) string { return DefaultFormatter.FormatTime(value) }

func parseAny(value string, layouts []string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Initials returns the uppercased first character of fullName for avatar
// placeholders.
func Initials(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return InitialsPlaceholder
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return InitialsPlaceholder
	}
	return string(unicode.ToUpper(r))
}

// ValidDateFormat reports whether f is a supported date_format setting.
func ValidDateFormat(f string) bool {
	_, ok := dateFormats[strings.TrimSpace(f)]
	return ok
}

// ValidTimeFormat reports whether f is a supported time_format setting.
func ValidTimeFormat(f string) bool {
	_, ok := timeFormats[strings.TrimSpace(f)]
	return ok
}
