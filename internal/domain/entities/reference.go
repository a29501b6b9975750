package entities

import "time"

// Specialization is a medical specialty doctors are grouped by
type Specialization struct {
	ID          int64  `json:"specialization_id" db:"specialization_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

// City is a location doctors and patients belong to
type City struct {
	ID    int64  `json:"city_id" db:"city_id"`
	Name  string `json:"name" db:"name"`
	State string `json:"state,omitempty" db:"state"`
}

// LookupInput carries the writable fields of a specialization or city.
type LookupInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	State       string `json:"state" validate:"max=100"`
}

// Review represents a patient's rating of a doctor
type Review struct {
	ID        int64     `json:"review_id" db:"review_id"`
	DoctorID  int64     `json:"doctor_id" db:"doctor_id"`
	PatientID int64     `json:"patient_id" db:"patient_id"`
	Rating    int       `json:"rating" db:"rating"` // 1-5
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Setting is a site configuration key/value pair
type Setting struct {
	Key       string    `json:"key" db:"setting_key"`
	Value     string    `json:"value" db:"setting_value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Known setting keys.
const (
	SettingSiteName     = "site_name"
	SettingContactEmail = "contact_email"
	SettingContactPhone = "contact_phone"
	SettingAddress      = "address"
	SettingTimezone     = "timezone"
	SettingDateFormat   = "date_format"
	SettingTimeFormat   = "time_format"
	SettingSlotMinutes  = "appointment_slot_minutes"
)

// KnownSettings lists the keys the settings endpoint accepts.
var KnownSettings = []string{
	SettingSiteName,
	SettingContactEmail,
	SettingContactPhone,
	SettingAddress,
	SettingTimezone,
	SettingDateFormat,
	SettingTimeFormat,
	SettingSlotMinutes,
}

// ReviewInput carries a patient's rating of a doctor.
type ReviewInput struct {
	DoctorID int64  `json:"doctor_id" validate:"required,gt=0"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"max=2000"`
}
