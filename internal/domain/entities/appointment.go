package entities

import (
	"strings"
	"time"

	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusMissed    AppointmentStatus = "missed"
)

// AppointmentStatuses lists every status in display order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusMissed,
}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	for _, v := range AppointmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseAppointmentStatus parses a status value, case-insensitively.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", apperrors.NewValidationError("invalid appointment status: " + s)
	}
	return status, nil
}

// Appointment represents a booked consultation slot
type Appointment struct {
	ID           int64             `json:"appointment_id" db:"appointment_id"`
	PatientID    int64             `json:"patient_id" db:"patient_id"`
	DoctorID     int64             `json:"doctor_id" db:"doctor_id"`
	Date         Date              `json:"appointment_date" db:"appointment_date"`
	Time         string            `json:"appointment_time" db:"appointment_time"`
	Status       AppointmentStatus `json:"status" db:"status"`
	Symptoms     string            `json:"symptoms,omitempty" db:"symptoms"`
	Diagnosis    string            `json:"diagnosis,omitempty" db:"diagnosis"`
	Prescription string            `json:"prescription,omitempty" db:"prescription"`
	Notes        string            `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}

// AppointmentView is an appointment joined with its patient, doctor,
// specialization and city.
type AppointmentView struct {
	Appointment
	PatientName        string `json:"patient_name" db:"patient_name"`
	DoctorName         string `json:"doctor_name" db:"doctor_name"`
	SpecializationName string `json:"specialization_name" db:"specialization_name"`
	CityID             int64  `json:"city_id" db:"city_id"`
	CityName           string `json:"city_name" db:"city_name"`
}

// Field exposes the view to in-memory predicates and orderings.
func (v AppointmentView) Field(key string) any {
	switch key {
	case "appointment_id":
		return v.ID
	case "appointment_date":
		return v.Date.Time
	case "appointment_time":
		return v.Time
	case "status":
		return string(v.Status)
	case "symptoms":
		return v.Symptoms
	case "doctor_id":
		return v.DoctorID
	case "patient_id":
		return v.PatientID
	case "created_at":
		return v.CreatedAt
	case "patient_name":
		return v.PatientName
	case "doctor_name":
		return v.DoctorName
	case "specialization_name":
		return v.SpecializationName
	case "city_id":
		return v.CityID
	case "city_name":
		return v.CityName
	}
	return nil
}

// AppointmentInput carries the fields of a new booking.
type AppointmentInput struct {
	PatientID int64  `json:"patient_id" validate:"omitempty,gt=0"`
	DoctorID  int64  `json:"doctor_id" validate:"required,gt=0"`
	Date      string `json:"appointment_date" validate:"required"`
	Time      string `json:"appointment_time" validate:"required"`
	Symptoms  string `json:"symptoms" validate:"max=2000"`
}

// AppointmentStatusUpdate changes an appointment's status and, when a doctor
// completes it, records the consultation outcome.
type AppointmentStatusUpdate struct {
	Status       string `json:"status" validate:"required"`
	Diagnosis    string `json:"diagnosis" validate:"max=4000"`
	Prescription string `json:"prescription" validate:"max=4000"`
	Notes        string `json:"notes" validate:"max=4000"`
}
