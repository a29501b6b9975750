package entities

import (
	"strings"
	"time"

	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// DoctorStatus represents whether a doctor accepts bookings
type DoctorStatus string

const (
	DoctorStatusActive   DoctorStatus = "active"
	DoctorStatusInactive DoctorStatus = "inactive"
)

// ParseDoctorStatus parses a doctor status value, case-insensitively.
func ParseDoctorStatus(s string) (DoctorStatus, error) {
	switch st := DoctorStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case DoctorStatusActive, DoctorStatusInactive:
		return st, nil
	}
	return "", apperrors.NewValidationError("invalid doctor status: " + s)
}

// Doctor represents a practitioner listed in the directory
type Doctor struct {
	ID                 int64        `json:"doctor_id" db:"doctor_id"`
	UserID             int64        `json:"user_id" db:"user_id"`
	FullName           string       `json:"full_name" db:"full_name"`
	SpecializationID   int64        `json:"specialization_id" db:"specialization_id"`
	CityID             int64        `json:"city_id" db:"city_id"`
	Qualification      string       `json:"qualification" db:"qualification"`
	ExperienceYears    int          `json:"experience_years" db:"experience_years"`
	RegistrationNumber string       `json:"registration_number" db:"registration_number"`
	ConsultationFee    float64      `json:"consultation_fee" db:"consultation_fee"`
	Phone              string       `json:"phone,omitempty" db:"phone"`
	Bio                string       `json:"bio,omitempty" db:"bio"`
	Status             DoctorStatus `json:"status" db:"status"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
}

// DoctorView is a doctor joined with its lookups and account.
type DoctorView struct {
	Doctor
	SpecializationName string `json:"specialization_name" db:"specialization_name"`
	CityName           string `json:"city_name" db:"city_name"`
	Email              string `json:"email" db:"email"`
	Username           string `json:"username" db:"username"`
}

// Field exposes the view to in-memory predicates and orderings.
func (v DoctorView) Field(key string) any {
	switch key {
	case "doctor_id":
		return v.ID
	case "doctor_name":
		return v.FullName
	case "city_id":
		return v.CityID
	case "specialization_id":
		return v.SpecializationID
	case "qualification":
		return v.Qualification
	case "registration_number":
		return v.RegistrationNumber
	case "doctor_status":
		return string(v.Status)
	case "consultation_fee":
		return v.ConsultationFee
	case "experience_years":
		return v.ExperienceYears
	case "specialization_name":
		return v.SpecializationName
	case "city_name":
		return v.CityName
	}
	return nil
}

// DoctorInput carries the writable fields of a doctor profile. Account
// fields are used only on create.
type DoctorInput struct {
	FullName           string  `json:"full_name" validate:"required,max=100"`
	SpecializationID   int64   `json:"specialization_id" validate:"required,gt=0"`
	CityID             int64   `json:"city_id" validate:"required,gt=0"`
	Qualification      string  `json:"qualification" validate:"required,max=200"`
	ExperienceYears    int     `json:"experience_years" validate:"gte=0,lte=70"`
	RegistrationNumber string  `json:"registration_number" validate:"required,max=50"`
	ConsultationFee    float64 `json:"consultation_fee" validate:"gte=0,lte=1000000"`
	Phone              string  `json:"phone" validate:"max=20"`
	Bio                string  `json:"bio" validate:"max=4000"`
	Status             string  `json:"status" validate:"omitempty,oneof=active inactive"`

	Username string `json:"username" validate:"omitempty,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"omitempty,email,max=100"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

// DoctorFilter narrows the doctor directory.
type DoctorFilter struct {
	Search           string
	SpecializationID int64
	CityID           int64
	Status           string
	Limit            int
	Offset           int
}
