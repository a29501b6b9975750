package entities

import "time"

// Patient represents a registered patient
type Patient struct {
	ID             int64     `json:"patient_id" db:"patient_id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	FullName       string    `json:"full_name" db:"full_name"`
	Gender         string    `json:"gender" db:"gender"`
	DateOfBirth    Date      `json:"date_of_birth" db:"date_of_birth"`
	BloodGroup     string    `json:"blood_group,omitempty" db:"blood_group"`
	Phone          string    `json:"phone,omitempty" db:"phone"`
	Address        string    `json:"address,omitempty" db:"address"`
	Allergies      string    `json:"allergies,omitempty" db:"allergies"`
	MedicalHistory string    `json:"medical_history,omitempty" db:"medical_history"`
	CityID         int64     `json:"city_id,omitempty" db:"city_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// PatientView is a patient joined with city and account.
type PatientView struct {
	Patient
	CityName string `json:"city_name" db:"city_name"`
	Email    string `json:"email" db:"email"`
	Username string `json:"username" db:"username"`
}

// Field exposes the view to in-memory predicates and orderings.
func (v PatientView) Field(key string) any {
	switch key {
	case "patient_id":
		return v.ID
	case "patient_name":
		return v.FullName
	case "patient_city_id":
		return v.CityID
	case "blood_group":
		return v.BloodGroup
	case "gender":
		return v.Gender
	case "city_name":
		return v.CityName
	}
	return nil
}

// PatientInput carries the writable fields of a patient profile. Account
// fields are used only on create.
type PatientInput struct {
	FullName       string `json:"full_name" validate:"required,max=100"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth    string `json:"date_of_birth" validate:"omitempty"`
	BloodGroup     string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Phone          string `json:"phone" validate:"max=20"`
	Address        string `json:"address" validate:"max=500"`
	Allergies      string `json:"allergies" validate:"max=2000"`
	MedicalHistory string `json:"medical_history" validate:"max=4000"`
	CityID         int64  `json:"city_id" validate:"gte=0"`

	Username string `json:"username" validate:"omitempty,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"omitempty,email,max=100"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}
