package repositories

import (
	"context"
	"time"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
)

// ListQuery is a filtered, ordered and paginated list request. A zero Limit
// returns every matching row.
type ListQuery struct {
	Where  query.Predicate
	Order  query.OrderSpec
	Limit  int
	Offset int
}

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create inserts an appointment and sets its ID and CreatedAt
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves the joined view of an appointment
	GetByID(ctx context.Context, id int64) (*entities.AppointmentView, error)

	// List retrieves joined views matching q
	List(ctx context.Context, q ListQuery) ([]*entities.AppointmentView, error)

	// Count returns the number of appointments matching where
	Count(ctx context.Context, where query.Predicate) (int, error)

	// SlotTaken reports whether the doctor already has a scheduled
	// appointment at the given date and time
	SlotTaken(ctx context.Context, doctorID int64, date entities.Date, clock string) (bool, error)

	// UpdateStatus changes status and outcome fields
	UpdateStatus(ctx context.Context, id int64, update AppointmentOutcome) error

	// Delete removes an appointment
	Delete(ctx context.Context, id int64) error
}

// AppointmentOutcome is the stored result of a status change. Empty outcome
// fields leave the stored values unchanged.
type AppointmentOutcome struct {
	Status       entities.AppointmentStatus
	Diagnosis    string
	Prescription string
	Notes        string
}

// DoctorRepository defines the interface for doctor data operations
type DoctorRepository interface {
	// Create inserts the account and the doctor profile in one transaction
	Create(ctx context.Context, doctor *entities.Doctor, user *entities.User) error

	GetByID(ctx context.Context, id int64) (*entities.DoctorView, error)
	GetByUserID(ctx context.Context, userID int64) (*entities.DoctorView, error)
	List(ctx context.Context, q ListQuery) ([]*entities.DoctorView, error)
	Count(ctx context.Context, where query.Predicate) (int, error)
	Update(ctx context.Context, doctor *entities.Doctor) error

	// Delete removes the doctor and its account. Doctors with appointments
	// or reviews are not deleted.
	Delete(ctx context.Context, id int64) error
}

// PatientRepository defines the interface for patient data operations
type PatientRepository interface {
	// Create inserts the account and the patient profile in one transaction
	Create(ctx context.Context, patient *entities.Patient, user *entities.User) error

	GetByID(ctx context.Context, id int64) (*entities.PatientView, error)
	GetByUserID(ctx context.Context, userID int64) (*entities.PatientView, error)
	List(ctx context.Context, q ListQuery) ([]*entities.PatientView, error)
	Count(ctx context.Context, where query.Predicate) (int, error)
	Update(ctx context.Context, patient *entities.Patient) error

	// Delete removes the patient and its account. Patients with
	// appointments or reviews are not deleted.
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines the interface for user account operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByLogin retrieves a user by username or email
	GetByLogin(ctx context.Context, login string) (*entities.User, error)

	List(ctx context.Context, q ListQuery) ([]*entities.User, error)
	Count(ctx context.Context, where query.Predicate) (int, error)

	// Update writes username, email, role and status
	Update(ctx context.Context, user *entities.User) error

	UpdatePassword(ctx context.Context, id int64, hash string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error

	// Delete removes an account that no doctor or patient profile links to
	Delete(ctx context.Context, id int64) error
}

// SpecializationRepository defines the interface for specialization lookups
type SpecializationRepository interface {
	List(ctx context.Context) ([]*entities.Specialization, error)
	GetByID(ctx context.Context, id int64) (*entities.Specialization, error)
	Create(ctx context.Context, s *entities.Specialization) error
	Update(ctx context.Context, s *entities.Specialization) error

	// Delete removes a specialization no doctor references
	Delete(ctx context.Context, id int64) error
}

// CityRepository defines the interface for city lookups
type CityRepository interface {
	List(ctx context.Context) ([]*entities.City, error)
	GetByID(ctx context.Context, id int64) (*entities.City, error)
	Create(ctx context.Context, c *entities.City) error
	Update(ctx context.Context, c *entities.City) error

	// Delete removes a city no doctor or patient references
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository defines the interface for doctor reviews
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*entities.Review, error)
}

// SettingRepository defines the interface for site settings
type SettingRepository interface {
	// Get returns the stored setting, or a NotFound error
	Get(ctx context.Context, key string) (*entities.Setting, error)

	All(ctx context.Context) ([]*entities.Setting, error)

	// Set upserts a setting; the last write wins
	Set(ctx context.Context, key, value string) error
}

// NewsRepository defines the interface for news articles
type NewsRepository interface {
	Create(ctx context.Context, news *entities.News) error
	GetByID(ctx context.Context, id int64) (*entities.News, error)
	List(ctx context.Context, q ListQuery) ([]*entities.News, error)
	Count(ctx context.Context, where query.Predicate) (int, error)
	Update(ctx context.Context, news *entities.News) error
	Delete(ctx context.Context, id int64) error
}

// ReportRepository defines the read model dashboards and reports aggregate
type ReportRepository interface {
	// Totals returns the clinic-wide headline counters
	Totals(ctx context.Context) (*entities.Totals, error)

	// AppointmentFacts returns the slim rows matching where, oldest first
	AppointmentFacts(ctx context.Context, where query.Predicate) ([]entities.AppointmentFact, error)

	// RatingSummaries returns the review aggregate per doctor. A non-zero
	// doctorID restricts the result to that doctor.
	RatingSummaries(ctx context.Context, doctorID int64) ([]entities.RatingSummary, error)
}
