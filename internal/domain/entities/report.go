package entities

import (
	"time"

	"github.com/anushahashmi071/CareGroup-sub001/internal/presentation"
)

// ReportRange bounds a report by appointment date. Zero bounds are open.
type ReportRange struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// DoctorPerformance is one row of the doctor performance report.
type DoctorPerformance struct {
	DoctorID           int64   `json:"doctor_id" db:"doctor_id"`
	FullName           string  `json:"full_name" db:"full_name"`
	SpecializationName string  `json:"specialization_name" db:"specialization_name"`
	Appointments       int     `json:"appointments" db:"appointments"`
	Completed          int     `json:"completed" db:"completed"`
	Cancelled          int     `json:"cancelled" db:"cancelled"`
	CompletionRate     float64 `json:"completion_rate"`
	AverageRating      float64 `json:"average_rating" db:"average_rating"`
	ReviewCount        int     `json:"review_count" db:"review_count"`
}

// Field exposes the row to in-memory orderings.
func (p DoctorPerformance) Field(key string) any {
	switch key {
	case "doctor_id":
		return p.DoctorID
	case "doctor_name":
		return p.FullName
	case "specialization_name":
		return p.SpecializationName
	}
	return nil
}

// ReportSummary is the header of the reports page.
type ReportSummary struct {
	Range          ReportRange        `json:"range"`
	Total          int                `json:"total"`
	ByStatus       []StatusCount      `json:"by_status"`
	BySpeciality   []presentation.Bar `json:"by_specialization"`
	ByCity         []presentation.Bar `json:"by_city"`
	CompletionRate float64            `json:"completion_rate"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// MonthlyReport is the per-month appointment trend of one year.
type MonthlyReport struct {
	Year          int          `json:"year"`
	Months        []MonthCount `json:"months"`
	Total         int          `json:"total"`
	GrowthPercent float64      `json:"growth_percent"`
}

// TopRatedDoctor is one row of the top-rated ranking.
type TopRatedDoctor struct {
	DoctorID           int64   `json:"doctor_id" db:"doctor_id"`
	FullName           string  `json:"full_name" db:"full_name"`
	SpecializationName string  `json:"specialization_name" db:"specialization_name"`
	AverageRating      float64 `json:"average_rating" db:"average_rating"`
	ReviewCount        int     `json:"review_count" db:"review_count"`
	Initials           string  `json:"initials"`
}

// AppointmentFact is the slim appointment row statistics are computed from.
type AppointmentFact struct {
	AppointmentID      int64             `json:"appointment_id" db:"appointment_id"`
	Date               Date              `json:"appointment_date" db:"appointment_date"`
	Status             AppointmentStatus `json:"status" db:"status"`
	DoctorID           int64             `json:"doctor_id" db:"doctor_id"`
	DoctorName         string            `json:"doctor_name" db:"doctor_name"`
	PatientID          int64             `json:"patient_id" db:"patient_id"`
	SpecializationID   int64             `json:"specialization_id" db:"specialization_id"`
	SpecializationName string            `json:"specialization_name" db:"specialization_name"`
	CityID             int64             `json:"city_id" db:"city_id"`
	CityName           string            `json:"city_name" db:"city_name"`
}

// Field exposes the fact to in-memory predicates and orderings.
func (f AppointmentFact) Field(key string) any {
	switch key {
	case "appointment_id":
		return f.AppointmentID
	case "appointment_date":
		return f.Date.Time
	case "status":
		return string(f.Status)
	case "doctor_id":
		return f.DoctorID
	case "doctor_name":
		return f.DoctorName
	case "patient_id":
		return f.PatientID
	case "specialization_id":
		return f.SpecializationID
	case "specialization_name":
		return f.SpecializationName
	case "city_id":
		return f.CityID
	case "city_name":
		return f.CityName
	}
	return nil
}
