package entities

import "github.com/anushahashmi071/CareGroup-sub001/internal/presentation"

// StatusCount is the number of appointments in one status.
type StatusCount struct {
	Status  AppointmentStatus  `json:"status" db:"status"`
	Count   int                `json:"count" db:"total"`
	Percent float64            `json:"percent"`
	Badge   presentation.Badge `json:"badge"`
}

// MonthCount is the number of appointments booked in one "YYYY-MM" month.
type MonthCount struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DoctorLoad is a doctor's appointment volume.
type DoctorLoad struct {
	DoctorID           int64  `json:"doctor_id" db:"doctor_id"`
	FullName           string `json:"full_name" db:"full_name"`
	SpecializationName string `json:"specialization_name" db:"specialization_name"`
	Appointments       int    `json:"appointments" db:"appointments"`
	Initials           string `json:"initials"`
}

// NamedCount is a count grouped by a display name.
type NamedCount struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Count int    `json:"count" db:"total"`
}

// AppointmentCard is an appointment formatted for a dashboard list.
type AppointmentCard struct {
	AppointmentID      int64              `json:"appointment_id"`
	PatientName        string             `json:"patient_name"`
	PatientInitials    string             `json:"patient_initials"`
	DoctorName         string             `json:"doctor_name"`
	SpecializationName string             `json:"specialization_name"`
	Date               string             `json:"date"`
	Time               string             `json:"time"`
	Badge              presentation.Badge `json:"badge"`
}

// Totals are the headline counters of the admin dashboard.
type Totals struct {
	Doctors       int `json:"doctors" db:"doctors"`
	ActiveDoctors int `json:"active_doctors" db:"active_doctors"`
	Patients      int `json:"patients" db:"patients"`
	Appointments  int `json:"appointments" db:"appointments"`
	Users         int `json:"users" db:"users"`
}

// AdminDashboard aggregates clinic-wide activity.
type AdminDashboard struct {
	Totals                 Totals             `json:"totals"`
	StatusCounts           []StatusCount      `json:"status_counts"`
	Today                  []AppointmentCard  `json:"today"`
	Recent                 []AppointmentCard  `json:"recent"`
	MonthlyTrend           []MonthCount       `json:"monthly_trend"`
	GrowthPercent          float64            `json:"growth_percent"`
	TopDoctors             []DoctorLoad       `json:"top_doctors"`
	Specializations        []presentation.Bar `json:"specializations"`
	AppointmentsPerDoctor  float64            `json:"appointments_per_doctor"`
	AppointmentsPerPatient float64            `json:"appointments_per_patient"`
	CompletionRate         float64            `json:"completion_rate"`
}

// DoctorDashboard summarizes one doctor's workload.
type DoctorDashboard struct {
	DoctorID       int64             `json:"doctor_id"`
	FullName       string            `json:"full_name"`
	Initials       string            `json:"initials"`
	Appointments   int               `json:"appointments"`
	Patients       int               `json:"patients"`
	StatusCounts   []StatusCount     `json:"status_counts"`
	Today          []AppointmentCard `json:"today"`
	Upcoming       []AppointmentCard `json:"upcoming"`
	AverageRating  float64           `json:"average_rating"`
	ReviewCount    int               `json:"review_count"`
	CompletionRate float64           `json:"completion_rate"`
}

// PatientDashboard summarizes one patient's bookings.
type PatientDashboard struct {
	PatientID    int64             `json:"patient_id"`
	FullName     string            `json:"full_name"`
	Initials     string            `json:"initials"`
	Appointments int               `json:"appointments"`
	StatusCounts []StatusCount     `json:"status_counts"`
	Upcoming     []AppointmentCard `json:"upcoming"`
	Recent       []AppointmentCard `json:"recent"`
}

// RatingSummary is the review aggregate of one doctor.
type RatingSummary struct {
	DoctorID           int64   `json:"doctor_id" db:"doctor_id"`
	FullName           string  `json:"full_name" db:"full_name"`
	SpecializationName string  `json:"specialization_name" db:"specialization_name"`
	AverageRating      float64 `json:"average_rating" db:"average_rating"`
	ReviewCount        int     `json:"review_count" db:"review_count"`
}
