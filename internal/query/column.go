// Package query composes parameterized filter predicates and deterministic
// ordering for the dashboard, report and list views.
//
// Every predicate is built from goqu expressions, so filter values are always
// bound arguments and never part of the SQL text. The same predicate can also
// be evaluated against rows already loaded in memory.
package query

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Column is a whitelisted, table-qualified column reference. Columns can only
// be obtained from the variables declared in this package.
type Column struct {
	table string
	name  string
	key   string
}

// Table aliases used by the joined list queries.
const (
	AliasAppointments    = "a"
	AliasPatients        = "p"
	AliasDoctors         = "d"
	AliasSpecializations = "s"
	AliasCities          = "c"
	AliasUsers           = "u"
	AliasNews            = "n"
)

var (
	AppointmentID        = Column{AliasAppointments, "appointment_id", "appointment_id"}
	AppointmentDate      = Column{AliasAppointments, "appointment_date", "appointment_date"}
	AppointmentTime      = Column{AliasAppointments, "appointment_time", "appointment_time"}
	AppointmentStatus    = Column{AliasAppointments, "status", "status"}
	AppointmentSymptoms  = Column{AliasAppointments, "symptoms", "symptoms"}
	AppointmentDoctorID  = Column{AliasAppointments, "doctor_id", "doctor_id"}
	AppointmentPatientID = Column{AliasAppointments, "patient_id", "patient_id"}
	AppointmentCreatedAt = Column{AliasAppointments, "created_at", "created_at"}

	PatientID     = Column{AliasPatients, "patient_id", "patient_id"}
	PatientName   = Column{AliasPatients, "full_name", "patient_name"}
	PatientCityID = Column{AliasPatients, "city_id", "patient_city_id"}
	PatientBlood  = Column{AliasPatients, "blood_group", "blood_group"}
	PatientGender = Column{AliasPatients, "gender", "gender"}

	DoctorID             = Column{AliasDoctors, "doctor_id", "doctor_id"}
	DoctorName           = Column{AliasDoctors, "full_name", "doctor_name"}
	DoctorCityID         = Column{AliasDoctors, "city_id", "city_id"}
	DoctorSpecialization = Column{AliasDoctors, "specialization_id", "specialization_id"}
	DoctorQualification  = Column{AliasDoctors, "qualification", "qualification"}
	DoctorRegistration   = Column{AliasDoctors, "registration_number", "registration_number"}
	DoctorStatus         = Column{AliasDoctors, "status", "doctor_status"}
	DoctorFee            = Column{AliasDoctors, "consultation_fee", "consultation_fee"}
	DoctorExperience     = Column{AliasDoctors, "experience_years", "experience_years"}

	SpecializationName = Column{AliasSpecializations, "name", "specialization_name"}
	CityName           = Column{AliasCities, "name", "city_name"}

	UserID        = Column{AliasUsers, "user_id", "user_id"}
	UserName      = Column{AliasUsers, "username", "username"}
	UserEmail     = Column{AliasUsers, "email", "email"}
	UserRole      = Column{AliasUsers, "role", "role"}
	UserStatus    = Column{AliasUsers, "status", "user_status"}
	UserCreatedAt = Column{AliasUsers, "created_at", "user_created_at"}

	NewsID        = Column{AliasNews, "news_id", "news_id"}
	NewsTitle     = Column{AliasNews, "title", "title"}
	NewsContent   = Column{AliasNews, "content", "content"}
	NewsStatus    = Column{AliasNews, "status", "news_status"}
	NewsCreatedAt = Column{AliasNews, "created_at", "news_created_at"}
)

// Key is the logical field name rows expose for this column.
func (c Column) Key() string { return c.key }

// String returns the qualified SQL name, e.g. "a.status".
func (c Column) String() string { return c.table + "." + c.name }

// Ident returns the goqu identifier for the column.
func (c Column) Ident() exp.IdentifierExpression {
	return goqu.T(c.table).Col(c.name)
}

func (c Column) valid() bool {
	return c.table != "" && c.name != "" && c.key != ""
}

func mustValid(c Column) Column {
	if !c.valid() {
		panic("query: invalid column reference")
	}
	return c
}
