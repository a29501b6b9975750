package query

import (
	"strings"
	"time"

	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// StatusAll is the explicit "no status filter" value.
const StatusAll = "all"

var appointmentStatuses = map[string]struct{}{
	"scheduled": {},
	"completed": {},
	"cancelled": {},
	"missed":    {},
}

// BuildAppointmentFilter maps a status filter selection onto a predicate.
// An empty value or "all" matches everything; one of the appointment statuses
// yields an equality predicate; anything else is an InvalidFilter error.
func BuildAppointmentFilter(status string) (Predicate, error) {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" || s == StatusAll {
		return MatchAll, nil
	}
	if _, ok := appointmentStatuses[s]; !ok {
		return Predicate{}, apperrors.NewInvalidFilterError("status", status)
	}
	return Eq(AppointmentStatus, s), nil
}

// BuildSearchFilter matches rows where any of fields contains term, ignoring
// case. A blank term matches everything.
func BuildSearchFilter(term string, fields ...Column) Predicate {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return MatchAll
	}
	preds := make([]Predicate, len(fields))
	for i, f := range fields {
		preds[i] = ContainsFold(f, term)
	}
	return Or(preds...)
}

// BuildIDFilter scopes rows to a single referenced id. Zero means no scoping.
func BuildIDFilter(col Column, id int64) Predicate {
	if id == 0 {
		return MatchAll
	}
	return Eq(col, id)
}

// BuildDateRange bounds col by the inclusive [from, to] range. Nil bounds are open.
func BuildDateRange(col Column, from, to *time.Time) Predicate {
	var preds []Predicate
	if from != nil {
		preds = append(preds, Gte(col, *from))
	}
	if to != nil {
		preds = append(preds, Lte(col, *to))
	}
	return And(preds...)
}

// AppointmentSearchFields are the columns the appointment search box covers.
var AppointmentSearchFields = []Column{PatientName, DoctorName, AppointmentSymptoms}

// DoctorSearchFields are the columns the doctor directory search covers.
var DoctorSearchFields = []Column{DoctorName, DoctorRegistration, DoctorQualification, SpecializationName, CityName}

// PatientSearchFields are the columns the patient list search covers.
var PatientSearchFields = []Column{PatientName, PatientBlood, CityName}

// UserSearchFields are the columns the user list search covers.
var UserSearchFields = []Column{UserName, UserEmail}

// NewsSearchFields are the columns the news list search covers.
var NewsSearchFields = []Column{NewsTitle, NewsContent}

var userRoles = map[string]struct{}{"admin": {}, "doctor": {}, "patient": {}}

var userStatuses = map[string]struct{}{"active": {}, "inactive": {}, "suspended": {}}

// BuildUserFilter narrows the user list by role and status. Blank or "all"
// values leave the dimension unfiltered; unknown values are rejected.
func BuildUserFilter(role, status string) (Predicate, error) {
	rolePred, err := enumFilter("role", role, UserRole, userRoles)
	if err != nil {
		return Predicate{}, err
	}
	statusPred, err := enumFilter("status", status, UserStatus, userStatuses)
	if err != nil {
		return Predicate{}, err
	}
	return And(rolePred, statusPred), nil
}

var doctorStatuses = map[string]struct{}{"active": {}, "inactive": {}}

// BuildDoctorStatusFilter narrows the doctor list by status.
func BuildDoctorStatusFilter(status string) (Predicate, error) {
	return enumFilter("status", status, DoctorStatus, doctorStatuses)
}

var newsStatuses = map[string]struct{}{"published": {}, "draft": {}}

// BuildNewsStatusFilter narrows the news list by publication status.
func BuildNewsStatusFilter(status string) (Predicate, error) {
	return enumFilter("status", status, NewsStatus, newsStatuses)
}

func enumFilter(key, raw string, col Column, allowed map[string]struct{}) (Predicate, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == StatusAll {
		return MatchAll, nil
	}
	if _, ok := allowed[v]; !ok {
		return Predicate{}, apperrors.NewInvalidFilterError(key, raw)
	}
	return Eq(col, v), nil
}
