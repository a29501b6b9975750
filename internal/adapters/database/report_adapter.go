package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// ReportAdapter implements the ReportRepository interface on top of sqlx
// struct scanning.
type ReportAdapter struct {
	client *postgres.Client
}

// NewReportAdapter creates a new report adapter
func NewReportAdapter(client *postgres.Client) repositories.ReportRepository {
	return &ReportAdapter{client: client}
}

// Totals returns the headline counters in a single round trip
func (a *ReportAdapter) Totals(ctx context.Context) (*entities.Totals, error) {
	sqlStr, args, err := dialect.Select(
		goqu.L("(SELECT COUNT(*) FROM doctors)").As("doctors"),
		goqu.L("(SELECT COUNT(*) FROM doctors WHERE status = ?)", string(entities.DoctorStatusActive)).As("active_doctors"),
		goqu.L("(SELECT COUNT(*) FROM patients)").As("patients"),
		goqu.L("(SELECT COUNT(*) FROM appointments)").As("appointments"),
		goqu.L("(SELECT COUNT(*) FROM users)").As("users"),
	).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build totals query", err)
	}

	var totals entities.Totals
	if err := a.client.DBX().GetContext(ctx, &totals, sqlStr, args...); err != nil {
		return nil, mapError(err, "failed to load totals")
	}
	return &totals, nil
}

// AppointmentFacts returns the fact rows matching where, oldest first
func (a *ReportAdapter) AppointmentFacts(ctx context.Context, where query.Predicate) ([]entities.AppointmentFact, error) {
	ta := goqu.T(query.AliasAppointments)
	ds := from("appointments", query.AliasAppointments).
		Join(goqu.T("patients").As(query.AliasPatients), goqu.On(query.PatientID.Ident().Eq(query.AppointmentPatientID.Ident()))).
		Join(goqu.T("doctors").As(query.AliasDoctors), goqu.On(query.DoctorID.Ident().Eq(query.AppointmentDoctorID.Ident()))).
		LeftJoin(goqu.T("specializations").As(query.AliasSpecializations), goqu.On(goqu.T(query.AliasSpecializations).Col("specialization_id").Eq(query.DoctorSpecialization.Ident()))).
		LeftJoin(goqu.T("cities").As(query.AliasCities), goqu.On(goqu.T(query.AliasCities).Col("city_id").Eq(query.DoctorCityID.Ident()))).
		Select(
			ta.Col("appointment_id"),
			ta.Col("appointment_date"),
			ta.Col("status"),
			ta.Col("doctor_id"),
			query.DoctorName.Ident().As("doctor_name"),
			ta.Col("patient_id"),
			query.DoctorSpecialization.Ident().As("specialization_id"),
			blank(query.SpecializationName.Ident()).As("specialization_name"),
			query.DoctorCityID.Ident().As("city_id"),
			blank(query.CityName.Ident()).As("city_name"),
		)
	ds = where.Apply(ds).Order(ta.Col("appointment_date").Asc(), ta.Col("appointment_id").Asc())

	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facts query", err)
	}

	facts := []entities.AppointmentFact{}
	if err := a.client.DBX().SelectContext(ctx, &facts, sqlStr, args...); err != nil {
		return nil, mapError(err, "failed to load appointment facts")
	}
	return facts, nil
}

// RatingSummaries returns the average rating and review count per doctor
func (a *ReportAdapter) RatingSummaries(ctx context.Context, doctorID int64) ([]entities.RatingSummary, error) {
	tr := goqu.T("r")
	ds := from("reviews", "r").
		Join(goqu.T("doctors").As(query.AliasDoctors), goqu.On(query.DoctorID.Ident().Eq(tr.Col("doctor_id")))).
		LeftJoin(goqu.T("specializations").As(query.AliasSpecializations), goqu.On(goqu.T(query.AliasSpecializations).Col("specialization_id").Eq(query.DoctorSpecialization.Ident()))).
		Select(
			tr.Col("doctor_id"),
			query.DoctorName.Ident().As("full_name"),
			blank(query.SpecializationName.Ident()).As("specialization_name"),
			goqu.L(`ROUND(AVG("r"."rating"), 2)`).As("average_rating"),
			goqu.COUNT(goqu.Star()).As("review_count"),
		).
		GroupBy(tr.Col("doctor_id"), query.DoctorName.Ident(), query.SpecializationName.Ident()).
		Order(tr.Col("doctor_id").Asc())
	if doctorID != 0 {
		ds = ds.Where(tr.Col("doctor_id").Eq(doctorID))
	}

	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build ratings query", err)
	}

	summaries := []entities.RatingSummary{}
	if err := a.client.DBX().SelectContext(ctx, &summaries, sqlStr, args...); err != nil {
		return nil, mapError(err, "failed to load rating summaries")
	}
	return summaries, nil
}
