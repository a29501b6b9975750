package services

import (
	"context"
	"time"

	"github.com/anushahashmi071/CareGroup-sub001/internal/aggregation"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	"github.com/anushahashmi071/CareGroup-sub001/internal/presentation"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// DefaultMinReviews is the review count a doctor needs to be ranked as top rated.
const DefaultMinReviews = 3

// ReportService builds the admin reports
type ReportService struct {
	reports repositories.ReportRepository
	topN    int
	now     Clock
}

// NewReportService creates a new report service
func NewReportService(reports repositories.ReportRepository, topN int) *ReportService {
	return &ReportService{reports: reports, topN: topN, now: systemClock}
}

// WithClock replaces the time source
func (s *ReportService) WithClock(c Clock) *ReportService {
	s.now = c
	return s
}

func rangePredicate(r entities.ReportRange) (query.Predicate, error) {
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From.Time) {
		return query.Predicate{}, apperrors.NewValidationError("report range ends before it starts")
	}
	var from, to *time.Time
	if !r.From.IsZero() {
		from = &r.From.Time
	}
	if !r.To.IsZero() {
		to = &r.To.Time
	}
	return query.BuildDateRange(query.AppointmentDate, from, to), nil
}

func (s *ReportService) load(ctx context.Context, auth entities.AuthContext, r entities.ReportRange) ([]entities.AppointmentFact, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	where, err := rangePredicate(r)
	if err != nil {
		return nil, err
	}
	return s.reports.AppointmentFacts(ctx, where)
}

// Summary breaks appointments in r down by status, specialization and city
func (s *ReportService) Summary(ctx context.Context, auth entities.AuthContext, r entities.ReportRange) (*entities.ReportSummary, error) {
	ctx, span := observability.StartSpan(ctx, "ReportService.Summary")
	defer span.End()

	facts, err := s.load(ctx, auth, r)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return &entities.ReportSummary{
		Range:          r,
		Total:          len(facts),
		ByStatus:       statusCounts(facts),
		BySpeciality:   groupBars(facts, func(f entities.AppointmentFact) string { return f.SpecializationName }),
		ByCity:         groupBars(facts, func(f entities.AppointmentFact) string { return f.CityName }),
		CompletionRate: completionRate(facts),
		GeneratedAt:    s.now().UTC(),
	}, nil
}

// Monthly returns the twelve month trend of year. A zero year means the current one.
func (s *ReportService) Monthly(ctx context.Context, auth entities.AuthContext, year int) (*entities.MonthlyReport, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 1900 || year > 9999 {
		return nil, apperrors.NewValidationError("year is out of range")
	}
	r := entities.ReportRange{From: entities.NewDate(year, time.January, 1), To: entities.NewDate(year, time.December, 31)}
	facts, err := s.load(ctx, auth, r)
	if err != nil {
		return nil, err
	}

	keys := aggregation.MonthRange(r.To.Time, 12)
	months, series := monthlyTrend(facts, keys)

	// growth compares the last two months that have already started
	current := 12
	if now := s.now(); now.Year() == year {
		current = int(now.Month())
	}
	return &entities.MonthlyReport{
		Year:          year,
		Months:        months,
		Total:         len(facts),
		GrowthPercent: aggregation.Round(aggregation.MonthOverMonthGrowth(series[:current], false), 1),
	}, nil
}

// DoctorPerformance reports every doctor's appointment outcomes and rating in r
func (s *ReportService) DoctorPerformance(ctx context.Context, auth entities.AuthContext, r entities.ReportRange) ([]entities.DoctorPerformance, error) {
	facts, err := s.load(ctx, auth, r)
	if err != nil {
		return nil, err
	}
	ratings, err := s.reports.RatingSummaries(ctx, 0)
	if err != nil {
		return nil, err
	}
	byDoctor := make(map[int64]entities.RatingSummary, len(ratings))
	for _, rs := range ratings {
		byDoctor[rs.DoctorID] = rs
	}

	index := map[int64]int{}
	rows := []entities.DoctorPerformance{}
	for _, f := range facts {
		i, ok := index[f.DoctorID]
		if !ok {
			i = len(rows)
			index[f.DoctorID] = i
			rows = append(rows, entities.DoctorPerformance{
				DoctorID:           f.DoctorID,
				FullName:           f.DoctorName,
				SpecializationName: f.SpecializationName,
			})
		}
		rows[i].Appointments++
		switch f.Status {
		case entities.AppointmentStatusCompleted:
			rows[i].Completed++
		case entities.AppointmentStatusCancelled:
			rows[i].Cancelled++
		}
	}
	for i := range rows {
		rows[i].CompletionRate = presentation.Share(rows[i].Completed, rows[i].Appointments)
		if rs, ok := byDoctor[rows[i].DoctorID]; ok {
			rows[i].AverageRating = aggregation.Round(rs.AverageRating, 2)
			rows[i].ReviewCount = rs.ReviewCount
		}
	}

	query.Sort(rows, performanceOrder)
	return aggregation.TopN(rows, func(p entities.DoctorPerformance) int { return p.Appointments }, len(rows)), nil
}

var performanceOrder = query.OrderBy(query.Asc(query.DoctorName)).WithTieBreak(query.DoctorID)

// TopRated ranks doctors by average rating among those with at least
// minReviews reviews. n <= 0 uses the configured size.
func (s *ReportService) TopRated(ctx context.Context, auth entities.AuthContext, n, minReviews int) ([]entities.TopRatedDoctor, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.topN
	}
	if minReviews <= 0 {
		minReviews = DefaultMinReviews
	}

	ratings, err := s.reports.RatingSummaries(ctx, 0)
	if err != nil {
		return nil, err
	}

	eligible := []entities.TopRatedDoctor{}
	for _, rs := range ratings {
		if rs.ReviewCount < minReviews {
			continue
		}
		eligible = append(eligible, entities.TopRatedDoctor{
			DoctorID:           rs.DoctorID,
			FullName:           rs.FullName,
			SpecializationName: rs.SpecializationName,
			AverageRating:      aggregation.Round(rs.AverageRating, 2),
			ReviewCount:        rs.ReviewCount,
			Initials:           presentation.Initials(rs.FullName),
		})
	}
	return aggregation.TopN(eligible, func(d entities.TopRatedDoctor) float64 { return d.AverageRating }, n), nil
}
