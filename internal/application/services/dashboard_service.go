package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anushahashmi071/CareGroup-sub001/internal/aggregation"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	"github.com/anushahashmi071/CareGroup-sub001/internal/presentation"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/config"
)

// Dashboard cache keys. Every key starts with DashboardCachePrefix.
const (
	DashboardCachePrefix = "dashboard:"
	adminDashboardKey    = DashboardCachePrefix + "admin"
)

const (
	recentLimit   = 5
	upcomingLimit = 5
	todayLimit    = 50
)

// FormatterSource supplies the configured date/time formatter.
type FormatterSource interface {
	Formatter(ctx context.Context) presentation.Formatter
}

// DashboardService builds the admin, doctor and patient dashboards
type DashboardService struct {
	reports      repositories.ReportRepository
	appointments repositories.AppointmentRepository
	doctors      repositories.DoctorRepository
	patients     repositories.PatientRepository
	formats      FormatterSource
	cache        providers.CacheProvider
	metrics      *observability.Metrics
	cfg          config.ReportingConfig
	now          Clock
}

// NewDashboardService creates a new dashboard service. cache and metrics may be nil.
func NewDashboardService(
	reports repositories.ReportRepository,
	appointments repositories.AppointmentRepository,
	doctors repositories.DoctorRepository,
	patients repositories.PatientRepository,
	formats FormatterSource,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
	cfg config.ReportingConfig,
) *DashboardService {
	return &DashboardService{
		reports:      reports,
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		formats:      formats,
		cache:        cache,
		metrics:      metrics,
		cfg:          cfg,
		now:          systemClock,
	}
}

// WithClock replaces the time source
func (s *DashboardService) WithClock(c Clock) *DashboardService {
	s.now = c
	return s
}

// Admin returns the clinic-wide dashboard, served from the cache while fresh
func (s *DashboardService) Admin(ctx context.Context, auth entities.AuthContext) (*entities.AdminDashboard, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "DashboardService.Admin")
	defer span.End()

	if cached := s.cached(ctx); cached != nil {
		return cached, nil
	}

	totals, err := s.reports.Totals(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	facts, err := s.facts(ctx, query.MatchAll)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	now := s.now()
	formatter := s.formats.Formatter(ctx)

	today, err := s.appointments.List(ctx, repositories.ListQuery{
		Where: query.Eq(query.AppointmentDate, day(now)),
		Order: query.UpcomingOrder(),
		Limit: todayLimit,
	})
	if err != nil {
		return nil, err
	}
	recent, err := s.appointments.List(ctx, repositories.ListQuery{
		Order: query.AppointmentOrder(),
		Limit: recentLimit,
	})
	if err != nil {
		return nil, err
	}

	trend, series := monthlyTrend(facts, aggregation.MonthRange(now, s.cfg.TrendMonths))
	dash := &entities.AdminDashboard{
		Totals:                 *totals,
		StatusCounts:           statusCounts(facts),
		Today:                  cards(today, formatter),
		Recent:                 cards(recent, formatter),
		MonthlyTrend:           trend,
		GrowthPercent:          aggregation.Round(aggregation.MonthOverMonthGrowth(series, false), 1),
		TopDoctors:             doctorLoads(facts, s.cfg.TopN),
		Specializations:        groupBars(facts, func(f entities.AppointmentFact) string { return f.SpecializationName }),
		AppointmentsPerDoctor:  aggregation.Round(aggregation.Ratio(float64(totals.Appointments), float64(totals.Doctors)), 2),
		AppointmentsPerPatient: aggregation.Round(aggregation.Ratio(float64(totals.Appointments), float64(totals.Patients)), 2),
		CompletionRate:         completionRate(facts),
	}

	s.store(ctx, dash)
	return dash, nil
}

// Doctor returns the signed-in doctor's dashboard
func (s *DashboardService) Doctor(ctx context.Context, auth entities.AuthContext) (*entities.DoctorDashboard, error) {
	if err := requireRole(auth, entities.RoleDoctor); err != nil {
		return nil, err
	}
	if err := requireProfile(auth); err != nil {
		return nil, err
	}

	doctor, err := s.doctors.GetByID(ctx, auth.ProfileID)
	if err != nil {
		return nil, err
	}
	own := query.BuildIDFilter(query.AppointmentDoctorID, doctor.ID)
	facts, err := s.facts(ctx, own)
	if err != nil {
		return nil, err
	}

	now := s.now()
	formatter := s.formats.Formatter(ctx)
	today, err := s.appointments.List(ctx, repositories.ListQuery{
		Where: query.And(own, query.Eq(query.AppointmentDate, day(now))),
		Order: query.UpcomingOrder(),
		Limit: todayLimit,
	})
	if err != nil {
		return nil, err
	}
	upcoming, err := s.upcoming(ctx, own, now)
	if err != nil {
		return nil, err
	}

	dash := &entities.DoctorDashboard{
		DoctorID:       doctor.ID,
		FullName:       doctor.FullName,
		Initials:       presentation.Initials(doctor.FullName),
		Appointments:   len(facts),
		Patients:       distinctPatients(facts),
		StatusCounts:   statusCounts(facts),
		Today:          cards(today, formatter),
		Upcoming:       cards(upcoming, formatter),
		CompletionRate: completionRate(facts),
	}

	ratings, err := s.reports.RatingSummaries(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	if len(ratings) > 0 {
		dash.AverageRating = aggregation.Round(ratings[0].AverageRating, 2)
		dash.ReviewCount = ratings[0].ReviewCount
	}
	return dash, nil
}

// Patient returns the signed-in patient's dashboard
func (s *DashboardService) Patient(ctx context.Context, auth entities.AuthContext) (*entities.PatientDashboard, error) {
	if err := requireRole(auth, entities.RolePatient); err != nil {
		return nil, err
	}
	if err := requireProfile(auth); err != nil {
		return nil, err
	}

	patient, err := s.patients.GetByID(ctx, auth.ProfileID)
	if err != nil {
		return nil, err
	}
	own := query.BuildIDFilter(query.AppointmentPatientID, patient.ID)
	facts, err := s.facts(ctx, own)
	if err != nil {
		return nil, err
	}

	formatter := s.formats.Formatter(ctx)
	upcoming, err := s.upcoming(ctx, own, s.now())
	if err != nil {
		return nil, err
	}
	recent, err := s.appointments.List(ctx, repositories.ListQuery{
		Where: own,
		Order: query.AppointmentOrder(),
		Limit: recentLimit,
	})
	if err != nil {
		return nil, err
	}

	return &entities.PatientDashboard{
		PatientID:    patient.ID,
		FullName:     patient.FullName,
		Initials:     presentation.Initials(patient.FullName),
		Appointments: len(facts),
		StatusCounts: statusCounts(facts),
		Upcoming:     cards(upcoming, formatter),
		Recent:       cards(recent, formatter),
	}, nil
}

// Invalidate drops every cached dashboard
func (s *DashboardService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeletePrefix(ctx, DashboardCachePrefix)
}

func (s *DashboardService) upcoming(ctx context.Context, scope query.Predicate, now time.Time) ([]*entities.AppointmentView, error) {
	return s.appointments.List(ctx, repositories.ListQuery{
		Where: query.And(
			scope,
			query.Eq(query.AppointmentStatus, string(entities.AppointmentStatusScheduled)),
			query.Gte(query.AppointmentDate, day(now)),
		),
		Order: query.UpcomingOrder(),
		Limit: upcomingLimit,
	})
}

func (s *DashboardService) facts(ctx context.Context, where query.Predicate) ([]entities.AppointmentFact, error) {
	start := time.Now()
	facts, err := s.reports.AppointmentFacts(ctx, where)
	observability.RecordDBMetric(ctx, s.metrics, "appointment_facts", time.Since(start))
	return facts, err
}

func (s *DashboardService) cached(ctx context.Context) *entities.AdminDashboard {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, adminDashboardKey)
	if err != nil {
		observability.RecordCacheMiss(ctx, s.metrics, adminDashboardKey)
		return nil
	}
	var dash entities.AdminDashboard
	if err := json.Unmarshal(data, &dash); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("discarding unreadable cached dashboard")
		return nil
	}
	observability.RecordCacheHit(ctx, s.metrics, adminDashboardKey)
	return &dash
}

func (s *DashboardService) store(ctx context.Context, dash *entities.AdminDashboard) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(dash)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, adminDashboardKey, data, s.cfg.StatsCacheTTL); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache admin dashboard")
	}
}

// day truncates t to midnight UTC of its calendar date.
func day(t time.Time) time.Time {
	return entities.DateOf(t).Time
}
