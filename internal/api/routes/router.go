package routes

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/anushahashmi071/CareGroup-sub001/internal/api/handlers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/api/middleware"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
)

// Handlers groups the route handlers
type Handlers struct {
	Auth         *handlers.AuthHandler
	Appointments *handlers.AppointmentHandler
	Doctors      *handlers.DoctorHandler
	Reviews      *handlers.ReviewHandler
	Patients     *handlers.PatientHandler
	Users        *handlers.UserHandler
	Reference    *handlers.ReferenceHandler
	News         *handlers.NewsHandler
	Settings     *handlers.SettingHandler
	Dashboard    *handlers.DashboardHandler
	Reports      *handlers.ReportHandler
}

// Options configures the middleware chain
type Options struct {
	Tokens         middleware.TokenParser
	AllowedOrigins []string
	Metrics        *observability.Metrics
	ResponseCache  *middleware.ResponseCache

	// UploadDir is served read-only under /uploads/<base of UploadDir>/ when set
	UploadDir string

	// Ready reports whether the database answers; /health returns 503 when it fails
	Ready func(ctx context.Context) error
}

// Router holds all route handlers
type Router struct {
	mux  *http.ServeMux
	h    Handlers
	opts Options
}

// NewRouter creates a new router
func NewRouter(h Handlers, opts Options) *Router {
	return &Router{mux: http.NewServeMux(), h: h, opts: opts}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	var (
		authed  = middleware.RequireAuth
		admin   = middleware.RequireRole(entities.RoleAdmin)
		staff   = middleware.RequireRole(entities.RoleAdmin, entities.RoleDoctor)
		patient = middleware.RequireRole(entities.RolePatient)
	)
	handle := func(pattern string, fn http.HandlerFunc, guards ...func(http.Handler) http.Handler) {
		var h http.Handler = fn
		for i := len(guards) - 1; i >= 0; i-- {
			h = guards[i](h)
		}
		r.mux.Handle(pattern, h)
	}

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		if r.opts.Ready != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()
			if err := r.opts.Ready(ctx); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Msg("health check failed")
				http.Error(w, "UNAVAILABLE", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	if r.opts.UploadDir != "" {
		prefix := "/uploads/" + filepath.Base(r.opts.UploadDir) + "/"
		r.mux.Handle("GET "+prefix, http.StripPrefix(prefix, noListing(http.FileServer(http.Dir(r.opts.UploadDir)))))
	}

	// Auth endpoints
	handle("POST /api/auth/login", r.h.Auth.Login)
	handle("POST /api/auth/register", r.h.Auth.Register)
	handle("GET /api/auth/me", r.h.Auth.Me, authed)
	handle("PUT /api/auth/password", r.h.Auth.ChangePassword, authed)

	// Dashboard and report endpoints
	handle("GET /api/dashboard", r.h.Dashboard.Get, authed)
	handle("GET /api/reports/summary", r.h.Reports.Summary, admin)
	handle("GET /api/reports/monthly", r.h.Reports.Monthly, admin)
	handle("GET /api/reports/doctors", r.h.Reports.DoctorPerformance, admin)
	handle("GET /api/reports/top-rated", r.h.Reports.TopRated, admin)

	// Appointment endpoints
	handle("GET /api/appointments", r.h.Appointments.List, authed)
	handle("POST /api/appointments", r.h.Appointments.Create, authed)
	handle("GET /api/appointments/{id}", r.h.Appointments.Get, authed)
	handle("PATCH /api/appointments/{id}/status", r.h.Appointments.UpdateStatus, staff)
	handle("DELETE /api/appointments/{id}", r.h.Appointments.Delete, admin)

	// Doctor directory endpoints
	handle("GET /api/doctors", r.h.Doctors.Search)
	handle("GET /api/doctors/{id}", r.h.Doctors.Get)
	handle("POST /api/doctors", r.h.Doctors.Create, admin)
	handle("PUT /api/doctors/{id}", r.h.Doctors.Update, staff)
	handle("DELETE /api/doctors/{id}", r.h.Doctors.Delete, admin)
	handle("GET /api/doctors/{id}/reviews", r.h.Reviews.List)
	handle("POST /api/doctors/{id}/reviews", r.h.Reviews.Create, patient)

	// Patient endpoints
	handle("GET /api/patients", r.h.Patients.List, staff)
	handle("POST /api/patients", r.h.Patients.Create, admin)
	handle("GET /api/patients/{id}", r.h.Patients.Get, authed)
	handle("PUT /api/patients/{id}", r.h.Patients.Update, authed)
	handle("DELETE /api/patients/{id}", r.h.Patients.Delete, admin)

	// User administration endpoints
	handle("GET /api/users", r.h.Users.List, admin)
	handle("POST /api/users", r.h.Users.Create, admin)
	handle("GET /api/users/{id}", r.h.Users.Get, admin)
	handle("PUT /api/users/{id}", r.h.Users.Update, admin)
	handle("DELETE /api/users/{id}", r.h.Users.Delete, admin)

	// Reference data endpoints
	handle("GET /api/specializations", r.h.Reference.ListSpecializations)
	handle("GET /api/specializations/{id}", r.h.Reference.GetSpecialization)
	handle("POST /api/specializations", r.h.Reference.CreateSpecialization, admin)
	handle("PUT /api/specializations/{id}", r.h.Reference.UpdateSpecialization, admin)
	handle("DELETE /api/specializations/{id}", r.h.Reference.DeleteSpecialization, admin)
	handle("GET /api/cities", r.h.Reference.ListCities)
	handle("GET /api/cities/{id}", r.h.Reference.GetCity)
	handle("POST /api/cities", r.h.Reference.CreateCity, admin)
	handle("PUT /api/cities/{id}", r.h.Reference.UpdateCity, admin)
	handle("DELETE /api/cities/{id}", r.h.Reference.DeleteCity, admin)

	// News endpoints
	handle("GET /api/news", r.h.News.List)
	handle("GET /api/news/{id}", r.h.News.Get)
	handle("POST /api/news", r.h.News.Create, admin)
	handle("PUT /api/news/{id}", r.h.News.Update, admin)
	handle("DELETE /api/news/{id}", r.h.News.Delete, admin)

	// Site settings endpoints
	handle("GET /api/settings", r.h.Settings.List)
	handle("PUT /api/settings", r.h.Settings.UpdateMany, admin)
	handle("PUT /api/settings/{key}", r.h.Settings.Update, admin)

	// Observability wraps the mux directly so the matched pattern is
	// visible on the request it sees
	handler := middleware.Observability(r.opts.Metrics)(r.mux)
	if r.opts.ResponseCache != nil {
		handler = r.opts.ResponseCache.Middleware(handler)
	}
	handler = middleware.ResponseOptimization(handler)
	if r.opts.Tokens != nil {
		handler = middleware.Authenticate(r.opts.Tokens)(handler)
	}
	handler = middleware.CORS(r.opts.AllowedOrigins)(handler)
	handler = middleware.Recovery(handler)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// noListing hides directory indexes of a file server.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
