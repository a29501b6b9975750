package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anushahashmi071/CareGroup-sub001/internal/adapters/cache"
	"github.com/anushahashmi071/CareGroup-sub001/internal/adapters/database"
	"github.com/anushahashmi071/CareGroup-sub001/internal/adapters/events"
	"github.com/anushahashmi071/CareGroup-sub001/internal/adapters/search"
	"github.com/anushahashmi071/CareGroup-sub001/internal/adapters/storage"
	"github.com/anushahashmi071/CareGroup-sub001/internal/api/handlers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/api/middleware"
	"github.com/anushahashmi071/CareGroup-sub001/internal/api/routes"
	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/redis"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/typesense"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/config"
)

// settingsCacheTTL bounds how stale a cached site setting may be
const settingsCacheTTL = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if cfg.Database.AutoMigrate {
		applied, err := pgClient.Migrate(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
		log.Info().Int("applied", applied).Msg("database migrations up to date")
	}

	// Redis backs the caches and the event bus; the API runs without it
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without cache and events")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
		}
	}

	// Typesense backs the doctor directory search; SQL search is the fallback
	var doctorIndex providers.DoctorIndex
	if cfg.Typesense.URL != "" {
		tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, doctor search uses SQL")
		} else if err := tsClient.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema, doctor search uses SQL")
		} else {
			doctorIndex = search.NewTypesenseAdapter(tsClient)
		}
	}

	uploads, err := storage.NewLocalUploadStore(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload store")
	}

	// Initialize adapters
	appointmentRepo := database.NewAppointmentAdapter(pgClient)
	doctorRepo := database.NewDoctorAdapter(pgClient)
	patientRepo := database.NewPatientAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)
	newsRepo := database.NewNewsAdapter(pgClient)
	reportRepo := database.NewReportAdapter(pgClient)

	var settingRepo repositories.SettingRepository = database.NewSettingAdapter(pgClient)
	if cacheProvider != nil {
		settingRepo = database.NewCachedSettingAdapter(settingRepo, cacheProvider, settingsCacheTTL)
	}

	// Initialize services
	settingService := services.NewSettingService(settingRepo, eventBus)
	authService := services.NewAuthService(userRepo, doctorRepo, patientRepo, cfg.Auth)
	appointmentService := services.NewAppointmentService(appointmentRepo, doctorRepo, eventBus)
	doctorService := services.NewDoctorService(doctorRepo, doctorIndex, eventBus)
	patientService := services.NewPatientService(patientRepo, eventBus)
	userService := services.NewUserService(userRepo, eventBus)
	referenceService := services.NewReferenceService(
		database.NewSpecializationAdapter(pgClient),
		database.NewCityAdapter(pgClient),
		eventBus,
	)
	reviewService := services.NewReviewService(reviewRepo, appointmentRepo, eventBus)
	newsService := services.NewNewsService(newsRepo, uploads, eventBus)
	reportService := services.NewReportService(reportRepo, cfg.Reporting.TopN)
	dashboardService := services.NewDashboardService(
		reportRepo,
		appointmentRepo,
		doctorRepo,
		patientRepo,
		settingService,
		cacheProvider,
		metrics,
		cfg.Reporting,
	)

	responseCache := middleware.NewResponseCache(cacheProvider, middleware.DefaultCacheRoutes, metrics)

	// Change events drop cached dashboards and public responses
	var invalidation *services.CacheInvalidationService
	if eventBus != nil {
		invalidation = services.NewCacheInvalidationService(eventBus, dashboardService, responseCache)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation")
			invalidation = nil
		}
	}

	if doctorIndex != nil {
		go func() {
			n, err := doctorService.Reindex(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("doctor reindex failed")
				return
			}
			log.Info().Int("doctors", n).Msg("doctor index rebuilt")
		}()
	}

	// Set up router
	router := routes.NewRouter(routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, userService, patientService),
		Appointments: handlers.NewAppointmentHandler(appointmentService),
		Doctors:      handlers.NewDoctorHandler(doctorService),
		Reviews:      handlers.NewReviewHandler(reviewService),
		Patients:     handlers.NewPatientHandler(patientService),
		Users:        handlers.NewUserHandler(userService),
		Reference:    handlers.NewReferenceHandler(referenceService),
		News:         handlers.NewNewsHandler(newsService, cfg.Uploads.MaxBytes),
		Settings:     handlers.NewSettingHandler(settingService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService),
		Reports:      handlers.NewReportHandler(reportService),
	}, routes.Options{
		Tokens:         authService,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        metrics,
		ResponseCache:  responseCache,
		UploadDir:      cfg.Uploads.Dir,
		Ready:          pgClient.Ping,
	})

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if invalidation != nil {
		invalidation.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
