package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkAvailabilityHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/check_availability"
	createDraftHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/create_draft"
	deleteDraftHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/delete_draft"
	getDraftHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/get_draft"
	getReservationHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/get_reservation"
	quotePriceHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/quote_price"
	submitDraftHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/submit_draft"
	updateDraftHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/update_draft"
	validDurationsHandler "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/handlers/valid_durations"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/api/middleware"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/config"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/infra/cache"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/infra/events"
	reservationRepo "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/infra/storage/reservation"
	crmServiceClient "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/integrations/crmservice"
	draftService "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft"
	checkAvailabilityUC "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/check_availability"
	commitReservationUC "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/commit_reservation"
	quotePriceUC "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/quote_price"
	validateWindowUC "github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/usecase/validate_window"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/dbmetrics"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/logger"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/metrics"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/simpletxmanager"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/txmanager"
)

const migrationsDir = "migrations"

func main() {
	// Local development reads secrets from .env; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ClubOS booking engine...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set migration dialect: %v", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied")

	crmClient := crmServiceClient.NewClient(
		cfg.CRMService.URL,
		time.Duration(cfg.CRMService.Timeout)*time.Second,
		log,
	)
	log.Info("CRM client initialized (url=%s, timeout=%ds)", cfg.CRMService.URL, cfg.CRMService.Timeout)

	// Tier lookups optionally go through Redis; promo codes always hit
	// the CRM directly so deactivations apply immediately.
	var tierDirectory interface {
		GetTier(ctx context.Context, tierID string) (*crmServiceClient.Tier, error)
	} = crmClient

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		tierDirectory = cache.NewTierCache(crmClient, rdb, cfg.Redis.TierTTL(), log)
		log.Info("Tier cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TierTTL())
	}

	facilityLocation, err := cfg.Facility.Location()
	if err != nil {
		log.Fatal("Failed to load facility timezone: %v", err)
	}
	schedule, err := cfg.Facility.Hours.ToSchedule()
	if err != nil {
		log.Fatal("Failed to parse operating hours: %v", err)
	}

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		reservations *reservationRepo.Repository
		txMgr        TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservations = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservations = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	var availabilityMetrics checkAvailabilityUC.Metrics = checkAvailabilityUC.NopMetrics{}
	var commitMetrics commitReservationUC.Metrics = commitReservationUC.NopMetrics{}
	var draftMetrics draftService.Metrics = draftService.NopMetrics{}
	if cfg.Metrics.Enabled {
		availabilityMetrics = metricsCollector
		commitMetrics = metricsCollector
		draftMetrics = metricsCollector
	}

	validateWindowUseCase := validateWindowUC.NewUseCase(
		tierDirectory,
		schedule,
		facilityLocation,
		&validateWindowUC.RealTimeProvider{},
		log,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(
		tierDirectory,
		crmClient,
		cfg.Pricing.ToRates(),
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservations,
		cfg.Drafts.AvailabilityTimeout(),
		&checkAvailabilityUC.RealTimeProvider{},
		availabilityMetrics,
		log,
	)
	commitReservationUseCase := commitReservationUC.NewUseCase(
		reservations,
		txMgr,
		commitMetrics,
		log,
	)

	var eventPublisher draftService.EventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		publisher := events.NewPublisher(cfg.Events.URL, cfg.Events.Queue, log)
		defer publisher.Close()
		eventPublisher = publisher
		log.Info("Event publisher enabled (queue=%s)", cfg.Events.Queue)
	}

	draftManager := draftService.NewManager(&draftService.Deps{
		Validator:    validateWindowUseCase,
		Pricer:       quotePriceUseCase,
		Availability: checkAvailabilityUseCase,
		Committer:    commitReservationUseCase,
		Tiers:        tierDirectory,
		Promos:       crmClient,
		Publisher:    eventPublisher,
		Timer:        &draftService.RealTimeProvider{},
		Logger:       log,
		Debounce:     cfg.Drafts.Debounce(),
	}, draftMetrics, log)

	janitor := draftService.NewJanitor(draftManager, cfg.Drafts.IdleExpiry(), log)
	if err := janitor.Start(cfg.Drafts.JanitorSchedule); err != nil {
		log.Fatal("Failed to start draft janitor: %v", err)
	}
	log.Info("Draft janitor started (schedule=%q, idle_expiry=%s)",
		cfg.Drafts.JanitorSchedule, cfg.Drafts.IdleExpiry())

	validDurations := validDurationsHandler.NewHandler(validateWindowUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createDraft := createDraftHandler.NewHandler(draftManager, log)
	getDraft := getDraftHandler.NewHandler(draftManager, log)
	updateDraft := updateDraftHandler.NewHandler(draftManager, log)
	submitDraft := submitDraftHandler.NewHandler(draftManager, log)
	deleteDraft := deleteDraftHandler.NewHandler(draftManager, log)
	getReservation := getReservationHandler.NewHandler(reservations, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Stateless helpers for the booking form
	api.HandleFunc("/valid-durations", validDurations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability-checks", checkAvailability.Handle).Methods(http.MethodPost)

	// Draft lifecycle
	api.HandleFunc("/drafts", createDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}", getDraft.Handle).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}", updateDraft.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/drafts/{draftId}", deleteDraft.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/drafts/{draftId}/submit", submitDraft.Handle).Methods(http.MethodPost)

	// Committed reservations
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// The booking form runs in the browser, so the API answers CORS
	// preflights itself.
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.CORSOrigins),
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderRequestID}),
	)(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	janitor.Stop()
	draftManager.CloseAll()
	log.Info("Draft manager drained")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
