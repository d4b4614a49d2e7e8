package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Prodbylino/shiftflow/internal/identity/consumers"
	"github.com/Prodbylino/shiftflow/internal/schedule/events"
	"github.com/Prodbylino/shiftflow/internal/schedule/handler"
	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/internal/schedule/service"
	"github.com/Prodbylino/shiftflow/pkg/config"
	"github.com/Prodbylino/shiftflow/pkg/database"
	"github.com/Prodbylino/shiftflow/pkg/httputil"
	"github.com/Prodbylino/shiftflow/pkg/logger"
	"github.com/Prodbylino/shiftflow/pkg/messaging"
)

func main() {
	// Load configuration (fails fast on missing production settings)
	cfg, err := config.LoadWithValidation("shiftflow")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("shiftflow", cfg.Server.Environment)
	log.Info().Msg("starting ShiftFlow")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Refuse to migrate over data that would break the integrity
	// constraints; the operator gets the violation counts up front.
	preflight := repository.NewPreflightRepository(db)
	violations, err := preflight.Check(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("migration preflight failed")
	}
	if violations.Any() {
		log.Fatal().
			Int64("cross_tenant_shifts", violations.CrossTenantShifts).
			Int64("non_positive_shifts", violations.NonPositiveShifts).
			Msg(violations.Error())
	}

	if err := db.MigrateUp(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	if err := rmq.DeclareDeadLetterQueue("shiftflow"); err != nil {
		log.Fatal().Err(err).Msg("failed to declare dead letter queue")
	}

	// Initialize event publisher
	publisher, err := events.NewSchedulePublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize services
	profileService := service.NewProfileService(profileRepo, log)
	orgService := service.NewOrganizationService(orgRepo, publisher, log)
	shiftService := service.NewShiftService(shiftRepo, publisher, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, log)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileService, log)
	orgHandler := handler.NewOrganizationHandler(orgService, log)
	shiftHandler := handler.NewShiftHandler(shiftService, log)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, log)

	// Start identity event consumer
	identityConsumer, err := consumers.NewIdentityEventConsumer(rmq, profileService, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create identity event consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := identityConsumer.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start identity event consumer")
	}

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(httputil.CallerMiddleware(&cfg.Auth)) // /health is exempt

	// Health check (open)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "shiftflow",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/organizations", func(r chi.Router) {
			r.Get("/", orgHandler.List)
			r.Post("/", orgHandler.Create)
			r.Get("/{id}", orgHandler.Get)
			r.Put("/{id}", orgHandler.Update)
			r.Delete("/{id}", orgHandler.Delete)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", shiftHandler.List)
			r.Post("/", shiftHandler.Create)
			r.Get("/{id}", shiftHandler.Get)
			r.Put("/{id}", shiftHandler.Update)
			r.Delete("/{id}", shiftHandler.Delete)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.Get)
			r.Put("/", profileHandler.Update)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/monthly-summary", analyticsHandler.MonthlySummary)
			r.Get("/financial-year-summary", analyticsHandler.FinancialYearSummary)
			r.Get("/financial-year-shifts", analyticsHandler.FinancialYearShifts)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Cancel context to stop the consumer
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
