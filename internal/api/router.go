package api

import (
	"context"
	"net/http"

	"github.com/Rrens/careops/internal/api/handler"
	customMiddleware "github.com/Rrens/careops/internal/api/middleware"
	"github.com/Rrens/careops/internal/config"
	"github.com/Rrens/careops/internal/metrics"
	"github.com/Rrens/careops/internal/repository/postgres"
	"github.com/Rrens/careops/internal/repository/redis"
	"github.com/Rrens/careops/internal/schema"
	"github.com/Rrens/careops/internal/security"
	"github.com/Rrens/careops/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	if cfg.Metrics.Enabled {
		r.Use(customMiddleware.Metrics)
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Schema-tolerant writer shared by every intake write
	writer := schema.NewWriter(
		postgres.NewRowInserter(db.Pool),
		schema.WithFallbackHook(func(table, column string, err error) {
			metrics.RecordSchemaFallback(table, column)
			log.Warn().Err(err).Str("table", table).Str("column", column).Msg("retrying insert without optional column")
		}),
	)

	// Initialize repositories
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	intakeRepo := postgres.NewIntakeRepository(db, writer)
	conversationRepo := postgres.NewConversationRepository(db, writer)
	bookingRepo := postgres.NewBookingRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db, writer)

	// Capability descriptor
	var capabilityCache service.CapabilityCache
	if redisClient != nil {
		capabilityCache = redis.NewCapabilityCache(redisClient, cfg.Schema.CacheTTL)
	}
	schemaService := service.NewSchemaService(postgres.NewCapabilityLoader(db), capabilityCache, writer)
	if cfg.Schema.DetectCapabilities {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.QueryTimeout)
		if _, err := schemaService.Init(ctx); err != nil {
			log.Warn().Err(err).Msg("schema capabilities unavailable, relying on insert fallbacks")
		}
		cancel()
	}

	// Initialize services
	tokens := security.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	notifier := service.NewLogNotifier()
	resolver := service.NewWorkspaceResolver(workspaceRepo)
	intakeService := service.NewIntakeService(resolver, intakeRepo, notifier, cfg.Intake)
	onboardingService := service.NewOnboardingService(workspaceRepo, tokens, cfg.Intake, cfg.Server.PublicURL)
	inboxService := service.NewInboxService(conversationRepo, intakeRepo)
	bookingService := service.NewBookingService(bookingRepo)
	inventoryService := service.NewInventoryService(inventoryRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, workspaceRepo, cfg.Intake.DefaultTimezone)

	// Initialize handlers
	publicHandler := handler.NewPublicHandler(intakeService)
	notifyHandler := handler.NewNotifyHandler(notifier)
	workspaceHandler := handler.NewWorkspaceHandler(onboardingService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	inboxHandler := handler.NewInboxHandler(inboxService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)

	authMiddleware := customMiddleware.NewAuthMiddleware(tokens)

	var readyCache handler.Pinger
	if redisClient != nil {
		readyCache = redisClient
	}

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Public forms and delivery stubs
		r.Group(func(r chi.Router) {
			if cfg.Security.RateLimit.Enabled && redisClient != nil {
				formLimiter := redis.NewFormLimiter(
					redisClient,
					cfg.Security.RateLimit.RequestsPerMinute,
					cfg.Security.RateLimit.Burst,
				)
				r.Use(customMiddleware.NewRateLimitMiddleware(formLimiter).Limit)
			}

			r.Post("/public/contact", publicHandler.Contact)
			r.Post("/public/book", publicHandler.Book)
			r.Post("/send-email", notifyHandler.SendEmail)
			r.Post("/webhook", notifyHandler.Webhook)
		})

		r.Route("/v1", func(r chi.Router) {
			// Health check
			r.Get("/health", handler.HealthCheck)
			r.Get("/ready", handler.ReadyCheck(db, readyCache))

			// Onboarding (public)
			r.Post("/workspaces", workspaceHandler.Create)
			r.Post("/workspaces/login", workspaceHandler.Login)

			// Workspace-scoped routes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)

				r.Get("/workspace", workspaceHandler.Get)
				r.Post("/workspace/activate", workspaceHandler.Activate)

				r.Get("/dashboard", dashboardHandler.Stats)

				r.Route("/conversations", func(r chi.Router) {
					r.Get("/", inboxHandler.List)
					r.Get("/{conversationID}/messages", inboxHandler.Messages)
					r.Post("/{conversationID}/reply", inboxHandler.Reply)
				})

				r.Get("/bookings", bookingHandler.List)

				r.Get("/inventory", inventoryHandler.List)
				r.Post("/inventory", inventoryHandler.Create)

				r.Post("/admin/schema/refresh", handler.RefreshSchema(schemaService))
			})
		})
	})

	return r
}
