package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/categories"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/memstore"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type stores struct {
	resources reports.ResourceStore
	reports   reports.ReportStore
	members   services.MemberStore
}

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.UsesPostgres() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	reasons, err := categories.Load(cfg.ReasonCategoriesPath)
	if err != nil {
		slog.Error("failed to load reason categories", "path", cfg.ReasonCategoriesPath, "error", err)
		os.Exit(1)
	}
	slog.Info("reason categories loaded", "categories", len(reasons.All()))

	var st stores
	var pgLogHandler *logging.PGHandler
	cleanupDone := make(chan struct{})

	if cfg.UsesPostgres() {
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(database.DB); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		if cfg.SeedDemo {
			if err := database.SeedDemo(database.DB); err != nil {
				slog.Error("demo seed failed", "error", err)
				os.Exit(1)
			}
		}

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogHandler = logging.NewPGHandler(database.DB, 5*time.Second)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			logging.NewJSONHandler(os.Stdout),
			pgLogHandler,
		)))
		logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

		st = stores{
			resources: services.NewResourceStore(database.DB),
			reports:   services.NewReportStore(database.DB),
			members:   services.NewGormMemberStore(database.DB),
		}
	} else {
		mem := memstore.New()
		if cfg.SeedDemo {
			seedMemory(mem)
		}
		st = stores{resources: mem, reports: mem, members: mem}
		slog.Warn("using in-memory store, reports are lost on restart")
	}

	// Services
	sanitizer := validation.NewSanitizer()
	validator := validation.New(reasons, sanitizer)
	reportService := reports.NewService(st.resources, st.reports, reports.Options{
		Sanitize: sanitizer.Sanitize,
		Observer: metrics.Recorder{},
	})
	authService := services.NewAuthService(st.members, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, validator)
	healthHandler := handlers.NewHealthHandler(reasons)
	categoryHandler := handlers.NewCategoryHandler(reasons)
	reportHandler := handlers.NewReportHandler(reportService, identity.NewResolver(cfg.ReviewerIDs), validator)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, authHandler, healthHandler, categoryHandler, reportHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreBackend)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
	}

	slog.Info("server stopped")
}

// seedMemory loads the demo community into the in-memory store.
func seedMemory(mem *memstore.Store) {
	d := database.Demo()
	for _, m := range d.Members {
		mem.PutMember(reports.Member{ID: m.ID, Name: m.Name})
	}
	for _, p := range d.Posts {
		mem.PutPost(reports.Post{ID: p.ID, Title: p.Title})
	}
	for _, c := range d.Comments {
		mem.PutComment(reports.Comment{ID: c.ID, Content: c.Content})
	}
	for _, t := range d.Tags {
		mem.PutTag(t.ID)
	}
	for _, c := range d.Categories {
		mem.PutTag(c.ID)
	}
	slog.Info("seeded demo data", "members", len(d.Members), "posts", len(d.Posts), "comments", len(d.Comments))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
