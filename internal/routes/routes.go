package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	categoryHandler *handlers.CategoryHandler,
	reportHandler *handlers.ReportHandler,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)
	api.Get("/reason-categories", categoryHandler.List)

	// Auth: 10 req/min per IP against credential stuffing.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Reports: the token is optional here, the handlers answer anonymous
	// callers with Not Authorised.
	api.Post("/reports", middleware.OptionalJWT(cfg), reportHandler.FileReport)
	api.Get("/reports", middleware.OptionalJWT(cfg), reportHandler.ListReports)
}
