package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/categories"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	reasons *categories.Registry
}

func NewHealthHandler(reasons *categories.Registry) *HealthHandler {
	return &HealthHandler{reasons: reasons}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:           "ok",
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		DB:               dbStatus,
		ReasonCategories: len(h.reasons.All()),
	})
}
