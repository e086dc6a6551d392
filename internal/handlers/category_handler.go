package handlers

import (
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/categories"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	reasons *categories.Registry
}

func NewCategoryHandler(reasons *categories.Registry) *CategoryHandler {
	return &CategoryHandler{reasons: reasons}
}

// List returns the reason categories clients may submit.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.reasons.All()})
}
