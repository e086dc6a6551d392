package handlers

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ReportHandler struct {
	service   *reports.Service
	callers   *identity.Resolver
	validator *validation.Validator
	gate      reports.Gate
}

func NewReportHandler(service *reports.Service, callers *identity.Resolver, validator *validation.Validator) *ReportHandler {
	return &ReportHandler{service: service, callers: callers, validator: validator}
}

func (h *ReportHandler) FileReport(c *fiber.Ctx) error {
	caller := h.callers.Caller(c)
	if err := h.gate.AuthorizeFiling(caller); err != nil {
		return notAuthorised(c)
	}

	var req dto.FileReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	report, err := h.service.FileReport(c.UserContext(), caller, reports.FilingInput{
		ResourceID:        req.ResourceID,
		ReasonCategory:    req.ReasonCategory,
		ReasonDescription: req.ReasonDescription,
	})
	if err != nil {
		if errors.Is(err, reports.ErrUnauthorized) {
			return notAuthorised(c)
		}
		if errors.Is(err, reports.ErrInvalidFiling) {
			return validationFailed(c, &validation.Error{Fields: []validation.FieldError{
				{Field: "reason_description", Rule: "text"},
			}})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to file report",
		})
	}

	if report == nil {
		return c.JSON(dto.FileReportResponse{Report: nil})
	}
	resp := dto.NewReportResponse(report)
	return c.Status(fiber.StatusCreated).JSON(dto.FileReportResponse{Report: &resp})
}

func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	caller := h.callers.Caller(c)
	if err := h.gate.AuthorizeListing(caller); err != nil {
		return notAuthorised(c)
	}

	order, err := reports.ParseOrder(c.Query("order_by"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	var closed *bool
	if raw := c.Query("closed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid closed filter",
			})
		}
		closed = &v
	}

	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	list, err := h.service.ListReports(c.UserContext(), caller, reports.ListQuery{
		Order:  order,
		Closed: closed,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		if errors.Is(err, reports.ErrUnauthorized) {
			return notAuthorised(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	out := make([]dto.ReportResponse, len(list))
	for i := range list {
		out[i] = dto.NewReportResponse(&list[i])
	}
	return c.JSON(dto.ListReportsResponse{
		Reports: out,
		Limit:   limit,
		Offset:  offset,
	})
}

func notAuthorised(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Not Authorised",
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed", Fields: verr.Fields,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}
