package handlers

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/internal/api/presenters"
	"Household-Food-Tracker/pkg/food"
	"time"

	"github.com/gofiber/fiber/v2"
)

type (
	ReportHandler interface {
		GetDayReport(c *fiber.Ctx) error
		GetWeekReport(c *fiber.Ctx) error
		GetMonthReport(c *fiber.Ctx) error
	}

	reportHandler struct {
		reportService food.ReportService
	}
)

func NewReportHandler(reportService food.ReportService) ReportHandler {
	return &reportHandler{reportService: reportService}
}

func (h *reportHandler) GetDayReport(c *fiber.Ctx) error {
	date := c.Query("date", time.Now().Format("2006-01-02"))

	res, err := h.reportService.GetDayReport(c.Context(), date)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDayReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDayReport)
}

func (h *reportHandler) GetWeekReport(c *fiber.Ctx) error {
	weekStart := c.Query("week_start")
	if weekStart == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWeekReport, domain.ErrInvalidDate)
	}

	res, err := h.reportService.GetWeekReport(c.Context(), weekStart)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWeekReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeekReport)
}

func (h *reportHandler) GetMonthReport(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMonthReport, domain.ErrInvalidDate)
	}

	res, err := h.reportService.GetMonthReport(c.Context(), month)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMonthReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMonthReport)
}
