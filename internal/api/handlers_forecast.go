package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) ForecastDay(c *fiber.Ctx) error {
	forecast, err := handler.forecasts.ForecastDay(currentUserID(c), c.Params("date"))
	if err != nil {
		handler.logger.Error("forecast failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "forecast failed")
	}
	return c.JSON(forecast)
}

func (handler *Handler) DetectPeriodStart(c *fiber.Ctx) error {
	detected, found, err := handler.forecasts.DetectTodayPeriodStart(currentUserID(c))
	if err != nil {
		handler.logger.Error("period detection failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "detection failed")
	}
	if !found {
		return c.JSON(fiber.Map{"detected": false})
	}
	return c.JSON(fiber.Map{
		"detected": true,
		"date":     detected.Format("2006-01-02"),
	})
}

func (handler *Handler) CalendarMonth(c *fiber.Ctx) error {
	days, err := handler.forecasts.CalendarMonth(currentUserID(c), c.Params("month"))
	if err != nil {
		handler.logger.Error("calendar build failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "calendar failed")
	}
	return c.JSON(days)
}
