package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RefreshReminders recomputes the reminder plan and replaces the scheduled
// set at the delivery subsystem.
func (handler *Handler) RefreshReminders(c *fiber.Ctx) error {
	userID := currentUserID(c)
	profile, logs, err := handler.forecasts.Plan(userID)
	if err != nil {
		handler.logger.Error("reminder inputs failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "refresh failed")
	}

	scheduled, err := handler.reminders.Refresh(c.Context(), userID, profile, logs, time.Now())
	if err != nil {
		handler.logger.Error("reminder refresh failed", zap.Error(err))
		return apiError(c, fiber.StatusBadGateway, "delivery unavailable")
	}
	return c.JSON(scheduled)
}

// PreviewReminders computes the plan without touching the delivery
// subsystem.
func (handler *Handler) PreviewReminders(c *fiber.Ctx) error {
	profile, logs, err := handler.forecasts.Plan(currentUserID(c))
	if err != nil {
		handler.logger.Error("reminder inputs failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "preview failed")
	}

	planned := handler.reminders.Plan(profile, logs, time.Now())
	return c.JSON(planned)
}
