package api

import (
	"github.com/aluna-health/aluna/internal/models"
	"github.com/aluna-health/aluna/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type profilePayload struct {
	CycleLength     *int    `json:"cycle_length"`
	LastPeriodStart *string `json:"last_period_start"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, err := handler.repos.Users.FindByID(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "profile not found")
	}
	return c.JSON(user)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.repos.Users.FindByID(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "profile not found")
	}

	if payload.CycleLength != nil {
		if *payload.CycleLength != 0 && !models.IsValidCycleLength(*payload.CycleLength) {
			return apiError(c, fiber.StatusBadRequest, "cycle length out of range")
		}
		user.CycleLength = *payload.CycleLength
	}
	if payload.LastPeriodStart != nil {
		if *payload.LastPeriodStart == "" {
			user.LastPeriodStart = nil
		} else {
			parsed, ok := services.ParseDay(*payload.LastPeriodStart, handler.location)
			if !ok {
				return apiError(c, fiber.StatusBadRequest, "invalid last period start date")
			}
			user.LastPeriodStart = &parsed
		}
	}

	if err := handler.repos.Users.Save(user); err != nil {
		handler.logger.Error("profile save failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "profile update failed")
	}
	return c.JSON(user)
}
