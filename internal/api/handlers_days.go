package api

import (
	"github.com/aluna-health/aluna/internal/models"
	"github.com/aluna-health/aluna/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type dayPayload struct {
	IsPeriod *bool                 `json:"is_period"`
	Energy   *int                  `json:"energy"`
	Symptoms []models.SymptomEntry `json:"symptoms"`
	Notes    *string               `json:"notes"`
}

func (handler *Handler) ListDays(c *fiber.Ctx) error {
	userID := currentUserID(c)

	fromRaw := c.Query("from")
	toRaw := c.Query("to")

	query := handler.repos.DailyLogs
	if fromRaw == "" && toRaw == "" {
		logs, err := query.ListByUser(userID)
		if err != nil {
			handler.logger.Error("list days failed", zap.Error(err))
			return apiError(c, fiber.StatusInternalServerError, "list failed")
		}
		return c.JSON(logs)
	}

	from, fromOK := services.ParseDay(fromRaw, handler.location)
	to, toOK := services.ParseDay(toRaw, handler.location)
	if !fromOK || !toOK {
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	}
	toExclusive := to.AddDate(0, 0, 1)

	logs, err := query.ListByUserRange(userID, &from, &toExclusive)
	if err != nil {
		handler.logger.Error("list days failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "list failed")
	}
	return c.JSON(logs)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	day, ok := services.ParseDay(c.Params("date"), handler.location)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	dayStart, dayEnd := services.DayRange(day, handler.location)
	entry, found, err := handler.repos.DailyLogs.FindByUserAndDayRange(currentUserID(c), dayStart, dayEnd)
	if err != nil {
		handler.logger.Error("get day failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "lookup failed")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "no entry for date")
	}
	return c.JSON(entry)
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	day, ok := services.ParseDay(c.Params("date"), handler.location)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := dayPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Energy != nil && (*payload.Energy < 0 || *payload.Energy > 100) {
		return apiError(c, fiber.StatusBadRequest, "energy out of range")
	}

	userID := currentUserID(c)
	dayStart, dayEnd := services.DayRange(day, handler.location)
	entry, found, err := handler.repos.DailyLogs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		handler.logger.Error("upsert lookup failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "save failed")
	}
	if !found {
		entry = models.DailyLog{UserID: userID, Date: dayStart}
	}

	if payload.IsPeriod != nil {
		entry.IsPeriod = *payload.IsPeriod
	}
	if payload.Energy != nil {
		entry.Energy = payload.Energy
	}
	if payload.Symptoms != nil {
		entry.Symptoms = payload.Symptoms
	}
	if payload.Notes != nil {
		entry.Notes = *payload.Notes
	}

	if found {
		err = handler.repos.DailyLogs.Save(&entry)
	} else {
		err = handler.repos.DailyLogs.Create(&entry)
	}
	if err != nil {
		handler.logger.Error("upsert save failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "save failed")
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	day, ok := services.ParseDay(c.Params("date"), handler.location)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	dayStart, dayEnd := services.DayRange(day, handler.location)
	if err := handler.repos.DailyLogs.DeleteByUserAndDayRange(currentUserID(c), dayStart, dayEnd); err != nil {
		handler.logger.Error("delete day failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "delete failed")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
