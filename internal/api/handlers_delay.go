package api

import (
	"errors"

	"github.com/aluna-health/aluna/internal/models"
	"github.com/aluna-health/aluna/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type delayQuestionnairePayload struct {
	HadSexualActivity string `json:"had_sexual_activity"`
	Stress            bool   `json:"stress"`
	Travel            bool   `json:"travel"`
	DietChange        bool   `json:"diet_change"`
	ExerciseChange    bool   `json:"exercise_change"`
	Illness           bool   `json:"illness"`
	Medication        bool   `json:"medication"`
}

type resolveDelayPayload struct {
	Notes string `json:"notes"`
}

func (handler *Handler) AnalyzeDelay(c *fiber.Ctx) error {
	payload := delayQuestionnairePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	context := models.DelayContext{
		HadSexualActivity: parseTriState(payload.HadSexualActivity),
		Stress:            payload.Stress,
		Travel:            payload.Travel,
		DietChange:        payload.DietChange,
		ExerciseChange:    payload.ExerciseChange,
		Illness:           payload.Illness,
		Medication:        payload.Medication,
	}

	record, err := handler.delays.Analyze(currentUserID(c), context)
	if err != nil {
		if errors.Is(err, services.ErrCycleNotConfigured) {
			return apiError(c, fiber.StatusUnprocessableEntity, "cycle settings incomplete")
		}
		handler.logger.Error("delay analysis failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "analysis failed")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListDelays(c *fiber.Ctx) error {
	records, err := handler.delays.List(currentUserID(c))
	if err != nil {
		handler.logger.Error("delay listing failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "listing failed")
	}
	return c.JSON(records)
}

func (handler *Handler) ResolveDelay(c *fiber.Ctx) error {
	payload := resolveDelayPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := handler.delays.Resolve(currentUserID(c), c.Params("id"), payload.Notes)
	if err != nil {
		if errors.Is(err, services.ErrDelayRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "delay record not found")
		}
		handler.logger.Error("delay resolve failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "resolve failed")
	}
	return c.JSON(record)
}

func parseTriState(raw string) models.TriState {
	switch raw {
	case string(models.TriStateYes):
		return models.TriStateYes
	case string(models.TriStateNo):
		return models.TriStateNo
	default:
		return models.TriStateUnknown
	}
}
