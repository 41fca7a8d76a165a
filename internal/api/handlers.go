package api

import (
	"time"

	"github.com/aluna-health/aluna/internal/db"
	"github.com/aluna-health/aluna/internal/models"
	"github.com/aluna-health/aluna/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	repos     *db.Repositories
	forecasts *services.ForecastService
	delays    *services.DelayService
	reminders *services.ReminderService
	secretKey []byte
	location  *time.Location
	logger    *zap.Logger
}

func NewHandler(
	repos *db.Repositories,
	forecasts *services.ForecastService,
	delays *services.DelayService,
	reminders *services.ReminderService,
	secretKey string,
	location *time.Location,
	logger *zap.Logger,
) *Handler {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repos:     repos,
		forecasts: forecasts,
		delays:    delays,
		reminders: reminders,
		secretKey: []byte(secretKey),
		location:  location,
		logger:    logger,
	}
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/api/health", handler.Health)

	auth := app.Group("/api/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)

	protected := app.Group("/api", handler.RequireAuth)
	protected.Get("/profile", handler.GetProfile)
	protected.Put("/profile", handler.UpdateProfile)

	protected.Get("/symptoms", handler.ListSymptomCatalog)

	protected.Get("/days", handler.ListDays)
	protected.Get("/days/:date", handler.GetDay)
	protected.Put("/days/:date", handler.UpsertDay)
	protected.Delete("/days/:date", handler.DeleteDay)

	protected.Get("/calendar/:month", handler.CalendarMonth)
	protected.Get("/forecast/period-start", handler.DetectPeriodStart)
	protected.Get("/forecast/:date", handler.ForecastDay)

	protected.Post("/delays/analyze", handler.AnalyzeDelay)
	protected.Get("/delays", handler.ListDelays)
	protected.Post("/delays/:id/resolve", handler.ResolveDelay)

	protected.Post("/reminders/refresh", handler.RefreshReminders)
	protected.Get("/reminders", handler.PreviewReminders)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ListSymptomCatalog serves the built-in symptom catalog clients offer as
// logging suggestions.
func (handler *Handler) ListSymptomCatalog(c *fiber.Ctx) error {
	return c.JSON(models.DefaultSymptomCatalog())
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
