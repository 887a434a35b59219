package httpapi

import (
	"errors"

	"github.com/espaceform/formation_portal/internal/app"
	"github.com/espaceform/formation_portal/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Handler зависимости HTTP-обработчиков портала
type Handler struct {
	Schedules *service.ScheduleService
	Importer  *service.ImportService
	Feed      *app.ChangeFeed
	Logger    *zap.Logger
}

// NewRouter собирает fiber-приложение с роутами подсистемы расписаний
func NewRouter(h *Handler) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      "Formation Portal",
		ErrorHandler: errorHandler(h.Logger),
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-Id, X-User-Role",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))
	router.Use(recover.New())
	router.Use(AuthContextMiddleware())

	api := router.Group("/api/v1")

	// Каталог
	api.Get("/formations", h.ListFormations)
	api.Get("/formations/:id/modules", h.ListModules)
	api.Get("/instructors", h.ListInstructors)

	// Расписания
	api.Get("/schedules", h.ListSchedules)
	api.Post("/schedules", RequireAdmin, h.CreateSchedule)
	api.Get("/schedules/import/template", h.DownloadTemplate)
	api.Get("/schedules/events/stream", h.StreamChanges)
	api.Get("/schedules/:id", h.GetSchedule)
	api.Post("/schedules/:id/publish", RequireAdmin, h.PublishSchedule)

	// Слоты
	api.Get("/schedules/:id/slots", h.ListSlots)
	api.Post("/schedules/:id/slots", RequireAdmin, h.CreateSlot)
	api.Patch("/slots/:id", RequireAdmin, h.UpdateSlot)
	api.Delete("/slots/:id", RequireAdmin, h.DeleteSlot)
	api.Post("/slots/:id/reschedule", RequireAdmin, h.RescheduleSlot)

	// Календарные проекции
	api.Get("/schedules/:id/events", h.ListEvents)
	api.Get("/schedules/:id/calendar/week", h.WeekView)
	api.Get("/schedules/:id/calendar/month", h.MonthView)
	api.Get("/schedules/:id/calendar/day", h.DayView)
	api.Get("/schedules/:id/agenda", h.Agenda)
	api.Get("/schedules/:id/week.png", h.WeekImage)

	// Импорт/экспорт
	api.Post("/schedules/:id/import", RequireAdmin, h.ImportWorkbook)
	api.Get("/schedules/:id/export", h.ExportSchedule)

	return router
}

// errorHandler переводит таксономию ошибок сервисов в HTTP-ответы.
// Ни одна ошибка не роняет приложение: всё превращается в сообщение
// для пользователя.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Message,
			})
		}

		var notFoundErr *service.NotFoundError
		if errors.As(err, &notFoundErr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Ressource introuvable",
			})
		}

		var transportErr *service.TransportError
		if errors.As(err, &transportErr) {
			logger.Error("Storage failure",
				zap.String("path", c.Path()),
				zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Service momentanément indisponible, veuillez réessayer",
			})
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		} else {
			logger.Error("Unhandled error",
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
