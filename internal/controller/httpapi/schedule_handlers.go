package httpapi

import (
	"github.com/espaceform/formation_portal/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListFormations каталог формаций
func (h *Handler) ListFormations(c *fiber.Ctx) error {
	formations, err := h.Schedules.ListFormations(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"formations": formations})
}

// ListModules модули формации
func (h *Handler) ListModules(c *fiber.Ctx) error {
	formationID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	modules, err := h.Schedules.ListModules(c.Context(), formationID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"modules": modules})
}

// ListInstructors преподаватели для формы редактирования
func (h *Handler) ListInstructors(c *fiber.Ctx) error {
	instructors, err := h.Schedules.ListInstructors(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"instructors": instructors})
}

type createScheduleRequest struct {
	FormationID  string `json:"formation_id"`
	Name         string `json:"name"`
	AcademicYear string `json:"academic_year"`
}

// CreateSchedule создаёт черновик расписания
func (h *Handler) CreateSchedule(c *fiber.Ctx) error {
	var req createScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return &service.ValidationError{Message: "Corps de requête invalide"}
	}

	formationID, err := uuid.Parse(req.FormationID)
	if err != nil {
		return &service.ValidationError{Message: "Identifiant de formation invalide"}
	}

	schedule, err := h.Schedules.CreateSchedule(c.Context(), formationID, req.Name, req.AcademicYear)
	if err != nil {
		return err
	}

	h.Logger.Info("Schedule created via API",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("by", CurrentAuth(c).UserID))

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// ListSchedules список расписаний, опционально по формации
func (h *Handler) ListSchedules(c *fiber.Ctx) error {
	var formationID *uuid.UUID
	if value := c.Query("formation_id"); value != "" {
		id, err := uuid.Parse(value)
		if err != nil {
			return &service.ValidationError{Message: "Identifiant de formation invalide"}
		}
		formationID = &id
	}

	schedules, err := h.Schedules.ListSchedules(c.Context(), formationID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"schedules": schedules})
}

// GetSchedule одно расписание
func (h *Handler) GetSchedule(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	schedule, err := h.Schedules.GetSchedule(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(schedule)
}

// PublishSchedule переводит расписание в published
func (h *Handler) PublishSchedule(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Schedules.PublishSchedule(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "published"})
}
