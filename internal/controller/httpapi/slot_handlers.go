package httpapi

import (
	"github.com/espaceform/formation_portal/internal/service"
	"github.com/gofiber/fiber/v2"
)

// ListSlots все слоты расписания
func (h *Handler) ListSlots(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	slots, err := h.Schedules.ListSlots(c.Context(), scheduleID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"slots": slots})
}

// CreateSlot создаёт слот из формы редактирования
func (h *Handler) CreateSlot(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input service.SlotInput
	if err := c.BodyParser(&input); err != nil {
		return &service.ValidationError{Message: "Corps de requête invalide"}
	}
	input.ScheduleID = scheduleID.String()

	slot, err := h.Schedules.CreateSlotFromForm(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// UpdateSlot частичное обновление слота
func (h *Handler) UpdateSlot(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var patch service.SlotPatch
	if err := c.BodyParser(&patch); err != nil {
		return &service.ValidationError{Message: "Corps de requête invalide"}
	}

	slot, err := h.Schedules.UpdateSlot(c.Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(slot)
}

// DeleteSlot удаляет слот; повторное удаление отвечает тем же 204
func (h *Handler) DeleteSlot(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Schedules.DeleteSlot(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type rescheduleRequest struct {
	Date string `json:"date"`
}

// RescheduleSlot drag-and-drop перенос слота на другую дату
func (h *Handler) RescheduleSlot(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req rescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return &service.ValidationError{Message: "Corps de requête invalide"}
	}

	date, err := parseBodyDate(req.Date)
	if err != nil {
		return err
	}

	slot, err := h.Schedules.RescheduleSlot(c.Context(), id, date)
	if err != nil {
		return err
	}
	return c.JSON(slot)
}
