package httpapi

import (
	"github.com/espaceform/formation_portal/internal/render"
	"github.com/gofiber/fiber/v2"
)

// ListEvents плоский список событий для клиентского календаря
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	events, err := h.Schedules.Events(c.Context(), scheduleID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": events})
}

// WeekView семь дней недели вокруг опорной даты
func (h *Handler) WeekView(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ref, err := dateQuery(c, "date")
	if err != nil {
		return err
	}

	week, err := h.Schedules.WeekView(c.Context(), scheduleID, ref)
	if err != nil {
		return err
	}
	return c.JSON(week)
}

// MonthView месячная сетка полными неделями
func (h *Handler) MonthView(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ref, err := dateQuery(c, "date")
	if err != nil {
		return err
	}

	days, err := h.Schedules.MonthView(c.Context(), scheduleID, ref)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"days": days})
}

// DayView почасовая раскладка одного дня
func (h *Handler) DayView(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	day, err := dateQuery(c, "date")
	if err != nil {
		return err
	}

	cells, err := h.Schedules.DayView(c.Context(), scheduleID, day)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"hours": cells})
}

// Agenda хронологическая лента: прошедшие, текущие, будущие занятия
func (h *Handler) Agenda(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	today, err := dateQuery(c, "date")
	if err != nil {
		return err
	}

	agenda, err := h.Schedules.Agenda(c.Context(), scheduleID, today)
	if err != nil {
		return err
	}
	return c.JSON(agenda)
}

// WeekImage PNG-картинка недели для выгрузки и мессенджеров
func (h *Handler) WeekImage(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ref, err := dateQuery(c, "date")
	if err != nil {
		return err
	}

	slots, err := h.Schedules.ListSlots(c.Context(), scheduleID)
	if err != nil {
		return err
	}

	png, err := render.WeekImage(ref, slots)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
