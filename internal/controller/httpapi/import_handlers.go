package httpapi

import (
	"bytes"

	"github.com/espaceform/formation_portal/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportWorkbook массовый импорт слотов из xlsx-файла
func (h *Handler) ImportWorkbook(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return &service.ValidationError{Message: "Veuillez joindre un fichier Excel (.xlsx)"}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return &service.ValidationError{Message: "Impossible de lire le fichier joint"}
	}
	defer file.Close()

	result, err := h.Importer.ImportWorkbook(c.Context(), scheduleID, file)
	if err != nil {
		return err
	}

	h.Logger.Info("Workbook imported",
		zap.String("schedule_id", scheduleID.String()),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))

	return c.JSON(result)
}

// DownloadTemplate отдаёт пустой шаблон импорта
func (h *Handler) DownloadTemplate(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Importer.WriteTemplate(&buf); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="modele_planning.xlsx"`)
	return c.Send(buf.Bytes())
}

// ExportSchedule выгружает расписание в том же формате, что и шаблон
func (h *Handler) ExportSchedule(c *fiber.Ctx) error {
	scheduleID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.Importer.ExportSchedule(c.Context(), scheduleID, &buf); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="planning.xlsx"`)
	return c.Send(buf.Bytes())
}
