package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Колонки файла импорта: одна строка на календарную дату,
// два фиксированных окна в день (утро и после обеда)
const (
	colDate        = "Date"
	colFormationAM = "FORMATION 09h30-12h30"
	colRoomAM      = "SALLE 09h30-12h30"
	colColorAM     = "COULEUR 09h30-12h30"
	colFormationPM = "FORMATION 13h30-17h30"
	colRoomPM      = "SALLE 13h30-17h30"
	colColorPM     = "COULEUR 13h30-17h30"
)

var importColumns = []string{
	colDate,
	colFormationAM, colRoomAM, colColorAM,
	colFormationPM, colRoomPM, colColorPM,
}

// importWindow фиксированное окно дня в файле импорта
type importWindow struct {
	startTime    string
	endTime      string
	defaultColor string
	formationCol string
	roomCol      string
	colorCol     string
}

var importWindows = []importWindow{
	{"09:30", "12:30", "#4CAF50", colFormationAM, colRoomAM, colColorAM},
	{"13:30", "17:30", "#2196F3", colFormationPM, colRoomPM, colColorPM},
}

// SlotWriter операции слотов, нужные импортёру/экспортёру.
// ScheduleService им удовлетворяет; тесты подставляют стаб.
type SlotWriter interface {
	CreateSlot(ctx context.Context, input SlotInput) (*model.ScheduleSlot, error)
	ListSlots(ctx context.Context, scheduleID uuid.UUID) ([]*model.ScheduleSlot, error)
}

// ImportService массовый импорт/экспорт слотов через книги Excel
type ImportService struct {
	slots  SlotWriter
	logger *zap.Logger
}

func NewImportService(slots SlotWriter, logger *zap.Logger) *ImportService {
	return &ImportService{slots: slots, logger: logger}
}

// ImportResult итог импорта: сколько слотов записалось и сколько нет
type ImportResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// Err возвращает PartialImportError, если часть строк не записалась
func (r *ImportResult) Err() error {
	if r.Failed > 0 {
		return &PartialImportError{Succeeded: r.Succeeded, Failed: r.Failed}
	}
	return nil
}

// ImportWorkbook читает книгу и создаёт слоты по двум окнам каждой
// строки. Каждая попытка независима: сбой одной строки/окна логируется
// и считается, остальные продолжают записываться. Транзакционности нет -
// частично импортированный файл оставляет успешные слоты на месте.
func (s *ImportService) ImportWorkbook(ctx context.Context, scheduleID uuid.UUID, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ValidationError{Message: "Fichier Excel illisible"}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ValidationError{Message: "Fichier Excel illisible"}
	}
	if len(rows) < 2 {
		return nil, &ValidationError{Message: "Le fichier ne contient aucune ligne de données"}
	}

	header := make(map[string]int)
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}
	if _, ok := header[colDate]; !ok {
		return nil, &ValidationError{Message: "Colonne « Date » introuvable"}
	}

	result := &ImportResult{}

	for rowIdx, row := range rows[1:] {
		dateStr := strings.TrimSpace(cellAt(row, header, colDate))
		if dateStr == "" {
			continue
		}

		date, err := parseImportDate(dateStr)
		if err != nil {
			s.logger.Warn("Import row has an invalid date",
				zap.Int("row", rowIdx+2),
				zap.String("date", dateStr))
			result.Failed++
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("ligne %d: date invalide «%s»", rowIdx+2, dateStr))
			continue
		}

		for _, window := range importWindows {
			formation := strings.TrimSpace(cellAt(row, header, window.formationCol))
			if formation == "" {
				continue
			}

			color := strings.TrimSpace(cellAt(row, header, window.colorCol))
			if color == "" {
				color = window.defaultColor
			}

			input := SlotInput{
				ScheduleID: scheduleID.String(),
				Date:       date.Format("2006-01-02"),
				StartTime:  window.startTime,
				EndTime:    window.endTime,
				Room:       strings.TrimSpace(cellAt(row, header, window.roomCol)),
				Color:      color,
				Notes:      formation, // текст формации хранится как есть
			}

			if _, err := s.slots.CreateSlot(ctx, input); err != nil {
				// Ошибка одного окна не прерывает остальной импорт
				s.logger.Warn("Import slot creation failed",
					zap.Int("row", rowIdx+2),
					zap.String("window", window.startTime),
					zap.Error(err))
				result.Failed++
				result.RowErrors = append(result.RowErrors, fmt.Sprintf("ligne %d (%s): %v", rowIdx+2, window.startTime, err))
				continue
			}
			result.Succeeded++
		}
	}

	s.logger.Info("Workbook import finished",
		zap.String("schedule_id", scheduleID.String()),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))

	return result, nil
}

// cellAt значение ячейки по имени колонки, "" для отсутствующих
func cellAt(row []string, header map[string]int, col string) string {
	idx, ok := header[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseImportDate принимает форматы дат, встречающиеся в файлах центра
func parseImportDate(value string) (time.Time, error) {
	formats := []string{"2006-01-02", "02/01/2006", "02.01.2006", "02-01-2006"}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

const templateSheet = "Planning"

// WriteTemplate пишет пустой шаблон импорта со схемой колонок,
// который пользователь заполняет и загружает обратно
func (s *ImportService) WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(templateSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, name := range importColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(templateSheet, cell, name)
	}

	// Строка-пример, чтобы формат дат был очевиден
	example := []string{"02/09/2024", "Développement Web", "Salle 101", "#4CAF50", "Communication", "Salle 203", "#2196F3"}
	for i, value := range example {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(templateSheet, cell, value)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}

// ExportSchedule выгружает слоты расписания в ту же табличную схему.
// Слот попадает в утреннее окно при начале до 13:00, иначе в послеобеденное;
// лишние слоты того же окна выгружаются отдельными строками той же даты.
func (s *ImportService) ExportSchedule(ctx context.Context, scheduleID uuid.UUID, w io.Writer) error {
	slots, err := s.slots.ListSlots(ctx, scheduleID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(templateSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, name := range importColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(templateSheet, cell, name)
	}

	type exportRow struct {
		date    time.Time
		morning *model.ScheduleSlot
		evening *model.ScheduleSlot
	}

	var rows []*exportRow
	rowFor := func(slot *model.ScheduleSlot, morning bool) *exportRow {
		for _, r := range rows {
			if r.date.Equal(slot.Date) {
				if morning && r.morning == nil {
					return r
				}
				if !morning && r.evening == nil {
					return r
				}
			}
		}
		r := &exportRow{date: slot.Date}
		rows = append(rows, r)
		return r
	}

	// Слоты уже приходят отсортированными по (date, start_time, id)
	for _, slot := range slots {
		morning := slot.StartTime < "13:00"
		r := rowFor(slot, morning)
		if morning {
			r.morning = slot
		} else {
			r.evening = slot
		}
	}

	writeSlot := func(rowNum int, slot *model.ScheduleSlot, startCol int) {
		if slot == nil {
			return
		}
		title := slot.Notes
		if title == "" {
			title = slot.StartTime + "-" + slot.EndTime
		}
		for i, value := range []string{title, slot.Room, slot.Color} {
			cell, _ := excelize.CoordinatesToCellName(startCol+i, rowNum)
			f.SetCellValue(templateSheet, cell, value)
		}
	}

	for i, r := range rows {
		rowNum := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		f.SetCellValue(templateSheet, cell, r.date.Format("02/01/2006"))
		writeSlot(rowNum, r.morning, 2)
		writeSlot(rowNum, r.evening, 5)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
