package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// slotWriterStub записывает вызовы CreateSlot и падает на заданных notes
type slotWriterStub struct {
	created []SlotInput
	failOn  map[string]bool
	slots   []*model.ScheduleSlot
}

func (s *slotWriterStub) CreateSlot(ctx context.Context, input SlotInput) (*model.ScheduleSlot, error) {
	if s.failOn[input.Notes] {
		return nil, errors.New("insert failed")
	}
	s.created = append(s.created, input)
	return &model.ScheduleSlot{ID: uuid.New()}, nil
}

func (s *slotWriterStub) ListSlots(ctx context.Context, scheduleID uuid.UUID) ([]*model.ScheduleSlot, error) {
	return s.slots, nil
}

// buildWorkbook собирает xlsx в памяти: первая строка - заголовки
func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

var importHeader = []string{
	"Date",
	"FORMATION 09h30-12h30", "SALLE 09h30-12h30", "COULEUR 09h30-12h30",
	"FORMATION 13h30-17h30", "SALLE 13h30-17h30", "COULEUR 13h30-17h30",
}

func TestImportWorkbook(t *testing.T) {
	stub := &slotWriterStub{}
	svc := NewImportService(stub, zap.NewNop())
	scheduleID := uuid.New()

	buf := buildWorkbook(t, [][]string{
		importHeader,
		{"02/09/2024", "Développement Web", "Salle 101", "#FF9800", "Communication", "Salle 203", ""},
		{"03/09/2024", "", "", "", "Anglais technique", "", ""},
	})

	result, err := svc.ImportWorkbook(context.Background(), scheduleID, buf)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.NoError(t, result.Err())
	require.Len(t, stub.created, 3)

	first := stub.created[0]
	assert.Equal(t, scheduleID.String(), first.ScheduleID)
	assert.Equal(t, "2024-09-02", first.Date)
	assert.Equal(t, "09:30", first.StartTime)
	assert.Equal(t, "12:30", first.EndTime)
	assert.Equal(t, "Salle 101", first.Room)
	assert.Equal(t, "#FF9800", first.Color) // явный цвет ячейки важнее дефолта окна
	assert.Equal(t, "Développement Web", first.Notes)

	// Пустая ячейка цвета получает дефолт своего окна
	second := stub.created[1]
	assert.Equal(t, "13:30", second.StartTime)
	assert.Equal(t, "#2196F3", second.Color)
	assert.Equal(t, "Communication", second.Notes)
}

func TestImportWorkbookPartialFailure(t *testing.T) {
	// Сбой одного окна не прерывает импорт остальных: первая строка даёт
	// утро и после обеда, вторая только утро - три попытки записи,
	// послеобеденная первой строки падает
	stub := &slotWriterStub{failOn: map[string]bool{"Communication": true}}
	svc := NewImportService(stub, zap.NewNop())

	buf := buildWorkbook(t, [][]string{
		importHeader,
		{"02/09/2024", "Développement Web", "", "", "Communication", "", ""},
		{"03/09/2024", "Anglais technique", "", "", "", "", ""},
	})

	result, err := svc.ImportWorkbook(context.Background(), uuid.New(), buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.RowErrors, 1)
	// Успешные записи остаются на месте
	require.Len(t, stub.created, 2)
	assert.Equal(t, "Développement Web", stub.created[0].Notes)
	assert.Equal(t, "Anglais technique", stub.created[1].Notes)

	var partialErr *PartialImportError
	require.ErrorAs(t, result.Err(), &partialErr)
	assert.Equal(t, 2, partialErr.Succeeded)
	assert.Equal(t, 1, partialErr.Failed)
}

func TestImportWorkbookBadDate(t *testing.T) {
	stub := &slotWriterStub{}
	svc := NewImportService(stub, zap.NewNop())

	buf := buildWorkbook(t, [][]string{
		importHeader,
		{"pas une date", "Développement Web", "", "", "", "", ""},
		{"2024-09-03", "Communication", "", "", "", "", ""},
	})

	result, err := svc.ImportWorkbook(context.Background(), uuid.New(), buf)
	require.NoError(t, err)

	// Строка с нечитаемой датой - один сбой, окна не обрабатываются
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, stub.created, 1)
	assert.Equal(t, "2024-09-03", stub.created[0].Date)
}

func TestImportWorkbookSkipsEmptyRows(t *testing.T) {
	stub := &slotWriterStub{}
	svc := NewImportService(stub, zap.NewNop())

	buf := buildWorkbook(t, [][]string{
		importHeader,
		{"", "", "", "", "", "", ""},
		{"02/09/2024", "", "", "", "", "", ""}, // дата без формаций - тоже пропуск
	})

	result, err := svc.ImportWorkbook(context.Background(), uuid.New(), buf)
	require.NoError(t, err)

	assert.Zero(t, result.Succeeded)
	assert.Zero(t, result.Failed)
	assert.Empty(t, stub.created)
}

func TestImportWorkbookMissingDateColumn(t *testing.T) {
	svc := NewImportService(&slotWriterStub{}, zap.NewNop())

	buf := buildWorkbook(t, [][]string{
		{"Jour", "FORMATION 09h30-12h30"},
		{"02/09/2024", "Développement Web"},
	})

	_, err := svc.ImportWorkbook(context.Background(), uuid.New(), buf)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestWriteTemplate(t *testing.T) {
	svc := NewImportService(&slotWriterStub{}, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, svc.WriteTemplate(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Planning")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, importHeader, rows[0])
}

func TestExportSchedule(t *testing.T) {
	morning := &model.ScheduleSlot{
		ID:        uuid.New(),
		Date:      mustDate("2024-09-02"),
		StartTime: "09:30",
		EndTime:   "12:30",
		Room:      "Salle 101",
		Color:     "#4CAF50",
		Notes:     "Développement Web",
	}
	afternoon := &model.ScheduleSlot{
		ID:        uuid.New(),
		Date:      mustDate("2024-09-02"),
		StartTime: "13:30",
		EndTime:   "17:30",
		Room:      "Salle 203",
		Color:     "#2196F3",
		Notes:     "Communication",
	}

	stub := &slotWriterStub{slots: []*model.ScheduleSlot{morning, afternoon}}
	svc := NewImportService(stub, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSchedule(context.Background(), uuid.New(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Planning")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Оба слота одного дня ложатся в одну строку: утро и после обеда
	assert.Equal(t, []string{
		"02/09/2024",
		"Développement Web", "Salle 101", "#4CAF50",
		"Communication", "Salle 203", "#2196F3",
	}, rows[1])
}
