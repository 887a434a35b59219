package service

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// SlotInput данные формы создания/редактирования слота.
// ModuleID и InstructorID приходят строками: фронтенд шлёт "" для
// незаполненных полей, парсинг в uuid происходит после валидации.
type SlotInput struct {
	ScheduleID   string `json:"schedule_id" validate:"required"`
	ModuleID     string `json:"module_id"`
	InstructorID string `json:"instructor_id"`
	Date         string `json:"date" validate:"required"`       // AAAA-MM-JJ
	StartTime    string `json:"start_time" validate:"required"` // HH:MM
	EndTime      string `json:"end_time" validate:"required"`   // HH:MM
	Room         string `json:"room"`
	Color        string `json:"color"`
	Notes        string `json:"notes"`
}

var (
	timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	hexPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// slotPalette фиксированная палитра цветов формы редактирования
var slotPalette = []string{
	"#4CAF50", "#2196F3", "#FF9800", "#9C27B0",
	"#F44336", "#009688", "#3F51B5", "#795548",
}

// SlotEditor валидирует и нормализует данные формы до любого обращения
// к хранилищу. При ошибке состояние не меняется.
type SlotEditor struct {
	validate *validator.Validate
}

func NewSlotEditor() *SlotEditor {
	return &SlotEditor{validate: validator.New()}
}

// ValidateForm проверяет правила формы редактирования:
//  1. module_id, date, start_time, end_time обязательны;
//  2. start_time < end_time (лексикографически, формат HH:MM);
//  3. color из палитры либо валидный hex (пустой допустим - будет
//     подставлен цвет модуля/формации).
func (e *SlotEditor) ValidateForm(input SlotInput) error {
	// Форма требует модуль, в отличие от массового импорта
	if input.ModuleID == "" {
		return &ValidationError{Message: msgRequiredFields}
	}
	return e.ValidateSlot(input)
}

// ValidateSlot проверяет минимальный контракт хранилища слотов:
// обязательные schedule_id/date/start/end и инвариант start < end.
// Используется и формой, и массовым импортом.
func (e *SlotEditor) ValidateSlot(input SlotInput) error {
	if err := e.validate.Struct(input); err != nil {
		return &ValidationError{Message: msgRequiredFields}
	}

	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return &ValidationError{Message: msgBadDateFormat}
	}

	if !timePattern.MatchString(input.StartTime) || !timePattern.MatchString(input.EndTime) {
		return &ValidationError{Message: msgBadTimeFormat}
	}

	// Зеро-паддинг HH:MM делает лексикографическое сравнение корректным
	if input.StartTime >= input.EndTime {
		return &ValidationError{Message: msgEndAfterStart}
	}

	if input.Color != "" && !e.validColor(input.Color) {
		return &ValidationError{Message: msgBadColor}
	}

	return nil
}

func (e *SlotEditor) validColor(color string) bool {
	for _, c := range slotPalette {
		if c == color {
			return true
		}
	}
	return hexPattern.MatchString(color)
}
