package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleSlot одно занятие в расписании.
// Date хранит только календарную дату (полночь UTC), время занятия
// задаётся строками HH:MM - они сравниваются лексикографически,
// инвариант StartTime < EndTime проверяется до записи в базу.
type ScheduleSlot struct {
	ID           uuid.UUID  `json:"id"`
	ScheduleID   uuid.UUID  `json:"schedule_id"`
	ModuleID     *uuid.UUID `json:"module_id"`     // указатель - может быть nil
	InstructorID *uuid.UUID `json:"instructor_id"` // указатель - может быть nil
	Date         time.Time  `json:"date"`
	StartTime    string     `json:"start_time"` // HH:MM
	EndTime      string     `json:"end_time"`   // HH:MM
	Room         string     `json:"room"`
	Color        string     `json:"color"` // hex
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
}

// SameDay сравнивает календарную дату слота с указанным днём (время игнорируется)
func (s *ScheduleSlot) SameDay(day time.Time) bool {
	return s.Date.Year() == day.Year() &&
		s.Date.Month() == day.Month() &&
		s.Date.Day() == day.Day()
}
