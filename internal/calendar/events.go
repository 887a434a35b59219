package calendar

import (
	"strconv"
	"time"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/google/uuid"
)

// fallbackColor цвет события, когда ни слот, ни формация цвета не задали
const fallbackColor = "#9E9E9E"

// BuildEvents собирает производные события календаря из слотов и
// джойненных записей модулей/преподавателей/формации. События никогда
// не сохраняются и пересчитываются при каждом изменении списка слотов.
func BuildEvents(
	slots []*model.ScheduleSlot,
	modules map[uuid.UUID]*model.FormationModule,
	instructors map[uuid.UUID]*model.User,
	formation *model.Formation,
) []model.ScheduleEvent {
	events := make([]model.ScheduleEvent, 0, len(slots))

	for _, slot := range slots {
		event := model.ScheduleEvent{
			SlotID:      slot.ID.String(),
			Date:        DayStart(slot.Date),
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			Room:        slot.Room,
			Color:       slot.Color,
			Description: slot.Notes,
		}

		if slot.ModuleID != nil {
			if module, ok := modules[*slot.ModuleID]; ok {
				event.Title = module.Name
			}
		}
		if event.Title == "" {
			// Слоты массового импорта не привязаны к модулю,
			// текст формации лежит в notes
			event.Title = slot.Notes
		}

		if slot.InstructorID != nil {
			if instructor, ok := instructors[*slot.InstructorID]; ok {
				event.Instructor = instructor.FullName
			}
		}

		if formation != nil {
			event.Formation = formation.Name
			if event.Title == "" {
				event.Title = formation.Name
			}
			if event.Color == "" {
				event.Color = formation.Color
			}
		}
		if event.Color == "" {
			event.Color = fallbackColor
		}

		events = append(events, event)
	}

	return events
}

// SlotSummary краткая сводка слота для ячейки календарного дня
type SlotSummary struct {
	SlotID    string `json:"slotId"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Room      string `json:"room"`
	Color     string `json:"color"`
}

// CalendarDay день недельного представления с французскими подписями
type CalendarDay struct {
	Day     string        `json:"day"`
	Date    string        `json:"date"`
	Modules []SlotSummary `json:"modules"`
}

// CalendarWeek строит 7 дней недели ref в виде CalendarDay
func CalendarWeek(ref time.Time, slots []*model.ScheduleSlot, modules map[uuid.UUID]*model.FormationModule) []CalendarDay {
	buckets := WeekBuckets(ref, slots)

	days := make([]CalendarDay, 0, len(buckets))
	for _, bucket := range buckets {
		day := CalendarDay{
			Day:  WeekdayName(bucket.Date.Weekday()),
			Date: strconv.Itoa(bucket.Date.Day()),
		}

		for _, slot := range bucket.Slots {
			summary := SlotSummary{
				SlotID:    slot.ID.String(),
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Room:      slot.Room,
				Color:     slot.Color,
			}
			if slot.ModuleID != nil {
				if module, ok := modules[*slot.ModuleID]; ok {
					summary.Title = module.Name
				}
			}
			if summary.Title == "" {
				summary.Title = slot.Notes
			}
			day.Modules = append(day.Modules, summary)
		}

		days = append(days, day)
	}

	return days
}
