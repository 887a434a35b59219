package calendar

import (
	"sort"
	"time"

	"github.com/espaceform/formation_portal/internal/model"
)

// Пакет calendar содержит чистые проекции плоского списка слотов
// в календарные представления (день/неделя/месяц/хронология).
// Никакого I/O: при одинаковых входных данных результат всегда одинаков.

// DayBucket слоты одного календарного дня недельного представления
type DayBucket struct {
	Date  time.Time             `json:"date"`
	Slots []*model.ScheduleSlot `json:"slots"`
}

// GridDay ячейка месячной сетки. Дни соседних месяцев остаются в сетке
// (IsCurrentMonth = false) и по-прежнему содержат свои слоты.
type GridDay struct {
	Date           time.Time             `json:"date"`
	IsCurrentMonth bool                  `json:"isCurrentMonth"`
	Slots          []*model.ScheduleSlot `json:"slots"`
}

// DayStart нормализует время к началу дня
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart возвращает понедельник на дату ref или до неё
func WeekStart(ref time.Time) time.Time {
	normalized := DayStart(ref)

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	return normalized.AddDate(0, 0, -daysSinceMonday)
}

// sameDay сравнивает календарные даты без учёта времени
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// sortChrono сортирует слоты по (date, start_time, id).
// Сортировка стабильная, id - детерминированный вторичный ключ для слотов
// с одинаковой датой и временем.
func sortChrono(slots []*model.ScheduleSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		di, dj := DayStart(slots[i].Date), DayStart(slots[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].ID.String() < slots[j].ID.String()
	})
}

// WeekBuckets раскладывает слоты по 7 дням недели, содержащей ref.
// Всегда возвращает ровно 7 корзин в порядке Пн..Вс; слот попадает в
// корзину, чья календарная дата совпадает с датой слота.
func WeekBuckets(ref time.Time, slots []*model.ScheduleSlot) []DayBucket {
	start := WeekStart(ref)

	buckets := make([]DayBucket, 7)
	for i := 0; i < 7; i++ {
		buckets[i] = DayBucket{Date: start.AddDate(0, 0, i)}
	}

	for _, slot := range slots {
		for i := range buckets {
			if slot.SameDay(buckets[i].Date) {
				buckets[i].Slots = append(buckets[i].Slots, slot)
				break
			}
		}
	}

	for i := range buckets {
		sortChrono(buckets[i].Slots)
	}

	return buckets
}

// MonthGrid строит прямоугольную месячную сетку: от понедельника на/до
// первого числа месяца до воскресенья на/после последнего. Длина всегда
// кратна 7.
func MonthGrid(ref time.Time, slots []*model.ScheduleSlot) []GridDay {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, -1)

	gridStart := WeekStart(first)
	gridEnd := WeekStart(last).AddDate(0, 0, 6)

	byDate := make(map[string][]*model.ScheduleSlot)
	for _, slot := range slots {
		key := DayStart(slot.Date).Format("2006-01-02")
		byDate[key] = append(byDate[key], slot)
	}

	var grid []GridDay
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		daySlots := byDate[day.Format("2006-01-02")]
		sortChrono(daySlots)
		grid = append(grid, GridDay{
			Date:           day,
			IsCurrentMonth: day.Month() == ref.Month(),
			Slots:          daySlots,
		})
	}

	return grid
}

// DaySlots отбирает слоты указанного дня, по возрастанию start_time
func DaySlots(day time.Time, slots []*model.ScheduleSlot) []*model.ScheduleSlot {
	var result []*model.ScheduleSlot
	for _, slot := range slots {
		if slot.SameDay(day) {
			result = append(result, slot)
		}
	}
	sortChrono(result)
	return result
}

// HourAnchors часовые метки дневного представления (08:00..19:00)
var HourAnchors = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
}

// nextHour возвращает метку часа, следующего за anchor ("08:00" -> "09:00")
func nextHour(anchor string) string {
	t, err := time.Parse("15:04", anchor)
	if err != nil {
		return anchor
	}
	return t.Add(time.Hour).Format("15:04")
}

// SlotAtHour находит слот, начинающийся в интервале [anchor, anchor+1ч).
// Коллизии не ожидаются (один слот на часовую колонку) и разрешаются
// первым совпадением в порядке списка. Возвращает nil, если слота нет.
func SlotAtHour(daySlots []*model.ScheduleSlot, anchor string) *model.ScheduleSlot {
	end := nextHour(anchor)
	for _, slot := range daySlots {
		if slot.StartTime >= anchor && slot.StartTime < end {
			return slot
		}
	}
	return nil
}

// Partition делит слоты на прошедшие/сегодняшние/предстоящие относительно
// today (время отбрасывается). Каждая часть отсортирована по возрастанию
// (date, start_time, id); объединение частей равно исходному списку.
func Partition(slots []*model.ScheduleSlot, today time.Time) (past, current, upcoming []*model.ScheduleSlot) {
	day := DayStart(today)

	for _, slot := range slots {
		slotDay := DayStart(slot.Date)
		switch {
		case slotDay.Before(day):
			past = append(past, slot)
		case sameDay(slotDay, day):
			current = append(current, slot)
		default:
			upcoming = append(upcoming, slot)
		}
	}

	sortChrono(past)
	sortChrono(current)
	sortChrono(upcoming)
	return past, current, upcoming
}

// RecentPast возвращает не более limit последних прошедших слотов,
// самые свежие первыми (для отображения хвоста истории)
func RecentPast(past []*model.ScheduleSlot, limit int) []*model.ScheduleSlot {
	if len(past) > limit {
		past = past[len(past)-limit:]
	}

	reversed := make([]*model.ScheduleSlot, len(past))
	for i, slot := range past {
		reversed[len(past)-1-i] = slot
	}
	return reversed
}
