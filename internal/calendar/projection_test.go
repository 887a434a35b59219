package calendar

import (
	"testing"
	"time"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slotOn(date time.Time, start, end string) *model.ScheduleSlot {
	return &model.ScheduleSlot{
		ID:        uuid.New(),
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{name: "monday stays", ref: day(2024, 9, 2), want: day(2024, 9, 2)},
		{name: "wednesday mid-week", ref: day(2024, 9, 4), want: day(2024, 9, 2)},
		{name: "sunday maps to previous monday", ref: day(2024, 9, 8), want: day(2024, 9, 2)},
		{name: "time of day stripped", ref: time.Date(2024, 9, 4, 17, 45, 0, 0, time.UTC), want: day(2024, 9, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.ref))
		})
	}
}

func TestWeekBuckets(t *testing.T) {
	// Среда 4 сентября 2024: неделя Пн 02.09 .. Вс 08.09
	ref := day(2024, 9, 4)

	monday := slotOn(day(2024, 9, 2), "09:30", "12:30")
	wednesdayLate := slotOn(day(2024, 9, 4), "13:30", "17:30")
	wednesdayEarly := slotOn(day(2024, 9, 4), "09:30", "12:30")
	outside := slotOn(day(2024, 9, 9), "09:30", "12:30") // следующий понедельник

	buckets := WeekBuckets(ref, []*model.ScheduleSlot{wednesdayLate, monday, wednesdayEarly, outside})

	require.Len(t, buckets, 7)
	assert.Equal(t, day(2024, 9, 2), buckets[0].Date)
	assert.Equal(t, day(2024, 9, 8), buckets[6].Date)

	// Слот вне недели не попадает ни в одну корзину
	total := 0
	for _, b := range buckets {
		total += len(b.Slots)
	}
	assert.Equal(t, 3, total)

	// Внутри дня слоты по возрастанию start_time
	require.Len(t, buckets[2].Slots, 2)
	assert.Equal(t, "09:30", buckets[2].Slots[0].StartTime)
	assert.Equal(t, "13:30", buckets[2].Slots[1].StartTime)
}

func TestWeekBucketsScenario(t *testing.T) {
	// Опорная дата - среда 04.09.2024; занятие в понедельник и в пятницу
	mondaySlot := slotOn(day(2024, 9, 2), "09:00", "10:00")
	fridaySlot := slotOn(day(2024, 9, 6), "14:00", "15:00")

	buckets := WeekBuckets(day(2024, 9, 4), []*model.ScheduleSlot{mondaySlot, fridaySlot})

	require.Len(t, buckets, 7)
	for i, b := range buckets {
		assert.Equal(t, day(2024, 9, 2+i), b.Date)
	}

	require.Len(t, buckets[0].Slots, 1)
	assert.Same(t, mondaySlot, buckets[0].Slots[0])
	require.Len(t, buckets[4].Slots, 1)
	assert.Same(t, fridaySlot, buckets[4].Slots[0])

	for _, i := range []int{1, 2, 3, 5, 6} {
		assert.Empty(t, buckets[i].Slots)
	}
}

func TestWeekBucketsEmpty(t *testing.T) {
	buckets := WeekBuckets(day(2024, 9, 4), nil)
	require.Len(t, buckets, 7)
	for _, b := range buckets {
		assert.Empty(t, b.Slots)
	}
}

func TestMonthGrid(t *testing.T) {
	// Сентябрь 2024: 1-е - воскресенье, 30-е - понедельник.
	// Сетка: Пн 26.08 .. Вс 06.10, 42 дня.
	ref := day(2024, 9, 15)

	leading := slotOn(day(2024, 8, 28), "09:30", "12:30")
	inside := slotOn(day(2024, 9, 10), "09:30", "12:30")

	grid := MonthGrid(ref, []*model.ScheduleSlot{inside, leading})

	require.Len(t, grid, 42)
	assert.Zero(t, len(grid)%7)
	assert.Equal(t, day(2024, 8, 26), grid[0].Date)
	assert.Equal(t, day(2024, 10, 6), grid[len(grid)-1].Date)

	assert.False(t, grid[0].IsCurrentMonth)
	assert.True(t, grid[6].IsCurrentMonth) // 1 сентября

	// День соседнего месяца сохраняет свои слоты
	assert.Len(t, grid[2].Slots, 1)
	assert.Same(t, leading, grid[2].Slots[0])
}

func TestSlotAtHour(t *testing.T) {
	nineThirty := slotOn(day(2024, 9, 4), "09:30", "12:30")
	fourteen := slotOn(day(2024, 9, 4), "14:00", "17:00")
	daySlots := []*model.ScheduleSlot{nineThirty, fourteen}

	tests := []struct {
		anchor string
		want   *model.ScheduleSlot
	}{
		{anchor: "08:00", want: nil},
		{anchor: "09:00", want: nineThirty}, // 09:30 входит в [09:00, 10:00)
		{anchor: "10:00", want: nil},        // занятие идёт, но начинается раньше
		{anchor: "14:00", want: fourteen},
		{anchor: "19:00", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			got := SlotAtHour(daySlots, tt.anchor)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.Same(t, tt.want, got)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	today := day(2024, 9, 4)

	past1 := slotOn(day(2024, 9, 2), "09:30", "12:30")
	past2 := slotOn(day(2024, 9, 3), "13:30", "17:30")
	current := slotOn(day(2024, 9, 4), "09:30", "12:30")
	future := slotOn(day(2024, 9, 6), "09:30", "12:30")

	slots := []*model.ScheduleSlot{future, current, past2, past1}

	past, cur, upcoming := Partition(slots, today)

	assert.Equal(t, []*model.ScheduleSlot{past1, past2}, past)
	assert.Equal(t, []*model.ScheduleSlot{current}, cur)
	assert.Equal(t, []*model.ScheduleSlot{future}, upcoming)

	// Объединение частей покрывает исходный список
	assert.Len(t, append(append(past, cur...), upcoming...), len(slots))
}

func TestPartitionDeterministicOrder(t *testing.T) {
	// Одинаковые дата и время: вторичный ключ - id
	a := slotOn(day(2024, 9, 10), "09:30", "12:30")
	b := slotOn(day(2024, 9, 10), "09:30", "12:30")

	_, _, first := Partition([]*model.ScheduleSlot{a, b}, day(2024, 9, 4))
	_, _, second := Partition([]*model.ScheduleSlot{b, a}, day(2024, 9, 4))

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.True(t, first[0].ID.String() < first[1].ID.String())
}

func TestRecentPast(t *testing.T) {
	var past []*model.ScheduleSlot
	for i := 1; i <= 15; i++ {
		past = append(past, slotOn(day(2024, 9, i), "09:30", "12:30"))
	}

	recent := RecentPast(past, 10)

	require.Len(t, recent, 10)
	// Самые свежие первыми: 15-е, затем 14-е...
	assert.Equal(t, day(2024, 9, 15), recent[0].Date)
	assert.Equal(t, day(2024, 9, 6), recent[9].Date)
}

func TestRecentPastUnderLimit(t *testing.T) {
	past := []*model.ScheduleSlot{
		slotOn(day(2024, 9, 1), "09:30", "12:30"),
		slotOn(day(2024, 9, 2), "09:30", "12:30"),
	}

	recent := RecentPast(past, 10)

	require.Len(t, recent, 2)
	assert.Equal(t, day(2024, 9, 2), recent[0].Date)
}

func TestCalendarWeekLabels(t *testing.T) {
	slot := slotOn(day(2024, 9, 4), "09:30", "12:30")
	slot.Notes = "Développement Web"

	days := CalendarWeek(day(2024, 9, 4), []*model.ScheduleSlot{slot}, nil)

	require.Len(t, days, 7)
	assert.Equal(t, "Lundi", days[0].Day)
	assert.Equal(t, "Mercredi", days[2].Day)
	assert.Equal(t, "Dimanche", days[6].Day)

	require.Len(t, days[2].Modules, 1)
	assert.Equal(t, "Développement Web", days[2].Modules[0].Title)
}
