package calendar

import (
	"testing"
	"time"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEvents(t *testing.T) {
	formation := &model.Formation{
		ID:    uuid.New(),
		Name:  "Développement Web",
		Color: "#3F51B5",
	}
	module := &model.FormationModule{
		ID:    uuid.New(),
		Name:  "JavaScript avancé",
		Color: "#4CAF50",
	}
	instructor := &model.User{
		ID:       uuid.New(),
		FullName: "Marie Dupont",
		Role:     model.RoleFormateur,
	}

	withModule := &model.ScheduleSlot{
		ID:           uuid.New(),
		ModuleID:     &module.ID,
		InstructorID: &instructor.ID,
		Date:         time.Date(2024, 9, 4, 10, 30, 0, 0, time.UTC),
		StartTime:    "09:30",
		EndTime:      "12:30",
		Room:         "Salle 101",
		Color:        "#FF9800",
	}
	imported := &model.ScheduleSlot{
		ID:        uuid.New(),
		Date:      time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "13:30",
		EndTime:   "17:30",
		Notes:     "Communication",
	}
	bare := &model.ScheduleSlot{
		ID:        uuid.New(),
		Date:      time.Date(2024, 9, 6, 0, 0, 0, 0, time.UTC),
		StartTime: "09:30",
		EndTime:   "12:30",
	}

	modules := map[uuid.UUID]*model.FormationModule{module.ID: module}
	instructors := map[uuid.UUID]*model.User{instructor.ID: instructor}

	events := BuildEvents([]*model.ScheduleSlot{withModule, imported, bare}, modules, instructors, formation)
	require.Len(t, events, 3)

	// Слот с модулем: имя модуля, преподаватель, собственный цвет
	assert.Equal(t, "JavaScript avancé", events[0].Title)
	assert.Equal(t, "Marie Dupont", events[0].Instructor)
	assert.Equal(t, "#FF9800", events[0].Color)
	assert.Equal(t, "Développement Web", events[0].Formation)
	// Дата нормализована к началу дня
	assert.Equal(t, time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC), events[0].Date)

	// Импортированный слот: заголовок из notes, цвет формации
	assert.Equal(t, "Communication", events[1].Title)
	assert.Equal(t, "#3F51B5", events[1].Color)

	// Пустой слот: заголовок и цвет формации
	assert.Equal(t, "Développement Web", events[2].Title)
	assert.Equal(t, "#3F51B5", events[2].Color)
}

func TestBuildEventsWithoutFormation(t *testing.T) {
	slot := &model.ScheduleSlot{
		ID:        uuid.New(),
		Date:      time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC),
		StartTime: "09:30",
		EndTime:   "12:30",
	}

	events := BuildEvents([]*model.ScheduleSlot{slot}, nil, nil, nil)

	require.Len(t, events, 1)
	assert.Empty(t, events[0].Title)
	assert.Equal(t, fallbackColor, events[0].Color)
}

func TestFrenchLabels(t *testing.T) {
	assert.Equal(t, "Lundi", WeekdayName(time.Monday))
	assert.Equal(t, "Dimanche", WeekdayName(time.Sunday))
	assert.Equal(t, "Mer", WeekdayShort(time.Wednesday))
	assert.Equal(t, "Septembre", MonthName(time.September))
}
