package model

import "time"

// ScheduleEvent производное представление слота для календаря фронтенда.
// Никогда не сохраняется, пересчитывается при каждом изменении списка слотов.
type ScheduleEvent struct {
	SlotID      string    `json:"slotId"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Instructor  string    `json:"instructor"`
	Room        string    `json:"room"`
	Formation   string    `json:"formation"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
}
