package model

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusPublished ScheduleStatus = "published"
)

// Schedule именованный контейнер слотов для одной формации и учебного года
type Schedule struct {
	ID           uuid.UUID      `json:"id"`
	FormationID  uuid.UUID      `json:"formation_id"`
	Name         string         `json:"name"`
	AcademicYear string         `json:"academic_year"`
	Status       ScheduleStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}
