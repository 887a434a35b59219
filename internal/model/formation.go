package model

import (
	"time"

	"github.com/google/uuid"
)

// Formation учебная программа (курс) учебного центра
type Formation struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Color        string    `json:"color"` // hex, цвет слотов по умолчанию
	AcademicYear string    `json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
}

// FormationModule модуль формации, преподаётся в одном или нескольких слотах
type FormationModule struct {
	ID          uuid.UUID `json:"id"`
	FormationID uuid.UUID `json:"formation_id"`
	Name        string    `json:"name"`
	Hours       int       `json:"hours"`
	Color       string    `json:"color"` // hex, может быть пустым - тогда цвет формации
	CreatedAt   time.Time `json:"created_at"`
}
