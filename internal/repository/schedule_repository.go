package repository

import (
	"context"
	"fmt"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/espaceform/formation_portal/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepository struct {
	*base.Repository
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новое расписание
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (formation_id, name, academic_year, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		schedule.FormationID,
		schedule.Name,
		schedule.AcademicYear,
		schedule.Status,
	).Scan(&schedule.ID, &schedule.CreatedAt)

	if err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	return nil
}

// GetByID получает расписание по ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	query := `
		SELECT id, formation_id, name, academic_year, status, created_at
		FROM schedules
		WHERE id = $1
	`

	var schedule model.Schedule
	err := r.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.FormationID,
		&schedule.Name,
		&schedule.AcademicYear,
		&schedule.Status,
		&schedule.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}

	return &schedule, nil
}

// List получает все расписания, опционально фильтруя по формации
func (r *ScheduleRepository) List(ctx context.Context, formationID *uuid.UUID) ([]*model.Schedule, error) {
	query := `
		SELECT id, formation_id, name, academic_year, status, created_at
		FROM schedules
		WHERE ($1::uuid IS NULL OR formation_id = $1)
		ORDER BY academic_year DESC, name
	`

	rows, err := r.Query(ctx, query, formationID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*model.Schedule
	for rows.Next() {
		var schedule model.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.FormationID,
			&schedule.Name,
			&schedule.AcademicYear,
			&schedule.Status,
			&schedule.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, &schedule)
	}

	return schedules, nil
}

// UpdateStatus меняет статус расписания (draft -> published)
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ScheduleStatus) error {
	query := `
		UPDATE schedules
		SET status = $1
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}
