package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/espaceform/formation_portal/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

const slotColumns = `id, schedule_id, module_id, instructor_id, date, start_time, end_time, room, color, notes, created_at`

func scanSlot(row pgx.Row) (*model.ScheduleSlot, error) {
	var slot model.ScheduleSlot
	err := row.Scan(
		&slot.ID,
		&slot.ScheduleID,
		&slot.ModuleID,
		&slot.InstructorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Room,
		&slot.Color,
		&slot.Notes,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create создаёт новый слот расписания
func (r *SlotRepository) Create(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (schedule_id, module_id, instructor_id, date, start_time, end_time, room, color, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		slot.ScheduleID,
		slot.ModuleID,
		slot.InstructorID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Room,
		slot.Color,
		slot.Notes,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM schedule_slots
		WHERE id = $1
	`

	slot, err := scanSlot(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// ListBySchedule получает все слоты расписания.
// Порядок детерминирован: (date, start_time, id) - id как вторичный ключ,
// чтобы слоты с одинаковым временем всегда возвращались в одном порядке.
func (r *SlotRepository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]*model.ScheduleSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM schedule_slots
		WHERE schedule_id = $1
		ORDER BY date, start_time, id
	`

	rows, err := r.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.ScheduleSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// ListByScheduleRange получает слоты расписания в диапазоне дат [from, to)
func (r *SlotRepository) ListByScheduleRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]*model.ScheduleSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM schedule_slots
		WHERE schedule_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date, start_time, id
	`

	rows, err := r.Query(ctx, query, scheduleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slots by range: %w", err)
	}
	defer rows.Close()

	var slots []*model.ScheduleSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// Update сохраняет изменённые поля слота (слияние делает сервис)
func (r *SlotRepository) Update(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		UPDATE schedule_slots
		SET module_id = $1, instructor_id = $2, date = $3, start_time = $4,
		    end_time = $5, room = $6, color = $7, notes = $8
		WHERE id = $9
	`

	affected, err := r.ExecAffected(
		ctx, query,
		slot.ModuleID,
		slot.InstructorID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Room,
		slot.Color,
		slot.Notes,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// UpdateDate меняет только дату слота (drag-and-drop перенос)
func (r *SlotRepository) UpdateDate(ctx context.Context, id uuid.UUID, date time.Time) error {
	query := `
		UPDATE schedule_slots
		SET date = $1
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, date, id)
	if err != nil {
		return fmt.Errorf("update slot date: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// Delete удаляет слот. Возвращает количество удалённых строк:
// 0 не является ошибкой, повторное удаление уже удалённого id допустимо.
func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		DELETE FROM schedule_slots
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete slot: %w", err)
	}

	return affected, nil
}
