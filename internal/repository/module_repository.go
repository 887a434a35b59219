package repository

import (
	"context"
	"fmt"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/espaceform/formation_portal/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ModuleRepository struct {
	*base.Repository
}

func NewModuleRepository(pool *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{Repository: base.NewRepository(pool)}
}

// GetByID получает модуль формации по ID
func (r *ModuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FormationModule, error) {
	query := `
		SELECT id, formation_id, name, hours, color, created_at
		FROM formation_modules
		WHERE id = $1
	`

	var module model.FormationModule
	err := r.QueryRow(ctx, query, id).Scan(
		&module.ID,
		&module.FormationID,
		&module.Name,
		&module.Hours,
		&module.Color,
		&module.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module by id: %w", err)
	}

	return &module, nil
}

// ListByFormation получает все модули формации
func (r *ModuleRepository) ListByFormation(ctx context.Context, formationID uuid.UUID) ([]*model.FormationModule, error) {
	query := `
		SELECT id, formation_id, name, hours, color, created_at
		FROM formation_modules
		WHERE formation_id = $1
		ORDER BY name
	`

	rows, err := r.Query(ctx, query, formationID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var modules []*model.FormationModule
	for rows.Next() {
		var module model.FormationModule
		err := rows.Scan(
			&module.ID,
			&module.FormationID,
			&module.Name,
			&module.Hours,
			&module.Color,
			&module.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, &module)
	}

	return modules, nil
}

// GetByIDs получает модули по списку ID (для джойна проекций)
func (r *ModuleRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.FormationModule, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, formation_id, name, hours, color, created_at
		FROM formation_modules
		WHERE id = ANY($1)
	`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get modules by ids: %w", err)
	}
	defer rows.Close()

	var modules []*model.FormationModule
	for rows.Next() {
		var module model.FormationModule
		err := rows.Scan(
			&module.ID,
			&module.FormationID,
			&module.Name,
			&module.Hours,
			&module.Color,
			&module.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, &module)
	}

	return modules, nil
}
