package repository

import (
	"context"
	"fmt"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/espaceform/formation_portal/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FormationRepository struct {
	*base.Repository
}

func NewFormationRepository(pool *pgxpool.Pool) *FormationRepository {
	return &FormationRepository{Repository: base.NewRepository(pool)}
}

// GetByID получает формацию по ID
func (r *FormationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Formation, error) {
	query := `
		SELECT id, name, description, color, academic_year, created_at
		FROM formations
		WHERE id = $1
	`

	var formation model.Formation
	err := r.QueryRow(ctx, query, id).Scan(
		&formation.ID,
		&formation.Name,
		&formation.Description,
		&formation.Color,
		&formation.AcademicYear,
		&formation.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formation by id: %w", err)
	}

	return &formation, nil
}

// List получает все формации каталога
func (r *FormationRepository) List(ctx context.Context) ([]*model.Formation, error) {
	query := `
		SELECT id, name, description, color, academic_year, created_at
		FROM formations
		ORDER BY name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}
	defer rows.Close()

	var formations []*model.Formation
	for rows.Next() {
		var formation model.Formation
		err := rows.Scan(
			&formation.ID,
			&formation.Name,
			&formation.Description,
			&formation.Color,
			&formation.AcademicYear,
			&formation.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan formation: %w", err)
		}
		formations = append(formations, &formation)
	}

	return formations, nil
}
