package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
)

type labelRepository struct {
	db *sql.DB
}

// NewLabelRepository creates a LabelRepository backed by Postgres.
func NewLabelRepository(db *sql.DB) repository.LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) FindByID(ctx context.Context, id int64) (*entity.Label, error) {
	var l entity.Label
	err := r.db.QueryRowContext(ctx, "SELECT label_id, label_name FROM labels WHERE label_id = $1", id).Scan(&l.ID, &l.Name)
	if err == sql.ErrNoRows {
		return nil, entity.NewNotFound("label", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan label: %w", err)
	}
	return &l, nil
}

func (r *labelRepository) FindByName(ctx context.Context, name string) (*entity.Label, error) {
	var l entity.Label
	err := r.db.QueryRowContext(ctx, "SELECT label_id, label_name FROM labels WHERE label_name = $1", name).Scan(&l.ID, &l.Name)
	if err == sql.ErrNoRows {
		return nil, entity.NewNotFound("label", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan label: %w", err)
	}
	return &l, nil
}

func (r *labelRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM labels WHERE label_name = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check label name: %w", err)
	}
	return exists, nil
}

func (r *labelRepository) FindAll(ctx context.Context) ([]entity.Label, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT label_id, label_name FROM labels ORDER BY label_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	var labels []entity.Label
	for rows.Next() {
		var l entity.Label
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (r *labelRepository) Create(ctx context.Context, label *entity.Label) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO labels (label_name) VALUES ($1) RETURNING label_id", label.Name,
	).Scan(&label.ID)
	if err != nil {
		return fmt.Errorf("failed to insert label: %w", err)
	}
	return nil
}

func (r *labelRepository) Update(ctx context.Context, label *entity.Label) error {
	res, err := r.db.ExecContext(ctx, "UPDATE labels SET label_name = $2 WHERE label_id = $1", label.ID, label.Name)
	if err != nil {
		return fmt.Errorf("failed to update label: %w", err)
	}
	return requireAffected(res, "label", label.ID)
}

func (r *labelRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM labels WHERE label_id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return requireAffected(res, "label", id)
}
