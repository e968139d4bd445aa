package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
)

type artistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates an ArtistRepository backed by Postgres.
func NewArtistRepository(db *sql.DB) repository.ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) FindByID(ctx context.Context, id int64) (*entity.Artist, error) {
	var a entity.Artist
	err := r.db.QueryRowContext(ctx, "SELECT artist_id, artist_name FROM artists WHERE artist_id = $1", id).Scan(&a.ID, &a.Name)
	if err == sql.ErrNoRows {
		return nil, entity.NewNotFound("artist", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}
	return &a, nil
}

func (r *artistRepository) FindByName(ctx context.Context, name string) (*entity.Artist, error) {
	var a entity.Artist
	err := r.db.QueryRowContext(ctx, "SELECT artist_id, artist_name FROM artists WHERE artist_name = $1", name).Scan(&a.ID, &a.Name)
	if err == sql.ErrNoRows {
		return nil, entity.NewNotFound("artist", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}
	return &a, nil
}

func (r *artistRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM artists WHERE artist_name = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check artist name: %w", err)
	}
	return exists, nil
}

func (r *artistRepository) SearchByName(ctx context.Context, name string) ([]entity.Artist, error) {
	return r.query(ctx, "SELECT artist_id, artist_name FROM artists WHERE artist_name ILIKE '%' || $1 || '%' ORDER BY artist_name", name)
}

func (r *artistRepository) FindAll(ctx context.Context) ([]entity.Artist, error) {
	return r.query(ctx, "SELECT artist_id, artist_name FROM artists ORDER BY artist_id")
}

func (r *artistRepository) query(ctx context.Context, q string, args ...any) ([]entity.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []entity.Artist
	for rows.Next() {
		var a entity.Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func (r *artistRepository) Create(ctx context.Context, artist *entity.Artist) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO artists (artist_name) VALUES ($1) RETURNING artist_id", artist.Name,
	).Scan(&artist.ID)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}
	return nil
}

func (r *artistRepository) Update(ctx context.Context, artist *entity.Artist) error {
	res, err := r.db.ExecContext(ctx, "UPDATE artists SET artist_name = $2 WHERE artist_id = $1", artist.ID, artist.Name)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}
	return requireAffected(res, "artist", artist.ID)
}

func (r *artistRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM artists WHERE artist_id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	return requireAffected(res, "artist", id)
}
