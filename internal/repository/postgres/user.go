package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
)

const userColumns = "user_id, rut, email, first_name, last_name, phone, age, role, is_active, password_hash"

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a UserRepository backed by Postgres.
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) scan(row *sql.Row, key any) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.RUT, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Age, &u.Role, &u.IsActive, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, entity.NewNotFound("user", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE user_id = $1", id)
	return r.scan(row, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return r.scan(row, email)
}

func (r *userRepository) FindByRUT(ctx context.Context, rut string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE rut = $1", rut)
	return r.scan(row, rut)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *userRepository) ExistsByRUT(ctx context.Context, rut string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE rut = $1)", rut).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check rut: %w", err)
	}
	return exists, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.RUT, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Age, &u.Role, &u.IsActive, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (rut, email, first_name, last_name, phone, age, role, is_active, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING user_id`,
		user.RUT, user.Email, user.FirstName, user.LastName, user.Phone, user.Age, user.Role, user.IsActive, user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET rut = $2, email = $3, first_name = $4, last_name = $5, phone = $6, age = $7, role = $8, is_active = $9
		 WHERE user_id = $1`,
		user.ID, user.RUT, user.Email, user.FirstName, user.LastName, user.Phone, user.Age, user.Role, user.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(res, "user", user.ID)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE user_id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(res, "user", id)
}

// requireAffected converts a zero-row write into a NotFoundError.
func requireAffected(res sql.Result, resource string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return entity.NewNotFound(resource, id)
	}
	return nil
}
