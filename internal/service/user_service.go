package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
)

// UserService manages the user directory. Email and RUT are unique natural
// keys; the password hash is stored opaquely and never interpreted here.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *UserService) GetByRUT(ctx context.Context, rut string) (*entity.User, error) {
	return s.users.FindByRUT(ctx, rut)
}

func (s *UserService) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.PasswordHash) == "" {
		return nil, entity.NewDomainError("password hash is required")
	}

	if exists, err := s.users.ExistsByEmail(ctx, user.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, entity.NewDomainError("email already exists: %s", user.Email)
	}
	if exists, err := s.users.ExistsByRUT(ctx, user.RUT); err != nil {
		return nil, err
	} else if exists {
		return nil, entity.NewDomainError("rut already exists: %s", user.RUT)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("User created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, details *entity.User) (*entity.User, error) {
	if err := validateUser(details); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Email != details.Email {
		exists, err := s.users.ExistsByEmail(ctx, details.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, entity.NewDomainError("email already exists: %s", details.Email)
		}
	}
	if existing.RUT != details.RUT {
		exists, err := s.users.ExistsByRUT(ctx, details.RUT)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, entity.NewDomainError("rut already exists: %s", details.RUT)
		}
	}

	existing.RUT = details.RUT
	existing.Email = details.Email
	existing.FirstName = details.FirstName
	existing.LastName = details.LastName
	existing.Phone = details.Phone
	existing.Age = details.Age
	existing.Role = details.Role
	existing.IsActive = details.IsActive

	if err := s.users.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func validateUser(user *entity.User) error {
	if user == nil {
		return entity.NewDomainError("user payload is required")
	}
	if strings.TrimSpace(user.Email) == "" {
		return entity.NewDomainError("email is required")
	}
	if strings.TrimSpace(user.RUT) == "" {
		return entity.NewDomainError("rut is required")
	}
	if strings.TrimSpace(user.FirstName) == "" || strings.TrimSpace(user.LastName) == "" {
		return entity.NewDomainError("user full name is required")
	}
	if strings.TrimSpace(user.Role) == "" {
		return entity.NewDomainError("role is required")
	}
	if user.Age < 0 {
		return entity.NewDomainError("age must not be negative")
	}
	return nil
}
