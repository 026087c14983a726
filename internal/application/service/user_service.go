package service

import (
	"context"

	"github.com/google/uuid"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/pkg/apperror"
)

// UpdateUserInput mutates a staff account. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name   *string    `json:"name" binding:"omitempty,max=200"`
	Phone  *string    `json:"phone" binding:"omitempty,max=50"`
	Role   *enum.Role `json:"role"`
	Active *bool      `json:"active"`
}

// UserService manages staff accounts
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Get returns one staff member
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// List returns staff members, optionally filtered by role
func (s *UserService) List(ctx context.Context, role *enum.Role) ([]entity.User, error) {
	return s.userRepo.List(ctx, role)
}

// ListWashers returns the active washers, for assignment dropdowns
func (s *UserService) ListWashers(ctx context.Context) ([]entity.User, error) {
	role := enum.RoleWasher
	washers, err := s.userRepo.List(ctx, &role)
	if err != nil {
		return nil, err
	}
	active := washers[:0]
	for _, w := range washers {
		if w.Active {
			active = append(active, w)
		}
	}
	return active, nil
}

// Update applies a partial update to a staff account
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes a staff account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
