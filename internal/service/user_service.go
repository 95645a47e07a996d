package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "vipmotors/internal/errors"
	"vipmotors/internal/model"
	"vipmotors/internal/repository"
)

// UserService exposes profile operations for the authenticated user.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the display name and email. Role is immutable
// through this path. An email belonging to another account is rejected.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	email = NormalizeEmail(email)
	if email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, email)
		if err == nil && existing != nil && existing.ID != id {
			return nil, apperrors.ErrEmailTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = email
	}
	user.Name = name

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
