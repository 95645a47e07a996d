package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vipmotors/internal/auth"
	apperrors "vipmotors/internal/errors"
	"vipmotors/internal/model"
	"vipmotors/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	VerifyToken(token string) (*auth.Claims, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a user with a hashed password and signs them in.
// The plaintext password is never stored.
func (s *authService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	email = NormalizeEmail(email)

	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, "", apperrors.ErrInvalidRole
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password return the same error so accounts cannot be enumerated.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	// bcrypt comparison is constant-time on the hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// VerifyToken validates a bearer token and returns its claims.
func (s *authService) VerifyToken(token string) (*auth.Claims, error) {
	return s.jwtService.ValidateToken(token)
}

// NormalizeEmail lower-cases and trims an email for case-insensitive identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
