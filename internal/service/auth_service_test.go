package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vipmotors/internal/auth"
	apperrors "vipmotors/internal/errors"
	"vipmotors/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedRole  model.Role
	}{
		{
			name:     "successful registration",
			userName: "Test User",
			email:    "test@example.com",
			password: "password123",
			role:     model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:     "email is case-normalized",
			userName: "Test User",
			email:    "Test@Example.COM",
			password: "password123",
			role:     model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:     "empty role defaults to user",
			userName: "Test User",
			email:    "test@example.com",
			password: "password123",
			role:     "",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:     "email already registered",
			userName: "Existing User",
			email:    "existing@example.com",
			password: "password123",
			role:     model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:          "unknown role rejected",
			userName:      "Test User",
			email:         "test@example.com",
			password:      "password123",
			role:          "superuser",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(mockRepo, jwtService)

			user, token, err := service.Register(context.Background(), tt.userName, tt.email, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, NormalizeEmail(tt.email), user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleUser,
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "not-the-password",
			setupMock: func(m *MockUserRepository) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleUser,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(mockRepo, jwtService)

			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// A failing user store must surface as an internal error, not as bad
// credentials.
func TestAuthService_LoginStoreFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, errors.New("dial tcp: connection refused"))

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	service := NewAuthService(mockRepo, jwtService)

	token, user, err := service.Login(context.Background(), "test@example.com", "password123")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
	mockRepo.AssertExpectations(t)
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_LoginFailuresIndistinguishable(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	unknownRepo := new(MockUserRepository)
	unknownRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	wrongPassRepo := new(MockUserRepository)
	wrongPassRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: string(hashedPassword),
		Role:         model.RoleUser,
	}, nil)

	jwtService := auth.NewJWTService("test-secret", time.Hour)

	_, _, errUnknown := NewAuthService(unknownRepo, jwtService).Login(context.Background(), "ghost@example.com", "password123")
	_, _, errWrongPass := NewAuthService(wrongPassRepo, jwtService).Login(context.Background(), "test@example.com", "wrong")

	assert.Equal(t, errUnknown, errWrongPass)
}

func TestAuthService_VerifyToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	service := NewAuthService(new(MockUserRepository), jwtService)

	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, model.RoleAdmin)
	assert.NoError(t, err)

	claims, err := service.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	_, err = service.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
