package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/internal/domain/repository"
	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
	"github.com/yourusername/millionaire-api/pkg/auth"
)

// ============================================================================
// createTestAuthService создаёт AuthService для тестирования с моками
// ============================================================================

func createTestAuthService(t *testing.T, userRepo *MockUserRepository) (*AuthService, *auth.JWTService) {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)
	svc, err := NewAuthService(userRepo, jwtService)
	require.NoError(t, err)
	return svc, jwtService
}

// ============================================================================
// Тесты для AuthService
// ============================================================================

func TestAuthService_RegisterUser_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "new@example.com").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { args.Get(0).(*entity.User).ID = 11 }).
		Return(nil)
	authService, jwtService := createTestAuthService(t, mockUserRepo)

	// Act
	user, token, err := authService.RegisterUser(RegisterInput{Name: " Новичок ", Email: " New@Example.com", Password: "password123"})

	// Assert
	require.NoError(t, err, "Регистрация должна быть успешной")
	assert.Equal(t, "Новичок", user.Name)
	assert.Equal(t, "new@example.com", user.Email)
	claims, err := jwtService.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(11), claims.UserID)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "existing@example.com").Return(&entity.User{ID: 1, Email: "existing@example.com"}, nil)
	authService, _ := createTestAuthService(t, mockUserRepo)

	user, _, err := authService.RegisterUser(RegisterInput{Name: "Игрок", Email: "existing@example.com", Password: "password123"})

	require.Error(t, err, "Должна быть ошибка при дублировании email")
	assert.Nil(t, user, "Пользователь не должен быть создан")
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterUser_DuplicateEmailOnInsert(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "race@example.com").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(repository.ErrDuplicateEmail)
	authService, _ := createTestAuthService(t, mockUserRepo)

	_, _, err := authService.RegisterUser(RegisterInput{Name: "Игрок", Email: "race@example.com", Password: "password123"})

	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestAuthService_RegisterUser_Validation(t *testing.T) {
	authService, _ := createTestAuthService(t, new(MockUserRepository))

	_, _, err := authService.RegisterUser(RegisterInput{Name: "  ", Email: "a@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, _, err = authService.RegisterUser(RegisterInput{Name: "Игрок", Email: "a@example.com", Password: "123"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestAuthService_AuthenticateUser_ValidCredentials(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	plainPassword := "correctPassword123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.MinCost)
	mockUserRepo.On("GetByEmail", "test@example.com").Return(&entity.User{
		ID:       1,
		Name:     "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}, nil)
	authService, _ := createTestAuthService(t, mockUserRepo)

	user, err := authService.AuthenticateUser("TEST@example.com ", plainPassword)

	require.NoError(t, err, "Аутентификация должна быть успешной")
	assert.Equal(t, uint(1), user.ID)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_AuthenticateUser_InvalidPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correctPassword"), bcrypt.MinCost)
	mockUserRepo.On("GetByEmail", "test@example.com").Return(&entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}, nil)
	authService, _ := createTestAuthService(t, mockUserRepo)

	user, err := authService.AuthenticateUser("test@example.com", "wrongPassword")

	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Nil(t, user, "Пользователь не должен быть возвращён")
}

func TestAuthService_LoginUser_UnknownEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)
	authService, _ := createTestAuthService(t, mockUserRepo)

	_, token, err := authService.LoginUser("ghost@example.com", "whatever")

	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Empty(t, token)
}
