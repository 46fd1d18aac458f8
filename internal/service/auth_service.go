package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/internal/domain/repository"
	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
	"github.com/yourusername/millionaire-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации и входа пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// RegisterInput содержит данные для регистрации
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil || jwtService == nil {
		return nil, errors.New("AuthService requires userRepo and jwtService")
	}
	return &AuthService{userRepo: userRepo, jwtService: jwtService}, nil
}

// RegisterUser создает пользователя и возвращает его вместе с токеном доступа
func (s *AuthService) RegisterUser(input RegisterInput) (*entity.User, string, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" {
		return nil, "", fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	// Проверяем, существует ли пользователь с таким email
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, "", fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[AuthService] Ошибка проверки email %s: %v", input.Email, err)
		return nil, "", err
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password, // хешируется в BeforeSave
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", translateRepoError(err)
		}
		log.Printf("[AuthService] Ошибка создания пользователя %s: %v", input.Email, err)
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации токена для пользователя ID=%d: %v", user.ID, err)
		return nil, "", fmt.Errorf("ошибка генерации токена")
	}

	log.Printf("[AuthService] Зарегистрирован пользователь ID=%d (%s)", user.ID, user.Email)
	return user, token, nil
}

// LoginUser проверяет учетные данные и выдает токен доступа
func (s *AuthService) LoginUser(email, password string) (*entity.User, string, error) {
	user, err := s.AuthenticateUser(email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации токена для пользователя ID=%d: %v", user.ID, err)
		return nil, "", fmt.Errorf("ошибка генерации токена")
	}

	log.Printf("[AuthService] Пользователь ID=%d (%s) успешно вошел в систему", user.ID, user.Email)
	return user, token, nil
}

// AuthenticateUser проверяет email и пароль
func (s *AuthService) AuthenticateUser(email, password string) (*entity.User, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("[AuthService] Пользователь с email %s не найден: %v", email, err)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неверный пароль для пользователя с email %s", email)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
