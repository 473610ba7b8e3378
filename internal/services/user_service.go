package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docelar/pedidos/internal/auth"
	"github.com/docelar/pedidos/internal/models"
	"github.com/docelar/pedidos/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCredentials   = errors.New("email and password are required")
)

// UserService определяет интерфейс для работы с пользователями.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// UserServiceImpl реализует UserService.
type UserServiceImpl struct {
	userStorage     storage.UserStorage
	jwtSecret       string
	tokenExpiration time.Duration
}

// NewUserService создаёт новый экземпляр UserService.
func NewUserService(userStorage storage.UserStorage, jwtSecret string, tokenExpiration time.Duration) *UserServiceImpl {
	return &UserServiceImpl{
		userStorage:     userStorage,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
	}
}

// Register регистрирует нового пользователя.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrEmptyCredentials
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	err = s.userStorage.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return nil, "", storage.ErrEmailExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login аутентифицирует пользователя.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrEmptyCredentials
	}

	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// generateToken генерирует JWT токен для пользователя.
func (s *UserServiceImpl) generateToken(user *models.User) (string, error) {
	exp := s.tokenExpiration
	if exp <= 0 {
		exp = 24 * time.Hour
	}
	token, err := auth.GenerateToken(user, s.jwtSecret, exp)
	if err != nil {
		return "", err
	}
	return token, nil
}
