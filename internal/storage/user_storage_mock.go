package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/docelar/pedidos/internal/models"
)

// MockUserStorage - мок для тестирования (экспортируемый для использования в других пакетах)
type MockUserStorage struct {
	CreateFunc     func(ctx context.Context, user *models.User) error
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func (m *MockUserStorage) Create(ctx context.Context, user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}
