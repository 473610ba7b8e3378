package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/docelar/pedidos/internal/models"
)

// MockOrderStorage - мок для тестирования (экспортируемый для использования в других пакетах)
type MockOrderStorage struct {
	CreateFunc        func(ctx context.Context, order *models.Order) error
	GetByIDFunc       func(ctx context.Context, userID, id uuid.UUID) (*models.Order, error)
	ListFunc          func(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Order, error)
	FilterFunc        func(ctx context.Context, userID uuid.UUID, term string, page, pageSize int) ([]*models.Order, error)
	UpdateFunc        func(ctx context.Context, order *models.Order) error
	MonthlyTotalsFunc func(ctx context.Context, userID uuid.UUID) ([]models.MonthlyTotal, error)
}

func (m *MockOrderStorage) Create(ctx context.Context, order *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderStorage) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, ErrOrderNotFound
}

func (m *MockOrderStorage) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, page, pageSize)
	}
	return []*models.Order{}, nil
}

func (m *MockOrderStorage) Filter(ctx context.Context, userID uuid.UUID, term string, page, pageSize int) ([]*models.Order, error) {
	if m.FilterFunc != nil {
		return m.FilterFunc(ctx, userID, term, page, pageSize)
	}
	return []*models.Order{}, nil
}

func (m *MockOrderStorage) Update(ctx context.Context, order *models.Order) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderStorage) MonthlyTotals(ctx context.Context, userID uuid.UUID) ([]models.MonthlyTotal, error) {
	if m.MonthlyTotalsFunc != nil {
		return m.MonthlyTotalsFunc(ctx, userID)
	}
	return []models.MonthlyTotal{}, nil
}
