package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/docelar/pedidos/internal/models"
	"github.com/docelar/pedidos/internal/storage"
	"github.com/docelar/pedidos/internal/validation"
)

// OrderService определяет интерфейс работы с заказами.
type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error)
	GetByID(ctx context.Context, userID uuid.UUID, rawID string) ([]*models.Order, error)
	List(ctx context.Context, userID uuid.UUID, page int) ([]*models.Order, error)
	Filter(ctx context.Context, userID uuid.UUID, term string, page int) ([]*models.Order, error)
	Update(ctx context.Context, userID uuid.UUID, rawID string, req *models.UpdateOrderRequest) (*models.Order, error)
	MonthlyTotals(ctx context.Context, userID uuid.UUID) ([]models.MonthlyTotal, error)
}

// OrderServiceImpl реализует OrderService.
type OrderServiceImpl struct {
	orderStorage storage.OrderStorage
}

// NewOrderService создаёт новый сервис заказов.
func NewOrderService(orderStorage storage.OrderStorage) *OrderServiceImpl {
	return &OrderServiceImpl{orderStorage: orderStorage}
}

// Create валидирует запрос и создаёт заказ с значениями по умолчанию:
// статус New, способ оплаты Undefined, paid=false.
func (s *OrderServiceImpl) Create(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	if fields := validation.ValidateCreate(req); len(fields) > 0 {
		return nil, validation.NewError(fields)
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return nil, validation.NewError([]validation.FieldError{
			{Field: "deliveryDate", Message: "must match format 2006-01-02"},
		})
	}

	order := &models.Order{
		UserID:          userID,
		FullName:        req.FullName,
		Phone:           req.Phone,
		Details:         req.Details,
		DeliveryType:    models.DeliveryType(req.DeliveryType),
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    deliveryDate,
		DeliveryTime:    req.DeliveryTime,
		OrderValue:      decimal.NewFromFloat(req.OrderValue),
		PaymentMethod:   models.PaymentMethodUndefined,
		Paid:            false,
		Status:          models.OrderStatusNew,
	}

	if err := s.orderStorage.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

// GetByID возвращает заказ по идентификатору как коллекцию из нуля или
// одного элемента: отсутствие записи не считается ошибкой.
func (s *OrderServiceImpl) GetByID(ctx context.Context, userID uuid.UUID, rawID string) ([]*models.Order, error) {
	id, fields := validation.ParseID(rawID)
	if len(fields) > 0 {
		return nil, validation.NewError(fields)
	}

	order, err := s.orderStorage.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return []*models.Order{}, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return []*models.Order{order}, nil
}

// List возвращает страницу заказов пользователя.
func (s *OrderServiceImpl) List(ctx context.Context, userID uuid.UUID, page int) ([]*models.Order, error) {
	if page < 1 {
		page = 1
	}

	orders, err := s.orderStorage.List(ctx, userID, page, storage.DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

// Filter возвращает страницу заказов, отфильтрованную по term.
func (s *OrderServiceImpl) Filter(ctx context.Context, userID uuid.UUID, term string, page int) ([]*models.Order, error) {
	if page < 1 {
		page = 1
	}

	orders, err := s.orderStorage.Filter(ctx, userID, term, page, storage.DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("filter orders: %w", err)
	}

	return orders, nil
}

// Update валидирует частичное обновление, сливает переданные поля в
// существующий заказ и сохраняет результат. Пустое обновление
// возвращает заказ без изменений. Конфликт параллельных обновлений
// разрешается по принципу "последняя запись побеждает".
func (s *OrderServiceImpl) Update(ctx context.Context, userID uuid.UUID, rawID string, req *models.UpdateOrderRequest) (*models.Order, error) {
	id, fields := validation.ParseID(rawID)
	if len(fields) > 0 {
		return nil, validation.NewError(fields)
	}

	if fields := validation.ValidateUpdate(req); len(fields) > 0 {
		return nil, validation.NewError(fields)
	}

	order, err := s.orderStorage.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, storage.ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order for update: %w", err)
	}

	if req.IsEmpty() {
		return order, nil
	}

	if err := mergeOrder(order, req); err != nil {
		return nil, err
	}

	if err := s.orderStorage.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	return order, nil
}

// MonthlyTotals возвращает суммы продаж пользователя по месяцам.
func (s *OrderServiceImpl) MonthlyTotals(ctx context.Context, userID uuid.UUID) ([]models.MonthlyTotal, error) {
	totals, err := s.orderStorage.MonthlyTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}

	if totals == nil {
		totals = []models.MonthlyTotal{}
	}

	return totals, nil
}

// mergeOrder накладывает переданные поля частичного обновления на
// существующий заказ. id, userId и createdAt не меняются.
func mergeOrder(order *models.Order, req *models.UpdateOrderRequest) error {
	if req.FullName != nil {
		order.FullName = *req.FullName
	}
	if req.Phone != nil {
		order.Phone = *req.Phone
	}
	if req.Details != nil {
		order.Details = *req.Details
	}
	if req.DeliveryType != nil {
		order.DeliveryType = models.DeliveryType(*req.DeliveryType)
	}
	if req.DeliveryAddress != nil {
		order.DeliveryAddress = *req.DeliveryAddress
	}
	if req.DeliveryDate != nil {
		date, err := time.Parse("2006-01-02", *req.DeliveryDate)
		if err != nil {
			return validation.NewError([]validation.FieldError{
				{Field: "deliveryDate", Message: "must match format 2006-01-02"},
			})
		}
		order.DeliveryDate = date
	}
	if req.DeliveryTime != nil {
		order.DeliveryTime = *req.DeliveryTime
	}
	if req.OrderValue != nil {
		order.OrderValue = decimal.NewFromFloat(*req.OrderValue)
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = models.PaymentMethod(*req.PaymentMethod)
	}
	if req.Paid != nil {
		order.Paid = *req.Paid
	}
	if req.Status != nil {
		order.Status = models.OrderStatus(*req.Status)
	}
	if req.CancellationReason != nil {
		order.CancellationReason = *req.CancellationReason
	}
	return nil
}
