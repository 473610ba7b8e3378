package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/docelar/pedidos/internal/models"
	"github.com/docelar/pedidos/internal/utils"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// DefaultPageSize - размер страницы списков заказов.
const DefaultPageSize = 10

// OrderStorage определяет интерфейс для работы с заказами.
// userID передаётся явным параметром в каждую операцию чтения и
// обновления: выборка без владельца невозможна.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Order, error)
	Filter(ctx context.Context, userID uuid.UUID, term string, page, pageSize int) ([]*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	MonthlyTotals(ctx context.Context, userID uuid.UUID) ([]models.MonthlyTotal, error)
}

// PostgresOrderStorage реализует OrderStorage для PostgreSQL.
type PostgresOrderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStorage создаёт новый экземпляр PostgresOrderStorage.
func NewPostgresOrderStorage(pool *pgxpool.Pool) *PostgresOrderStorage {
	return &PostgresOrderStorage{pool: pool}
}

const orderColumns = `id, user_id, full_name, phone, details, delivery_type, delivery_address,
		delivery_date, delivery_time, order_value, payment_method, paid, status,
		cancellation_reason, created_at, updated_at`

// Create создаёт новый заказ. id, created_at и updated_at назначает база.
func (s *PostgresOrderStorage) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, full_name, phone, details, delivery_type, delivery_address,
			delivery_date, delivery_time, order_value, payment_method, paid, status,
			cancellation_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		order.UserID,
		order.FullName,
		order.Phone,
		order.Details,
		order.DeliveryType,
		order.DeliveryAddress,
		order.DeliveryDate,
		order.DeliveryTime,
		order.OrderValue,
		order.PaymentMethod,
		order.Paid,
		order.Status,
		order.CancellationReason,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID возвращает заказ по идентификатору. Выборка всегда
// фильтруется и по id, и по владельцу.
func (s *PostgresOrderStorage) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	return scanOrder(s.pool.QueryRow(ctx, query, id, userID))
}

// List возвращает страницу заказов пользователя (сортировка по created_at DESC).
func (s *PostgresOrderStorage) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := s.pool.Query(ctx, query, userID, offset(page, pageSize), pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// Filter возвращает страницу заказов, у которых имя содержит term без
// учёта регистра либо телефон содержит цифры из term. Пустой term
// работает как List.
func (s *PostgresOrderStorage) Filter(ctx context.Context, userID uuid.UUID, term string, page, pageSize int) ([]*models.Order, error) {
	if term == "" {
		return s.List(ctx, userID, page, pageSize)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		  AND (full_name ILIKE '%' || $2 || '%' OR ($3 <> '' AND phone LIKE '%' || $3 || '%'))
		ORDER BY created_at DESC
		OFFSET $4 LIMIT $5
	`

	normalizedPhone := utils.NormalizePhone(term)
	rows, err := s.pool.Query(ctx, query, userID, escapeLike(term), normalizedPhone, offset(page, pageSize), pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to filter orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// Update сохраняет изменённый заказ. id, user_id и created_at не
// переназначаются; updated_at обновляется.
func (s *PostgresOrderStorage) Update(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET full_name = $1, phone = $2, details = $3, delivery_type = $4,
			delivery_address = $5, delivery_date = $6, delivery_time = $7,
			order_value = $8, payment_method = $9, paid = $10, status = $11,
			cancellation_reason = $12, updated_at = NOW()
		WHERE id = $13 AND user_id = $14
		RETURNING updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		order.FullName,
		order.Phone,
		order.Details,
		order.DeliveryType,
		order.DeliveryAddress,
		order.DeliveryDate,
		order.DeliveryTime,
		order.OrderValue,
		order.PaymentMethod,
		order.Paid,
		order.Status,
		order.CancellationReason,
		order.ID,
		order.UserID,
	).Scan(&order.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// MonthlyTotals возвращает суммы продаж пользователя по календарным
// месяцам created_at, по возрастанию ключа "YYYY-MM".
func (s *PostgresOrderStorage) MonthlyTotals(ctx context.Context, userID uuid.UUID) ([]models.MonthlyTotal, error) {
	query := `
		SELECT to_char(created_at, 'YYYY-MM') AS month, COALESCE(SUM(order_value), 0) AS total_sales
		FROM orders
		WHERE user_id = $1
		GROUP BY to_char(created_at, 'YYYY-MM')
		ORDER BY month ASC
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []models.MonthlyTotal
	for rows.Next() {
		var t models.MonthlyTotal
		var sum decimal.Decimal
		if err := rows.Scan(&t.Month, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		t.TotalSales = sum
		totals = append(totals, t)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return totals, nil
}

// escapeLike экранирует метасимволы LIKE/ILIKE, чтобы term
// сопоставлялся как буквальная подстрока.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// offset вычисляет смещение для skip/take пагинации.
func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// collectOrders читает все заказы из результата запроса.
func collectOrders(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return orders, nil
}

// scanOrder помогает читать заказ из строки результата.
func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.FullName,
		&order.Phone,
		&order.Details,
		&order.DeliveryType,
		&order.DeliveryAddress,
		&order.DeliveryDate,
		&order.DeliveryTime,
		&order.OrderValue,
		&order.PaymentMethod,
		&order.Paid,
		&order.Status,
		&order.CancellationReason,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	return &order, nil
}
