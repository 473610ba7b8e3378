package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docelar/pedidos/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// UserStorage определяет интерфейс для работы с пользователями.
type UserStorage interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PostgresUserStorage реализует UserStorage для PostgreSQL.
type PostgresUserStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStorage создаёт новый экземпляр PostgresUserStorage.
func NewPostgresUserStorage(pool *pgxpool.Pool) *PostgresUserStorage {
	return &PostgresUserStorage{pool: pool}
}

// Create создаёт нового пользователя.
func (s *PostgresUserStorage) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	// Генерируем UUID, если не задан
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := s.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// Проверка на уникальность email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail ищет пользователя по email.
func (s *PostgresUserStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// GetByID ищет пользователя по ID.
func (s *PostgresUserStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// scanUser помогает читать пользователя из строки результата.
func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
