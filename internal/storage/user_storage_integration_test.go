//go:build integration
// +build integration

package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docelar/pedidos/internal/models"
)

func getTestDBPool(t *testing.T) *pgxpool.Pool {
	dbURI := os.Getenv("DATABASE_URI")
	if dbURI == "" {
		t.Skip("DATABASE_URI not set, skipping integration tests")
	}

	pool, err := pgxpool.New(context.Background(), dbURI)
	if err != nil {
		t.Fatalf("Unable to connect to database: %v", err)
	}

	return pool
}

func TestPostgresUserStorage_Create(t *testing.T) {
	pool := getTestDBPool(t)
	defer pool.Close()

	storage := NewPostgresUserStorage(pool)
	ctx := context.Background()

	t.Run("successful create", func(t *testing.T) {
		user := &models.User{
			ID:           uuid.New(),
			Email:        "test_" + uuid.New().String() + "@example.com",
			PasswordHash: "hashed_password",
		}

		err := storage.Create(ctx, user)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		// Проверяем, что пользователь создан
		retrieved, err := storage.GetByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}

		if retrieved.Email != user.Email {
			t.Errorf("Email mismatch: got %v, want %v", retrieved.Email, user.Email)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		email := "duplicate_" + uuid.New().String() + "@example.com"

		user1 := &models.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: "hash1",
		}

		err := storage.Create(ctx, user1)
		if err != nil {
			t.Fatalf("First Create() error = %v", err)
		}

		user2 := &models.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: "hash2",
		}

		err = storage.Create(ctx, user2)
		if err != ErrEmailExists {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})
}

func TestPostgresUserStorage_GetByEmail(t *testing.T) {
	pool := getTestDBPool(t)
	defer pool.Close()

	storage := NewPostgresUserStorage(pool)
	ctx := context.Background()

	// Создаем тестового пользователя
	user := &models.User{
		ID:           uuid.New(),
		Email:        "getbyemail_" + uuid.New().String() + "@example.com",
		PasswordHash: "hashed_password",
	}

	err := storage.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("existing user", func(t *testing.T) {
		retrieved, err := storage.GetByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}

		if retrieved.ID != user.ID {
			t.Errorf("ID mismatch: got %v, want %v", retrieved.ID, user.ID)
		}
	})

	t.Run("non-existing user", func(t *testing.T) {
		_, err := storage.GetByEmail(ctx, "nonexistent@example.com")
		if err != ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestPostgresUserStorage_GetByID(t *testing.T) {
	pool := getTestDBPool(t)
	defer pool.Close()

	storage := NewPostgresUserStorage(pool)
	ctx := context.Background()

	user := &models.User{
		ID:           uuid.New(),
		Email:        "getbyid_" + uuid.New().String() + "@example.com",
		PasswordHash: "hashed_password",
	}

	err := storage.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("existing user", func(t *testing.T) {
		retrieved, err := storage.GetByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}

		if retrieved.Email != user.Email {
			t.Errorf("Email mismatch: got %v, want %v", retrieved.Email, user.Email)
		}
	})

	t.Run("non-existing user", func(t *testing.T) {
		_, err := storage.GetByID(ctx, uuid.New())
		if err != ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
