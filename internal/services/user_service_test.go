package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docelar/pedidos/internal/auth"
	"github.com/docelar/pedidos/internal/models"
	"github.com/docelar/pedidos/internal/storage"
)

const testSecret = "test-secret"

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		var created *models.User
		svc := NewUserService(&storage.MockUserStorage{
			CreateFunc: func(ctx context.Context, user *models.User) error {
				created = user
				return nil
			},
		}, testSecret, time.Hour)

		user, token, err := svc.Register(ctx, "ana@example.com", "secret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Error("expected token")
		}
		if created == nil || created.Email != "ana@example.com" {
			t.Fatalf("unexpected stored user: %+v", created)
		}
		if created.PasswordHash == "secret123" {
			t.Error("password must be hashed")
		}
		if user.ID != created.ID {
			t.Error("expected returned user to match stored user")
		}

		claims, err := auth.ValidateToken(token, testSecret)
		if err != nil {
			t.Fatalf("token does not validate: %v", err)
		}
		if claims.Email != "ana@example.com" {
			t.Errorf("unexpected email in claims: %q", claims.Email)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := NewUserService(&storage.MockUserStorage{}, testSecret, time.Hour)

		if _, _, err := svc.Register(ctx, "", "secret123"); !errors.Is(err, ErrEmptyCredentials) {
			t.Fatalf("expected ErrEmptyCredentials, got %v", err)
		}
		if _, _, err := svc.Register(ctx, "ana@example.com", ""); !errors.Is(err, ErrEmptyCredentials) {
			t.Fatalf("expected ErrEmptyCredentials, got %v", err)
		}
	})

	t.Run("email already taken", func(t *testing.T) {
		svc := NewUserService(&storage.MockUserStorage{
			CreateFunc: func(ctx context.Context, user *models.User) error {
				return storage.ErrEmailExists
			},
		}, testSecret, time.Hour)

		if _, _, err := svc.Register(ctx, "ana@example.com", "secret123"); !errors.Is(err, storage.ErrEmailExists) {
			t.Fatalf("expected ErrEmailExists, got %v", err)
		}
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	stored := &models.User{Email: "ana@example.com", PasswordHash: hash}

	t.Run("successful login", func(t *testing.T) {
		svc := NewUserService(&storage.MockUserStorage{
			GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				if email != "ana@example.com" {
					t.Errorf("unexpected email: %q", email)
				}
				return stored, nil
			},
		}, testSecret, time.Hour)

		user, token, err := svc.Login(ctx, "ana@example.com", "secret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Error("expected token")
		}
		if user.Email != "ana@example.com" {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewUserService(&storage.MockUserStorage{
			GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return stored, nil
			},
		}, testSecret, time.Hour)

		if _, _, err := svc.Login(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewUserService(&storage.MockUserStorage{
			GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return nil, storage.ErrUserNotFound
			},
		}, testSecret, time.Hour)

		if _, _, err := svc.Login(ctx, "ghost@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := NewUserService(&storage.MockUserStorage{}, testSecret, time.Hour)

		if _, _, err := svc.Login(ctx, "ana@example.com", ""); !errors.Is(err, ErrEmptyCredentials) {
			t.Fatalf("expected ErrEmptyCredentials, got %v", err)
		}
	})
}
