package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/docelar/pedidos/internal/auth"
	"github.com/docelar/pedidos/internal/config"
	"github.com/docelar/pedidos/internal/handlers"
	"github.com/docelar/pedidos/internal/migrations"
	"github.com/docelar/pedidos/internal/services"
	"github.com/docelar/pedidos/internal/storage"
)

// App структура для управления приложением и его зависимостями.
type App struct {
	cfg    *config.Config
	dbPool *pgxpool.Pool
	echo   *echo.Echo

	// Handlers
	userHandler  *handlers.UserHandler
	orderHandler *handlers.OrderHandler
	statsHandler *handlers.StatsHandler
}

// NewApp создаёт и инициализирует новое приложение.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		cfg: cfg,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initDependencies()
	app.initServer()

	return app, nil
}

// initDatabase инициализирует подключение к базе данных и выполняет миграции.
func (app *App) initDatabase(ctx context.Context) error {
	if app.cfg.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	// Применение миграций
	log.Println("Running database migrations...")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Migrations completed successfully")

	// Подключение к базе данных через pgxpool
	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	log.Println("Successfully connected to database")

	return nil
}

// initDependencies инициализирует все зависимости приложения (storage, services, handlers).
func (app *App) initDependencies() {
	// Storage layer
	userStorage := storage.NewPostgresUserStorage(app.dbPool)
	orderStorage := storage.NewPostgresOrderStorage(app.dbPool)

	// Service layer
	userService := services.NewUserService(userStorage, app.cfg.JWTSecret, app.cfg.TokenExpiration)
	orderService := services.NewOrderService(orderStorage)

	// Handler layer
	app.userHandler = handlers.NewUserHandler(userService)
	app.orderHandler = handlers.NewOrderHandler(orderService)
	app.statsHandler = handlers.NewStatsHandler(orderService)
}

// initServer инициализирует HTTP-сервер и настраивает маршруты.
func (app *App) initServer() {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	// Публичные маршруты (не требуют аутентификации)
	e.POST("/api/user/register", app.userHandler.Register)
	e.POST("/api/user/login", app.userHandler.Login)

	// Защищённые маршруты (требуют аутентификации)
	protected := e.Group("/api/orders")
	protected.Use(auth.JWTMiddleware(app.cfg.JWTSecret))
	protected.POST("", app.orderHandler.CreateOrder)
	protected.GET("", app.orderHandler.GetOrders)
	protected.GET("/filter", app.orderHandler.FilterOrders)
	protected.GET("/graphs/monthAmount", app.statsHandler.MonthAmount)
	protected.GET("/:id", app.orderHandler.GetOrderByID)
	protected.PUT("/:id", app.orderHandler.UpdateOrder)

	app.echo = e
}

// Start запускает приложение.
func (app *App) Start(ctx context.Context) error {
	log.Printf("Starting server on %s", app.cfg.RunAddress)
	if err := app.echo.Start(app.cfg.RunAddress); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// Shutdown корректно завершает работу приложения.
func (app *App) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	log.Println("Server gracefully stopped")
	return nil
}
