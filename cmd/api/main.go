package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/business-admin/internal/config"
	"github.com/business-admin/internal/database"
	"github.com/business-admin/internal/handler"
	"github.com/business-admin/internal/indicator"
	"github.com/business-admin/internal/middleware"
	"github.com/business-admin/internal/repository"
	"github.com/business-admin/internal/service"
)

func main() {
	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Подключение к БД
	db, dialect, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Запуск миграций
	if err := database.Migrate(sqlDB, dialect); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация репозиториев
	empRepo := repository.NewEmployeeRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	hoursRepo := repository.NewHourRecordRepository(db)
	adminRepo := repository.NewAdministratorRepository(db)
	indRepo := repository.NewIndicatorRepository(db)

	// Инициализация сервисов
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	credService := service.NewCredentialService(adminRepo, hasher, logger)
	empService := service.NewEmployeeService(empRepo, deptRepo, projectRepo, hoursRepo)
	deptService := service.NewDepartmentService(deptRepo, empRepo)
	projectService := service.NewProjectService(projectRepo)
	indClient := indicator.NewClient(cfg.Indicators.URL, cfg.Indicators.Timeout, logger)
	indService := service.NewIndicatorService(indClient, indRepo, cfg.Indicators.HistoryLimit, logger)

	// Администратор по умолчанию при первом запуске
	created, err := credService.EnsureDefaultAdministrator(context.Background())
	if err != nil {
		logger.Error("failed to create default administrator", slog.Any("error", err))
		os.Exit(1)
	}
	if created {
		fmt.Printf("Default administrator created: username %q, password %q. Change the password after the first login.\n",
			service.DefaultAdminUsername, service.DefaultAdminPassword)
	}

	// Инициализация хендлеров
	sessions := middleware.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authHandler := handler.NewAuthHandler(credService, sessions, logger)
	empHandler := handler.NewEmployeeHandler(empService, logger)
	deptHandler := handler.NewDepartmentHandler(deptService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	indHandler := handler.NewIndicatorHandler(indService, logger)

	// Настройка роутера
	router := handler.NewRouter(sessions, authHandler, empHandler, deptHandler, projectHandler, indHandler, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("database", cfg.Database.Driver),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}
