package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/parking_watchdog/internal/actiontoken"
	"github.com/shenikar/parking_watchdog/internal/config"
	v1 "github.com/shenikar/parking_watchdog/internal/handler/http/v1"
	"github.com/shenikar/parking_watchdog/internal/motion"
	"github.com/shenikar/parking_watchdog/internal/notifier"
	"github.com/shenikar/parking_watchdog/internal/repository"
	"github.com/shenikar/parking_watchdog/internal/service"
	"github.com/shenikar/parking_watchdog/internal/webhook"
	"github.com/shenikar/parking_watchdog/pkg/logger"
	"github.com/shenikar/parking_watchdog/pkg/postgres"
	redisclient "github.com/shenikar/parking_watchdog/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/parking_watchdog/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Parking Watchdog API
// @version 1.0
// @description Detects parking from location samples, asks the driver to check in and alerts the family when no answer arrives.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Каналы доставки уведомлений: push-шлюз и, если настроен, SES
	channels := []webhook.Channel{webhook.NewWebhookChannel(log, cfg)}
	emailChannel, err := webhook.NewEmailChannel(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to init email channel: %v", err)
	}
	if emailChannel != nil {
		channels = append(channels, emailChannel)
	}

	// Инициализация издателя и воркера уведомлений
	publisher := webhook.NewRedisPublisher(redisClient)
	notificationWorker := webhook.NewWorker(redisClient, log, cfg, channels...)
	notificationWorker.Start(ctx)

	// Инициализация репозиториев
	statusRepo := repository.NewStatusRepository(redisClient)
	familyRepo := repository.NewFamilyRepository(dbpool)
	checkInRepo := repository.NewCheckInRepository(dbpool)

	// Инициализация сервисов
	tokens := actiontoken.NewIssuer(cfg.ActionTokenSecret, cfg.ActionTokenTTL)
	escalation := notifier.New(publisher, familyRepo, tokens, log, cfg)
	tracker := motion.NewTracker(motion.NewClassifier(motion.ThresholdsFromConfig(cfg)))
	coordinator := service.NewCoordinator(statusRepo, familyRepo, escalation, checkInRepo, service.NewRealScheduler(), tracker, log, cfg)

	// Таймеры не переживают рестарт: восстанавливаем незакрытые запросы из журнала
	if _, err := coordinator.Recover(ctx); err != nil {
		log.WithError(err).Error("Failed to recover check-in requests, continuing without them")
	}

	watchdogService := service.NewWatchdogService(tracker, coordinator, statusRepo, familyRepo, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(watchdogService, tokens, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркер уведомлений
	cancel()

	log.Info("Server gracefully stopped")
}
