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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/disaster_watch/internal/alerting"
	"github.com/shenikar/disaster_watch/internal/config"
	v1 "github.com/shenikar/disaster_watch/internal/handler/http/v1"
	"github.com/shenikar/disaster_watch/internal/repository"
	"github.com/shenikar/disaster_watch/internal/service"
	"github.com/shenikar/disaster_watch/pkg/logger"
	"github.com/shenikar/disaster_watch/pkg/postgres"
	redisclient "github.com/shenikar/disaster_watch/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/disaster_watch/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Disaster Watch API
// @version 1.0
// @description Incidents, alerts and analytics for the disaster monitoring dashboard.
// @host localhost:8080
// @BasePath /api
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.WithField("source", cfg.MigrationsPath).Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
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

func newRouter(cfg *config.Config, log *logrus.Logger, handler *v1.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), v1.RequestLoggerMiddleware(log))

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	router.Use(cors.New(corsCfg))

	api := router.Group("/api")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
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
	version, err := postgres.PostGISVersion(ctx, dbpool)
	if err != nil {
		log.Fatalf("PostGIS is not available: %v", err)
	}
	log.WithField("postgis", version).Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
	alertRepo := repository.NewAlertRepository(dbpool)
	analyticsRepo := repository.NewAnalyticsRepository(dbpool, redisClient, cfg.AnalyticsCacheTTL)

	// Очередь запросов на оповещения
	alertPublisher := alerting.NewRedisAlertPublisher(redisClient)

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, log, cfg, alertPublisher)
	alertService := service.NewAlertService(alertRepo, incidentRepo, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, log, cfg)

	// Воркер оповещений использует сервис оповещений как генератор
	alertWorker := alerting.NewAlertWorker(redisClient, alertService, log, cfg)
	alertWorker.Start(ctx)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, alertService, analyticsService, alertWorker, log, cfg)

	if strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg, log, handler)

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// Останавливаем воркер до закрытия Redis
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
