package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shenikar/tourist_safety/internal/broadcast"
	"github.com/shenikar/tourist_safety/internal/config"
	v1 "github.com/shenikar/tourist_safety/internal/handler/http/v1"
	"github.com/shenikar/tourist_safety/internal/identity"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/repository"
	"github.com/shenikar/tourist_safety/internal/service"
	"github.com/shenikar/tourist_safety/internal/sms"
	"github.com/shenikar/tourist_safety/internal/webhook"
	"github.com/shenikar/tourist_safety/pkg/logger"
	"github.com/shenikar/tourist_safety/pkg/postgres"
	redisclient "github.com/shenikar/tourist_safety/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/tourist_safety/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	shutdownTimeout = 5 * time.Second
	drainTimeout    = 10 * time.Second
)

// @title Tourist Safety API
// @version 1.0
// @description Real-time location tracking and emergency coordination for tourists.
// @host localhost:8000
// @BasePath /api/v1
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.AppEnv)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appMetrics := metrics.New()

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	store := repository.NewRedisStore(redisClient)

	// Хранилище пользователей необязательно: без него тревоги создаются без контактов
	var directory service.ContactDirectory = identity.NullDirectory{}
	if cfg.IdentityDatabaseURL != "" {
		dbpool, err := postgres.NewPool(ctx, cfg.IdentityDatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to identity database: %v", err)
		}
		defer dbpool.Close()
		directory = identity.NewPostgresDirectory(dbpool, cfg.SMSDefaultCountryCode, log)
		log.Info("Successfully connected to identity database")
	} else {
		log.Warn("IDENTITY_DATABASE_URL is not set, emergency contacts are unavailable")
	}

	var gateway service.SMSGateway
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		gateway, err = sms.NewTwilioGateway(cfg, log)
		if err != nil {
			log.Fatalf("Failed to configure SMS gateway: %v", err)
		}
		log.Info("Twilio SMS gateway configured")
	} else {
		log.Warn("Twilio is not configured, SMS notifications are disabled")
	}

	// Инициализация издателя и воркера вебхуков эскалации
	escalations := webhook.NewRedisEscalationPublisher(redisClient)
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	hub := broadcast.NewHub(log, appMetrics)
	tasks := service.NewTaskGroup(log, appMetrics)

	// Инициализация сервисов
	locationService := service.NewLocationService(store, hub, cfg, log, appMetrics)
	notificationService := service.NewNotificationService(gateway, cfg, log, appMetrics)
	emergencyService := service.NewEmergencyService(service.EmergencyDeps{
		Store:       store,
		Tours:       locationService,
		Directory:   directory,
		Notifier:    notificationService,
		Broadcaster: hub,
		Escalations: escalations,
		Tasks:       tasks,
	}, cfg, log, appMetrics)

	eventRouter := broadcast.NewEventRouter(hub, locationService, emergencyService, broadcast.ClientOptions{
		SendBuffer:     cfg.WSSendBuffer,
		PingInterval:   cfg.WSPingInterval,
		PongWait:       cfg.WSPongWait,
		MaxMessageSize: cfg.WSMaxMessageSize,
	}, cfg.WSAllowedOrigins, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(locationService, emergencyService, eventRouter, store, hub, log, cfg)

	rateLimit, err := v1.RateLimitMiddleware(cfg.RateLimit, log)
	if err != nil {
		log.Fatalf("Failed to configure rate limiter: %v", err)
	}

	// Настройка Gin роутера
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(appMetrics.Middleware())
	api := router.Group(cfg.APIPrefix)
	api.Use(rateLimit)
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(appMetrics.Handler()))

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// WebSocket-соединения после апгрейда не закрываются srv.Shutdown
	hub.Close()

	if !tasks.WaitTimeout(drainTimeout) {
		log.Warn("Background tasks did not finish before shutdown timeout")
	}

	cancel()
	select {
	case <-webhookWorker.Done():
	case <-time.After(shutdownTimeout):
		log.Warn("Webhook worker did not stop in time")
	}

	log.Info("Server gracefully stopped")
}
