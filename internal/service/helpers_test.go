package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/repository"
	"github.com/sirupsen/logrus"
)

var testNow = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*repository.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repository.NewRedisStore(client), mr
}

func newTestConfig() *config.Config {
	return &config.Config{
		LocationCurrentTTL:    time.Hour,
		LocationHistoryTTL:    24 * time.Hour,
		LocationHistoryMax:    1000,
		TrackingIdleTTL:       time.Hour,
		TrackingStartTTL:      24 * time.Hour,
		EmergencyRetention:    24 * time.Hour,
		ActiveEmergencyMax:    100,
		SMSDefaultCountryCode: "91",
	}
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func ptr[T any](v T) *T {
	return &v
}
