package service

import (
	"context"
	"time"

	"github.com/shenikar/tourist_safety/internal/models"
)

// StateStore - эфемерное хранилище с TTL (реализация - repository.RedisStore)
type StateStore interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	PutIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	GetMany(ctx context.Context, keys []string) ([][]byte, error)
	Delete(ctx context.Context, key string) error
	ListPrepend(ctx context.Context, key string, value []byte, maxLen int, ttl time.Duration) error
	ListRemove(ctx context.Context, key string, value []byte) error
	ListRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
	ListLen(ctx context.Context, key string) (int64, error)
	ScanPrefix(ctx context.Context, prefix string) ([]string, error)
	Update(ctx context.Context, key string, ttl time.Duration, fn func(current []byte) ([]byte, error)) error
}

// Broadcaster публикует события в группы подписки (реализация - broadcast.Hub)
type Broadcaster interface {
	Publish(group, event string, payload any)
}

// ContactDirectory - внешнее хранилище пользователей. Для неизвестного
// пользователя возвращает nil, nil.
type ContactDirectory interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// SMSGateway отправляет одно SMS на номер в формате E.164
type SMSGateway interface {
	Send(ctx context.Context, to, body string) (*models.SMSReceipt, error)
}
