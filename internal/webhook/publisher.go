package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety/internal/models"
)

const (
	escalationQueueKey = "escalations:queue"
	// maxQueueLen ограничивает очередь, если получатель долго недоступен
	maxQueueLen = 1000
)

// Типы событий эскалации
const (
	EventEmergencyTriggered     = "emergency.triggered"
	EventEmergencyStatusChanged = "emergency.status_changed"
)

// EscalationEvent - событие для внешней системы диспетчеризации
type EscalationEvent struct {
	Event        string                 `json:"event"`
	EmergencyID  string                 `json:"emergency_id"`
	UserID       string                 `json:"user_id"`
	TourID       string                 `json:"tour_id"`
	Latitude     float64                `json:"latitude"`
	Longitude    float64                `json:"longitude"`
	Message      string                 `json:"message,omitempty"`
	Status       models.EmergencyStatus `json:"status"`
	ResponderID  string                 `json:"responder_id,omitempty"`
	ContactCount int                    `json:"contact_count"`
	Timestamp    time.Time              `json:"timestamp"`
}

// EscalationPublisher - интерфейс для публикации событий эскалации
type EscalationPublisher interface {
	Publish(ctx context.Context, event EscalationEvent) error
}

// RedisEscalationPublisher кладет события в список Redis, откуда их забирает WebhookWorker
type RedisEscalationPublisher struct {
	redisClient *redis.Client
}

func NewRedisEscalationPublisher(client *redis.Client) *RedisEscalationPublisher {
	return &RedisEscalationPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisEscalationPublisher) Publish(ctx context.Context, event EscalationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal escalation event: %w", err)
	}

	// LPUSH в голову, воркер забирает с хвоста через BRPOP
	_, err = p.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, escalationQueueKey, payload)
		pipe.LTrim(ctx, escalationQueueKey, 0, maxQueueLen-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish escalation event to Redis: %w", err)
	}
	return nil
}
