package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testConfig(url string) *config.Config {
	return &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "topsecret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  10 * time.Millisecond,
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPublisher_PushesToQueue(t *testing.T) {
	mr, client := newTestRedis(t)
	publisher := NewRedisEscalationPublisher(client)

	err := publisher.Publish(context.Background(), EscalationEvent{
		Event:       EventEmergencyTriggered,
		EmergencyID: "e1",
		Status:      models.EmergencyStatusActive,
	})
	require.NoError(t, err)

	items, err := mr.List(escalationQueueKey)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var got EscalationEvent
	require.NoError(t, json.Unmarshal([]byte(items[0]), &got))
	assert.Equal(t, "e1", got.EmergencyID)
	assert.Equal(t, EventEmergencyTriggered, got.Event)
}

func TestWorker_DeliversSignedPayload(t *testing.T) {
	received := make(chan *http.Request, 1)
	bodies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- r
		bodies <- string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, client := newTestRedis(t)
	publisher := NewRedisEscalationPublisher(client)
	worker := NewWebhookWorker(client, quietLogger(), testConfig(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)

	require.NoError(t, publisher.Publish(ctx, EscalationEvent{Event: EventEmergencyTriggered, EmergencyID: "e1"}))

	select {
	case r := <-received:
		body := <-bodies
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, generateHMACSHA256(body, "topsecret"), r.Header.Get(signatureHeader))
		assert.Contains(t, body, `"emergency_id":"e1"`)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not delivered")
	}

	cancel()
	select {
	case <-worker.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorker_RetriesOnFailure(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, client := newTestRedis(t)
	worker := NewWebhookWorker(client, quietLogger(), testConfig(srv.URL))

	worker.deliver(context.Background(), EscalationEvent{EmergencyID: "e1"}, `{"emergency_id":"e1"}`)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestWorker_GivesUpAfterMaxRetries(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, client := newTestRedis(t)
	cfg := testConfig(srv.URL)
	cfg.WebhookMaxRetries = 2
	worker := NewWebhookWorker(client, quietLogger(), cfg)

	worker.deliver(context.Background(), EscalationEvent{EmergencyID: "e1"}, `{}`)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestWorker_SkipsWithoutURL(t *testing.T) {
	_, client := newTestRedis(t)
	worker := NewWebhookWorker(client, quietLogger(), testConfig(""))

	assert.NotPanics(t, func() {
		worker.deliver(context.Background(), EscalationEvent{EmergencyID: "e1"}, `{}`)
	})
}

func TestWorker_ShutdownInterruptsBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, client := newTestRedis(t)
	cfg := testConfig(srv.URL)
	cfg.WebhookBaseDelay = time.Hour
	worker := NewWebhookWorker(client, quietLogger(), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		worker.deliver(ctx, EscalationEvent{EmergencyID: "e1"}, `{}`)
		close(finished)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("deliver did not observe cancellation")
	}
}
