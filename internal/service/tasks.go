package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/sirupsen/logrus"
)

// TaskGroup запускает фоновые задачи, которые не должны отменяться вместе
// с HTTP запросом. Паника в задаче перехватывается и превращается в ошибку.
type TaskGroup struct {
	wg      sync.WaitGroup
	logger  *logrus.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	onDone func(name string, err error)
}

func NewTaskGroup(logger *logrus.Logger, m *metrics.Metrics) *TaskGroup {
	return &TaskGroup{
		logger:  logger,
		metrics: m,
	}
}

// OnDone задает обработчик завершения задачи
func (g *TaskGroup) OnDone(fn func(name string, err error)) {
	g.mu.Lock()
	g.onDone = fn
	g.mu.Unlock()
}

// Go запускает fn в отдельной горутине. Контекст задачи сохраняет значения
// ctx, но не наследует его отмену.
func (g *TaskGroup) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	taskCtx := context.WithoutCancel(ctx)
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		start := time.Now()
		err := g.run(taskCtx, fn)

		log := g.logger.WithFields(logrus.Fields{
			"task":     name,
			"duration": time.Since(start),
		})
		if err != nil {
			log.WithError(err).Warn("Background task finished with error")
		} else {
			log.Debug("Background task finished")
		}
		g.metrics.TaskFinished(name, err)

		g.mu.Lock()
		onDone := g.onDone
		g.mu.Unlock()
		if onDone != nil {
			onDone(name, err)
		}
	}()
}

func (g *TaskGroup) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in background task: %v", r)
		}
	}()
	return fn(ctx)
}

// Wait блокируется до завершения всех запущенных задач
func (g *TaskGroup) Wait() {
	g.wg.Wait()
}

// WaitTimeout ждет задачи не дольше d. false - если время вышло.
func (g *TaskGroup) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
