package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestTaskGroup_DetachesCancellationKeepsValues(t *testing.T) {
	g := NewTaskGroup(newTestLogger(), nil)
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-1"))

	var gotValue any
	var gotErr error
	g.Go(ctx, "probe", func(ctx context.Context) error {
		cancel()
		gotValue = ctx.Value(ctxKey{})
		gotErr = ctx.Err()
		return nil
	})
	g.Wait()

	assert.Equal(t, "req-1", gotValue)
	assert.NoError(t, gotErr)
}

func TestTaskGroup_RecoversPanicAndReportsDone(t *testing.T) {
	g := NewTaskGroup(newTestLogger(), nil)

	var mu sync.Mutex
	results := map[string]error{}
	g.OnDone(func(name string, err error) {
		mu.Lock()
		results[name] = err
		mu.Unlock()
	})

	g.Go(context.Background(), "ok", func(context.Context) error { return nil })
	g.Go(context.Background(), "fails", func(context.Context) error { return errors.New("boom") })
	g.Go(context.Background(), "panics", func(context.Context) error { panic("kaboom") })
	g.Wait()

	require.Len(t, results, 3)
	assert.NoError(t, results["ok"])
	assert.EqualError(t, results["fails"], "boom")
	assert.ErrorContains(t, results["panics"], "kaboom")
}

func TestTaskGroup_WaitTimeout(t *testing.T) {
	g := NewTaskGroup(newTestLogger(), nil)
	release := make(chan struct{})
	g.Go(context.Background(), "slow", func(context.Context) error {
		<-release
		return nil
	})

	assert.False(t, g.WaitTimeout(20*time.Millisecond))
	close(release)
	assert.True(t, g.WaitTimeout(time.Second))
}
