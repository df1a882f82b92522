package ports

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name  string
	err   error
	calls atomic.Int32
}

func (s *stubChecker) Name() string {
	return s.name
}

func (s *stubChecker) Check(context.Context) error {
	s.calls.Add(1)
	return s.err
}

// blockingChecker waits for cancellation or a fixed delay.
type blockingChecker struct {
	name  string
	delay time.Duration
}

func (b *blockingChecker) Name() string {
	return b.name
}

func (b *blockingChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(b.delay):
		return nil
	}
}

func TestRegister(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "quote-service"}))

	err := registry.Register(&stubChecker{name: "quote-service"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "quote-service")
	assert.Len(t, registry.checkers, 1)
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []*stubChecker
		wantStatus HealthStatus
		wantFailed map[string]string
	}{
		{
			name:       "no checkers is healthy",
			wantStatus: HealthStatusHealthy,
		},
		{
			name: "all healthy",
			checkers: []*stubChecker{
				{name: "quote-service"},
				{name: "quote-cache"},
			},
			wantStatus: HealthStatusHealthy,
		},
		{
			name: "one failure marks the whole result unhealthy",
			checkers: []*stubChecker{
				{name: "quote-service", err: errors.New("connection refused")},
				{name: "quote-cache"},
			},
			wantStatus: HealthStatusUnhealthy,
			wantFailed: map[string]string{"quote-service": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			require.NotNil(t, result)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Len(t, result.Checks, len(tt.checkers))
			assert.False(t, result.Timestamp.IsZero())

			for _, c := range tt.checkers {
				assert.Equal(t, int32(1), c.calls.Load())

				check := result.Checks[c.name]
				require.NotNil(t, check)

				if msg, failed := tt.wantFailed[c.name]; failed {
					assert.Equal(t, HealthStatusUnhealthy, check.Status)
					assert.Equal(t, msg, check.Message)
				} else {
					assert.Equal(t, HealthStatusHealthy, check.Status)
					assert.Empty(t, check.Message)
				}
			}
		})
	}
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&blockingChecker{name: "quote-service", delay: time.Second}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["quote-service"].Message, "context canceled")
}

func TestCheckAll_CheckTimeout(t *testing.T) {
	registry := NewHealthRegistry(WithCheckTimeout(10 * time.Millisecond))
	require.NoError(t, registry.Register(&blockingChecker{name: "quote-service", delay: time.Second}))
	require.NoError(t, registry.Register(&stubChecker{name: "quote-cache"}))

	start := time.Now()
	result := registry.CheckAll(context.Background())

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["quote-service"].Message, "deadline exceeded")
	assert.Equal(t, HealthStatusHealthy, result.Checks["quote-cache"].Status)
}
