package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
)

type stubExecutor struct {
	calls int
}

func (s *stubExecutor) Execute(ctx context.Context, q *domain.DiscoveryQuery) (*domain.DiscoveryResult, error) {
	s.calls++
	return &domain.DiscoveryResult{TotalCount: 1}, nil
}

func TestLimitedExecutor_DelegatesWithinBurst(t *testing.T) {
	next := &stubExecutor{}
	executor := NewLimitedExecutor(next, 1, 2)

	for i := 0; i < 2; i++ {
		result, err := executor.Execute(context.Background(), &domain.DiscoveryQuery{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalCount)
	}
	assert.Equal(t, 2, next.calls)
}

func TestLimitedExecutor_ContextEndsWhileWaiting(t *testing.T) {
	next := &stubExecutor{}
	executor := NewLimitedExecutor(next, 0.001, 1)

	_, err := executor.Execute(context.Background(), &domain.DiscoveryQuery{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = executor.Execute(ctx, &domain.DiscoveryQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Equal(t, 1, next.calls)
}
