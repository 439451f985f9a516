package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"rebalancer/internal/provider"
	"rebalancer/internal/provider/providertest"
	"rebalancer/internal/provider/ratelimit"
)

var (
	_ ratelimit.Limiter = (*ratelimit.TokenBucket)(nil)
	_ ratelimit.Limiter = (*ratelimit.MinInterval)(nil)
	_ ratelimit.Limiter = ratelimit.Chain(nil)
	_ provider.Provider = (*ratelimit.Provider)(nil)
	_ provider.Checker  = (*ratelimit.Checker)(nil)
)

func TestTokenBucket_BurstThenBlocks(t *testing.T) {
	t.Parallel()

	// Arrange: effectively no refill
	tb := ratelimit.NewTokenBucket(0.001, 2)

	// Act + Assert: the burst is available at once
	require.NoError(t, tb.Wait(t.Context()))
	require.NoError(t, tb.Wait(t.Context()))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, tb.Wait(ctx), context.DeadlineExceeded)
}

func TestTokenBucket_Refills(t *testing.T) {
	t.Parallel()

	tb := ratelimit.NewTokenBucket(100, 1)
	require.NoError(t, tb.Wait(t.Context()))

	start := time.Now()
	require.NoError(t, tb.Wait(t.Context()))
	require.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestPerMinute(t *testing.T) {
	t.Parallel()

	tb := ratelimit.PerMinute(8, 8)
	for range 8 {
		require.NoError(t, tb.Wait(t.Context()))
	}
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, tb.Wait(ctx))
}

func TestMinInterval_SpacesCalls(t *testing.T) {
	t.Parallel()

	m := ratelimit.NewMinInterval(30 * time.Millisecond)

	start := time.Now()
	require.NoError(t, m.Wait(t.Context()))
	require.NoError(t, m.Wait(t.Context()))
	require.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestMinInterval_Canceled(t *testing.T) {
	t.Parallel()

	m := ratelimit.NewMinInterval(time.Hour)
	require.NoError(t, m.Wait(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, m.Wait(ctx), context.Canceled)
}

func TestMinInterval_ZeroIsOpen(t *testing.T) {
	t.Parallel()

	m := ratelimit.NewMinInterval(0)
	for range 3 {
		require.NoError(t, m.Wait(t.Context()))
	}
}

func TestProvider_WaitErrorSkipsUpstream(t *testing.T) {
	t.Parallel()

	// Arrange: a mock provider that must never be called
	ctrl := gomock.NewController(t)
	upstream := providertest.NewMockProvider(ctrl)
	upstream.EXPECT().Fetch(gomock.Any(), gomock.Any()).Times(0)

	tb := ratelimit.NewTokenBucket(0.001, 1)
	require.NoError(t, tb.Wait(t.Context()))

	p := &ratelimit.Provider{P: upstream, L: tb}

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	// Act
	quotes, err := p.Fetch(ctx, []string{"VOO"})

	// Assert
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Nil(t, quotes)
}

func TestProvider_PassesThrough(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := providertest.NewMockProvider(ctrl)
	upstream.EXPECT().Name().Return("Yahoo")
	upstream.EXPECT().
		Fetch(gomock.Any(), []string{"VOO"}).
		Return(map[string]provider.Quote{"VOO": {Symbol: "VOO"}}, nil)

	p := &ratelimit.Provider{P: upstream, L: ratelimit.NewTokenBucket(10, 1)}
	require.Equal(t, "Yahoo", p.Name())

	quotes, err := p.Fetch(t.Context(), []string{"VOO"})
	require.NoError(t, err)
	require.Contains(t, quotes, "VOO")
}

func TestChecker_SharesLimiter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := providertest.NewMockProvider(ctrl)
	checker := providertest.NewMockChecker(ctrl)

	upstream.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(map[string]provider.Quote{}, nil)
	checker.EXPECT().Check(gomock.Any(), gomock.Any()).Times(0)

	// one token for both wrappers
	tb := ratelimit.NewTokenBucket(0.001, 1)
	p := &ratelimit.Provider{P: upstream, L: tb}
	c := &ratelimit.Checker{C: checker, L: tb}

	_, err := p.Fetch(t.Context(), []string{"VOO"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	ok, err := c.Check(ctx, "VOO")
	require.Error(t, err)
	require.False(t, ok)
}

func TestChain_AppliesAll(t *testing.T) {
	t.Parallel()

	tb := ratelimit.NewTokenBucket(0.001, 1)
	chain := ratelimit.Chain{nil, ratelimit.NewMinInterval(0), tb}

	require.NoError(t, chain.Wait(t.Context()))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, chain.Wait(ctx))
}
