package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabledLimiter(t *testing.T) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLimiter(rdb, true), mr
}

func TestLimiter_EnforcesBudget(t *testing.T) {
	l, _ := enabledLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "login", "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := l.Allow(ctx, "login", "ip:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request exceeds the limit")
}

func TestLimiter_SeparateKeys(t *testing.T) {
	l, _ := enabledLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.Allow(ctx, "login", "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
	}

	// Another caller and another resource are unaffected.
	allowed, err := l.Allow(ctx, "login", "ip:5.6.7.8", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = l.Allow(ctx, "register", "ip:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_WindowExpires(t *testing.T) {
	l, mr := enabledLimiter(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := l.Allow(ctx, "login", "ip:1.2.3.4", 2, time.Minute)
		require.NoError(t, err)
	}
	allowed, err := l.Allow(ctx, "login", "ip:1.2.3.4", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(2 * time.Minute)

	allowed, err = l.Allow(ctx, "login", "ip:1.2.3.4", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_DisabledPassesEverything(t *testing.T) {
	// nil client would error if the check were not bypassed.
	l := NewLimiter(nil, false)

	for i := 0; i < 5; i++ {
		allowed, err := l.Allow(context.Background(), "login", "ip:1.2.3.4", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestLimiter_EnabledWithoutRedisErrors(t *testing.T) {
	l := NewLimiter(nil, true)

	_, err := l.Allow(context.Background(), "login", "ip:1.2.3.4", 1, time.Minute)
	assert.Error(t, err)
}
