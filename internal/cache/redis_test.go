// SPDX-License-Identifier: MIT

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/cache"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *cache.Redis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := cache.NewRedis(cache.RedisOptions{Addr: mr.Addr()}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return mr, c
}

func TestNewRedis_FailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := cache.NewRedis(cache.RedisOptions{Addr: addr}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis connection failed")
}

func TestRedis_RoundTrip(t *testing.T) {
	_, c := newTestRedis(t)

	c.Set("PS_PUBLIC_STRINGS/Keywords", 0x8042, 5*time.Minute)

	id, ok := c.Get("PS_PUBLIC_STRINGS/Keywords")
	require.True(t, ok, "expected a hit")
	assert.Equal(t, uint16(0x8042), id)
}

func TestRedis_MissWhenAbsent(t *testing.T) {
	_, c := newTestRedis(t)

	id, ok := c.Get("never-stored")
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestRedis_EntriesExpire(t *testing.T) {
	mr, c := newTestRedis(t)

	c.Set("short-lived", 0x8001, 100*time.Millisecond)

	_, ok := c.Get("short-lived")
	require.True(t, ok, "expected a hit before expiry")

	mr.FastForward(200 * time.Millisecond)

	_, ok = c.Get("short-lived")
	assert.False(t, ok, "expected the entry to expire")
}

func TestRedis_ForeignValueReadsAsMiss(t *testing.T) {
	mr, c := newTestRedis(t)

	// A value written by something other than this cache must not poison
	// lookups.
	require.NoError(t, mr.Set("shared-key", "not-a-number"))

	id, ok := c.Get("shared-key")
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestRedis_HealthCheck(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.HealthCheck(ctx))

	mr.Close()
	assert.Error(t, c.HealthCheck(ctx), "expected the probe to fail once the server is gone")
}
