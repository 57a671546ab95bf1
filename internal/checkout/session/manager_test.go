package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Victamina15/billtracky-2/internal/clock"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager(clock.NewSystem(), zap.NewNop())

	id, c := m.Create()
	require.NotNil(t, c)

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	m := NewManager(clock.NewSystem(), zap.NewNop())

	id, _ := m.Create()
	m.Delete(id)

	_, ok := m.Get(id)
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestEvictIdleSessions(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))
	m := NewManager(fake, zap.NewNop())

	stale, _ := m.Create()
	fake.Advance(20 * time.Minute)
	fresh, _ := m.Create()
	fake.Advance(15 * time.Minute)

	// stale is 35 minutes idle, fresh only 15.
	m.evictIdle()

	_, ok := m.Get(stale)
	assert.False(t, ok)
	_, ok = m.Get(fresh)
	assert.True(t, ok)
}

func TestGetRefreshesIdleTimer(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))
	m := NewManager(fake, zap.NewNop())

	id, _ := m.Create()
	fake.Advance(25 * time.Minute)
	_, ok := m.Get(id)
	require.True(t, ok)

	fake.Advance(25 * time.Minute)
	m.evictIdle()

	_, ok = m.Get(id)
	assert.True(t, ok, "a touched session must not be evicted")
}
