// Package session tracks in-progress carts by session id. Carts live in
// process memory only; an uncommitted cart older than the idle TTL is
// evicted.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Victamina15/billtracky-2/internal/cart"
	"github.com/Victamina15/billtracky-2/internal/clock"
)

const (
	defaultIdleTTL = 30 * time.Minute
	sweepInterval  = time.Minute
)

type entry struct {
	cart     *cart.Cart
	lastSeen time.Time
}

type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry

	ttl   time.Duration
	clock clock.Clock
	log   *zap.Logger
	stop  chan struct{}
	done  chan struct{}
}

func NewManager(clk clock.Clock, log *zap.Logger) *Manager {
	return &Manager{
		entries: make(map[string]*entry),
		ttl:     defaultIdleTTL,
		clock:   clk,
		log:     log.Named("checkout.session"),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Create opens a new session with an empty cart.
func (m *Manager) Create() (string, *cart.Cart) {
	id := uuid.NewString()
	c := cart.New()

	m.mu.Lock()
	m.entries[id] = &entry{cart: c, lastSeen: m.clock.Now()}
	m.mu.Unlock()
	return id, c
}

// Get returns the session's cart and refreshes its idle timer.
func (m *Manager) Get(id string) (*cart.Cart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.clock.Now()
	return e.cart, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Manager) evictIdle() {
	cutoff := m.clock.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, id)
			m.log.Debug("evicted idle checkout session", zap.String("session_id", id))
		}
	}
}

func (m *Manager) run() {
	defer close(m.done)
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stop:
			return
		}
	}
}

func registerHooks(lc fx.Lifecycle, m *Manager) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go m.run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(m.stop)
			select {
			case <-m.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

var Module = fx.Module("checkout.session",
	fx.Provide(NewManager),
	fx.Invoke(registerHooks),
)
