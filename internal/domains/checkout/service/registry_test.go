package service_test

import (
	"context"
	"hotelres/config"
	otelMocks "hotelres/infras/otel/mocks"
	"hotelres/internal/domains/checkout/service"
	paymentMocks "hotelres/internal/domains/payment/mocks"
	"hotelres/shared/failure"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newRegistry(t *testing.T, ttlSeconds int) (service.Registry, *clock) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.Checkout.IdleTTLSeconds = ttlSeconds
	cfg.Checkout.PaymentTimeoutSeconds = 30
	c := &clock{now: fixedNow}

	return service.NewRegistryWithClock(cfg, testCatalog(t), paymentMocks.NewMockGateway(ctrl), otelMocks.NewOtel(), nil, c.Now), c
}

func TestRegistry_CreateAndGet(t *testing.T) {
	registry, _ := newRegistry(t, 3600)

	first := registry.Create()
	second := registry.Create()
	assert.NotEqual(t, first.ID(), second.ID())

	got, err := registry.Get(first.ID())
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = registry.Get("missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRegistry_Sweep(t *testing.T) {
	registry, c := newRegistry(t, 60)

	stale := registry.Create()
	c.Advance(45 * time.Second)

	active := registry.Create()
	c.Advance(30 * time.Second)
	require.NoError(t, active.SetGuestCount(2))

	assert.Equal(t, 1, registry.Sweep())

	_, err := registry.Get(stale.ID())
	assert.Error(t, err)

	_, err = registry.Get(active.ID())
	assert.NoError(t, err)
}

func TestRegistry_ZeroTTLKeepsEverything(t *testing.T) {
	registry, c := newRegistry(t, 0)

	m := registry.Create()
	c.Advance(24 * time.Hour)

	assert.Zero(t, registry.Sweep())

	_, err := registry.Get(m.ID())
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	registry.Run(ctx)
}

func TestRegistry_RunStopsWithContext(t *testing.T) {
	registry, _ := newRegistry(t, 60)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	go func() {
		registry.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
