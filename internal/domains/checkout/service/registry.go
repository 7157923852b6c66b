package service

import (
	"context"
	"hotelres/config"
	"hotelres/infras/metrics"
	"hotelres/infras/otel"
	catalogService "hotelres/internal/domains/catalog/service"
	paymentService "hotelres/internal/domains/payment/service"
	"hotelres/shared/failure"
	"hotelres/shared/timezone"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const minSweepInterval = time.Second

// Registry holds the live checkouts of the process.
type Registry interface {
	Create() *Machine
	Get(id string) (*Machine, error)
	Sweep() int
	Run(ctx context.Context)
}

type registryImpl struct {
	catalog        catalogService.Catalog
	gateway        paymentService.Gateway
	otel           otel.Otel
	metrics        *metrics.Metrics
	paymentTimeout time.Duration
	idleTTL        time.Duration
	now            func() time.Time

	mu       sync.RWMutex
	machines map[string]*Machine
}

func NewRegistry(
	cfg *config.Config,
	catalog catalogService.Catalog,
	gateway paymentService.Gateway,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Registry {
	return NewRegistryWithClock(cfg, catalog, gateway, otel, metrics, timezone.Now)
}

// NewRegistryWithClock is NewRegistry with a fixed time source, for tests.
func NewRegistryWithClock(
	cfg *config.Config,
	catalog catalogService.Catalog,
	gateway paymentService.Gateway,
	otel otel.Otel,
	metrics *metrics.Metrics,
	now func() time.Time,
) Registry {
	return &registryImpl{
		catalog:        catalog,
		gateway:        gateway,
		otel:           otel,
		metrics:        metrics,
		paymentTimeout: time.Duration(cfg.Checkout.PaymentTimeoutSeconds) * time.Second,
		idleTTL:        time.Duration(cfg.Checkout.IdleTTLSeconds) * time.Second,
		now:            now,
		machines:       make(map[string]*Machine),
	}
}

func (r *registryImpl) Create() *Machine {
	machine := NewMachine(uuid.NewString(), r.catalog, r.gateway, r.otel, r.metrics, r.paymentTimeout, r.now)

	r.mu.Lock()
	r.machines[machine.ID()] = machine
	r.metrics.SetActiveCheckouts(len(r.machines))
	r.mu.Unlock()

	log.Debug().Str("checkout_id", machine.ID()).Msg("checkout created")

	return machine
}

func (r *registryImpl) Get(id string) (*Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	machine, ok := r.machines[id]
	if !ok {
		return nil, failure.NotFound("checkout not found")
	}

	return machine, nil
}

// Sweep drops machines idle for longer than the TTL and returns how many went.
// A zero TTL keeps every machine.
func (r *registryImpl) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}

	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0

	for id, machine := range r.machines {
		since, idle := machine.IdleSince()
		if idle && since.Before(cutoff) {
			delete(r.machines, id)

			removed++
		}
	}

	r.metrics.SetActiveCheckouts(len(r.machines))

	return removed
}

// Run sweeps until ctx is done.
func (r *registryImpl) Run(ctx context.Context) {
	if r.idleTTL <= 0 {
		log.Info().Msg("checkout expiry disabled")

		return
	}

	ticker := time.NewTicker(max(r.idleTTL/2, minSweepInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 {
				log.Info().Int("removed", removed).Msg("expired idle checkouts")
			}
		}
	}
}
