package mocks

import (
	"context"
	"hotelres/infras/otel"
)

// otelImpl is a tracer that never records, for unit tests.
type otelImpl struct{}

func (otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (otelImpl) Shutdown(context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return otelImpl{}
}
