package otel_test

import (
	"context"
	"errors"
	"hotelres/infras/otel"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type state string

func (s state) String() string { return "state:" + string(s) }

func record(t *testing.T, use func(scope otel.Scope)) trace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "checkout.Pay")
	scope := otel.NewScope(span)
	use(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func attributes(span trace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	values := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		values[kv.Key] = kv.Value
	}

	return values
}

func TestScope_Attributes(t *testing.T) {
	paidAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	span := record(t, func(scope otel.Scope) {
		scope.SetAttribute("booking.total", int64(41920))
		scope.SetAttribute("booking.nights", 2)
		scope.SetAttribute("payment.method", "gcash")
		scope.SetAttributes(map[string]any{
			"checkout.auth_required": true,
			"checkout.state":         state("paying"),
			"payment.paid_at":        paidAt,
			"payment.latency":        1500 * time.Millisecond,
			"booking.rooms":          []string{"2 × Deluxe"},
			"booking.ratio":          0.5,
			"booking.guest":          struct{ Name string }{Name: "John"},
		})
	})

	got := attributes(span)

	assert.Equal(t, int64(41920), got["booking.total"].AsInt64())
	assert.Equal(t, int64(2), got["booking.nights"].AsInt64())
	assert.Equal(t, "gcash", got["payment.method"].AsString())
	assert.True(t, got["checkout.auth_required"].AsBool())
	assert.Equal(t, "state:paying", got["checkout.state"].AsString())
	assert.Equal(t, "2024-06-01T09:30:00Z", got["payment.paid_at"].AsString())
	assert.Equal(t, int64(1500), got["payment.latency"].AsInt64())
	assert.Equal(t, []string{"2 × Deluxe"}, got["booking.rooms"].AsStringSlice())
	assert.InDelta(t, 0.5, got["booking.ratio"].AsFloat64(), 0.0001)
	assert.Equal(t, "{John}", got["booking.guest"].AsString())
}

func TestScope_Errors(t *testing.T) {
	t.Run("error marks the span", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("payment declined"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "payment declined", span.Status().Description)
		require.Len(t, span.Events(), 1)
		assert.Equal(t, "exception", span.Events()[0].Name)
	})

	t.Run("nil leaves the span untouched", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
			scope.TraceError(nil)
			scope.AddEvent("Booking confirmed")
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		require.Len(t, span.Events(), 1)
		assert.Equal(t, "Booking confirmed", span.Events()[0].Name)
	})
}
