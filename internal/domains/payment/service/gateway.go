package service

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=../mocks/gateway_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelres/config"
	"hotelres/infras/otel"
	bookingModel "hotelres/internal/domains/booking/model"
	"hotelres/internal/domains/payment/model"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"hotelres/shared/timezone"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	transactionPrefix    = "TXN-"
	transactionSuffixLen = 12
)

// Gateway charges a booking. A refused charge is a PaymentDeclined failure.
type Gateway interface {
	Charge(ctx context.Context, booking bookingModel.Booking, method model.Method, fields model.Fields) (model.Result, error)
}

type simulatedGateway struct {
	latency       time.Duration
	declinedCards []string
	otel          otel.Otel
	now           func() time.Time
}

// NewSimulated returns a gateway that approves every charge after a fixed
// delay, except for card numbers listed in PAYMENT_DECLINED_CARDS.
func NewSimulated(cfg *config.Config, otel otel.Otel) Gateway {
	return NewSimulatedWithClock(cfg, otel, timezone.Now)
}

// NewSimulatedWithClock is NewSimulated with a fixed time source, for tests.
func NewSimulatedWithClock(cfg *config.Config, otel otel.Otel, now func() time.Time) Gateway {
	declined := make([]string, 0, len(cfg.Payment.DeclinedCards))
	for _, card := range cfg.Payment.DeclinedCards {
		declined = append(declined, normalizeCardNumber(card))
	}

	return &simulatedGateway{
		latency:       time.Duration(cfg.Payment.SimulatedLatencyMillis) * time.Millisecond,
		declinedCards: declined,
		otel:          otel,
		now:           now,
	}
}

func (g *simulatedGateway) Charge(ctx context.Context, booking bookingModel.Booking, method model.Method, fields model.Fields) (res model.Result, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Charge")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("payment.method", string(method))
	scope.SetAttribute("payment.amount", booking.Total())

	if !method.IsValid() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unsupported payment method %q", method))
	}

	timer := time.NewTimer(g.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return res, fmt.Errorf("failed to charge booking %s: %w", booking.ID, ctx.Err())
	case <-timer.C:
	}

	if method == model.MethodCreditCard && slices.Contains(g.declinedCards, normalizeCardNumber(fields.CardNumber)) {
		log.Warn().Str("booking_id", booking.ID).Msg("card declined by simulated gateway")

		return res, failure.PaymentDeclined("Payment failed. Please try again or use a different payment method.")
	}

	now := g.now()

	return model.Result{
		TransactionID: newTransactionID(now),
		Amount:        booking.Total(),
		Method:        method,
		Timestamp:     now,
		Success:       true,
	}, nil
}

// newTransactionID keeps the millisecond prefix readable. The random suffix
// separates charges made in the same millisecond.
func newTransactionID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", constant.Empty))[:transactionSuffixLen]

	return fmt.Sprintf("%s%d-%s", transactionPrefix, now.UnixMilli(), suffix)
}

func normalizeCardNumber(number string) string {
	return strings.Join(strings.Fields(number), constant.Empty)
}
