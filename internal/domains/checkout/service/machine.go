package service

import (
	"context"
	"errors"
	"hotelres/infras/metrics"
	"hotelres/infras/otel"
	authModel "hotelres/internal/domains/auth/model"
	bookingModel "hotelres/internal/domains/booking/model"
	bookingService "hotelres/internal/domains/booking/service"
	catalogService "hotelres/internal/domains/catalog/service"
	"hotelres/internal/domains/checkout/model"
	paymentModel "hotelres/internal/domains/payment/model"
	paymentService "hotelres/internal/domains/payment/service"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"hotelres/shared/logger"
	"hotelres/shared/timezone"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	actionEdit    = "edit the booking"
	noticeDecline = "Payment failed. Please try again or use a different payment method."
	noticeTimeout = "The payment provider did not respond in time. Please try again."
)

// Machine drives one guest through configure, pay and confirm.
//
// Every entry point is serialized. Pay releases the lock while the gateway is
// charging and marks the machine in flight, so any other mutation made in the
// meantime fails with TransitionInFlight instead of queueing behind it.
type Machine struct {
	id             string
	catalog        catalogService.Catalog
	gateway        paymentService.Gateway
	otel           otel.Otel
	metrics        *metrics.Metrics
	log            zerolog.Logger
	now            func() time.Time
	paymentTimeout time.Duration

	mu           sync.Mutex
	state        model.State
	draft        bookingModel.Draft
	breakdown    bookingModel.PriceBreakdown
	identity     authModel.Identity
	authRequired bool
	notice       string
	booking      *bookingModel.Booking
	result       *paymentModel.Result
	inFlight     bool
	updatedAt    time.Time
}

// NewMachine starts in Configuring with an empty draft. A zero paymentTimeout
// leaves the gateway call bounded only by ctx. metrics may be nil.
func NewMachine(
	id string,
	catalog catalogService.Catalog,
	gateway paymentService.Gateway,
	otel otel.Otel,
	metrics *metrics.Metrics,
	paymentTimeout time.Duration,
	now func() time.Time,
) *Machine {
	if now == nil {
		now = timezone.Now
	}

	m := &Machine{
		id:             id,
		catalog:        catalog,
		gateway:        gateway,
		otel:           otel,
		metrics:        metrics,
		log:            logger.ForCheckout(id),
		now:            now,
		paymentTimeout: paymentTimeout,
		state:          model.StateConfiguring,
		draft:          bookingModel.NewDraft(),
		updatedAt:      now(),
	}

	m.recompute()

	return m
}

func (m *Machine) ID() string {
	return m.id
}

// View returns copies, so callers may keep it after the machine moves on.
func (m *Machine) View() model.View {
	m.mu.Lock()
	defer m.mu.Unlock()

	view := model.View{
		ID:           m.id,
		State:        m.state,
		Draft:        m.draft.Clone(),
		Breakdown:    m.breakdown.Clone(),
		CanProceed:   bookingService.CanProceedToCheckout(m.draft),
		AuthRequired: m.authRequired,
		InFlight:     m.inFlight,
		Notice:       m.notice,
		Identity:     m.identity,
		UpdatedAt:    m.updatedAt,
	}

	if m.booking != nil {
		booking := m.booking.Clone()
		view.Booking = &booking
	}

	if m.result != nil {
		result := *m.result
		view.Payment = &result
	}

	return view
}

// IdleSince reports the last accepted change. In-flight machines are never idle.
func (m *Machine) IdleSince() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updatedAt, !m.inFlight
}

func (m *Machine) SetDates(checkIn, checkOut time.Time) error {
	return m.Edit(func(d *DraftEditor) error {
		d.SetDates(checkIn, checkOut)

		return nil
	})
}

func (m *Machine) ClearDates() error {
	return m.Edit(func(d *DraftEditor) error {
		d.ClearDates()

		return nil
	})
}

func (m *Machine) SetRoomQuantity(roomKey string, quantity int) error {
	return m.Edit(func(d *DraftEditor) error { return d.SetRoomQuantity(roomKey, quantity) })
}

func (m *Machine) SetGuestCount(count int) error {
	return m.Edit(func(d *DraftEditor) error { return d.SetGuestCount(count) })
}

func (m *Machine) SetService(serviceKey string, selected bool) error {
	return m.Edit(func(d *DraftEditor) error { return d.SetService(serviceKey, selected) })
}

func (m *Machine) SetSpecialRequests(text string) error {
	return m.Edit(func(d *DraftEditor) error {
		d.SetSpecialRequests(text)

		return nil
	})
}

// Edit applies several draft changes at once. Either all of them are kept or,
// when one fails, none are. Only allowed in Configuring.
func (m *Machine) Edit(apply func(d *DraftEditor) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight {
		return failure.TransitionInFlight
	}

	if m.state != model.StateConfiguring {
		return failure.InvalidTransition(string(m.state), actionEdit)
	}

	editor := &DraftEditor{catalog: m.catalog, draft: m.draft.Clone()}
	if err := apply(editor); err != nil {
		return err
	}

	m.draft = editor.draft
	m.recompute()
	m.notice = constant.Empty
	m.updatedAt = m.now()

	return nil
}

// OnSessionRestored records the signed-in guest.
func (m *Machine) OnSessionRestored(identity authModel.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if identity.IsZero() {
		m.clearSession()

		return
	}

	if m.identity.ID != identity.ID {
		m.log.Debug().Str("account_id", identity.ID).Msg("session restored")
	}

	m.identity = identity

	if m.authRequired {
		m.authRequired = false
		m.notice = constant.Empty
	}
}

// OnSessionCleared forgets the guest. A booking already taken keeps its guest.
func (m *Machine) OnSessionCleared() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearSession()
}

func (m *Machine) clearSession() {
	if !m.identity.IsZero() {
		m.log.Debug().Str("account_id", m.identity.ID).Msg("session cleared")
	}

	m.identity = authModel.Identity{}
}

// Submit snapshots the draft into a Booking and moves to Paying.
func (m *Machine) Submit(ctx context.Context) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelCheckoutScopeName, constant.OtelCheckoutScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.guard(model.EventSubmit)
	if err != nil {
		return err
	}

	if err = bookingService.ValidateSelection(m.draft); err != nil {
		m.notice = err.Error()

		return err
	}

	if m.identity.IsZero() {
		m.authRequired = true
		m.notice = failure.AuthenticationRequired.Message

		return failure.AuthenticationRequired
	}

	booking := bookingService.NewBooking(m.catalog, m.draft, m.breakdown, guestOf(m.identity), m.now())
	m.booking = &booking
	m.result = nil
	m.authRequired = false

	scope.SetAttribute("booking.id", booking.ID)
	scope.SetAttribute("booking.total", booking.Total())

	m.advance(model.EventSubmit, next)

	return nil
}

// Pay charges the current booking and returns the booking that was charged.
// A declined or timed out charge keeps the machine in Paying with the reason
// as its notice.
func (m *Machine) Pay(
	ctx context.Context,
	method paymentModel.Method,
	fields paymentModel.Fields,
) (booking bookingModel.Booking, res paymentModel.Result, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelCheckoutScopeName, constant.OtelCheckoutScopeName+".Pay")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err = m.beginPayment(method, fields)
	if err != nil {
		return booking, res, err
	}

	scope.SetAttribute("booking.id", booking.ID)
	scope.SetAttribute("payment.method", string(method))

	chargeCtx, cancel := ctx, func() {}
	if m.paymentTimeout > 0 {
		chargeCtx, cancel = context.WithTimeout(ctx, m.paymentTimeout)
	}

	res, err = m.charge(chargeCtx, booking, method, fields)
	timedOut := errors.Is(chargeCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil

	cancel()

	res, err = m.finishPayment(booking, method, res, err, timedOut)

	return booking, res, err
}

type chargeOutcome struct {
	res paymentModel.Result
	err error
}

// charge stops waiting once ctx is done, even if the gateway keeps going.
func (m *Machine) charge(
	ctx context.Context,
	booking bookingModel.Booking,
	method paymentModel.Method,
	fields paymentModel.Fields,
) (paymentModel.Result, error) {
	done := make(chan chargeOutcome, 1)

	go func() {
		res, err := m.gateway.Charge(ctx, booking, method, fields)
		done <- chargeOutcome{res: res, err: err}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		m.log.Warn().Str("booking_id", booking.ID).Msg("gateway still charging, giving up")

		return paymentModel.Result{}, ctx.Err()
	}
}

func (m *Machine) beginPayment(method paymentModel.Method, fields paymentModel.Fields) (bookingModel.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.guard(model.EventPay); err != nil {
		return bookingModel.Booking{}, err
	}

	if err := paymentService.ValidatePaymentInput(method, fields); err != nil {
		m.notice = err.Error()

		return bookingModel.Booking{}, err
	}

	m.inFlight = true
	m.notice = constant.Empty

	return m.booking.Clone(), nil
}

func (m *Machine) finishPayment(
	booking bookingModel.Booking,
	method paymentModel.Method,
	res paymentModel.Result,
	err error,
	timedOut bool,
) (paymentModel.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inFlight = false
	m.updatedAt = m.now()

	if err == nil && !res.Success {
		err = failure.PaymentDeclined(noticeDecline)
	}

	if err != nil {
		declined := declineOf(err, timedOut)
		m.notice = declined.Error()
		m.metrics.CountPayment(string(method), outcomeOf(timedOut))
		m.log.Warn().Err(err).Str("booking_id", booking.ID).Msg("payment not completed")

		return paymentModel.Result{}, declined
	}

	if res.Amount != booking.Total() {
		m.log.Warn().
			Int64("reported", res.Amount).
			Int64("total", booking.Total()).
			Str("transaction_id", res.TransactionID).
			Msg("gateway reported a different amount, using booking total")

		res.Amount = booking.Total()
	}

	next, _ := model.Next(m.state, model.EventPay)
	m.result = &res
	m.metrics.CountPayment(string(method), metrics.OutcomeConfirmed)
	m.advance(model.EventPay, next)

	return res, nil
}

// Back returns to Configuring with the draft intact and drops the booking.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.guard(model.EventBack)
	if err != nil {
		return err
	}

	m.booking = nil
	m.advance(model.EventBack, next)

	return nil
}

// StartNewBooking resets everything but the session.
func (m *Machine) StartNewBooking() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.guard(model.EventNewBooking)
	if err != nil {
		return err
	}

	m.draft = bookingModel.NewDraft()
	m.booking = nil
	m.result = nil
	m.authRequired = false
	m.recompute()
	m.advance(model.EventNewBooking, next)

	return nil
}

// guard must be called with the lock held.
func (m *Machine) guard(event model.Event) (model.State, error) {
	if m.inFlight {
		return m.state, failure.TransitionInFlight
	}

	next, ok := model.Next(m.state, event)
	if !ok {
		m.log.Warn().Str("state", string(m.state)).Str("event", string(event)).Msg("rejected checkout transition")

		return m.state, failure.InvalidTransition(string(m.state), string(event))
	}

	return next, nil
}

func (m *Machine) advance(event model.Event, next model.State) {
	m.log.Info().
		Str("from", string(m.state)).
		Str("to", string(next)).
		Str("event", string(event)).
		Msg("checkout transition")

	m.metrics.CountTransition(string(m.state), string(next), string(event))
	m.state = next
	m.notice = constant.Empty
	m.updatedAt = m.now()
}

// recompute rebuilds the breakdown from scratch; it is never patched.
func (m *Machine) recompute() {
	m.breakdown = bookingService.ComputeBreakdown(m.catalog, m.draft)
}

func declineOf(err error, timedOut bool) error {
	if timedOut {
		return failure.PaymentDeclined(noticeTimeout)
	}

	var fail *failure.Failure
	if errors.As(err, &fail) && fail.Code == http.StatusPaymentRequired {
		return fail
	}

	return failure.PaymentDeclined(noticeDecline)
}

func outcomeOf(timedOut bool) string {
	if timedOut {
		return metrics.OutcomeTimeout
	}

	return metrics.OutcomeDeclined
}

func guestOf(identity authModel.Identity) bookingModel.Guest {
	return bookingModel.Guest{
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Phone:     identity.Phone,
	}
}
