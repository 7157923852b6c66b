package service_test

import (
	"context"
	"errors"
	"hotelres/infras/metrics"
	otelMocks "hotelres/infras/otel/mocks"
	authModel "hotelres/internal/domains/auth/model"
	bookingModel "hotelres/internal/domains/booking/model"
	catalogModel "hotelres/internal/domains/catalog/model"
	catalogService "hotelres/internal/domains/catalog/service"
	"hotelres/internal/domains/checkout/model"
	"hotelres/internal/domains/checkout/service"
	paymentMocks "hotelres/internal/domains/payment/mocks"
	paymentModel "hotelres/internal/domains/payment/model"
	"hotelres/shared/failure"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	fixedNow = time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC)
	guest    = authModel.Identity{ID: "account-1", FirstName: "Juan", LastName: "Dela Cruz", Email: "juan@example.com", Phone: "09171234567"}
)

func testCatalog(t *testing.T) catalogService.Catalog {
	t.Helper()

	catalog, err := catalogService.New(
		catalogModel.Hotel{Name: "LuxuryStay Hotel", Currency: catalogModel.Currency{Symbol: "₱", Code: "PHP"}},
		[]catalogModel.RoomType{
			{Key: "standard", Name: "Standard", Price: 6800, MaxGuests: 2},
			{Key: "deluxe", Name: "Deluxe", Price: 10200, MaxGuests: 3},
		},
		[]catalogModel.Service{
			{Key: "wifi", Name: "Premium WiFi", Price: 560, Enabled: true},
			{Key: "parking", Name: "Parking", Price: 850, Enabled: false},
		},
	)
	require.NoError(t, err)

	return catalog
}

func newMachine(t *testing.T, gateway *paymentMocks.MockGateway, timeout time.Duration) *service.Machine {
	t.Helper()

	return service.NewMachine("checkout-1", testCatalog(t), gateway, otelMocks.NewOtel(), nil, timeout, func() time.Time { return fixedNow })
}

func configure(t *testing.T, m *service.Machine) {
	t.Helper()

	require.NoError(t, m.SetDates(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, m.SetRoomQuantity("deluxe", 2))
	require.NoError(t, m.SetService("wifi", true))
}

func approve(_ context.Context, booking bookingModel.Booking, method paymentModel.Method, _ paymentModel.Fields) (paymentModel.Result, error) {
	return paymentModel.Result{TransactionID: "TXN-1", Amount: booking.Total(), Method: method, Timestamp: fixedNow, Success: true}, nil
}

func TestMachine_FullFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := paymentMocks.NewMockGateway(ctrl)
	m := newMachine(t, gateway, time.Second)
	ctx := context.Background()

	configure(t, m)

	view := m.View()
	assert.Equal(t, model.StateConfiguring, view.State)
	assert.True(t, view.CanProceed)
	assert.Equal(t, int64(41920), view.Breakdown.Total)
	assert.Equal(t, []bookingModel.PriceLineItem{
		{Description: "Deluxe ×2 × 2 nights", Amount: 40800},
		{Description: "Premium WiFi (2 nights)", Amount: 1120},
	}, view.Breakdown.Items)

	err := m.Submit(ctx)
	assert.ErrorIs(t, err, failure.AuthenticationRequired)

	view = m.View()
	assert.Equal(t, model.StateConfiguring, view.State)
	assert.True(t, view.AuthRequired)
	assert.NotEmpty(t, view.Notice)

	m.OnSessionRestored(guest)
	assert.False(t, m.View().AuthRequired)

	require.NoError(t, m.Submit(ctx))

	view = m.View()
	assert.Equal(t, model.StatePaying, view.State)
	require.NotNil(t, view.Booking)
	assert.Equal(t, "Juan Dela Cruz", view.Booking.Guest.FullName())
	assert.Equal(t, int64(41920), view.Booking.Total())
	assert.Equal(t, []string{"2 × Deluxe"}, view.Booking.Rooms)

	gateway.EXPECT().
		Charge(gomock.Any(), gomock.Any(), paymentModel.MethodBankTransfer, gomock.Any()).
		Return(paymentModel.Result{TransactionID: "TXN-1", Amount: 1, Method: paymentModel.MethodBankTransfer, Timestamp: fixedNow, Success: true}, nil)

	charged, res, err := m.Pay(ctx, paymentModel.MethodBankTransfer, paymentModel.Fields{})
	require.NoError(t, err)
	assert.Equal(t, int64(41920), res.Amount, "amount always comes from the booking")
	assert.Equal(t, view.Booking.ID, charged.ID)

	view = m.View()
	assert.Equal(t, model.StateConfirmed, view.State)
	require.NotNil(t, view.Payment)
	assert.Equal(t, "TXN-1", view.Payment.TransactionID)
	assert.Equal(t, int64(41920), view.Payment.Amount)

	require.NoError(t, m.StartNewBooking())
	assert.Equal(t, int64(41920), charged.Total(), "the charged booking outlives a new booking")

	view = m.View()
	assert.Equal(t, model.StateConfiguring, view.State)
	assert.Equal(t, bookingModel.NewDraft(), view.Draft)
	assert.True(t, view.Breakdown.IsEmpty())
	assert.Nil(t, view.Booking)
	assert.Nil(t, view.Payment)
	assert.Equal(t, guest, view.Identity, "the session survives a new booking")
}

func TestMachine_SubmitIncompleteSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
	m.OnSessionRestored(guest)

	require.NoError(t, m.SetDates(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))

	err := m.Submit(context.Background())
	assert.ErrorIs(t, err, failure.IncompleteSelection)

	view := m.View()
	assert.Equal(t, model.StateConfiguring, view.State)
	assert.False(t, view.CanProceed)
	assert.Equal(t, failure.IncompleteSelection.Message, view.Notice)

	require.NoError(t, m.SetRoomQuantity("standard", 1))
	assert.Empty(t, m.View().Notice, "an accepted edit clears the notice")
}

// driveTo brings a fresh machine into the wanted state.
func driveTo(t *testing.T, m *service.Machine, state model.State) {
	t.Helper()

	configure(t, m)
	m.OnSessionRestored(guest)

	if state == model.StateConfiguring {
		return
	}

	require.NoError(t, m.Submit(context.Background()))

	if state == model.StatePaying {
		return
	}

	_, _, err := m.Pay(context.Background(), paymentModel.MethodGCash, paymentModel.Fields{MobileNumber: "09171234567"})
	require.NoError(t, err)
}

func fire(m *service.Machine, event model.Event) error {
	switch event {
	case model.EventSubmit:
		return m.Submit(context.Background())
	case model.EventPay:
		_, _, err := m.Pay(context.Background(), paymentModel.MethodGCash, paymentModel.Fields{MobileNumber: "09171234567"})

		return err
	case model.EventBack:
		return m.Back()
	case model.EventNewBooking:
		return m.StartNewBooking()
	default:
		return errors.New("unknown event")
	}
}

func TestMachine_TransitionMatrix(t *testing.T) {
	for _, from := range model.States() {
		for _, event := range model.Events() {
			t.Run(string(from)+"/"+string(event), func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				gateway := paymentMocks.NewMockGateway(ctrl)
				gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(approve).AnyTimes()

				m := newMachine(t, gateway, time.Second)
				driveTo(t, m, from)

				before := m.View()
				want, allowed := model.Next(from, event)

				err := fire(m, event)
				after := m.View()

				if allowed {
					require.NoError(t, err)
					assert.Equal(t, want, after.State)

					return
				}

				require.Error(t, err)
				assert.Equal(t, http.StatusConflict, failure.GetCode(err))
				assert.Equal(t, from, after.State)
				assert.Equal(t, before.Draft, after.Draft)
				assert.Equal(t, before.Booking, after.Booking)
				assert.Equal(t, before.Payment, after.Payment)
			})
		}
	}
}

func TestMachine_BackKeepsDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
	driveTo(t, m, model.StatePaying)

	draft := m.View().Draft

	require.NoError(t, m.Back())

	view := m.View()
	assert.Equal(t, model.StateConfiguring, view.State)
	assert.Equal(t, draft, view.Draft)
	assert.Nil(t, view.Booking)

	require.NoError(t, m.SetRoomQuantity("deluxe", 3), "draft is editable again")
	assert.Equal(t, int64(3*10200*2+1120), m.View().Breakdown.Total)
}

func TestMachine_EditsOnlyWhileConfiguring(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
	driveTo(t, m, model.StatePaying)

	err := m.SetRoomQuantity("deluxe", 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, "cannot edit the booking while checkout is paying", err.Error())
	assert.Equal(t, 2, m.View().Draft.Quantity("deluxe"))
	assert.Equal(t, 2, m.View().Booking.RoomQuantities["deluxe"])
}

func TestMachine_DraftEdits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name string
		edit func(m *service.Machine) error
		code int
	}{
		{name: "unknown room", edit: func(m *service.Machine) error { return m.SetRoomQuantity("penthouse", 1) }, code: http.StatusNotFound},
		{name: "negative quantity", edit: func(m *service.Machine) error { return m.SetRoomQuantity("deluxe", -1) }, code: http.StatusBadRequest},
		{name: "quantity above limit", edit: func(m *service.Machine) error { return m.SetRoomQuantity("deluxe", bookingModel.MaxRoomQuantity+1) }, code: http.StatusBadRequest},
		{name: "overflowing quantity", edit: func(m *service.Machine) error { return m.SetRoomQuantity("deluxe", 1<<60) }, code: http.StatusBadRequest},
		{name: "unknown service", edit: func(m *service.Machine) error { return m.SetService("sauna", true) }, code: http.StatusNotFound},
		{name: "disabled service", edit: func(m *service.Machine) error { return m.SetService("parking", true) }, code: http.StatusBadRequest},
		{name: "zero guests", edit: func(m *service.Machine) error { return m.SetGuestCount(0) }, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
			configure(t, m)
			before := m.View()

			err := tt.edit(m)

			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
			assert.Equal(t, before.Draft, m.View().Draft)
			assert.Equal(t, before.Breakdown, m.View().Breakdown)
		})
	}

	t.Run("accepted edits", func(t *testing.T) {
		m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
		configure(t, m)

		require.NoError(t, m.SetGuestCount(3))
		require.NoError(t, m.SetSpecialRequests("Late check-in"))
		require.NoError(t, m.SetService("wifi", false))
		require.NoError(t, m.SetRoomQuantity("deluxe", 0))
		require.NoError(t, m.SetRoomQuantity("standard", 1))
		require.NoError(t, m.SetRoomQuantity("deluxe", bookingModel.MaxRoomQuantity))
		require.NoError(t, m.SetRoomQuantity("deluxe", 0))

		view := m.View()
		assert.Equal(t, 3, view.Draft.GuestCount)
		assert.Equal(t, "Late check-in", view.Draft.SpecialRequests)
		assert.Equal(t, map[string]int{"standard": 1}, view.Draft.RoomQuantities)
		assert.Empty(t, view.Draft.SelectedServices)
		assert.Equal(t, int64(2*6800), view.Breakdown.Total)

		require.NoError(t, m.ClearDates())
		assert.False(t, m.View().CanProceed)
		assert.True(t, m.View().Breakdown.IsEmpty())
	})

	t.Run("dates keep only the calendar day", func(t *testing.T) {
		m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)

		require.NoError(t, m.SetDates(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, 6, 2, 0, 1, 0, 0, time.UTC)))
		assert.Equal(t, 1, m.View().Draft.Nights())
	})
}

func TestMachine_EditIsAtomic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
	configure(t, m)
	before := m.View()

	err := m.Edit(func(d *service.DraftEditor) error {
		if err := d.SetRoomQuantity("standard", 4); err != nil {
			return err
		}

		return d.SetService("parking", true)
	})

	require.Error(t, err)
	assert.Equal(t, before.Draft, m.View().Draft)
	assert.Equal(t, before.Breakdown.Total, m.View().Breakdown.Total)
}

func TestMachine_SessionCleared(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
	configure(t, m)
	m.OnSessionRestored(guest)
	m.OnSessionCleared()

	assert.ErrorIs(t, m.Submit(context.Background()), failure.AuthenticationRequired)
	assert.True(t, m.View().Identity.IsZero())

	m.OnSessionRestored(authModel.Identity{})
	assert.ErrorIs(t, m.Submit(context.Background()), failure.AuthenticationRequired)
}

func TestMachine_PaymentInputIncomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
	driveTo(t, m, model.StatePaying)

	_, _, err := m.Pay(context.Background(), paymentModel.MethodCreditCard, paymentModel.Fields{CardNumber: "4111111111111111"})
	assert.ErrorIs(t, err, failure.PaymentInputIncomplete)

	_, _, err = m.Pay(context.Background(), paymentModel.Method("cash"), paymentModel.Fields{})
	assert.ErrorIs(t, err, failure.PaymentInputIncomplete)

	assert.Equal(t, model.StatePaying, m.View().State)
}

func TestMachine_PaymentDeclined(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := paymentMocks.NewMockGateway(ctrl)
	m := newMachine(t, gateway, time.Second)
	driveTo(t, m, model.StatePaying)

	card := paymentModel.Fields{CardNumber: "4000000000000002", CardName: "Juan", ExpiryDate: "12/27", CVV: "123"}

	gomock.InOrder(
		gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), paymentModel.MethodCreditCard, card).
			Return(paymentModel.Result{}, failure.PaymentDeclined("card was declined")),
		gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), paymentModel.MethodCreditCard, card).
			Return(paymentModel.Result{}, errors.New("connection reset")),
		gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), paymentModel.MethodCreditCard, card).
			DoAndReturn(approve),
	)

	_, _, err := m.Pay(context.Background(), paymentModel.MethodCreditCard, card)
	require.Error(t, err)
	assert.Equal(t, http.StatusPaymentRequired, failure.GetCode(err))
	assert.Equal(t, "card was declined", m.View().Notice)
	assert.Equal(t, model.StatePaying, m.View().State)
	assert.NotNil(t, m.View().Booking)

	_, _, err = m.Pay(context.Background(), paymentModel.MethodCreditCard, card)
	require.Error(t, err)
	assert.Equal(t, http.StatusPaymentRequired, failure.GetCode(err))
	assert.Equal(t, model.StatePaying, m.View().State)

	_, res, err := m.Pay(context.Background(), paymentModel.MethodCreditCard, card)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, model.StateConfirmed, m.View().State)
	assert.Empty(t, m.View().Notice)
}

func TestMachine_PaymentTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := paymentMocks.NewMockGateway(ctrl)
	m := newMachine(t, gateway, 20*time.Millisecond)
	driveTo(t, m, model.StatePaying)

	gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ bookingModel.Booking, _ paymentModel.Method, _ paymentModel.Fields) (paymentModel.Result, error) {
			<-ctx.Done()

			return paymentModel.Result{}, ctx.Err()
		})

	_, _, err := m.Pay(context.Background(), paymentModel.MethodBankTransfer, paymentModel.Fields{})

	require.Error(t, err)
	assert.Equal(t, http.StatusPaymentRequired, failure.GetCode(err))

	view := m.View()
	assert.Equal(t, model.StatePaying, view.State)
	assert.False(t, view.InFlight)
	assert.Contains(t, view.Notice, "did not respond in time")
}

func TestMachine_PaymentTimeoutWithUnresponsiveGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	gateway := paymentMocks.NewMockGateway(ctrl)
	m := newMachine(t, gateway, 20*time.Millisecond)
	driveTo(t, m, model.StatePaying)

	gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, bookingModel.Booking, paymentModel.Method, paymentModel.Fields) (paymentModel.Result, error) {
			<-release

			return paymentModel.Result{}, nil
		})

	done := make(chan error, 1)
	go func() {
		_, _, err := m.Pay(context.Background(), paymentModel.MethodBankTransfer, paymentModel.Fields{})
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Equal(t, http.StatusPaymentRequired, failure.GetCode(err))
	case <-time.After(time.Second):
		t.Fatal("pay did not return after the payment timeout")
	}

	view := m.View()
	assert.Equal(t, model.StatePaying, view.State)
	assert.False(t, view.InFlight)
	assert.Contains(t, view.Notice, "did not respond in time")

	_, idle := m.IdleSince()
	assert.True(t, idle)
}

func TestMachine_OneTransitionInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := paymentMocks.NewMockGateway(ctrl)
	m := newMachine(t, gateway, time.Minute)
	driveTo(t, m, model.StatePaying)

	started := make(chan struct{})
	release := make(chan struct{})

	gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, booking bookingModel.Booking, method paymentModel.Method, fields paymentModel.Fields) (paymentModel.Result, error) {
			close(started)
			<-release

			return approve(ctx, booking, method, fields)
		})

	done := make(chan error, 1)

	go func() {
		_, _, err := m.Pay(context.Background(), paymentModel.MethodBankTransfer, paymentModel.Fields{})
		done <- err
	}()

	<-started

	view := m.View()
	assert.True(t, view.InFlight)
	assert.Equal(t, model.StatePaying, view.State)

	_, _, err := m.Pay(context.Background(), paymentModel.MethodBankTransfer, paymentModel.Fields{})
	assert.ErrorIs(t, err, failure.TransitionInFlight)
	assert.ErrorIs(t, m.Back(), failure.TransitionInFlight)
	assert.ErrorIs(t, m.Submit(context.Background()), failure.TransitionInFlight)
	assert.ErrorIs(t, m.StartNewBooking(), failure.TransitionInFlight)
	assert.ErrorIs(t, m.SetGuestCount(2), failure.TransitionInFlight)

	_, idle := m.IdleSince()
	assert.False(t, idle)

	close(release)
	require.NoError(t, <-done)

	view = m.View()
	assert.Equal(t, model.StateConfirmed, view.State)
	assert.False(t, view.InFlight)
}

func TestMachine_ViewIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMachine(t, paymentMocks.NewMockGateway(ctrl), time.Second)
	driveTo(t, m, model.StatePaying)

	view := m.View()
	view.Draft.RoomQuantities["deluxe"] = 9
	view.Breakdown.Items[0].Amount = 0
	view.Booking.Rooms[0] = "changed"

	fresh := m.View()
	assert.Equal(t, 2, fresh.Draft.Quantity("deluxe"))
	assert.Equal(t, int64(40800), fresh.Breakdown.Items[0].Amount)
	assert.Equal(t, "2 × Deluxe", fresh.Booking.Rooms[0])
}

func TestMachine_RecordsMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := paymentMocks.NewMockGateway(ctrl)
	collector := metrics.New("test")
	m := service.NewMachine("checkout-1", testCatalog(t), gateway, otelMocks.NewOtel(), collector, time.Second, func() time.Time { return fixedNow })
	ctx := context.Background()

	configure(t, m)
	m.OnSessionRestored(guest)
	require.NoError(t, m.Submit(ctx))

	gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(paymentModel.Result{}, errors.New("boom"))
	_, _, err := m.Pay(ctx, paymentModel.MethodBankTransfer, paymentModel.Fields{})
	require.Error(t, err)

	gateway.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(approve)
	_, _, err = m.Pay(ctx, paymentModel.MethodBankTransfer, paymentModel.Fields{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `test_checkout_transitions_total{event="submit",from="configuring",to="paying"} 1`)
	assert.Contains(t, body, `test_checkout_transitions_total{event="pay",from="paying",to="confirmed"} 1`)
	assert.Contains(t, body, `test_checkout_payments_total{method="bank_transfer",outcome="declined"} 1`)
	assert.Contains(t, body, `test_checkout_payments_total{method="bank_transfer",outcome="confirmed"} 1`)
}
