package model

import (
	authModel "hotelres/internal/domains/auth/model"
	bookingModel "hotelres/internal/domains/booking/model"
	paymentModel "hotelres/internal/domains/payment/model"
	"time"
)

type State string

const (
	StateConfiguring State = "configuring"
	StatePaying      State = "paying"
	StateConfirmed   State = "confirmed"
)

func States() []State {
	return []State{StateConfiguring, StatePaying, StateConfirmed}
}

type Event string

const (
	EventSubmit     Event = "submit"
	EventPay        Event = "pay"
	EventBack       Event = "back"
	EventNewBooking Event = "new_booking"
)

func Events() []Event {
	return []Event{EventSubmit, EventPay, EventBack, EventNewBooking}
}

type transition struct {
	from State
	to   State
}

// transitions is the whole checkout flow. Anything not listed is rejected.
var transitions = map[Event]transition{
	EventSubmit:     {from: StateConfiguring, to: StatePaying},
	EventPay:        {from: StatePaying, to: StateConfirmed},
	EventBack:       {from: StatePaying, to: StateConfiguring},
	EventNewBooking: {from: StateConfirmed, to: StateConfiguring},
}

// Next returns the state event leads to from the given state.
func Next(from State, event Event) (State, bool) {
	t, ok := transitions[event]
	if !ok || t.from != from {
		return from, false
	}

	return t.to, true
}

// View is a consistent copy of a checkout at one point in time.
type View struct {
	ID           string
	State        State
	Draft        bookingModel.Draft
	Breakdown    bookingModel.PriceBreakdown
	CanProceed   bool
	AuthRequired bool
	InFlight     bool
	Notice       string
	Identity     authModel.Identity
	Booking      *bookingModel.Booking
	Payment      *paymentModel.Result
	UpdatedAt    time.Time
}
