package model

import (
	"fmt"
	bookingModel "hotelres/internal/domains/booking/model"
	catalogModel "hotelres/internal/domains/catalog/model"
	paymentModel "hotelres/internal/domains/payment/model"
	"hotelres/shared/timezone"
	"slices"
	"time"

	"github.com/lib/pq"
)

const (
	EntityName = "receipt"
	TableName  = "receipts"
)

const (
	FieldTransactionID   = "transaction_id"
	FieldBookingID       = "booking_id"
	FieldGuestName       = "guest_name"
	FieldGuestEmail      = "guest_email"
	FieldGuestPhone      = "guest_phone"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldNights          = "nights"
	FieldGuestCount      = "guest_count"
	FieldRooms           = "rooms"
	FieldServices        = "services"
	FieldSpecialRequests = "special_requests"
	FieldTotal           = "total"
	FieldCurrencyCode    = "currency_code"
	FieldPaymentMethod   = "payment_method"
	FieldPaidAt          = "paid_at"
	FieldDocumentURL     = "document_url"
	FieldCreatedAt       = "created_at"
)

// Columns lists every receipts column in insert order.
func Columns() []string {
	return []string{
		FieldTransactionID, FieldBookingID, FieldGuestName, FieldGuestEmail, FieldGuestPhone,
		FieldCheckIn, FieldCheckOut, FieldNights, FieldGuestCount, FieldRooms, FieldServices,
		FieldSpecialRequests, FieldTotal, FieldCurrencyCode, FieldPaymentMethod, FieldPaidAt,
		FieldDocumentURL, FieldCreatedAt,
	}
}

// Receipt is the archived record of a confirmed booking.
type Receipt struct {
	TransactionID   string         `db:"transaction_id"   json:"transaction_id"`
	BookingID       string         `db:"booking_id"       json:"booking_id"`
	GuestName       string         `db:"guest_name"       json:"guest_name"`
	GuestEmail      string         `db:"guest_email"      json:"guest_email"`
	GuestPhone      string         `db:"guest_phone"      json:"guest_phone"`
	CheckIn         time.Time      `db:"check_in"         json:"check_in"`
	CheckOut        time.Time      `db:"check_out"        json:"check_out"`
	Nights          int            `db:"nights"           json:"nights"`
	GuestCount      int            `db:"guest_count"      json:"guest_count"`
	Rooms           pq.StringArray `db:"rooms"            json:"rooms"`
	Services        pq.StringArray `db:"services"         json:"services"`
	SpecialRequests string         `db:"special_requests" json:"special_requests"`
	Total           int64          `db:"total"            json:"total"`
	CurrencyCode    string         `db:"currency_code"    json:"currency_code"`
	PaymentMethod   string         `db:"payment_method"   json:"payment_method"`
	PaidAt          time.Time      `db:"paid_at"          json:"paid_at"`
	DocumentURL     string         `db:"document_url"     json:"document_url"`
	CreatedAt       time.Time      `db:"created_at"       json:"created_at"`
}

// Values matches Columns.
func (r Receipt) Values() []any {
	return []any{
		r.TransactionID, r.BookingID, r.GuestName, r.GuestEmail, r.GuestPhone,
		r.CheckIn, r.CheckOut, r.Nights, r.GuestCount, r.Rooms, r.Services,
		r.SpecialRequests, r.Total, r.CurrencyCode, r.PaymentMethod, r.PaidAt,
		r.DocumentURL, r.CreatedAt,
	}
}

func NewReceipt(booking bookingModel.Booking, result paymentModel.Result) Receipt {
	return Receipt{
		TransactionID:   result.TransactionID,
		BookingID:       booking.ID,
		GuestName:       booking.Guest.FullName(),
		GuestEmail:      booking.Guest.Email,
		GuestPhone:      booking.Guest.Phone,
		CheckIn:         booking.CheckIn,
		CheckOut:        booking.CheckOut,
		Nights:          booking.Nights,
		GuestCount:      booking.GuestCount,
		Rooms:           pq.StringArray(booking.Rooms),
		Services:        pq.StringArray(booking.Services),
		SpecialRequests: booking.SpecialRequests,
		Total:           booking.Total(),
		CurrencyCode:    booking.Currency.Code,
		PaymentMethod:   string(result.Method),
		PaidAt:          result.Timestamp,
		CreatedAt:       timezone.Now(),
	}
}

const confirmationEmailStep = "A confirmation email will be sent to %s"

var (
	nextSteps = []string{
		"You'll receive SMS updates about your reservation",
		"Present this confirmation at hotel check-in",
	}
	importantNotes = []string{
		"Check-in time: 3:00 PM",
		"Check-out time: 12:00 PM",
		"Please bring a valid ID for check-in",
		"Cancellation policy: Free cancellation up to 24 hours before check-in",
		"For special requests, please contact the hotel directly",
	}
)

type DocumentLine struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// Document is the guest-facing receipt stored next to the row.
type Document struct {
	Hotel              string         `json:"hotel"`
	ConfirmationNumber string         `json:"confirmation_number"`
	GuestName          string         `json:"guest_name"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	Rooms              []string       `json:"rooms"`
	CheckIn            string         `json:"check_in"`
	CheckOut           string         `json:"check_out"`
	Nights             int            `json:"nights"`
	Guests             int            `json:"guests"`
	SpecialRequests    string         `json:"special_requests,omitempty"`
	Lines              []DocumentLine `json:"lines"`
	Total              int64          `json:"total"`
	CurrencySymbol     string         `json:"currency_symbol"`
	CurrencyCode       string         `json:"currency_code"`
	PaymentMethod      string         `json:"payment_method"`
	PaymentDate        string         `json:"payment_date"`
	NextSteps          []string       `json:"next_steps"`
	ImportantNotes     []string       `json:"important_notes"`
}

func NewDocument(hotel catalogModel.Hotel, booking bookingModel.Booking, result paymentModel.Result) Document {
	lines := make([]DocumentLine, 0, len(booking.Breakdown.Items))
	for _, item := range booking.Breakdown.Items {
		lines = append(lines, DocumentLine{Description: item.Description, Amount: item.Amount})
	}

	steps := append([]string{fmt.Sprintf(confirmationEmailStep, booking.Guest.Email)}, nextSteps...)

	return Document{
		Hotel:              hotel.Name,
		ConfirmationNumber: result.TransactionID,
		GuestName:          booking.Guest.FullName(),
		Email:              booking.Guest.Email,
		Phone:              booking.Guest.Phone,
		Rooms:              booking.Rooms,
		CheckIn:            booking.CheckInDisplay,
		CheckOut:           booking.CheckOutDisplay,
		Nights:             booking.Nights,
		Guests:             booking.GuestCount,
		SpecialRequests:    booking.SpecialRequests,
		Lines:              lines,
		Total:              booking.Total(),
		CurrencySymbol:     booking.Currency.Symbol,
		CurrencyCode:       booking.Currency.Code,
		PaymentMethod:      result.Method.Label(),
		PaymentDate:        timezone.FormatDate(timezone.ToAppTime(result.Timestamp)),
		NextSteps:          steps,
		ImportantNotes:     slices.Clone(importantNotes),
	}
}

// BookingConfirmed is published once a receipt is archived.
type BookingConfirmed struct {
	TransactionID string    `json:"transaction_id"`
	BookingID     string    `json:"booking_id"`
	GuestName     string    `json:"guest_name"`
	GuestEmail    string    `json:"guest_email"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Total         int64     `json:"total"`
	CurrencyCode  string    `json:"currency_code"`
	DocumentURL   string    `json:"document_url"`
}

func (r Receipt) ToBookingConfirmed() BookingConfirmed {
	return BookingConfirmed{
		TransactionID: r.TransactionID,
		BookingID:     r.BookingID,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Total:         r.Total,
		CurrencyCode:  r.CurrencyCode,
		DocumentURL:   r.DocumentURL,
	}
}
