package dto

import (
	authDto "hotelres/internal/domains/auth/model/dto"
	bookingModel "hotelres/internal/domains/booking/model"
	"hotelres/internal/domains/checkout/model"
	paymentModel "hotelres/internal/domains/payment/model"
	"hotelres/shared/constant"
	"hotelres/shared/timezone"
	"maps"
	"slices"
	"time"
)

// DraftPatchRequest changes only the fields that are present. An empty date
// string unsets that date and a zero room quantity deselects the room.
type DraftPatchRequest struct {
	CheckIn         *string         `json:"check_in"         validate:"omitempty,calendardate"`
	CheckOut        *string         `json:"check_out"        validate:"omitempty,calendardate"`
	Rooms           map[string]int  `json:"rooms"            validate:"omitempty,dive,gte=0,lte=10"`
	GuestCount      *int            `json:"guest_count"      validate:"omitempty,gte=1"`
	Services        map[string]bool `json:"services"`
	SpecialRequests *string         `json:"special_requests" validate:"omitempty,max=1000"`
}

// ParseDate turns an optional calendar date into its zero-or-date form.
func ParseDate(value *string) (time.Time, error) {
	if value == nil || *value == constant.Empty {
		return time.Time{}, nil
	}

	return timezone.ParseDate(*value)
}

type PaymentRequest struct {
	Method       string `json:"method"        validate:"required,oneof=credit_card gcash paymaya bank_transfer"`
	CardNumber   string `json:"card_number"`
	CardName     string `json:"card_name"`
	ExpiryDate   string `json:"expiry_date"`
	CVV          string `json:"cvv"`
	MobileNumber string `json:"mobile_number"`
}

func (r *PaymentRequest) ToFields() paymentModel.Fields {
	return paymentModel.Fields{
		CardNumber:   r.CardNumber,
		CardName:     r.CardName,
		ExpiryDate:   r.ExpiryDate,
		CVV:          r.CVV,
		MobileNumber: r.MobileNumber,
	}
}

type PaymentCheckResponse struct {
	Method   string `json:"method"`
	Complete bool   `json:"complete"`
}

type LineItemResponse struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

type BreakdownResponse struct {
	Items []LineItemResponse `json:"items"`
	Total int64              `json:"total"`
}

func (r *BreakdownResponse) FromModel(breakdown bookingModel.PriceBreakdown) {
	r.Items = make([]LineItemResponse, 0, len(breakdown.Items))
	for _, item := range breakdown.Items {
		r.Items = append(r.Items, LineItemResponse{Description: item.Description, Amount: item.Amount})
	}

	r.Total = breakdown.Total
}

type DraftResponse struct {
	CheckIn         string         `json:"check_in"`
	CheckOut        string         `json:"check_out"`
	Nights          int            `json:"nights"`
	Rooms           map[string]int `json:"rooms"`
	TotalRooms      int            `json:"total_rooms"`
	GuestCount      int            `json:"guest_count"`
	Services        []string       `json:"services"`
	SpecialRequests string         `json:"special_requests"`
}

func (r *DraftResponse) FromModel(draft bookingModel.Draft) {
	r.CheckIn = timezone.FormatDate(draft.CheckIn)
	r.CheckOut = timezone.FormatDate(draft.CheckOut)
	r.Nights = draft.Nights()
	r.Rooms = maps.Clone(draft.RoomQuantities)
	r.TotalRooms = draft.TotalRooms()
	r.GuestCount = draft.GuestCount
	r.Services = draft.SelectedServiceKeys()
	r.SpecialRequests = draft.SpecialRequests
}

type GuestResponse struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type BookingResponse struct {
	ID              string            `json:"id"`
	Guest           GuestResponse     `json:"guest"`
	CheckIn         string            `json:"check_in"`
	CheckOut        string            `json:"check_out"`
	CheckInDisplay  string            `json:"check_in_display"`
	CheckOutDisplay string            `json:"check_out_display"`
	Nights          int               `json:"nights"`
	GuestCount      int               `json:"guest_count"`
	Rooms           []string          `json:"rooms"`
	Services        []string          `json:"services"`
	SpecialRequests string            `json:"special_requests"`
	Breakdown       BreakdownResponse `json:"breakdown"`
	CurrencySymbol  string            `json:"currency_symbol"`
	CurrencyCode    string            `json:"currency_code"`
	CreatedAt       string            `json:"created_at"`
}

func (r *BookingResponse) FromModel(booking bookingModel.Booking) {
	r.ID = booking.ID
	r.Guest = GuestResponse{
		FullName: booking.Guest.FullName(),
		Email:    booking.Guest.Email,
		Phone:    booking.Guest.Phone,
	}
	r.CheckIn = timezone.FormatDate(booking.CheckIn)
	r.CheckOut = timezone.FormatDate(booking.CheckOut)
	r.CheckInDisplay = booking.CheckInDisplay
	r.CheckOutDisplay = booking.CheckOutDisplay
	r.Nights = booking.Nights
	r.GuestCount = booking.GuestCount
	r.Rooms = slices.Clone(booking.Rooms)
	r.Services = slices.Clone(booking.Services)
	r.SpecialRequests = booking.SpecialRequests
	r.Breakdown.FromModel(booking.Breakdown)
	r.CurrencySymbol = booking.Currency.Symbol
	r.CurrencyCode = booking.Currency.Code
	r.CreatedAt = timezone.Format(booking.CreatedAt, constant.DateFormat)
}

type PaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
	MethodLabel   string `json:"method_label"`
	Timestamp     string `json:"timestamp"`
}

func (r *PaymentResponse) FromModel(result paymentModel.Result) {
	r.TransactionID = result.TransactionID
	r.Amount = result.Amount
	r.Method = string(result.Method)
	r.MethodLabel = result.Method.Label()
	r.Timestamp = timezone.Format(result.Timestamp, constant.DateFormat)
}

type ViewResponse struct {
	ID           string                    `json:"id"`
	State        string                    `json:"state"`
	Draft        DraftResponse             `json:"draft"`
	Breakdown    BreakdownResponse         `json:"breakdown"`
	CanProceed   bool                      `json:"can_proceed"`
	AuthRequired bool                      `json:"auth_required"`
	InFlight     bool                      `json:"in_flight"`
	Notice       string                    `json:"notice,omitempty"`
	User         *authDto.IdentityResponse `json:"user,omitempty"`
	Booking      *BookingResponse          `json:"booking,omitempty"`
	Payment      *PaymentResponse          `json:"payment,omitempty"`
	UpdatedAt    string                    `json:"updated_at"`
}

func (r *ViewResponse) FromModel(view model.View) {
	r.ID = view.ID
	r.State = string(view.State)
	r.Draft.FromModel(view.Draft)
	r.Breakdown.FromModel(view.Breakdown)
	r.CanProceed = view.CanProceed
	r.AuthRequired = view.AuthRequired
	r.InFlight = view.InFlight
	r.Notice = view.Notice
	r.UpdatedAt = timezone.Format(view.UpdatedAt, constant.DateFormat)

	if !view.Identity.IsZero() {
		r.User = &authDto.IdentityResponse{}
		r.User.FromModel(view.Identity)
	}

	if view.Booking != nil {
		r.Booking = &BookingResponse{}
		r.Booking.FromModel(*view.Booking)
	}

	if view.Payment != nil {
		r.Payment = &PaymentResponse{}
		r.Payment.FromModel(*view.Payment)
	}
}
