package dto

import (
	paymentModel "hotelres/internal/domains/payment/model"
	"hotelres/internal/domains/receipt/model"
	"hotelres/shared/constant"
	"hotelres/shared/timezone"
)

type ReceiptResponse struct {
	TransactionID   string   `json:"transaction_id"`
	BookingID       string   `json:"booking_id"`
	GuestName       string   `json:"guest_name"`
	GuestEmail      string   `json:"guest_email"`
	GuestPhone      string   `json:"guest_phone"`
	CheckIn         string   `json:"check_in"`
	CheckOut        string   `json:"check_out"`
	Nights          int      `json:"nights"`
	GuestCount      int      `json:"guest_count"`
	Rooms           []string `json:"rooms"`
	Services        []string `json:"services"`
	SpecialRequests string   `json:"special_requests"`
	Total           int64    `json:"total"`
	CurrencyCode    string   `json:"currency_code"`
	PaymentMethod   string   `json:"payment_method"`
	PaymentLabel    string   `json:"payment_label"`
	PaidAt          string   `json:"paid_at"`
	DocumentURL     string   `json:"document_url"`
}

func (r *ReceiptResponse) FromModel(receipt model.Receipt) {
	r.TransactionID = receipt.TransactionID
	r.BookingID = receipt.BookingID
	r.GuestName = receipt.GuestName
	r.GuestEmail = receipt.GuestEmail
	r.GuestPhone = receipt.GuestPhone
	r.CheckIn = timezone.FormatDate(receipt.CheckIn)
	r.CheckOut = timezone.FormatDate(receipt.CheckOut)
	r.Nights = receipt.Nights
	r.GuestCount = receipt.GuestCount
	r.Rooms = append([]string{}, receipt.Rooms...)
	r.Services = append([]string{}, receipt.Services...)
	r.SpecialRequests = receipt.SpecialRequests
	r.Total = receipt.Total
	r.CurrencyCode = receipt.CurrencyCode
	r.PaymentMethod = receipt.PaymentMethod
	r.PaymentLabel = paymentModel.Method(receipt.PaymentMethod).Label()
	r.PaidAt = timezone.Format(receipt.PaidAt, constant.DateFormat)
	r.DocumentURL = receipt.DocumentURL
}
