package service

import (
	"hotelres/internal/domains/payment/model"
	"hotelres/shared/failure"
	"hotelres/shared/validator"
)

type cardInput struct {
	CardNumber string `validate:"required"`
	CardName   string `validate:"required"`
	ExpiryDate string `validate:"required"`
	CVV        string `validate:"required"`
}

type walletInput struct {
	MobileNumber string `validate:"required"`
}

// IsPaymentInputComplete reports whether fields carry what the method needs.
// Unknown methods are never complete.
func IsPaymentInputComplete(method model.Method, fields model.Fields) bool {
	switch method {
	case model.MethodCreditCard:
		return validator.IsValid(cardInput{
			CardNumber: fields.CardNumber,
			CardName:   fields.CardName,
			ExpiryDate: fields.ExpiryDate,
			CVV:        fields.CVV,
		})
	case model.MethodGCash, model.MethodPayMaya:
		return validator.IsValid(walletInput{MobileNumber: fields.MobileNumber})
	case model.MethodBankTransfer:
		return true
	default:
		return false
	}
}

// ValidatePaymentInput is IsPaymentInputComplete as an error.
func ValidatePaymentInput(method model.Method, fields model.Fields) error {
	if !IsPaymentInputComplete(method, fields) {
		return failure.PaymentInputIncomplete
	}

	return nil
}
