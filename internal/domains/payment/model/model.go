package model

import (
	"hotelres/config"
	"time"
)

// Method is one of the accepted payment methods.
type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodGCash        Method = "gcash"
	MethodPayMaya      Method = "paymaya"
	MethodBankTransfer Method = "bank_transfer"
)

var methodLabels = map[Method]string{
	MethodCreditCard:   "Credit/Debit Card",
	MethodGCash:        "GCash",
	MethodPayMaya:      "PayMaya",
	MethodBankTransfer: "Bank Transfer",
}

// Methods lists the accepted methods in display order.
func Methods() []Method {
	return []Method{MethodCreditCard, MethodGCash, MethodPayMaya, MethodBankTransfer}
}

func (m Method) IsValid() bool {
	_, ok := methodLabels[m]

	return ok
}

// Label returns the display name, or the raw value for unknown methods.
func (m Method) Label() string {
	if label, ok := methodLabels[m]; ok {
		return label
	}

	return string(m)
}

// Fields are the method specific inputs. Only the ones the method needs are read.
type Fields struct {
	CardNumber   string
	CardName     string
	ExpiryDate   string
	CVV          string
	MobileNumber string
}

type Result struct {
	TransactionID string
	Amount        int64
	Method        Method
	Timestamp     time.Time
	Success       bool
}

// BankTransferInstructions are shown instead of collecting fields for bank transfers.
type BankTransferInstructions struct {
	Bank          string
	AccountName   string
	AccountNumber string
	SwiftCode     string
	ReceiptEmail  string
}

func NewBankTransferInstructions(cfg *config.Config) BankTransferInstructions {
	bank := cfg.Payment.BankTransfer

	return BankTransferInstructions{
		Bank:          bank.Bank,
		AccountName:   bank.AccountName,
		AccountNumber: bank.AccountNumber,
		SwiftCode:     bank.SwiftCode,
		ReceiptEmail:  bank.ReceiptEmail,
	}
}
