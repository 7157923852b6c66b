package dto

import "hotelres/internal/domains/payment/model"

type MethodResponse struct {
	Method string `json:"method"`
	Label  string `json:"label"`
}

type BankTransferResponse struct {
	Bank          string `json:"bank"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	SwiftCode     string `json:"swift_code"`
	ReceiptEmail  string `json:"receipt_email"`
}

// MethodsResponse lists the accepted methods and the details shown for bank transfers.
type MethodsResponse struct {
	Methods      []MethodResponse     `json:"methods"`
	BankTransfer BankTransferResponse `json:"bank_transfer"`
}

func (r *MethodsResponse) FromModel(methods []model.Method, instructions model.BankTransferInstructions) {
	r.Methods = make([]MethodResponse, 0, len(methods))
	for _, method := range methods {
		r.Methods = append(r.Methods, MethodResponse{Method: string(method), Label: method.Label()})
	}

	r.BankTransfer = BankTransferResponse{
		Bank:          instructions.Bank,
		AccountName:   instructions.AccountName,
		AccountNumber: instructions.AccountNumber,
		SwiftCode:     instructions.SwiftCode,
		ReceiptEmail:  instructions.ReceiptEmail,
	}
}
