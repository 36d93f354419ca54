package dto

import "github.com/shopspring/decimal"

type TransactionResponse struct {
	ID               int64           `json:"id"`
	InvoiceNumber    string          `json:"invoice_number"`
	Status           string          `json:"status"`
	PaymentMethod    string          `json:"payment_method"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	Total            decimal.Decimal `json:"total"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	ChangeAmount     decimal.Decimal `json:"change_amount"`
	QRCode           *string         `json:"qr_code,omitempty"`
	PaymentExpiredAt *int64          `json:"payment_expired_at,omitempty"`
}

type ChargeResult struct {
	ProviderOrderID       string
	ProviderTransactionID string
	QRPayload             string
	ExpiredAt             int64
	RawResponse           []byte
}
