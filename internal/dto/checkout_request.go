package dto

import "github.com/shopspring/decimal"

type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CheckoutRequest struct {
	Items           []CartItem      `json:"items"`
	PaymentMethod   string          `json:"payment_method"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Note            string          `json:"note"`
	SuspendedFromID int64           `json:"suspended_from_id"`
	UserID          int64           `json:"-"`
}

type HoldRequest struct {
	Items  []CartItem `json:"items"`
	Note   string     `json:"note"`
	HoldID int64      `json:"hold_id"`
	UserID int64      `json:"-"`
}
