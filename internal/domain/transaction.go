package domain

import "github.com/shopspring/decimal"

const (
	PaymentMethodCash    = "cash"
	PaymentMethodGateway = "gateway"
)

type Product struct {
	ID        int64           `db:"id"`
	SKU       string          `db:"sku"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Stock     int64           `db:"stock"`
	MinStock  int64           `db:"min_stock"`
	CreatedAt int64           `db:"created_at"`
	UpdatedAt int64           `db:"updated_at"`
	DeletedAt *int64          `db:"deleted_at"`
}

type Transaction struct {
	ID              int64             `db:"id"`
	UserID          int64             `db:"user_id"`
	InvoiceNumber   string            `db:"invoice_number"`
	Status          TransactionStatus `db:"status"`
	PaymentMethod   string            `db:"payment_method"`
	Subtotal        decimal.Decimal   `db:"subtotal"`
	DiscountAmount  decimal.Decimal   `db:"discount_amount"`
	TaxAmount       decimal.Decimal   `db:"tax_amount"`
	Total           decimal.Decimal   `db:"total"`
	AmountPaid      decimal.Decimal   `db:"amount_paid"`
	ChangeAmount    decimal.Decimal   `db:"change_amount"`
	Note            *string           `db:"note"`
	SuspendedFromID *int64            `db:"suspended_from_id"`
	ConfirmedBy     *int64            `db:"confirmed_by"`
	ConfirmedAt     *int64            `db:"confirmed_at"`
	CreatedAt       int64             `db:"created_at"`
	UpdatedAt       int64             `db:"updated_at"`
	DeletedAt       *int64            `db:"deleted_at"`
	Details         []TransactionDetail
	Payments        []Payment
}

type TransactionDetail struct {
	ID            int64           `db:"id"`
	TransactionID int64           `db:"transaction_id"`
	ProductID     int64           `db:"product_id"`
	ProductName   string          `db:"product_name"`
	Price         decimal.Decimal `db:"price"`
	Quantity      int64           `db:"quantity"`
	Amount        decimal.Decimal `db:"amount"`
	CreatedAt     int64           `db:"created_at"`
	UpdatedAt     int64           `db:"updated_at"`
}

type Payment struct {
	ID                    int64           `db:"id"`
	TransactionID         int64           `db:"transaction_id"`
	Method                string          `db:"method"`
	ProviderOrderID       *string         `db:"provider_order_id"`
	ProviderTransactionID *string         `db:"provider_transaction_id"`
	Status                PaymentStatus   `db:"status"`
	Amount                decimal.Decimal `db:"amount"`
	QRPayload             *string         `db:"qr_payload"`
	Metadata              *string         `db:"metadata"`
	PaidAt                *int64          `db:"paid_at"`
	ExpiredAt             *int64          `db:"expired_at"`
	CreatedAt             int64           `db:"created_at"`
	UpdatedAt             int64           `db:"updated_at"`
}
