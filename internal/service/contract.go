package service

import (
	"context"

	"github.com/alimikegami/point-of-sales/cashier-service/internal/domain"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/dto"
	pkgdto "github.com/alimikegami/point-of-sales/cashier-service/pkg/dto"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type TransactionService interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest) (resp dto.TransactionResponse, err error)
	Hold(ctx context.Context, req dto.HoldRequest) (resp dto.TransactionResponse, err error)
	ConfirmTransaction(ctx context.Context, transactionID int64, userID int64) (err error)
	PaymentNotification(ctx context.Context, req dto.PaymentNotification) (err error)
	GetTransactions(ctx context.Context, filter pkgdto.Filter) (response pkgdto.Pagination, err error)
	ExpireStalePayments()
}

// SettingsProvider exposes the store-wide pricing and receipt settings owned
// by the settings service. The core reads them once per operation.
type SettingsProvider interface {
	DiscountPercent() decimal.Decimal
	TaxPercent() decimal.Decimal
	Currency() string
	ReceiptNumberFormat() string
}

// PaymentGateway is the charge/notification surface of the payment provider.
type PaymentGateway interface {
	CreateCharge(ctx context.Context, transaction domain.Transaction, details []domain.TransactionDetail) (result dto.ChargeResult, err error)
	VerifyNotification(notification dto.PaymentNotification) (err error)
}

// ProductAlerter raises low-stock alerts. Calls are fire-and-forget; the
// caller swallows failures.
type ProductAlerter interface {
	CheckAndNotify(ctx context.Context, product domain.Product) (err error)
}

// MessageWriter is the producer side of the event stream. *kafka.Conn
// satisfies it.
type MessageWriter interface {
	WriteMessages(msgs ...kafka.Message) (n int, err error)
}
