package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/cashier-service/internal/domain"
	pkgdto "github.com/alimikegami/point-of-sales/cashier-service/pkg/dto"
)

type TransactionRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo TransactionRepository) error) error

	GetProductByID(ctx context.Context, id int64) (data domain.Product, err error)
	LockProduct(ctx context.Context, id int64) (data domain.Product, err error)
	DecrementProductStock(ctx context.Context, id int64, quantity int64) (err error)
	IncrementProductStock(ctx context.Context, id int64, quantity int64) (err error)

	AddTransaction(ctx context.Context, data domain.Transaction) (id int64, err error)
	SetTransactionInvoiceNumber(ctx context.Context, id int64, invoiceNumber string) (err error)
	UpdateTransactionStatus(ctx context.Context, data domain.Transaction) (err error)
	UpdateSuspendedTransaction(ctx context.Context, data domain.Transaction) (err error)
	DeleteTransaction(ctx context.Context, id int64) (err error)
	GetTransactionByID(ctx context.Context, id int64) (data domain.Transaction, err error)
	LockTransaction(ctx context.Context, id int64) (data domain.Transaction, err error)
	GetTransactions(ctx context.Context, filter pkgdto.Filter) (data []domain.Transaction, err error)
	CountTransactions(ctx context.Context, filter pkgdto.Filter) (count uint64, err error)
	GetExpiredPendingTransactionIDs(ctx context.Context, now int64) (ids []int64, err error)

	AddTransactionDetails(ctx context.Context, data []domain.TransactionDetail) (err error)
	GetTransactionDetails(ctx context.Context, transactionID int64) (data []domain.TransactionDetail, err error)
	DeleteTransactionDetails(ctx context.Context, transactionID int64) (err error)

	AddPayment(ctx context.Context, data domain.Payment) (id int64, err error)
	UpdatePayment(ctx context.Context, data domain.Payment) (err error)
	GetLatestPaymentByProviderRef(ctx context.Context, providerOrderID string, providerTransactionID string) (data domain.Payment, err error)
	GetLatestPaymentByTransactionID(ctx context.Context, transactionID int64) (data domain.Payment, err error)
}
