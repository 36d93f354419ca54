package service

import (
	"context"
	"sort"
	"sync"

	"github.com/alimikegami/point-of-sales/cashier-service/internal/domain"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/repository"
	pkgdto "github.com/alimikegami/point-of-sales/cashier-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/errs"
	"github.com/google/uuid"
)

// fakeRepository is an in-memory stand-in for the postgres repository. Each
// HandleTrx call holds the mutex for its whole unit of work, which mirrors
// the serialization the row locks provide, and restores a snapshot on error
// so rollbacks behave like the real thing.
type fakeRepository struct {
	mu sync.Mutex

	products     map[int64]domain.Product
	transactions map[int64]domain.Transaction
	details      map[int64][]domain.TransactionDetail
	payments     []domain.Payment

	nextTransactionID int64
	nextPaymentID     int64

	listExpiredErr error
}

func newFakeRepository(products ...domain.Product) *fakeRepository {
	repo := &fakeRepository{
		products:     make(map[int64]domain.Product),
		transactions: make(map[int64]domain.Transaction),
		details:      make(map[int64][]domain.TransactionDetail),
	}

	for _, product := range products {
		repo.products[product.ID] = product
	}

	return repo
}

type fakeSnapshot struct {
	products          map[int64]domain.Product
	transactions      map[int64]domain.Transaction
	details           map[int64][]domain.TransactionDetail
	payments          []domain.Payment
	nextTransactionID int64
	nextPaymentID     int64
}

func (r *fakeRepository) snapshot() fakeSnapshot {
	snap := fakeSnapshot{
		products:          make(map[int64]domain.Product, len(r.products)),
		transactions:      make(map[int64]domain.Transaction, len(r.transactions)),
		details:           make(map[int64][]domain.TransactionDetail, len(r.details)),
		payments:          append([]domain.Payment(nil), r.payments...),
		nextTransactionID: r.nextTransactionID,
		nextPaymentID:     r.nextPaymentID,
	}

	for id, product := range r.products {
		snap.products[id] = product
	}
	for id, transaction := range r.transactions {
		snap.transactions[id] = transaction
	}
	for id, details := range r.details {
		snap.details[id] = append([]domain.TransactionDetail(nil), details...)
	}

	return snap
}

func (r *fakeRepository) restore(snap fakeSnapshot) {
	r.products = snap.products
	r.transactions = snap.transactions
	r.details = snap.details
	r.payments = snap.payments
	r.nextTransactionID = snap.nextTransactionID
	r.nextPaymentID = snap.nextPaymentID
}

func (r *fakeRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.TransactionRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.snapshot()

	if err := fn(ctx, r); err != nil {
		r.restore(snap)
		return err
	}

	return nil
}

func (r *fakeRepository) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, errs.ErrNotFound
	}

	return product, nil
}

func (r *fakeRepository) LockProduct(ctx context.Context, id int64) (domain.Product, error) {
	return r.GetProductByID(ctx, id)
}

func (r *fakeRepository) DecrementProductStock(ctx context.Context, id int64, quantity int64) error {
	product, ok := r.products[id]
	if !ok {
		return errs.ErrNotFound
	}
	if product.Stock < quantity {
		return errs.ErrInsufficientStock
	}

	product.Stock -= quantity
	r.products[id] = product

	return nil
}

func (r *fakeRepository) IncrementProductStock(ctx context.Context, id int64, quantity int64) error {
	product, ok := r.products[id]
	if !ok {
		return errs.ErrNotFound
	}

	product.Stock += quantity
	r.products[id] = product

	return nil
}

func (r *fakeRepository) AddTransaction(ctx context.Context, data domain.Transaction) (int64, error) {
	if data.InvoiceNumber == "" {
		data.InvoiceNumber = uuid.NewString()
	}
	for _, existing := range r.transactions {
		if existing.InvoiceNumber == data.InvoiceNumber {
			return 0, errs.ErrConflict
		}
	}

	r.nextTransactionID++
	data.ID = r.nextTransactionID
	r.transactions[data.ID] = data

	return data.ID, nil
}

func (r *fakeRepository) SetTransactionInvoiceNumber(ctx context.Context, id int64, invoiceNumber string) error {
	transaction, ok := r.transactions[id]
	if !ok {
		return errs.ErrNotFound
	}

	transaction.InvoiceNumber = invoiceNumber
	r.transactions[id] = transaction

	return nil
}

func (r *fakeRepository) UpdateTransactionStatus(ctx context.Context, data domain.Transaction) error {
	transaction, ok := r.transactions[data.ID]
	if !ok {
		return errs.ErrNotFound
	}

	transaction.Status = data.Status
	transaction.AmountPaid = data.AmountPaid
	transaction.ChangeAmount = data.ChangeAmount
	transaction.ConfirmedBy = data.ConfirmedBy
	transaction.ConfirmedAt = data.ConfirmedAt
	r.transactions[data.ID] = transaction

	return nil
}

func (r *fakeRepository) UpdateSuspendedTransaction(ctx context.Context, data domain.Transaction) error {
	transaction, ok := r.transactions[data.ID]
	if !ok || transaction.Status != domain.StatusSuspended {
		return nil
	}

	transaction.Subtotal = data.Subtotal
	transaction.DiscountAmount = data.DiscountAmount
	transaction.TaxAmount = data.TaxAmount
	transaction.Total = data.Total
	transaction.Note = data.Note
	r.transactions[data.ID] = transaction

	return nil
}

func (r *fakeRepository) DeleteTransaction(ctx context.Context, id int64) error {
	delete(r.transactions, id)
	delete(r.details, id)

	return nil
}

func (r *fakeRepository) GetTransactionByID(ctx context.Context, id int64) (domain.Transaction, error) {
	transaction, ok := r.transactions[id]
	if !ok {
		return domain.Transaction{}, errs.ErrNotFound
	}

	return transaction, nil
}

func (r *fakeRepository) LockTransaction(ctx context.Context, id int64) (domain.Transaction, error) {
	return r.GetTransactionByID(ctx, id)
}

func (r *fakeRepository) GetTransactions(ctx context.Context, filter pkgdto.Filter) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, transaction := range r.transactions {
		if filter.Status != "" && string(transaction.Status) != filter.Status {
			continue
		}
		if filter.PaymentMethod != "" && transaction.PaymentMethod != filter.PaymentMethod {
			continue
		}
		out = append(out, transaction)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *fakeRepository) CountTransactions(ctx context.Context, filter pkgdto.Filter) (uint64, error) {
	transactions, err := r.GetTransactions(ctx, filter)
	if err != nil {
		return 0, err
	}

	return uint64(len(transactions)), nil
}

func (r *fakeRepository) GetExpiredPendingTransactionIDs(ctx context.Context, now int64) ([]int64, error) {
	if r.listExpiredErr != nil {
		return nil, r.listExpiredErr
	}

	var ids []int64
	for id, transaction := range r.transactions {
		if transaction.Status != domain.StatusPending {
			continue
		}

		payment, err := r.GetLatestPaymentByTransactionID(ctx, id)
		if err != nil {
			continue
		}
		if payment.Status == domain.PaymentStatusPending && payment.ExpiredAt != nil && *payment.ExpiredAt < now {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

func (r *fakeRepository) AddTransactionDetails(ctx context.Context, data []domain.TransactionDetail) error {
	for _, detail := range data {
		r.details[detail.TransactionID] = append(r.details[detail.TransactionID], detail)
	}

	return nil
}

func (r *fakeRepository) GetTransactionDetails(ctx context.Context, transactionID int64) ([]domain.TransactionDetail, error) {
	return append([]domain.TransactionDetail(nil), r.details[transactionID]...), nil
}

func (r *fakeRepository) DeleteTransactionDetails(ctx context.Context, transactionID int64) error {
	delete(r.details, transactionID)

	return nil
}

func (r *fakeRepository) AddPayment(ctx context.Context, data domain.Payment) (int64, error) {
	r.nextPaymentID++
	data.ID = r.nextPaymentID
	r.payments = append(r.payments, data)

	return data.ID, nil
}

func (r *fakeRepository) UpdatePayment(ctx context.Context, data domain.Payment) error {
	for i := range r.payments {
		if r.payments[i].ID == data.ID {
			r.payments[i] = data
			return nil
		}
	}

	return errs.ErrNotFound
}

func (r *fakeRepository) GetLatestPaymentByProviderRef(ctx context.Context, providerOrderID string, providerTransactionID string) (domain.Payment, error) {
	for i := len(r.payments) - 1; i >= 0; i-- {
		payment := r.payments[i]
		if payment.ProviderOrderID != nil && *payment.ProviderOrderID == providerOrderID {
			return payment, nil
		}
		if payment.ProviderTransactionID != nil && *payment.ProviderTransactionID == providerTransactionID {
			return payment, nil
		}
	}

	return domain.Payment{}, errs.ErrNotFound
}

func (r *fakeRepository) GetLatestPaymentByTransactionID(ctx context.Context, transactionID int64) (domain.Payment, error) {
	for i := len(r.payments) - 1; i >= 0; i-- {
		if r.payments[i].TransactionID == transactionID {
			return r.payments[i], nil
		}
	}

	return domain.Payment{}, errs.ErrNotFound
}
