package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alimikegami/point-of-sales/cashier-service/internal/domain"
	pkgdto "github.com/alimikegami/point-of-sales/cashier-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/errs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type TransactionRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &TransactionRepositoryImpl{
		db: db,
	}
}

func (r *TransactionRepositoryImpl) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}

	return r.db
}

func (r *TransactionRepositoryImpl) prepareNamed(ctx context.Context, query string) (*sqlx.NamedStmt, error) {
	if r.tx != nil {
		return r.tx.PrepareNamedContext(ctx, query)
	}

	return r.db.PrepareNamedContext(ctx, query)
}

// HandleTrx runs fn against a transaction-scoped repository. The whole unit
// of work commits only if fn returns nil; any error or panic rolls back.
func (r *TransactionRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo TransactionRepository) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	trxRepo := &TransactionRepositoryImpl{
		db: r.db,
		tx: tx,
	}

	err = fn(ctx, trxRepo)

	return err
}

func (r *TransactionRepositoryImpl) AddTransaction(ctx context.Context, data domain.Transaction) (id int64, err error) {
	// invoice_number carries a unique constraint and the real number needs
	// the row id, so fresh rows get a throwaway unique value until
	// SetTransactionInvoiceNumber runs in the same unit of work.
	if data.InvoiceNumber == "" {
		data.InvoiceNumber = uuid.NewString()
	}

	nstmt, err := r.prepareNamed(ctx, "INSERT INTO transactions(user_id, invoice_number, status, payment_method, subtotal, discount_amount, tax_amount, total, amount_paid, change_amount, note, suspended_from_id, created_at, updated_at) VALUES (:user_id, :invoice_number, :status, :payment_method, :subtotal, :discount_amount, :tax_amount, :total, :amount_paid, :change_amount, :note, :suspended_from_id, :created_at, :updated_at) returning id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddTransaction").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddTransaction").Msg("")
		return
	}

	return data.ID, nil
}

func (r *TransactionRepositoryImpl) SetTransactionInvoiceNumber(ctx context.Context, id int64, invoiceNumber string) (err error) {
	_, err = r.ext().ExecContext(ctx, "UPDATE transactions SET invoice_number = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL", id, invoiceNumber, time.Now().Unix())
	if err != nil {
		log.Error().Err(err).Str("component", "SetTransactionInvoiceNumber").Msg("")
		return
	}

	return nil
}

func (r *TransactionRepositoryImpl) UpdateTransactionStatus(ctx context.Context, data domain.Transaction) (err error) {
	data.UpdatedAt = time.Now().Unix()
	_, err = sqlx.NamedExecContext(ctx, r.ext(), "UPDATE transactions SET status = :status, amount_paid = :amount_paid, change_amount = :change_amount, confirmed_by = :confirmed_by, confirmed_at = :confirmed_at, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateTransactionStatus").Msg("")
		return
	}

	return nil
}

func (r *TransactionRepositoryImpl) UpdateSuspendedTransaction(ctx context.Context, data domain.Transaction) (err error) {
	data.UpdatedAt = time.Now().Unix()
	_, err = sqlx.NamedExecContext(ctx, r.ext(), "UPDATE transactions SET subtotal = :subtotal, discount_amount = :discount_amount, tax_amount = :tax_amount, total = :total, note = :note, updated_at = :updated_at WHERE id = :id AND status = 'suspended' AND deleted_at IS NULL", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateSuspendedTransaction").Msg("")
		return
	}

	return nil
}

// DeleteTransaction removes a suspended transaction that has been superseded
// by a resumed checkout. This is the only hard delete in the service.
func (r *TransactionRepositoryImpl) DeleteTransaction(ctx context.Context, id int64) (err error) {
	_, err = r.ext().ExecContext(ctx, "DELETE FROM transaction_details WHERE transaction_id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteTransaction").Msg("")
		return
	}

	_, err = r.ext().ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteTransaction").Msg("")
		return
	}

	return nil
}

func (r *TransactionRepositoryImpl) GetTransactionByID(ctx context.Context, id int64) (data domain.Transaction, err error) {
	row := r.ext().QueryRowxContext(ctx, "SELECT * FROM transactions WHERE id = $1 AND deleted_at IS NULL", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNotFound
		}
		log.Error().Err(err).Str("component", "GetTransactionByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) LockTransaction(ctx context.Context, id int64) (data domain.Transaction, err error) {
	row := r.ext().QueryRowxContext(ctx, "SELECT * FROM transactions WHERE id = $1 AND deleted_at IS NULL FOR UPDATE", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNotFound
		}
		log.Error().Err(err).Str("component", "LockTransaction").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) GetTransactions(ctx context.Context, filter pkgdto.Filter) (data []domain.Transaction, err error) {
	query := "SELECT * FROM transactions WHERE deleted_at IS NULL"
	args := make(map[string]interface{})

	if filter.Status != "" {
		query += " AND status = :status"
		args["status"] = filter.Status
	}

	if filter.PaymentMethod != "" {
		query += " AND payment_method = :payment_method"
		args["payment_method"] = filter.PaymentMethod
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit != 0 && filter.Page != 0 {
		offset := (filter.Page - 1) * filter.Limit
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filter.Limit
		args["offset"] = offset
	}

	nstmt, err := r.prepareNamed(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactions").Msg("")
		return nil, err
	}

	err = nstmt.SelectContext(ctx, &data, args)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactions").Msg("")
		return nil, err
	}

	return
}

func (r *TransactionRepositoryImpl) CountTransactions(ctx context.Context, filter pkgdto.Filter) (count uint64, err error) {
	query := "SELECT COUNT(*) FROM transactions WHERE deleted_at IS NULL"
	args := make(map[string]interface{})

	if filter.Status != "" {
		query += " AND status = :status"
		args["status"] = filter.Status
	}

	if filter.PaymentMethod != "" {
		query += " AND payment_method = :payment_method"
		args["payment_method"] = filter.PaymentMethod
	}

	nstmt, err := r.prepareNamed(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("component", "CountTransactions").Msg("")
		return 0, err
	}

	err = nstmt.GetContext(ctx, &count, args)
	if err != nil {
		log.Error().Err(err).Str("component", "CountTransactions").Msg("")
		return 0, err
	}

	return
}

// GetExpiredPendingTransactionIDs lists pending gateway transactions whose
// most recent payment attempt has passed its expiry.
func (r *TransactionRepositoryImpl) GetExpiredPendingTransactionIDs(ctx context.Context, now int64) (ids []int64, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &ids, `
		SELECT t.id FROM transactions t
		JOIN payments p ON p.transaction_id = t.id
		WHERE t.status = 'pending' AND t.deleted_at IS NULL
			AND p.expired_at IS NOT NULL AND p.expired_at < $1
			AND p.status = 'pending'
			AND p.id = (SELECT MAX(id) FROM payments WHERE transaction_id = t.id)`, now)
	if err != nil {
		log.Error().Err(err).Str("component", "GetExpiredPendingTransactionIDs").Msg("")
		return nil, err
	}

	return
}

func (r *TransactionRepositoryImpl) AddTransactionDetails(ctx context.Context, data []domain.TransactionDetail) (err error) {
	_, err = sqlx.NamedExecContext(ctx, r.ext(), "INSERT INTO transaction_details(transaction_id, product_id, product_name, price, quantity, amount, created_at, updated_at) VALUES (:transaction_id, :product_id, :product_name, :price, :quantity, :amount, :created_at, :updated_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddTransactionDetails").Msg("")
		return
	}

	return nil
}

func (r *TransactionRepositoryImpl) GetTransactionDetails(ctx context.Context, transactionID int64) (data []domain.TransactionDetail, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, "SELECT * FROM transaction_details WHERE transaction_id = $1 ORDER BY id", transactionID)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactionDetails").Msg("")
		return nil, err
	}

	return
}

func (r *TransactionRepositoryImpl) DeleteTransactionDetails(ctx context.Context, transactionID int64) (err error) {
	_, err = r.ext().ExecContext(ctx, "DELETE FROM transaction_details WHERE transaction_id = $1", transactionID)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteTransactionDetails").Msg("")
		return
	}

	return nil
}

func (r *TransactionRepositoryImpl) AddPayment(ctx context.Context, data domain.Payment) (id int64, err error) {
	nstmt, err := r.prepareNamed(ctx, "INSERT INTO payments(transaction_id, method, provider_order_id, provider_transaction_id, status, amount, qr_payload, metadata, paid_at, expired_at, created_at, updated_at) VALUES (:transaction_id, :method, :provider_order_id, :provider_transaction_id, :status, :amount, :qr_payload, :metadata, :paid_at, :expired_at, :created_at, :updated_at) returning id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddPayment").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddPayment").Msg("")
		return
	}

	return data.ID, nil
}

func (r *TransactionRepositoryImpl) UpdatePayment(ctx context.Context, data domain.Payment) (err error) {
	data.UpdatedAt = time.Now().Unix()
	_, err = sqlx.NamedExecContext(ctx, r.ext(), "UPDATE payments SET status = :status, metadata = :metadata, paid_at = :paid_at, expired_at = :expired_at, updated_at = :updated_at WHERE id = :id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePayment").Msg("")
		return
	}

	return nil
}

// GetLatestPaymentByProviderRef resolves an inbound gateway notification to
// the most recently created matching payment attempt.
func (r *TransactionRepositoryImpl) GetLatestPaymentByProviderRef(ctx context.Context, providerOrderID string, providerTransactionID string) (data domain.Payment, err error) {
	row := r.ext().QueryRowxContext(ctx, "SELECT * FROM payments WHERE provider_order_id = $1 OR provider_transaction_id = $2 ORDER BY id DESC LIMIT 1", providerOrderID, providerTransactionID)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNotFound
		}
		log.Error().Err(err).Str("component", "GetLatestPaymentByProviderRef").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) GetLatestPaymentByTransactionID(ctx context.Context, transactionID int64) (data domain.Payment, err error) {
	row := r.ext().QueryRowxContext(ctx, "SELECT * FROM payments WHERE transaction_id = $1 ORDER BY id DESC LIMIT 1", transactionID)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNotFound
		}
		log.Error().Err(err).Str("component", "GetLatestPaymentByTransactionID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}
