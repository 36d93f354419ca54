package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alimikegami/point-of-sales/cashier-service/internal/domain"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

// The stock ledger is the only code allowed to touch products.stock. Every
// mutation happens on the tx-scoped repository behind a row lock so that
// concurrent checkouts against the same product are serialized by postgres.

func (r *TransactionRepositoryImpl) GetProductByID(ctx context.Context, id int64) (data domain.Product, err error) {
	row := r.ext().QueryRowxContext(ctx, "SELECT * FROM products WHERE id = $1 AND deleted_at IS NULL", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNotFound
		}
		log.Error().Err(err).Str("component", "GetProductByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

// LockProduct acquires an exclusive row lock on the product for the rest of
// the enclosing unit of work. Callers must lock in ascending product id
// order to avoid deadlocks between overlapping carts.
func (r *TransactionRepositoryImpl) LockProduct(ctx context.Context, id int64) (data domain.Product, err error) {
	row := r.ext().QueryRowxContext(ctx, "SELECT * FROM products WHERE id = $1 AND deleted_at IS NULL FOR UPDATE", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNotFound
		}
		log.Error().Err(err).Str("component", "LockProduct").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

// DecrementProductStock subtracts quantity from the product's stock. The
// stock >= quantity guard in the statement keeps stock non-negative even if
// a caller skipped the lock; zero affected rows means insufficient stock.
func (r *TransactionRepositoryImpl) DecrementProductStock(ctx context.Context, id int64, quantity int64) (err error) {
	result, err := r.ext().ExecContext(ctx, "UPDATE products SET stock = stock - $2, updated_at = $3 WHERE id = $1 AND stock >= $2 AND deleted_at IS NULL", id, quantity, time.Now().Unix())
	if err != nil {
		log.Error().Err(err).Str("component", "DecrementProductStock").Msg("")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("component", "DecrementProductStock").Msg("")
		return
	}

	if affected == 0 {
		return errs.ErrInsufficientStock
	}

	return nil
}

// IncrementProductStock restores stock for canceled or expired transactions.
func (r *TransactionRepositoryImpl) IncrementProductStock(ctx context.Context, id int64, quantity int64) (err error) {
	result, err := r.ext().ExecContext(ctx, "UPDATE products SET stock = stock + $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL", id, quantity, time.Now().Unix())
	if err != nil {
		log.Error().Err(err).Str("component", "IncrementProductStock").Msg("")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("component", "IncrementProductStock").Msg("")
		return
	}

	if affected == 0 {
		return errs.ErrNotFound
	}

	return nil
}
