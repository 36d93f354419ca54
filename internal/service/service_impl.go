package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alimikegami/point-of-sales/cashier-service/config"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/domain"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/dto"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/repository"
	pkgdto "github.com/alimikegami/point-of-sales/cashier-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/invoice"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/utils"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const holdInvoicePrefix = "HOLD-"

var hundred = decimal.NewFromInt(100)

type TransactionServiceImpl struct {
	repository     repository.TransactionRepository
	paymentGateway PaymentGateway
	settings       SettingsProvider
	alerter        ProductAlerter
	kafkaProducer  MessageWriter
	config         *config.Config
}

func CreateTransactionService(repository repository.TransactionRepository, paymentGateway PaymentGateway, settings SettingsProvider, alerter ProductAlerter, kafkaProducer MessageWriter, config *config.Config) TransactionService {
	return &TransactionServiceImpl{
		repository:     repository,
		paymentGateway: paymentGateway,
		settings:       settings,
		alerter:        alerter,
		kafkaProducer:  kafkaProducer,
		config:         config,
	}
}

// Checkout prices the cart, decrements stock and persists the transaction as
// one unit of work. Either the whole sequence commits or nothing does.
func (s *TransactionServiceImpl) Checkout(ctx context.Context, req dto.CheckoutRequest) (resp dto.TransactionResponse, err error) {
	items, err := normalizeCart(req.Items)
	if err != nil {
		return resp, err
	}

	paymentMethod := domain.PaymentMethodCash
	if strings.EqualFold(req.PaymentMethod, domain.PaymentMethodGateway) {
		paymentMethod = domain.PaymentMethodGateway
	}

	// Snapshot the pricing settings once; they must not be re-read mid-flow.
	discountPercent := s.settings.DiscountPercent()
	taxPercent := s.settings.TaxPercent()
	receiptFormat := s.settings.ReceiptNumberFormat()

	var transaction domain.Transaction
	var chargeResult *dto.ChargeResult
	var lockedProducts []domain.Product

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.TransactionRepository) error {
		now := time.Now()

		if req.SuspendedFromID != 0 {
			hold, err := repo.GetTransactionByID(ctx, req.SuspendedFromID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					return errs.ErrHoldNotFound
				}
				return err
			}
			if hold.Status != domain.StatusSuspended {
				return errs.ErrHoldNotFound
			}
		}

		var details []domain.TransactionDetail
		subtotal := decimal.Zero
		for _, item := range items {
			product, err := repo.LockProduct(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					return fmt.Errorf("%w: product %d does not exist", errs.ErrInvalidCartLine, item.ProductID)
				}
				return err
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: %s", errs.ErrInsufficientStock, product.Name)
			}

			lineAmount := product.Price.Mul(decimal.NewFromInt(item.Quantity))
			subtotal = subtotal.Add(lineAmount)
			details = append(details, domain.TransactionDetail{
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    item.Quantity,
				Amount:      lineAmount,
				CreatedAt:   now.Unix(),
				UpdatedAt:   now.Unix(),
			})
			lockedProducts = append(lockedProducts, product)
		}

		discountAmount := subtotal.Mul(discountPercent).Div(hundred).Round(2)
		taxAmount := subtotal.Sub(discountAmount).Mul(taxPercent).Div(hundred).Round(2)
		total := subtotal.Sub(discountAmount).Add(taxAmount).Round(2)

		status := domain.StatusPaid
		amountPaid := req.PaidAmount
		change := decimal.Zero
		if paymentMethod == domain.PaymentMethodGateway {
			status = domain.StatusPending
			amountPaid = decimal.Zero
		} else {
			if req.PaidAmount.LessThan(total) {
				return errs.ErrInsufficientPayment
			}
			change = req.PaidAmount.Sub(total)
		}

		transaction = domain.Transaction{
			UserID:         req.UserID,
			Status:         status,
			PaymentMethod:  paymentMethod,
			Subtotal:       subtotal,
			DiscountAmount: discountAmount,
			TaxAmount:      taxAmount,
			Total:          total,
			AmountPaid:     amountPaid,
			ChangeAmount:   change,
			CreatedAt:      now.Unix(),
			UpdatedAt:      now.Unix(),
		}
		if req.Note != "" {
			note := req.Note
			transaction.Note = &note
		}
		if req.SuspendedFromID != 0 {
			suspendedFromID := req.SuspendedFromID
			transaction.SuspendedFromID = &suspendedFromID
		}

		transactionID, err := repo.AddTransaction(ctx, transaction)
		if err != nil {
			return err
		}
		transaction.ID = transactionID

		// The invoice number embeds the row id, so it can only be generated
		// after the insert.
		invoiceNumber, err := invoice.Generate(transactionID, receiptFormat, now)
		if err != nil {
			return err
		}
		if err := repo.SetTransactionInvoiceNumber(ctx, transactionID, invoiceNumber); err != nil {
			return err
		}
		transaction.InvoiceNumber = invoiceNumber

		for idx := range details {
			details[idx].TransactionID = transactionID
		}
		if err := repo.AddTransactionDetails(ctx, details); err != nil {
			return err
		}
		transaction.Details = details

		for _, item := range items {
			if err := repo.DecrementProductStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if paymentMethod == domain.PaymentMethodGateway {
			result, err := s.paymentGateway.CreateCharge(ctx, transaction, details)
			if err != nil {
				return fmt.Errorf("%w: %v", errs.ErrPaymentGateway, err)
			}

			payment := domain.Payment{
				TransactionID: transactionID,
				Method:        domain.PaymentMethodGateway,
				Status:        domain.PaymentStatusPending,
				Amount:        total,
				CreatedAt:     now.Unix(),
				UpdatedAt:     now.Unix(),
			}
			if result.ProviderOrderID != "" {
				payment.ProviderOrderID = &result.ProviderOrderID
			}
			if result.ProviderTransactionID != "" {
				payment.ProviderTransactionID = &result.ProviderTransactionID
			}
			if result.QRPayload != "" {
				payment.QRPayload = &result.QRPayload
			}
			if result.ExpiredAt != 0 {
				payment.ExpiredAt = &result.ExpiredAt
			}
			if len(result.RawResponse) != 0 {
				metadata := string(result.RawResponse)
				payment.Metadata = &metadata
			}

			if _, err := repo.AddPayment(ctx, payment); err != nil {
				return err
			}
			chargeResult = &result
		} else {
			paidAt := now.Unix()
			payment := domain.Payment{
				TransactionID: transactionID,
				Method:        domain.PaymentMethodCash,
				Status:        domain.PaymentStatusSettlement,
				Amount:        total,
				PaidAt:        &paidAt,
				CreatedAt:     now.Unix(),
				UpdatedAt:     now.Unix(),
			}
			if _, err := repo.AddPayment(ctx, payment); err != nil {
				return err
			}
		}

		// A cash resume completes immediately, so the parked original is
		// superseded and removed.
		if req.SuspendedFromID != 0 && transaction.Status == domain.StatusPaid {
			if err := repo.DeleteTransaction(ctx, req.SuspendedFromID); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return resp, err
	}

	s.checkLowStock(ctx, lockedProducts)
	if transaction.Status == domain.StatusPaid {
		s.publishTransactionEvent("transaction_paid", transaction)
	}

	return buildTransactionResponse(transaction, chargeResult), nil
}

// Hold parks the cart as a suspended transaction. Stock is never locked or
// mutated here; a hold reserves intent, not inventory.
func (s *TransactionServiceImpl) Hold(ctx context.Context, req dto.HoldRequest) (resp dto.TransactionResponse, err error) {
	items, err := normalizeCart(req.Items)
	if err != nil {
		return resp, err
	}

	discountPercent := s.settings.DiscountPercent()
	taxPercent := s.settings.TaxPercent()
	receiptFormat := s.settings.ReceiptNumberFormat()

	var transaction domain.Transaction

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.TransactionRepository) error {
		now := time.Now()

		var details []domain.TransactionDetail
		subtotal := decimal.Zero
		for _, item := range items {
			product, err := repo.GetProductByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					return fmt.Errorf("%w: product %d does not exist", errs.ErrInvalidCartLine, item.ProductID)
				}
				return err
			}

			lineAmount := product.Price.Mul(decimal.NewFromInt(item.Quantity))
			subtotal = subtotal.Add(lineAmount)
			details = append(details, domain.TransactionDetail{
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    item.Quantity,
				Amount:      lineAmount,
				CreatedAt:   now.Unix(),
				UpdatedAt:   now.Unix(),
			})
		}

		discountAmount := subtotal.Mul(discountPercent).Div(hundred).Round(2)
		taxAmount := subtotal.Sub(discountAmount).Mul(taxPercent).Div(hundred).Round(2)
		total := subtotal.Sub(discountAmount).Add(taxAmount).Round(2)

		if req.HoldID != 0 {
			hold, err := repo.GetTransactionByID(ctx, req.HoldID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					return errs.ErrHoldNotFound
				}
				return err
			}
			if hold.Status != domain.StatusSuspended {
				return errs.ErrHoldNotFound
			}
			if hold.UserID != req.UserID {
				return errs.ErrUnauthorized
			}

			hold.Subtotal = subtotal
			hold.DiscountAmount = discountAmount
			hold.TaxAmount = taxAmount
			hold.Total = total
			if req.Note != "" {
				note := req.Note
				hold.Note = &note
			}

			if err := repo.UpdateSuspendedTransaction(ctx, hold); err != nil {
				return err
			}

			// A hold's lines are replaced wholesale, never patched.
			if err := repo.DeleteTransactionDetails(ctx, hold.ID); err != nil {
				return err
			}
			for idx := range details {
				details[idx].TransactionID = hold.ID
			}
			if err := repo.AddTransactionDetails(ctx, details); err != nil {
				return err
			}

			hold.Details = details
			transaction = hold

			return nil
		}

		transaction = domain.Transaction{
			UserID:         req.UserID,
			Status:         domain.StatusSuspended,
			PaymentMethod:  domain.PaymentMethodCash,
			Subtotal:       subtotal,
			DiscountAmount: discountAmount,
			TaxAmount:      taxAmount,
			Total:          total,
			CreatedAt:      now.Unix(),
			UpdatedAt:      now.Unix(),
		}
		if req.Note != "" {
			note := req.Note
			transaction.Note = &note
		}

		transactionID, err := repo.AddTransaction(ctx, transaction)
		if err != nil {
			return err
		}
		transaction.ID = transactionID

		invoiceNumber, err := invoice.Generate(transactionID, receiptFormat, now)
		if err != nil {
			return err
		}
		invoiceNumber = holdInvoicePrefix + invoiceNumber
		if err := repo.SetTransactionInvoiceNumber(ctx, transactionID, invoiceNumber); err != nil {
			return err
		}
		transaction.InvoiceNumber = invoiceNumber

		for idx := range details {
			details[idx].TransactionID = transactionID
		}
		if err := repo.AddTransactionDetails(ctx, details); err != nil {
			return err
		}
		transaction.Details = details

		return nil
	})

	if err != nil {
		return resp, err
	}

	return buildTransactionResponse(transaction, nil), nil
}

// ConfirmTransaction is the cashier-side confirmation of a pending gateway
// transaction, for when the customer shows proof of payment before the
// asynchronous notification lands.
func (s *TransactionServiceImpl) ConfirmTransaction(ctx context.Context, transactionID int64, userID int64) (err error) {
	var transaction domain.Transaction
	confirmed := false

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.TransactionRepository) error {
		transaction, err = repo.LockTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		if transaction.Status == domain.StatusPaid {
			return nil
		}

		// Confirmation only settles a gateway payment that is still waiting
		// for its notification. A hold has moved no stock and has no payment
		// attempt, so it must go through checkout instead.
		if transaction.Status != domain.StatusPending || transaction.PaymentMethod != domain.PaymentMethodGateway {
			return errs.ErrNotConfirmable
		}

		if err := domain.Transition(&transaction, domain.StatusPaid); err != nil {
			return err
		}

		now := time.Now().Unix()
		transaction.ConfirmedBy = &userID
		transaction.ConfirmedAt = &now
		transaction.AmountPaid = transaction.Total
		transaction.ChangeAmount = decimal.Zero

		if err := repo.UpdateTransactionStatus(ctx, transaction); err != nil {
			return err
		}

		payment, err := repo.GetLatestPaymentByTransactionID(ctx, transactionID)
		if err == nil {
			payment.Status = domain.PaymentStatusSettlement
			payment.PaidAt = &now
			if err := repo.UpdatePayment(ctx, payment); err != nil {
				return err
			}
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}

		if transaction.SuspendedFromID != nil {
			if err := repo.DeleteTransaction(ctx, *transaction.SuspendedFromID); err != nil {
				return err
			}
		}

		confirmed = true

		return nil
	})

	if err != nil {
		return err
	}

	if confirmed {
		s.publishTransactionEvent("transaction_paid", transaction)
	}

	return nil
}

// PaymentNotification reconciles an inbound gateway notification against the
// matching payment attempt. Notifications arrive at least once and may be
// replayed or reordered; the transition table keeps terminal transactions
// untouched, so replays degrade to metadata updates.
func (s *TransactionServiceImpl) PaymentNotification(ctx context.Context, req dto.PaymentNotification) (err error) {
	if err := s.paymentGateway.VerifyNotification(req); err != nil {
		return err
	}

	var paidTransaction *domain.Transaction
	var canceledTransaction *domain.Transaction

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.TransactionRepository) error {
		payment, err := repo.GetLatestPaymentByProviderRef(ctx, req.OrderID, req.TransactionID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				// Acknowledge unknown notifications; surfacing an error here
				// would only make the gateway retry a lookup that can never
				// succeed.
				log.Warn().
					Str("component", "PaymentNotification").
					Str("provider_order_id", req.OrderID).
					Str("provider_transaction_id", req.TransactionID).
					Msg("notification does not match any payment, discarding")
				return nil
			}
			return err
		}

		transaction, err := repo.LockTransaction(ctx, payment.TransactionID)
		if err != nil {
			return err
		}

		now := time.Now().Unix()
		payment.Status = domain.MapProviderStatus(req.TransactionStatus)
		payment.Metadata = mergeMetadata(payment.Metadata, req)

		switch payment.Status {
		case domain.PaymentStatusSettlement:
			payment.PaidAt = &now

			if transaction.Status == domain.StatusPaid {
				break
			}
			if !domain.CanTransition(transaction.Status, domain.StatusPaid) {
				log.Warn().
					Str("component", "PaymentNotification").
					Int64("transaction_id", transaction.ID).
					Str("status", string(transaction.Status)).
					Msg("settlement for a terminal transaction, ignoring")
				break
			}

			if err := domain.Transition(&transaction, domain.StatusPaid); err != nil {
				return err
			}
			transaction.AmountPaid = transaction.Total
			transaction.ChangeAmount = decimal.Zero
			if err := repo.UpdateTransactionStatus(ctx, transaction); err != nil {
				return err
			}
			if transaction.SuspendedFromID != nil {
				if err := repo.DeleteTransaction(ctx, *transaction.SuspendedFromID); err != nil {
					return err
				}
			}
			paidTransaction = &transaction
		case domain.PaymentStatusPending:
			if transaction.Status != domain.StatusPending && domain.CanTransition(transaction.Status, domain.StatusPending) {
				if err := domain.Transition(&transaction, domain.StatusPending); err != nil {
					return err
				}
				if err := repo.UpdateTransactionStatus(ctx, transaction); err != nil {
					return err
				}
			}
		case domain.PaymentStatusExpire, domain.PaymentStatusCancel:
			if payment.Status == domain.PaymentStatusExpire {
				payment.ExpiredAt = &now
			}

			if domain.CanTransition(transaction.Status, domain.StatusCanceled) {
				if err := domain.Transition(&transaction, domain.StatusCanceled); err != nil {
					return err
				}
				if err := repo.UpdateTransactionStatus(ctx, transaction); err != nil {
					return err
				}
				if err := restoreTransactionStock(ctx, repo, transaction.ID); err != nil {
					return err
				}
				canceledTransaction = &transaction
			}
		default:
			// deny and failure touch the payment row only
		}

		return repo.UpdatePayment(ctx, payment)
	})

	if err != nil {
		return err
	}

	if paidTransaction != nil {
		s.publishTransactionEvent("transaction_paid", *paidTransaction)
	}
	if canceledTransaction != nil {
		s.publishTransactionEvent("transaction_canceled", *canceledTransaction)
	}

	return nil
}

func (s *TransactionServiceImpl) GetTransactions(ctx context.Context, filter pkgdto.Filter) (response pkgdto.Pagination, err error) {
	transactions, err := s.repository.GetTransactions(ctx, filter)
	if err != nil {
		return response, err
	}

	totalCount, err := s.repository.CountTransactions(ctx, filter)
	if err != nil {
		return response, err
	}

	var records []dto.TransactionResponse
	for _, transaction := range transactions {
		records = append(records, buildTransactionResponse(transaction, nil))
	}

	response.Metadata = pkgdto.PaginationMetadata{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	response.Records = records

	return response, nil
}

// ExpireStalePayments cancels pending gateway transactions whose payment
// window has closed and puts their stock back. Runs on a schedule.
func (s *TransactionServiceImpl) ExpireStalePayments() {
	log.Info().Str("component", "ExpireStalePayments").Msg("sweep starts")

	ctx := context.Background()
	ids, err := s.repository.GetExpiredPendingTransactionIDs(ctx, time.Now().Unix())
	if err != nil {
		log.Error().Err(err).Str("component", "ExpireStalePayments").Msg("listing expired transactions failed")
		return
	}

	for _, id := range ids {
		var canceled domain.Transaction

		err := s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.TransactionRepository) error {
			transaction, err := repo.LockTransaction(ctx, id)
			if err != nil {
				return err
			}

			if !domain.CanTransition(transaction.Status, domain.StatusCanceled) {
				return nil
			}

			if err := domain.Transition(&transaction, domain.StatusCanceled); err != nil {
				return err
			}
			if err := repo.UpdateTransactionStatus(ctx, transaction); err != nil {
				return err
			}
			if err := restoreTransactionStock(ctx, repo, transaction.ID); err != nil {
				return err
			}

			now := time.Now().Unix()
			payment, err := repo.GetLatestPaymentByTransactionID(ctx, transaction.ID)
			if err == nil {
				payment.Status = domain.PaymentStatusExpire
				payment.ExpiredAt = &now
				if err := repo.UpdatePayment(ctx, payment); err != nil {
					return err
				}
			} else if !errors.Is(err, errs.ErrNotFound) {
				return err
			}

			canceled = transaction

			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("component", "ExpireStalePayments").Int64("transaction_id", id).Msg("")
			continue
		}

		if canceled.ID != 0 {
			s.publishTransactionEvent("transaction_canceled", canceled)
		}
	}

	log.Info().Str("component", "ExpireStalePayments").Msg("sweep ends")
}

// restoreTransactionStock re-increments stock for every line of a canceled
// transaction. A failure here means inventory has drifted from the ledger,
// which needs manual follow-up, so it is surfaced loudly.
func restoreTransactionStock(ctx context.Context, repo repository.TransactionRepository, transactionID int64) error {
	details, err := repo.GetTransactionDetails(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrRollbackIntegrity, err)
	}

	for _, detail := range details {
		if err := repo.IncrementProductStock(ctx, detail.ProductID, detail.Quantity); err != nil {
			return fmt.Errorf("%w: product %d: %v", errs.ErrRollbackIntegrity, detail.ProductID, err)
		}
	}

	return nil
}

func (s *TransactionServiceImpl) checkLowStock(ctx context.Context, products []domain.Product) {
	if s.alerter == nil {
		return
	}

	for _, product := range products {
		product := product
		utils.BestEffort("checkLowStock", func() error {
			fresh, err := s.repository.GetProductByID(ctx, product.ID)
			if err != nil {
				return err
			}
			return s.alerter.CheckAndNotify(ctx, fresh)
		})
	}
}

func (s *TransactionServiceImpl) publishTransactionEvent(eventType string, transaction domain.Transaction) {
	if s.kafkaProducer == nil {
		return
	}

	go utils.BestEffort("publishTransactionEvent", func() error {
		kafkaMsg := dto.KafkaMessage{
			EventType: eventType,
			Data: dto.TransactionEvent{
				TransactionID: transaction.ID,
				InvoiceNumber: transaction.InvoiceNumber,
				Status:        string(transaction.Status),
				Total:         transaction.Total.String(),
			},
		}

		jsonMsg, err := json.Marshal(kafkaMsg)
		if err != nil {
			return fmt.Errorf("failed to marshal Kafka message: %w", err)
		}

		maxRetries := 3
		for i := 0; i < maxRetries; i++ {
			err = s.writeKafkaMessageWithKey(jsonMsg, transaction.InvoiceNumber)
			if err == nil {
				return nil
			}
			log.Error().Err(err).Str("component", "publishTransactionEvent").Msg("")
			time.Sleep(time.Second * time.Duration(i+1))
		}

		return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
	})
}

func (s *TransactionServiceImpl) writeKafkaMessageWithKey(msg []byte, key string) error {
	_, err := s.kafkaProducer.WriteMessages(
		kafka.Message{
			Key:   []byte(key),
			Value: msg,
		},
	)
	return err
}

// normalizeCart validates the raw cart lines, merges duplicate products and
// returns them in ascending product id order so that row locks are always
// acquired in a fixed order across concurrent checkouts.
func normalizeCart(items []dto.CartItem) ([]dto.CartItem, error) {
	if len(items) == 0 {
		return nil, errs.ErrEmptyCart
	}

	merged := make(map[int64]int64)
	for _, item := range items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			return nil, errs.ErrInvalidCartLine
		}
		merged[item.ProductID] += item.Quantity
	}

	out := make([]dto.CartItem, 0, len(merged))
	for productID, quantity := range merged {
		out = append(out, dto.CartItem{ProductID: productID, Quantity: quantity})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })

	return out, nil
}

// mergeMetadata overlays the raw notification payload onto whatever metadata
// the payment row already carries, preserving earlier provider responses.
func mergeMetadata(existing *string, notification dto.PaymentNotification) *string {
	merged := make(map[string]interface{})
	if existing != nil {
		if err := json.Unmarshal([]byte(*existing), &merged); err != nil {
			merged = map[string]interface{}{"charge_response": *existing}
		}
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return existing
	}

	var notificationMap map[string]interface{}
	if err := json.Unmarshal(notificationJSON, &notificationMap); err != nil {
		return existing
	}

	merged["notification"] = notificationMap

	out, err := json.Marshal(merged)
	if err != nil {
		return existing
	}

	outStr := string(out)
	return &outStr
}

func buildTransactionResponse(transaction domain.Transaction, chargeResult *dto.ChargeResult) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:             transaction.ID,
		InvoiceNumber:  transaction.InvoiceNumber,
		Status:         string(transaction.Status),
		PaymentMethod:  transaction.PaymentMethod,
		Subtotal:       transaction.Subtotal,
		DiscountAmount: transaction.DiscountAmount,
		TaxAmount:      transaction.TaxAmount,
		Total:          transaction.Total,
		AmountPaid:     transaction.AmountPaid,
		ChangeAmount:   transaction.ChangeAmount,
	}

	if chargeResult != nil {
		if chargeResult.QRPayload != "" {
			qr := chargeResult.QRPayload
			resp.QRCode = &qr
		}
		if chargeResult.ExpiredAt != 0 {
			expiredAt := chargeResult.ExpiredAt
			resp.PaymentExpiredAt = &expiredAt
		}
	}

	return resp
}
