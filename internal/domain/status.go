package domain

import (
	"fmt"
	"strings"
)

type TransactionStatus string

const (
	StatusSuspended TransactionStatus = "suspended"
	StatusPending   TransactionStatus = "pending"
	StatusPaid      TransactionStatus = "paid"
	StatusCanceled  TransactionStatus = "canceled"
	StatusRefunded  TransactionStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentStatusSettlement PaymentStatus = "settlement"
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusExpire     PaymentStatus = "expire"
	PaymentStatusCancel     PaymentStatus = "cancel"
	PaymentStatusDeny       PaymentStatus = "deny"
	PaymentStatusFailure    PaymentStatus = "failure"
)

// transitions is the single authority over transaction status changes.
// PAID, CANCELED and REFUNDED are terminal.
var transitions = map[TransactionStatus][]TransactionStatus{
	StatusSuspended: {StatusPending, StatusPaid},
	StatusPending:   {StatusPaid, StatusCanceled},
	StatusPaid:      {},
	StatusCanceled:  {},
	StatusRefunded:  {},
}

type InvalidTransitionError struct {
	From TransactionStatus
	To   TransactionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transaction status transition from %q to %q", e.From, e.To)
}

func NormalizeStatus(status string) TransactionStatus {
	return TransactionStatus(strings.ToLower(strings.TrimSpace(status)))
}

func CanTransition(from, to TransactionStatus) bool {
	for _, allowed := range transitions[NormalizeStatus(string(from))] {
		if allowed == NormalizeStatus(string(to)) {
			return true
		}
	}

	return false
}

// Transition mutates the status field only; persisting the change is the
// caller's responsibility.
func Transition(transaction *Transaction, to TransactionStatus) error {
	if !CanTransition(transaction.Status, to) {
		return &InvalidTransitionError{From: transaction.Status, To: to}
	}

	transaction.Status = NormalizeStatus(string(to))

	return nil
}

func PossibleTransitions(current TransactionStatus) []TransactionStatus {
	allowed, ok := transitions[NormalizeStatus(string(current))]
	if !ok {
		return nil
	}

	out := make([]TransactionStatus, len(allowed))
	copy(out, allowed)

	return out
}

func IsTerminal(status TransactionStatus) bool {
	allowed, ok := transitions[NormalizeStatus(string(status))]

	return ok && len(allowed) == 0
}

// MapProviderStatus maps a payment gateway notification status to the
// internal payment status set. Unrecognized statuses map to failure.
func MapProviderStatus(providerStatus string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "settlement":
		return PaymentStatusSettlement
	case "pending":
		return PaymentStatusPending
	case "expire":
		return PaymentStatusExpire
	case "cancel":
		return PaymentStatusCancel
	case "deny":
		return PaymentStatusDeny
	default:
		return PaymentStatusFailure
	}
}
