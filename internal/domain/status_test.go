package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []TransactionStatus{StatusSuspended, StatusPending, StatusPaid, StatusCanceled, StatusRefunded}

func TestCanTransition(t *testing.T) {
	allowed := map[TransactionStatus][]TransactionStatus{
		StatusSuspended: {StatusPending, StatusPaid},
		StatusPending:   {StatusPaid, StatusCanceled},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			expected := false
			for _, target := range allowed[from] {
				if target == to {
					expected = true
				}
			}

			assert.Equal(t, expected, CanTransition(from, to), "from=%s to=%s", from, to)
		}
	}
}

func TestCanTransitionIsCaseInsensitive(t *testing.T) {
	assert.True(t, CanTransition("PENDING", "Paid"))
	assert.True(t, CanTransition("Suspended", "PENDING"))
	assert.False(t, CanTransition("PAID", "pending"))
}

func TestTransitionRejectsEveryPairOutsideTheTable(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if CanTransition(from, to) {
				continue
			}

			transaction := Transaction{Status: from}
			err := Transition(&transaction, to)

			assert.Error(t, err)
			assert.Equal(t, from, transaction.Status, "status must stay unchanged on a rejected transition")

			var invalidTransition *InvalidTransitionError
			assert.True(t, errors.As(err, &invalidTransition))
			assert.Equal(t, from, invalidTransition.From)
			assert.Equal(t, to, invalidTransition.To)
		}
	}
}

func TestTransitionMutatesStatusOnly(t *testing.T) {
	transaction := Transaction{Status: StatusPending}

	err := Transition(&transaction, StatusPaid)

	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, transaction.Status)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusPaid))
	assert.True(t, IsTerminal(StatusCanceled))
	assert.True(t, IsTerminal(StatusRefunded))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusSuspended))
	assert.False(t, IsTerminal("unknown"))
}

func TestPossibleTransitions(t *testing.T) {
	assert.ElementsMatch(t, []TransactionStatus{StatusPending, StatusPaid}, PossibleTransitions(StatusSuspended))
	assert.ElementsMatch(t, []TransactionStatus{StatusPaid, StatusCanceled}, PossibleTransitions(StatusPending))
	assert.Empty(t, PossibleTransitions(StatusPaid))
	assert.Empty(t, PossibleTransitions("unknown"))
}

func TestMapProviderStatus(t *testing.T) {
	testCases := []struct {
		provider string
		expected PaymentStatus
	}{
		{"settlement", PaymentStatusSettlement},
		{"pending", PaymentStatusPending},
		{"expire", PaymentStatusExpire},
		{"cancel", PaymentStatusCancel},
		{"deny", PaymentStatusDeny},
		{"Settlement", PaymentStatusSettlement},
		{"capture", PaymentStatusFailure},
		{"", PaymentStatusFailure},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, MapProviderStatus(tc.provider), tc.provider)
	}
}
