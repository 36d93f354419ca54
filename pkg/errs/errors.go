package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusUnprocessable  = http.StatusUnprocessableEntity
	ErrBadGateway           = http.StatusBadGateway
)

var (
	ErrInternalServer      = errors.New("Internal server error")
	ErrClient              = errors.New("Bad request")
	ErrNotLoggedIn         = errors.New("Unauthorized access")
	ErrUnauthorized        = errors.New("Forbidden access")
	ErrNotFound            = errors.New("Resource not found")
	ErrConflict            = errors.New("Conflicting record found")
	ErrEmptyCart           = errors.New("Cart must contain at least one item")
	ErrInvalidCartLine     = errors.New("Cart contains an invalid product or quantity")
	ErrInsufficientStock   = errors.New("Insufficient stock for the requested quantity")
	ErrInsufficientPayment = errors.New("Paid amount is less than the transaction total")
	ErrHoldNotFound        = errors.New("Suspended transaction not found")
	ErrNotConfirmable      = errors.New("Only pending gateway transactions can be confirmed")
	ErrPaymentExpired      = errors.New("Payment for this transaction has expired")
	ErrInvalidSignature    = errors.New("Payment notification signature mismatch")
	ErrRollbackIntegrity   = errors.New("Failed to restore stock while rolling back")
	ErrPaymentGateway      = errors.New("Payment gateway request failed")
)

var errorMap = map[error]int{
	ErrInternalServer:      ErrStatusInternalServer,
	ErrClient:              ErrStatusClient,
	ErrNotLoggedIn:         ErrStatusNotLoggedIn,
	ErrUnauthorized:        ErrStatusNoPermission,
	ErrNotFound:            ErrStatusNotFound,
	ErrConflict:            ErrStatusConflict,
	ErrEmptyCart:           ErrStatusClient,
	ErrInvalidCartLine:     ErrStatusClient,
	ErrInsufficientStock:   ErrStatusUnprocessable,
	ErrInsufficientPayment: ErrStatusUnprocessable,
	ErrHoldNotFound:        ErrStatusNotFound,
	ErrNotConfirmable:      ErrStatusUnprocessable,
	ErrPaymentExpired:      ErrStatusNoPermission,
	ErrInvalidSignature:    ErrStatusUnauthorized,
	ErrRollbackIntegrity:   ErrStatusInternalServer,
	ErrPaymentGateway:      ErrBadGateway,
}

func GetErrorStatusCode(err error) int {
	for mapped, statusCode := range errorMap {
		if errors.Is(err, mapped) {
			return statusCode
		}
	}

	return ErrStatusInternalServer
}
