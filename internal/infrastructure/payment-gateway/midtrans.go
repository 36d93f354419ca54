package paymentgateway

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/alimikegami/point-of-sales/cashier-service/config"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/domain"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/dto"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/service"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

type MidtransGateway struct {
	client    *coreapi.Client
	serverKey string
	breaker   *gobreaker.CircuitBreaker[*coreapi.ChargeResponse]
}

func CreateMidtransGateway(config *config.Config, breaker *gobreaker.CircuitBreaker[*coreapi.ChargeResponse]) service.PaymentGateway {
	midtrans.ServerKey = config.MidtransConfig.ServerKey
	midtrans.Environment = midtrans.Sandbox // Use midtrans.Production for production

	client := &coreapi.Client{}
	client.New(midtrans.ServerKey, midtrans.Environment)

	return &MidtransGateway{
		client:    client,
		serverKey: config.MidtransConfig.ServerKey,
		breaker:   breaker,
	}
}

// CreateCharge issues a QRIS charge for the transaction. The provider order
// id is a fresh uuid rather than the invoice number so that retried attempts
// for the same transaction stay distinguishable on the provider side.
func (g *MidtransGateway) CreateCharge(ctx context.Context, transaction domain.Transaction, details []domain.TransactionDetail) (result dto.ChargeResult, err error) {
	orderID, err := uuid.NewV7()
	if err != nil {
		return result, fmt.Errorf("error generating provider order id: %v", err)
	}

	chargeItems := make([]midtrans.ItemDetails, len(details))
	for i, detail := range details {
		chargeItems[i] = midtrans.ItemDetails{
			ID:    fmt.Sprintf("%d", detail.ProductID),
			Price: detail.Price.IntPart(),
			Qty:   int32(detail.Quantity),
			Name:  detail.ProductName,
		}
	}

	chargeReq := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID.String(),
			GrossAmt: transaction.Total.IntPart(),
		},
		Items: &chargeItems,
	}

	response, err := g.breaker.Execute(func() (*coreapi.ChargeResponse, error) {
		resp, chargeErr := g.client.ChargeTransaction(chargeReq)
		if chargeErr != nil {
			return nil, chargeErr
		}
		return resp, nil
	})
	if err != nil {
		log.Error().Err(err).Str("component", "CreateCharge").Msg("")
		return result, err
	}

	if response.StatusCode != "201" {
		return result, fmt.Errorf("payment gateway returned non-201 status: %s", response.StatusCode)
	}

	result = dto.ChargeResult{
		ProviderOrderID:       orderID.String(),
		ProviderTransactionID: response.TransactionID,
		QRPayload:             response.QRString,
	}

	if response.ExpiryTime != "" {
		expiredAt, err := utils.ConvertDateTimeWibToUnixTimestamp(response.ExpiryTime)
		if err != nil {
			return result, err
		}
		result.ExpiredAt = expiredAt
	}

	if raw, marshalErr := json.Marshal(response); marshalErr == nil {
		result.RawResponse = raw
	}

	return result, nil
}

// VerifyNotification checks the midtrans signature:
// sha512(order_id + status_code + gross_amount + server_key).
func (g *MidtransGateway) VerifyNotification(notification dto.PaymentNotification) (err error) {
	payload := notification.OrderID + notification.StatusCode + notification.GrossAmount + g.serverKey
	sum := sha512.Sum512([]byte(payload))

	if hex.EncodeToString(sum[:]) != notification.SignatureKey {
		return errs.ErrInvalidSignature
	}

	return nil
}
