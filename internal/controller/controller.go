package controller

import (
	"strconv"

	"github.com/alimikegami/point-of-sales/cashier-service/internal/dto"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/service"
	pkgdto "github.com/alimikegami/point-of-sales/cashier-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.TransactionService
}

func CreateTransactionController(e *echo.Group, service service.TransactionService, isLoggedIn echo.MiddlewareFunc) {
	c := Controller{
		service: service,
	}

	e.POST("/transactions", c.Checkout, isLoggedIn)
	e.POST("/transactions/hold", c.Hold, isLoggedIn)
	e.POST("/transactions/:id/confirm", c.ConfirmTransaction, isLoggedIn)
	e.POST("/transactions/payments/notifications", c.PaymentNotification)
	e.GET("/transactions", c.GetTransactions, isLoggedIn)
}

func (c *Controller) Checkout(e echo.Context) error {
	payload := dto.CheckoutRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Checkout").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	userID, _ := utils.ExtractTokenUser(e)
	payload.UserID = userID

	resp, err := c.service.Checkout(e.Request().Context(), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "transaction created", resp)
}

func (c *Controller) Hold(e echo.Context) error {
	payload := dto.HoldRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Hold").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	userID, _ := utils.ExtractTokenUser(e)
	payload.UserID = userID

	resp, err := c.service.Hold(e.Request().Context(), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "transaction suspended", resp)
}

func (c *Controller) ConfirmTransaction(e echo.Context) error {
	transactionID, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	userID, _ := utils.ExtractTokenUser(e)

	err = c.service.ConfirmTransaction(e.Request().Context(), transactionID, userID)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "transaction confirmed", nil)
}

func (c *Controller) PaymentNotification(e echo.Context) error {
	payload := dto.PaymentNotification{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "PaymentNotification").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.PaymentNotification(e.Request().Context(), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", nil)
}

func (c *Controller) GetTransactions(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactions").Msg("")
	}

	responsePayload, err := c.service.GetTransactions(e.Request().Context(), filter)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "successfuly retrieved transaction records", responsePayload)
}
