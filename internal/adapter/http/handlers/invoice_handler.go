package handlers

import (
	"context"
	"errors"
	"net/http"

	request "eldercare_billing/internal/adapter/http/dto/request"
	response "eldercare_billing/internal/adapter/http/dto/response"
	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase"
	"eldercare_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// InvoiceHandler serves the tenant-scoped invoice endpoints.
type InvoiceHandler struct {
	invoices usecase.IInvoiceUseCase
	payments usecase.IPaymentUseCase
	log      zerolog.Logger
}

func NewInvoiceHandler(invoices usecase.IInvoiceUseCase, payments usecase.IPaymentUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, payments: payments, log: logger.WithComponent("invoice.handler")}
}

// Generate godoc
// @Summary Generate an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param body body request.GenerateInvoiceRequest true "Invoice"
// @Success 201 {object} response.InvoiceResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /v1/tenants/{tenant_id}/invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var payload request.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, errInvalidRequest.Message, err, http.StatusBadRequest))
		return
	}

	inv, err := h.invoices.Generate(c.Request.Context(), usecase.GenerateInvoiceInput{
		TenantID:        c.Param("tenant_id"),
		SubscriptionID:  payload.SubscriptionID,
		Amount:          payload.Amount,
		OriginalAmount:  payload.OriginalAmount,
		DiscountPercent: payload.DiscountPercent,
		DiscountReason:  payload.DiscountReason,
		BillingType:     payload.BillingTypeOrDefault(),
	})
	if err != nil {
		writeError(c, h.log, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

// List godoc
// @Summary List tenant invoices
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param status query string false "OPEN, PAID or VOID"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.InvoiceListResponse
// @Router /v1/tenants/{tenant_id}/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var q request.ListInvoicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, errInvalidRequest.Message, err, http.StatusBadRequest))
		return
	}

	page, err := h.invoices.List(c.Request.Context(), c.Param("tenant_id"), usecase.ListInvoicesFilter{
		Status: entities.InvoiceStatus(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		writeError(c, h.log, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoicePage(page))
}

// Get godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} response.InvoiceResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /v1/tenants/{tenant_id}/invoices/{invoice_id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.invoices.Get(c.Request.Context(), c.Param("tenant_id"), c.Param("invoice_id"))
	if err != nil {
		writeError(c, h.log, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// Sync godoc
// @Summary Pull the invoice status from the gateway
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} response.InvoiceResponse
// @Router /v1/tenants/{tenant_id}/invoices/{invoice_id}/sync [post]
func (h *InvoiceHandler) Sync(c *gin.Context) {
	h.transition(c, h.invoices.Sync)
}

// Cancel godoc
// @Summary Cancel an open invoice
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} response.InvoiceResponse
// @Failure 409 {object} pkg.HTTPError
// @Router /v1/tenants/{tenant_id}/invoices/{invoice_id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.invoices.Cancel)
}

// MarkAsPaid godoc
// @Summary Mark an invoice as paid
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} response.InvoiceResponse
// @Router /v1/tenants/{tenant_id}/invoices/{invoice_id}/mark-paid [post]
func (h *InvoiceHandler) MarkAsPaid(c *gin.Context) {
	h.transition(c, h.invoices.MarkAsPaid)
}

// GetPixQrCode godoc
// @Summary PIX QR code of the invoice payment
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} entities.PixQrCode
// @Router /v1/tenants/{tenant_id}/invoices/{invoice_id}/pix [get]
func (h *InvoiceHandler) GetPixQrCode(c *gin.Context) {
	qr, err := h.invoices.GetPixQrCode(c.Request.Context(), c.Param("tenant_id"), c.Param("invoice_id"))
	if err != nil {
		writeError(c, h.log, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, qr)
}

// ListPayments godoc
// @Summary Payments recorded against the invoice
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {array} response.PaymentResponse
// @Router /v1/tenants/{tenant_id}/invoices/{invoice_id}/payments [get]
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	payments, err := h.payments.ListByInvoice(c.Request.Context(), c.Param("tenant_id"), c.Param("invoice_id"))
	if err != nil {
		writeError(c, h.log, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// CreateFirstInvoice godoc
// @Summary Issue the first invoice after a trial
// @Tags subscriptions
// @Produce json
// @Param subscription_id path string true "Subscription ID"
// @Success 201 {object} response.InvoiceResponse
// @Failure 409 {object} pkg.HTTPError
// @Router /v1/subscriptions/{subscription_id}/first-invoice [post]
func (h *InvoiceHandler) CreateFirstInvoice(c *gin.Context) {
	inv, err := h.invoices.CreateFirstInvoiceAfterTrial(c.Request.Context(), c.Param("subscription_id"))
	if err != nil {
		writeError(c, h.log, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

// transition checks the invoice belongs to the tenant in the path before
// running op on it.
func (h *InvoiceHandler) transition(c *gin.Context, op func(ctx context.Context, invoiceID string) (entities.Invoice, error)) {
	ctx := c.Request.Context()
	inv, err := h.invoices.Get(ctx, c.Param("tenant_id"), c.Param("invoice_id"))
	if err != nil {
		writeError(c, h.log, mapInvoiceError(err))
		return
	}
	updated, err := op(ctx, inv.ID)
	if err != nil {
		writeError(c, h.log, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(updated))
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceNotLinked):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_LINKED", "Invoice has no gateway payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Paid invoices cannot be canceled", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Invoice status does not allow this operation", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvoicesAlreadyExist):
		return pkg.NewDomainErrorSimple("INVOICES_ALREADY_EXIST", "Subscription already has invoices", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}
