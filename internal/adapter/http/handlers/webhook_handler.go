package handlers

import (
	"errors"
	"net/http"

	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase"
	"eldercare_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderAsaasToken   = "asaas-access-token"
	HeaderWebhookToken = "x-webhook-token"
)

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
	log     zerolog.Logger
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc, log: logger.WithComponent("webhook.handler")}
}

// Receive godoc
// @Summary Gateway notification
// @Description Business outcomes, handler failures included, are acknowledged with 200.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param gateway path string true "asaas or mercadopago"
// @Success 200 {object} entities.WebhookResult
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Router /webhooks/{gateway} [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	gateway := c.Param("gateway")
	token := c.GetHeader(HeaderAsaasToken)
	if token == "" {
		token = c.GetHeader(HeaderWebhookToken)
	}

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		writeError(c, h.log, pkg.NewDomainError("INVALID_WEBHOOK_PAYLOAD", "Invalid webhook payload", err, http.StatusBadRequest))
		return
	}

	result, err := h.usecase.Handle(c.Request.Context(), gateway, token, body)
	if err != nil {
		writeError(c, h.log, mapWebhookError(err))
		return
	}
	h.log.Debug().Str("gateway", gateway).Str("event_id", result.EventID).Str("status", string(result.Status)).Msg("webhook acknowledged")
	c.JSON(http.StatusOK, result)
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidWebhookToken):
		return pkg.NewDomainErrorSimple("INVALID_WEBHOOK_TOKEN", "Invalid webhook token", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownGateway):
		return pkg.NewDomainErrorSimple("GATEWAY_NOT_FOUND", "Payment gateway not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidWebhookPayload):
		return pkg.NewDomainError("INVALID_WEBHOOK_PAYLOAD", "Invalid webhook payload", err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
