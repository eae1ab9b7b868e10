package handlers

import (
	"errors"
	"net/http"

	"eldercare_billing/internal/usecase"
	"eldercare_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// gatewayFailure is implemented by payment gateway errors.
type gatewayFailure interface {
	HTTPStatus() int
	GatewayCode() string
	GatewayMessage() string
}

// mapGatewayError keeps the gateway's 4xx status and message; anything else
// is reported as a bad gateway.
func mapGatewayError(err error) (*pkg.AppError, bool) {
	var gf gatewayFailure
	if !errors.As(err, &gf) {
		return nil, false
	}
	status := gf.HTTPStatus()
	if status < 400 || status >= 500 || status == http.StatusTooManyRequests {
		return pkg.NewDomainError("GATEWAY_UNAVAILABLE", "Payment gateway unavailable", err, http.StatusBadGateway), true
	}
	msg := gf.GatewayMessage()
	if gf.GatewayCode() != "" {
		msg = gf.GatewayCode() + ": " + msg
	}
	return pkg.NewDomainError("GATEWAY_ERROR", msg, err, status), true
}

func mapCommonError(err error) *pkg.AppError {
	if appErr, ok := mapGatewayError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTenantNotFound):
		return pkg.NewDomainErrorSimple("TENANT_NOT_FOUND", "Tenant not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSubscriptionNotFound):
		return pkg.NewDomainErrorSimple("SUBSCRIPTION_NOT_FOUND", "Subscription not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPlanNotFound):
		return pkg.NewDomainErrorSimple("PLAN_NOT_FOUND", "Plan not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUnknownGateway):
		return pkg.NewDomainErrorSimple("GATEWAY_NOT_FOUND", "Payment gateway not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, log zerolog.Logger, appErr *pkg.AppError) {
	evt := log.Warn()
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(appErr).Str("path", c.FullPath()).Int("status", appErr.HTTPStatus).Msg("request failed")
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
