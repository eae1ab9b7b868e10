package payments

import (
	"errors"
	"fmt"

	"eldercare_billing/internal/domain/entities"
)

var ErrGatewayOperationUnsupported = errors.New("operation not supported by payment gateway")

// GatewayError is a non-2xx answer from a payment gateway.
type GatewayError struct {
	Gateway    entities.Gateway
	Operation  string
	StatusCode int
	Code       string
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s: status=%d code=%s: %s", e.Gateway, e.Operation, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: status=%d: %s", e.Gateway, e.Operation, e.StatusCode, e.Message)
}

// HTTPStatus is read by the retry policy and by HTTP error mapping.
func (e *GatewayError) HTTPStatus() int {
	return e.StatusCode
}

func (e *GatewayError) GatewayCode() string {
	return e.Code
}

func (e *GatewayError) GatewayMessage() string {
	return e.Message
}
