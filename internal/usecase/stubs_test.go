package usecase

import (
	"context"
	"sync"

	"eldercare_billing/internal/domain/entities"
)

// stubInvoiceUseCase overrides the calls jobs and webhooks make; anything
// else panics through the nil embedded interface.
type stubInvoiceUseCase struct {
	IInvoiceUseCase

	mu        sync.Mutex
	generated []GenerateInvoiceInput
	canceled  []string

	generate          func(in GenerateInvoiceInput) (entities.Invoice, error)
	sync              func(id string) (entities.Invoice, error)
	createFromGateway func(gateway entities.Gateway, p entities.GatewayPayment) (entities.Invoice, bool, error)
}

func (s *stubInvoiceUseCase) Generate(_ context.Context, in GenerateInvoiceInput) (entities.Invoice, error) {
	s.mu.Lock()
	s.generated = append(s.generated, in)
	s.mu.Unlock()
	return s.generate(in)
}

func (s *stubInvoiceUseCase) Sync(_ context.Context, id string) (entities.Invoice, error) {
	return s.sync(id)
}

func (s *stubInvoiceUseCase) Cancel(_ context.Context, id string) (entities.Invoice, error) {
	s.mu.Lock()
	s.canceled = append(s.canceled, id)
	s.mu.Unlock()
	return entities.Invoice{ID: id, Status: entities.InvoiceStatusVoid}, nil
}

func (s *stubInvoiceUseCase) CreateFromGatewayPayment(_ context.Context, gateway entities.Gateway, p entities.GatewayPayment) (entities.Invoice, bool, error) {
	return s.createFromGateway(gateway, p)
}

type stubPaymentUseCase struct {
	IPaymentUseCase

	mu       sync.Mutex
	recorded []RecordPaymentInput
	refunded []string
	record   func(in RecordPaymentInput) (entities.Payment, error)
}

func (s *stubPaymentUseCase) RecordPayment(_ context.Context, in RecordPaymentInput) (entities.Payment, error) {
	s.mu.Lock()
	s.recorded = append(s.recorded, in)
	s.mu.Unlock()
	if s.record != nil {
		return s.record(in)
	}
	return entities.Payment{ID: entities.PaymentID(in.Gateway, in.ExternalID), InvoiceID: in.InvoiceID}, nil
}

func (s *stubPaymentUseCase) ProcessRefund(_ context.Context, gateway entities.Gateway, externalID string) (entities.Payment, error) {
	s.refunded = append(s.refunded, externalID)
	return entities.Payment{ID: entities.PaymentID(gateway, externalID), Status: entities.PaymentStatusRefunded}, nil
}
