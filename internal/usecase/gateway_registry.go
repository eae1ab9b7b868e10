package usecase

import (
	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"
)

// GatewayRegistry holds the configured payment gateways. New charges go to
// the primary one; existing invoices are served by the gateway that issued
// them.
type GatewayRegistry struct {
	primary  entities.Gateway
	gateways map[entities.Gateway]interfaces.IPaymentGateway
}

func NewGatewayRegistry(primary interfaces.IPaymentGateway, others ...interfaces.IPaymentGateway) *GatewayRegistry {
	r := &GatewayRegistry{
		primary:  primary.Name(),
		gateways: map[entities.Gateway]interfaces.IPaymentGateway{primary.Name(): primary},
	}
	for _, g := range others {
		if g == nil {
			continue
		}
		if _, ok := r.gateways[g.Name()]; !ok {
			r.gateways[g.Name()] = g
		}
	}
	return r
}

func (r *GatewayRegistry) Primary() interfaces.IPaymentGateway {
	return r.gateways[r.primary]
}

func (r *GatewayRegistry) Get(name entities.Gateway) (interfaces.IPaymentGateway, error) {
	g, ok := r.gateways[name]
	if !ok {
		return nil, ErrUnknownGateway
	}
	return g, nil
}
