package strategy

import (
	"github.com/erp/backoffice/internal/domain/shared/strategy"
	"github.com/erp/backoffice/internal/infrastructure/strategy/pricing"
)

// NewRegistryWithDefaults creates a new registry with the invoice and purchase
// line strategies registered. Invoice pricing is the default.
func NewRegistryWithDefaults() (*StrategyRegistry, error) {
	r := NewStrategyRegistry()

	invoiceLines := pricing.NewInvoiceLineStrategy()
	if err := r.RegisterLinePricingStrategy(invoiceLines); err != nil {
		return nil, err
	}

	purchaseLines := pricing.NewPurchaseLineStrategy()
	if err := r.RegisterLinePricingStrategy(purchaseLines); err != nil {
		return nil, err
	}

	if err := r.SetDefault(strategy.StrategyTypeLinePricing, invoiceLines.Name()); err != nil {
		return nil, err
	}

	return r, nil
}
