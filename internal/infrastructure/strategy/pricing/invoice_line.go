package pricing

import (
	"github.com/erp/backoffice/internal/domain/shared/strategy"
	"github.com/erp/backoffice/internal/domain/trade"
)

// InvoiceLineStrategy prices invoice and sales lines
type InvoiceLineStrategy struct {
	strategy.BaseStrategy
}

// NewInvoiceLineStrategy creates a new invoice line pricing strategy
func NewInvoiceLineStrategy() *InvoiceLineStrategy {
	return &InvoiceLineStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			strategy.LinePricingInvoice,
			strategy.StrategyTypeLinePricing,
			"Invoice lines: rate from the working view, discount and tax follow the edit flag",
		),
	}
}

// PriceItem prices one invoice line
func (s *InvoiceLineStrategy) PriceItem(item *trade.LineItem) trade.ItemPricing {
	return trade.InvoiceItemPricer(item)
}

// PriceInvoiceItem prices one invoice line including the invoice-only fields
func (s *InvoiceLineStrategy) PriceInvoiceItem(item *trade.LineItem) trade.InvoiceItemPricing {
	return trade.PriceInvoiceItem(item)
}

// Totals returns trade.InvoiceTotals
func (s *InvoiceLineStrategy) Totals(items []*trade.LineItem) trade.DocumentTotals {
	return trade.SumInvoiceTotals(items)
}

// RoundedTotals builds the invoice footer
func (s *InvoiceLineStrategy) RoundedTotals(items []*trade.LineItem, roundOff bool) trade.RoundedTotals {
	return trade.CalculateInvoiceTotals(items, roundOff)
}
