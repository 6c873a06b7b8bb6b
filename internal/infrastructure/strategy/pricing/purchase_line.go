package pricing

import (
	"github.com/erp/backoffice/internal/domain/shared/strategy"
	"github.com/erp/backoffice/internal/domain/trade"
)

// PurchaseLineStrategy prices purchase-order lines
type PurchaseLineStrategy struct {
	strategy.BaseStrategy
}

// NewPurchaseLineStrategy creates a new purchase line pricing strategy
func NewPurchaseLineStrategy() *PurchaseLineStrategy {
	return &PurchaseLineStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			strategy.LinePricingPurchase,
			strategy.StrategyTypeLinePricing,
			"Purchase lines: rate and discount switch together on the edit flag, tax from the product",
		),
	}
}

// PriceItem prices one purchase line
func (s *PurchaseLineStrategy) PriceItem(item *trade.LineItem) trade.ItemPricing {
	return trade.PricePurchaseItem(item)
}

// Totals returns trade.PurchaseTotals
func (s *PurchaseLineStrategy) Totals(items []*trade.LineItem) trade.DocumentTotals {
	return trade.SumPurchaseTotals(items)
}

// RoundedTotals builds the purchase-order footer
func (s *PurchaseLineStrategy) RoundedTotals(items []*trade.LineItem, roundOff bool) trade.RoundedTotals {
	return trade.CalculatePurchaseTotals(items, roundOff)
}
