package strategy

import (
	"github.com/erp/backoffice/internal/domain/trade"
)

// Line pricing strategy names, one per document kind
const (
	LinePricingInvoice  = "invoice"
	LinePricingPurchase = "purchase"
)

// LinePricingStrategy prices the lines of one kind of document
type LinePricingStrategy interface {
	Strategy
	// PriceItem prices a single line; a nil line prices to zero
	PriceItem(item *trade.LineItem) trade.ItemPricing
	// Totals folds the lines into the document's plain totals
	Totals(items []*trade.LineItem) trade.DocumentTotals
	// RoundedTotals folds the lines into the document footer, optionally
	// rounding the total to a whole unit
	RoundedTotals(items []*trade.LineItem, roundOff bool) trade.RoundedTotals
}
