package trade

import (
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/printing"
)

// DocumentInput is one document ready to price
type DocumentInput struct {
	ID       string
	Kind     string // registered line pricing strategy; empty selects the default
	Items    []*trade.LineItem
	RoundOff *bool // nil uses the service default
}

// LineSummary is one priced row
type LineSummary struct {
	Item    *trade.LineItem
	Pricing trade.ItemPricing
	// Invoice is set for invoice lines and carries BaseRate and FormUpdatedDiscount
	Invoice *trade.InvoiceItemPricing
	Display *printing.DiscountDisplay
	NaN     bool // the line amount is not a number
}

// DocumentSummary is the priced document
type DocumentSummary struct {
	ID            string
	Kind          string
	RoundOff      bool
	Lines         []LineSummary
	Totals        trade.DocumentTotals
	RoundedTotals trade.RoundedTotals
}

// NaNLines counts rows whose amount is not a number
func (s *DocumentSummary) NaNLines() int {
	n := 0
	for _, l := range s.Lines {
		if l.NaN {
			n++
		}
	}
	return n
}

// BatchResult is the outcome of one document in a batch
type BatchResult struct {
	Summary *DocumentSummary
	Err     error
}
