package trade

import (
	"github.com/erp/backoffice/internal/domain/shared/valueobject"
)

// DocumentTotals is the plain (unrounded) totals of one document.
// InvoiceTotals and PurchaseTotals implement it.
type DocumentTotals interface {
	GrandTotal() float64
}

// InvoiceTotals aggregates priced invoice lines
type InvoiceTotals struct {
	SubTotal      float64 // sum of line rates
	TotalDiscount float64
	TotalTax      float64
	Total         float64 // sum of line amounts
	TaxableAmount float64 // sum of line taxable amounts
}

// PurchaseTotals aggregates priced purchase lines. It differs from
// InvoiceTotals only in naming the tax sum VAT.
type PurchaseTotals struct {
	SubTotal      float64
	TotalDiscount float64
	VAT           float64
	Total         float64
	TaxableAmount float64
}

// GrandTotal returns the sum of line amounts
func (t InvoiceTotals) GrandTotal() float64 { return t.Total }

// GrandTotal returns the sum of line amounts
func (t PurchaseTotals) GrandTotal() float64 { return t.Total }

// RoundedTotals is the document footer with optional whole-unit rounding
type RoundedTotals struct {
	// PreDiscountSubtotal is the sum of line rates before discount. Callers
	// receive it under the key "taxableAmount".
	PreDiscountSubtotal float64
	TotalDiscount       float64
	VAT                 float64
	TotalAmount         float64
	RoundOffValue       float64 // rounded total minus unrounded total, 0 when not rounding
}

// lineSums holds the running sums of a left-to-right fold
type lineSums struct {
	rate, discount, tax, amount, taxable float64
}

// foldLines prices items in slice order and sums the results.
// Summation order matters for floating point, so it never reorders.
func foldLines(items []*LineItem, price ItemPricer) lineSums {
	var s lineSums
	for _, item := range items {
		p := price(item)
		s.rate += p.Rate
		s.discount += p.Discount
		s.tax += p.Tax
		s.amount += p.Amount
		s.taxable += p.TaxableAmount
	}
	return s
}

// SumInvoiceTotals prices every invoice line and sums the results.
// A nil or empty slice yields all-zero totals.
func SumInvoiceTotals(items []*LineItem) InvoiceTotals {
	s := foldLines(items, InvoiceItemPricer)
	return InvoiceTotals{
		SubTotal:      s.rate,
		TotalDiscount: s.discount,
		TotalTax:      s.tax,
		Total:         s.amount,
		TaxableAmount: s.taxable,
	}
}

// SumPurchaseTotals prices every purchase line and sums the results.
// A nil or empty slice yields all-zero totals.
func SumPurchaseTotals(items []*LineItem) PurchaseTotals {
	s := foldLines(items, PricePurchaseItem)
	return PurchaseTotals{
		SubTotal:      s.rate,
		TotalDiscount: s.discount,
		VAT:           s.tax,
		Total:         s.amount,
		TaxableAmount: s.taxable,
	}
}

// CalculateInvoiceTotals builds the invoice footer, rounding the total to a
// whole unit when roundOff is set.
func CalculateInvoiceTotals(items []*LineItem, roundOff bool) RoundedTotals {
	return CalculateRoundedTotals(items, InvoiceItemPricer, roundOff)
}

// CalculatePurchaseTotals builds the purchase-order footer, rounding the total
// to a whole unit when roundOff is set.
func CalculatePurchaseTotals(items []*LineItem, roundOff bool) RoundedTotals {
	return CalculateRoundedTotals(items, PricePurchaseItem, roundOff)
}

// CalculateRoundedTotals folds items through price and derives the footer:
//
//	TotalAmount = Σrate - Σdiscount + Σtax
//
// When roundOff is set TotalAmount is rounded half up to a whole unit and
// RoundOffValue holds rounded minus unrounded.
func CalculateRoundedTotals(items []*LineItem, price ItemPricer, roundOff bool) RoundedTotals {
	if len(items) == 0 {
		return RoundedTotals{}
	}

	s := foldLines(items, price)
	total := s.rate - s.discount + s.tax
	totals := RoundedTotals{
		PreDiscountSubtotal: s.rate,
		TotalDiscount:       s.discount,
		VAT:                 s.tax,
		TotalAmount:         total,
	}
	if roundOff {
		rounded := valueobject.RoundWhole(total)
		totals.RoundOffValue = rounded - total
		totals.TotalAmount = rounded
	}
	return totals
}
