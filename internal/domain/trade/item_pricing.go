package trade

import (
	"github.com/erp/backoffice/internal/domain/shared/valueobject"
)

// ItemPricing is the priced view of one line item
type ItemPricing struct {
	Rate          float64 // round2(quantity x unit rate), before discount
	Discount      float64 // absolute discount amount
	Tax           float64
	Amount        float64 // TaxableAmount + Tax
	TaxableAmount float64 // Rate - Discount
	Quantity      float64
	DiscountType  DiscountType
}

// InvoiceItemPricing extends ItemPricing with the fields only invoice lines report
type InvoiceItemPricing struct {
	ItemPricing
	BaseRate            float64 // unit rate the line rate was computed from
	FormUpdatedDiscount float64 // working discount figure, echoed as entered
}

// ItemPricer prices one line item
type ItemPricer func(item *LineItem) ItemPricing

// PriceInvoiceItem prices an invoice line.
//
// The unit rate always comes from FormUpdatedRate, whichever view is selected.
// With the working view selected, discount type and tax rate come from the
// FormUpdated* fields and a percentage discount is taken of the computed rate.
// With the persisted view selected, Discount is already an absolute amount and
// is used as stored. A nil item prices to zero.
func PriceInvoiceItem(item *LineItem) InvoiceItemPricing {
	if item == nil {
		return InvoiceItemPricing{}
	}

	baseRate := item.FormUpdatedRate
	rate := valueobject.Round2(item.Quantity * baseRate)

	discountType := item.DiscountType
	taxRate := item.taxRate()
	discount := item.Discount
	if item.RateSource.IsEdited() {
		discountType = item.FormUpdatedDiscountType
		taxRate = item.FormUpdatedTax
		discount = item.FormUpdatedDiscount
		if discountType.IsPercent() {
			discount = valueobject.Round2(rate * item.FormUpdatedDiscount / 100)
		}
	}

	return InvoiceItemPricing{
		ItemPricing:         finishPricing(item.Quantity, rate, discount, taxRate, discountType),
		BaseRate:            baseRate,
		FormUpdatedDiscount: item.FormUpdatedDiscount,
	}
}

// PricePurchaseItem prices a purchase-order line.
//
// Unit rate, discount type and discount figure all switch together on the
// selected view: FormUpdatedRate / FormUpdatedDiscountType / FormUpdatedDiscount
// when edited, PurchasePrice / DiscountType / Discount otherwise. The tax rate
// always comes from TaxInfo. A nil item prices to zero.
func PricePurchaseItem(item *LineItem) ItemPricing {
	if item == nil {
		return ItemPricing{}
	}

	unitRate := item.PurchasePrice
	discountType := item.DiscountType
	discountValue := item.Discount
	if item.RateSource.IsEdited() {
		unitRate = item.FormUpdatedRate
		discountType = item.FormUpdatedDiscountType
		discountValue = item.FormUpdatedDiscount
	}

	rate := valueobject.Round2(item.Quantity * unitRate)
	discount := discountValue
	if discountType.IsPercent() {
		discount = valueobject.Round2(rate * discountValue / 100)
	}

	return finishPricing(item.Quantity, rate, discount, item.taxRate(), discountType)
}

// InvoiceItemPricer adapts PriceInvoiceItem to ItemPricer
func InvoiceItemPricer(item *LineItem) ItemPricing {
	return PriceInvoiceItem(item).ItemPricing
}

// finishPricing derives taxable amount, tax and amount. No rounding happens here:
// only the line rate and percentage discounts are rounded to cents.
func finishPricing(quantity, rate, discount, taxRate float64, discountType DiscountType) ItemPricing {
	taxableAmount := rate - discount
	tax := taxableAmount * taxRate / 100
	return ItemPricing{
		Rate:          rate,
		Discount:      discount,
		Tax:           tax,
		Amount:        taxableAmount + tax,
		TaxableAmount: taxableAmount,
		Quantity:      quantity,
		DiscountType:  discountType,
	}
}
