package trade

import (
	"github.com/erp/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// NewInvoiceLineItem creates a sales/invoice line for one unit of product.
//
// Discount is stored as the absolute amount derived from the product's
// discount type and value, while FormUpdatedDiscount keeps the raw value so a
// later edit can re-apply a percentage. Derived amounts are rounded to cents.
// Returns nil for a nil product.
func NewInvoiceLineItem(p *Product) *LineItem {
	if p == nil {
		return nil
	}

	discount := p.DiscountValue
	if p.DiscountType.IsPercent() {
		discount = p.SellingPrice * p.DiscountValue / 100
	}
	discount = valueobject.Round2(discount)

	taxRate := p.taxRate()
	taxableAmount := p.SellingPrice - discount
	tax := taxableAmount * taxRate / 100

	return &LineItem{
		ID:                      uuid.New(),
		ProductID:               p.ID,
		ProductName:             p.Name,
		Quantity:                1,
		Rate:                    valueobject.Round2(p.SellingPrice),
		PurchasePrice:           p.PurchasePrice,
		DiscountType:            p.DiscountType,
		Discount:                discount,
		TaxInfo:                 p.copyTaxInfo(),
		FormUpdatedRate:         p.SellingPrice,
		FormUpdatedDiscountType: p.DiscountType,
		FormUpdatedDiscount:     p.DiscountValue,
		FormUpdatedTax:          taxRate,
		RateSource:              RateOriginal,
		TaxableAmount:           valueobject.Round2(taxableAmount),
		Tax:                     valueobject.Round2(tax),
		Amount:                  valueobject.Round2(taxableAmount + tax),
	}
}

// NewPurchaseLineItem creates a purchase-order line for one unit of product.
//
// The persisted rate is seeded from PurchasePrice but FormUpdatedRate is seeded
// from SellingPrice, so switching the line to its working view reprices it at
// the selling price until the user edits the rate. A product without a discount
// type gets DiscountFixed. Returns nil for a nil product.
func NewPurchaseLineItem(p *Product) *LineItem {
	if p == nil {
		return nil
	}

	discountType := p.DiscountType
	if discountType == DiscountUnset {
		discountType = DiscountFixed
	}

	item := &LineItem{
		ID:                      uuid.New(),
		ProductID:               p.ID,
		ProductName:             p.Name,
		Quantity:                1,
		Rate:                    valueobject.Round2(p.PurchasePrice),
		PurchasePrice:           p.PurchasePrice,
		DiscountType:            discountType,
		Discount:                p.DiscountValue,
		TaxInfo:                 p.copyTaxInfo(),
		FormUpdatedRate:         p.SellingPrice,
		FormUpdatedDiscountType: discountType,
		FormUpdatedDiscount:     p.DiscountValue,
		FormUpdatedTax:          p.taxRate(),
		RateSource:              RateOriginal,
	}
	item.ApplyPricing(PricePurchaseItem(item))
	return item
}

func (p *Product) taxRate() float64 {
	if p.TaxInfo == nil {
		return 0
	}
	return p.TaxInfo.TaxRate
}

func (p *Product) copyTaxInfo() *TaxInfo {
	if p.TaxInfo == nil {
		return nil
	}
	info := *p.TaxInfo
	return &info
}
