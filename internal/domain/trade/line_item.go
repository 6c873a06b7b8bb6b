package trade

import (
	"github.com/google/uuid"
)

// DiscountType tells how a line item's discount figure is read
type DiscountType int

const (
	// DiscountUnset marks a catalog product that carries no discount type
	DiscountUnset DiscountType = 0
	// DiscountPercent reads the discount as a percentage of the line rate
	DiscountPercent DiscountType = 2
	// DiscountFixed reads the discount as an absolute currency amount
	DiscountFixed DiscountType = 3
)

// IsPercent returns true for percentage discounts. Every other value,
// DiscountUnset included, is treated as a fixed amount.
func (t DiscountType) IsPercent() bool {
	return t == DiscountPercent
}

// String returns the string representation of DiscountType
func (t DiscountType) String() string {
	switch t {
	case DiscountPercent:
		return "PERCENT"
	case DiscountFixed:
		return "FIXED"
	case DiscountUnset:
		return "UNSET"
	}
	return "FIXED"
}

// RateSource says which pricing view of a line item is authoritative
type RateSource int

const (
	// RateOriginal selects the persisted fields (discount, discountType, purchasePrice, taxInfo)
	RateOriginal RateSource = iota
	// RateEdited selects the form_updated_* working fields
	RateEdited
)

// IsEdited returns true when the working view is authoritative
func (s RateSource) IsEdited() bool {
	return s == RateEdited
}

// String returns the string representation of RateSource
func (s RateSource) String() string {
	if s == RateEdited {
		return "EDITED"
	}
	return "ORIGINAL"
}

// TaxInfo holds the tax attached to a product or line
type TaxInfo struct {
	TaxRate float64 // percentage
}

// Product is the catalog record a line item is created from
type Product struct {
	ID            uuid.UUID
	Name          string
	Code          string
	SellingPrice  float64
	PurchasePrice float64
	DiscountType  DiscountType
	DiscountValue float64
	TaxInfo       *TaxInfo
}

// LineItem is one row of an invoice or purchase order.
//
// Every row carries two views of its pricing: the persisted fields and the
// FormUpdated* mirrors the user edits. RateSource decides which view the
// pricing engines read, and the engines apply that choice differently per
// document kind (see PriceInvoiceItem and PricePurchaseItem).
type LineItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    float64

	// Persisted view
	Rate          float64 // quantity x unit rate as last persisted
	PurchasePrice float64
	DiscountType  DiscountType
	Discount      float64 // absolute amount for invoice lines
	TaxInfo       *TaxInfo

	// Working view
	FormUpdatedRate         float64
	FormUpdatedDiscountType DiscountType
	FormUpdatedDiscount     float64
	FormUpdatedTax          float64

	RateSource RateSource

	// Derived by the pricing engines
	TaxableAmount float64
	Tax           float64
	Amount        float64
}

// taxRate returns the persisted tax rate. A missing TaxInfo counts as 0%.
func (i *LineItem) taxRate() float64 {
	if i.TaxInfo == nil {
		return 0
	}
	return i.TaxInfo.TaxRate
}

// ApplyPricing stores the derived amounts of a pricing result on the item
func (i *LineItem) ApplyPricing(p ItemPricing) {
	i.TaxableAmount = p.TaxableAmount
	i.Tax = p.Tax
	i.Amount = p.Amount
}

// EditRate records a user edit of the unit rate and switches the item to its working view
func (i *LineItem) EditRate(unitRate float64) {
	i.FormUpdatedRate = unitRate
	i.RateSource = RateEdited
}

// EditDiscount records a user edit of the discount and switches the item to its working view
func (i *LineItem) EditDiscount(discountType DiscountType, value float64) {
	i.FormUpdatedDiscountType = discountType
	i.FormUpdatedDiscount = value
	i.RateSource = RateEdited
}

// EditTax records a user edit of the tax rate and switches the item to its working view
func (i *LineItem) EditTax(taxRate float64) {
	i.FormUpdatedTax = taxRate
	i.RateSource = RateEdited
}
