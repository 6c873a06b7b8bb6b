package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	apptrade "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/google/uuid"
)

// Document kinds accepted by DocumentRequest
const (
	KindInvoice  = "invoice"
	KindPurchase = "purchase"
)

// RateFlag is the isRateFormUpadted field. The editing surface sends it as a
// boolean or as the strings "true"/"false"; only true and "true" (any case)
// select the edited view.
type RateFlag trade.RateSource

// UnmarshalJSON implements json.Unmarshaler
func (f *RateFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = RateFlag(trade.RateOriginal)

	switch {
	case bytes.Equal(data, []byte("true")):
		*f = RateFlag(trade.RateEdited)
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if strings.EqualFold(strings.TrimSpace(s), "true") {
			*f = RateFlag(trade.RateEdited)
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (f RateFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(trade.RateSource(f).IsEdited())
}

// Source returns the normalized rate source
func (f RateFlag) Source() trade.RateSource {
	return trade.RateSource(f)
}

// DiscountTypeCode is a discountType field. 2 (or "2") means percent, an
// absent or null field means unset, and every other value means fixed.
type DiscountTypeCode trade.DiscountType

// UnmarshalJSON implements json.Unmarshaler
func (c *DiscountTypeCode) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = DiscountTypeCode(trade.DiscountUnset)
		return nil
	}
	if coerceJSON(data) == float64(trade.DiscountPercent) {
		*c = DiscountTypeCode(trade.DiscountPercent)
	} else {
		*c = DiscountTypeCode(trade.DiscountFixed)
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (c DiscountTypeCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}

// Type returns the domain discount type
func (c DiscountTypeCode) Type() trade.DiscountType {
	return trade.DiscountType(c)
}

// TaxInfoRequest is the nested taxInfo object
type TaxInfoRequest struct {
	TaxRate Number `json:"taxRate"`
}

// LineItemRequest is one row as sent by the editing surface
type LineItemRequest struct {
	ID          string `json:"id,omitempty" validate:"omitempty,uuid"`
	ProductID   string `json:"productId,omitempty" validate:"omitempty,uuid"`
	ProductName string `json:"productName,omitempty" validate:"max=200"`
	Quantity    Number `json:"quantity"`

	Rate          Number           `json:"rate"`
	PurchasePrice Number           `json:"purchasePrice"`
	DiscountType  DiscountTypeCode `json:"discountType"`
	Discount      Number           `json:"discount"`
	TaxInfo       *TaxInfoRequest  `json:"taxInfo"`

	FormUpdatedRate         Number           `json:"form_updated_rate"`
	FormUpdatedDiscountType DiscountTypeCode `json:"form_updated_discounttype"`
	FormUpdatedDiscount     Number           `json:"form_updated_discount"`
	FormUpdatedTax          Number           `json:"form_updated_tax"`

	IsRateFormUpdated RateFlag `json:"isRateFormUpadted"`
}

// ProductRequest is a catalog product to turn into a new line
type ProductRequest struct {
	ID            string           `json:"id,omitempty" validate:"omitempty,uuid"`
	Name          string           `json:"name" validate:"max=200"`
	Code          string           `json:"code,omitempty" validate:"max=50"`
	SellingPrice  Number           `json:"sellingPrice"`
	PurchasePrice Number           `json:"purchasePrice"`
	DiscountType  DiscountTypeCode `json:"discountType"`
	DiscountValue Number           `json:"discountValue"`
	TaxInfo       *TaxInfoRequest  `json:"taxInfo"`
}

// DocumentRequest is one invoice or purchase order to summarize. Products are
// turned into fresh lines and appended after Items.
type DocumentRequest struct {
	ID       string            `json:"id,omitempty" validate:"max=64"`
	Kind     string            `json:"kind" validate:"required,oneof=invoice purchase"`
	RoundOff *bool             `json:"roundOff,omitempty"`
	Items    []LineItemRequest `json:"items" validate:"dive"`
	Products []ProductRequest  `json:"products,omitempty" validate:"dive"`
}

// ToLineItem converts the request into a domain line item
func (r *LineItemRequest) ToLineItem() *trade.LineItem {
	item := &trade.LineItem{
		ID:                      parseUUIDOrNew(r.ID),
		ProductID:               parseUUIDOrZero(r.ProductID),
		ProductName:             r.ProductName,
		Quantity:                r.Quantity.Float64(),
		Rate:                    r.Rate.Float64(),
		PurchasePrice:           r.PurchasePrice.Float64(),
		DiscountType:            r.DiscountType.Type(),
		Discount:                r.Discount.Float64(),
		FormUpdatedRate:         r.FormUpdatedRate.Float64(),
		FormUpdatedDiscountType: r.FormUpdatedDiscountType.Type(),
		FormUpdatedDiscount:     r.FormUpdatedDiscount.Float64(),
		FormUpdatedTax:          r.FormUpdatedTax.Float64(),
		RateSource:              r.IsRateFormUpdated.Source(),
	}
	if r.TaxInfo != nil {
		item.TaxInfo = &trade.TaxInfo{TaxRate: r.TaxInfo.TaxRate.Float64()}
	}
	return item
}

// ToProduct converts the request into a catalog product
func (r *ProductRequest) ToProduct() *trade.Product {
	p := &trade.Product{
		ID:            parseUUIDOrZero(r.ID),
		Name:          r.Name,
		Code:          r.Code,
		SellingPrice:  r.SellingPrice.Float64(),
		PurchasePrice: r.PurchasePrice.Float64(),
		DiscountType:  r.DiscountType.Type(),
		DiscountValue: r.DiscountValue.Float64(),
	}
	if r.TaxInfo != nil {
		p.TaxInfo = &trade.TaxInfo{TaxRate: r.TaxInfo.TaxRate.Float64()}
	}
	return p
}

// LineItems converts items, then builds one new line per product using the
// factory matching the document kind. Validate the request first.
func (r *DocumentRequest) LineItems() []*trade.LineItem {
	items := make([]*trade.LineItem, 0, len(r.Items)+len(r.Products))
	for i := range r.Items {
		items = append(items, r.Items[i].ToLineItem())
	}
	for i := range r.Products {
		product := r.Products[i].ToProduct()
		if r.Kind == KindPurchase {
			items = append(items, trade.NewPurchaseLineItem(product))
		} else {
			items = append(items, trade.NewInvoiceLineItem(product))
		}
	}
	return items
}

// ToInput converts the request into a service input. Validate the request first.
func (r *DocumentRequest) ToInput() apptrade.DocumentInput {
	return apptrade.DocumentInput{
		ID:       r.ID,
		Kind:     r.Kind,
		Items:    r.LineItems(),
		RoundOff: r.RoundOff,
	}
}

// DecodeDocuments reads either a single document object or an array of them
func DecodeDocuments(data []byte) ([]DocumentRequest, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var docs []DocumentRequest
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, invalidJSON(err)
		}
		return docs, nil
	}

	var doc DocumentRequest
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, invalidJSON(err)
	}
	return []DocumentRequest{doc}, nil
}

// parseUUIDOrNew gives rows without a usable id a fresh one
func parseUUIDOrNew(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.New()
	}
	return id
}

func parseUUIDOrZero(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
