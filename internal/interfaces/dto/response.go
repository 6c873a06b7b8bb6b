package dto

import (
	apptrade "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/printing"
)

// Response is the envelope written for every summarized document
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewErrorResponse creates an error response from err
func NewErrorResponse(err error) Response {
	return Response{Success: false, Error: ErrorInfoFromError(err)}
}

// ItemPricingResponse is the per-item pricing result. BaseRate and
// FormUpdatedDiscount are only present for invoice lines.
type ItemPricingResponse struct {
	Rate                Number  `json:"rate"`
	Discount            Number  `json:"discount"`
	Tax                 Number  `json:"tax"`
	Amount              Number  `json:"amount"`
	TaxableAmount       Number  `json:"taxableAmount"`
	Quantity            Number  `json:"quantity"`
	DiscountType        int     `json:"discountType"`
	BaseRate            *Number `json:"baseRate,omitempty"`
	FormUpdatedDiscount *Number `json:"form_updated_discount,omitempty"`
}

// NewItemPricingResponse converts a purchase or plain pricing result
func NewItemPricingResponse(p trade.ItemPricing) ItemPricingResponse {
	return ItemPricingResponse{
		Rate:          Number(p.Rate),
		Discount:      Number(p.Discount),
		Tax:           Number(p.Tax),
		Amount:        Number(p.Amount),
		TaxableAmount: Number(p.TaxableAmount),
		Quantity:      Number(p.Quantity),
		DiscountType:  int(p.DiscountType),
	}
}

// NewInvoiceItemPricingResponse converts an invoice pricing result
func NewInvoiceItemPricingResponse(p trade.InvoiceItemPricing) ItemPricingResponse {
	resp := NewItemPricingResponse(p.ItemPricing)
	baseRate := Number(p.BaseRate)
	formUpdatedDiscount := Number(p.FormUpdatedDiscount)
	resp.BaseRate = &baseRate
	resp.FormUpdatedDiscount = &formUpdatedDiscount
	return resp
}

// InvoiceTotalsResponse is the plain invoice totals shape
type InvoiceTotalsResponse struct {
	SubTotal      Number `json:"subTotal"`
	TotalDiscount Number `json:"totalDiscount"`
	TotalTax      Number `json:"totalTax"`
	Total         Number `json:"total"`
	TaxableAmount Number `json:"taxableAmount"`
}

// PurchaseTotalsResponse is the plain purchase totals shape
type PurchaseTotalsResponse struct {
	SubTotal      Number `json:"subTotal"`
	TotalDiscount Number `json:"totalDiscount"`
	VAT           Number `json:"vat"`
	Total         Number `json:"total"`
	TaxableAmount Number `json:"taxableAmount"`
}

// NewTotalsResponse converts plain totals into the shape of their document kind
func NewTotalsResponse(t trade.DocumentTotals) any {
	switch v := t.(type) {
	case trade.InvoiceTotals:
		return InvoiceTotalsResponse{
			SubTotal:      Number(v.SubTotal),
			TotalDiscount: Number(v.TotalDiscount),
			TotalTax:      Number(v.TotalTax),
			Total:         Number(v.Total),
			TaxableAmount: Number(v.TaxableAmount),
		}
	case trade.PurchaseTotals:
		return PurchaseTotalsResponse{
			SubTotal:      Number(v.SubTotal),
			TotalDiscount: Number(v.TotalDiscount),
			VAT:           Number(v.VAT),
			Total:         Number(v.Total),
			TaxableAmount: Number(v.TaxableAmount),
		}
	}
	return nil
}

// RoundedTotalsResponse is the document footer. The taxableAmount key carries
// the pre-discount subtotal.
type RoundedTotalsResponse struct {
	TaxableAmount Number `json:"taxableAmount"`
	TotalDiscount Number `json:"totalDiscount"`
	VAT           Number `json:"vat"`
	TotalAmount   Number `json:"TotalAmount"`
	RoundOffValue Number `json:"roundOffValue"`
}

// NewRoundedTotalsResponse converts a document footer
func NewRoundedTotalsResponse(t trade.RoundedTotals) RoundedTotalsResponse {
	return RoundedTotalsResponse{
		TaxableAmount: Number(t.PreDiscountSubtotal),
		TotalDiscount: Number(t.TotalDiscount),
		VAT:           Number(t.VAT),
		TotalAmount:   Number(t.TotalAmount),
		RoundOffValue: Number(t.RoundOffValue),
	}
}

// DiscountDisplayResponse is the two-part discount rendering
type DiscountDisplayResponse struct {
	MainValue      string  `json:"mainValue"`
	SecondaryValue *string `json:"secondaryValue"`
}

// NewDiscountDisplayResponse converts a discount display
func NewDiscountDisplayResponse(d printing.DiscountDisplay) *DiscountDisplayResponse {
	return &DiscountDisplayResponse{MainValue: d.MainValue, SecondaryValue: d.SecondaryValue}
}

// LineSummaryResponse is one priced row
type LineSummaryResponse struct {
	ID       string                   `json:"id"`
	Pricing  ItemPricingResponse      `json:"pricing"`
	Discount *DiscountDisplayResponse `json:"discountDisplay,omitempty"`
}

// DocumentSummaryResponse is the full result for one document
type DocumentSummaryResponse struct {
	ID            string                `json:"id"`
	Kind          string                `json:"kind"`
	Lines         []LineSummaryResponse `json:"lines"`
	Totals        any                   `json:"totals"`
	RoundedTotals RoundedTotalsResponse `json:"roundedTotals"`
}

// NewDocumentSummaryResponse converts a priced document
func NewDocumentSummaryResponse(s *apptrade.DocumentSummary) DocumentSummaryResponse {
	lines := make([]LineSummaryResponse, len(s.Lines))
	for i, l := range s.Lines {
		line := LineSummaryResponse{}
		if l.Item != nil {
			line.ID = l.Item.ID.String()
		}
		if l.Invoice != nil {
			line.Pricing = NewInvoiceItemPricingResponse(*l.Invoice)
		} else {
			line.Pricing = NewItemPricingResponse(l.Pricing)
		}
		if l.Display != nil {
			line.Discount = NewDiscountDisplayResponse(*l.Display)
		}
		lines[i] = line
	}

	return DocumentSummaryResponse{
		ID:            s.ID,
		Kind:          s.Kind,
		Lines:         lines,
		Totals:        NewTotalsResponse(s.Totals),
		RoundedTotals: NewRoundedTotalsResponse(s.RoundedTotals),
	}
}

// NewBatchResponses converts batch results, keeping their order
func NewBatchResponses(results []apptrade.BatchResult) []Response {
	out := make([]Response, len(results))
	for i, r := range results {
		if r.Err != nil {
			out[i] = NewErrorResponse(r.Err)
			continue
		}
		out[i] = NewSuccessResponse(NewDocumentSummaryResponse(r.Summary))
	}
	return out
}
