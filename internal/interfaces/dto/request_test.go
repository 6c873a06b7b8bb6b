package dto

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceJSON = `{
	"id": "INV-9",
	"kind": "invoice",
	"roundOff": true,
	"items": [
		{
			"id": "3b241101-e2bb-4255-8caf-4136c566a962",
			"quantity": "2",
			"form_updated_rate": 50,
			"discountType": 3,
			"discount": "10",
			"taxInfo": {"taxRate": 15},
			"isRateFormUpadted": "false"
		},
		{
			"quantity": 1,
			"form_updated_rate": "200",
			"form_updated_discounttype": "2",
			"form_updated_discount": 10,
			"form_updated_tax": 5,
			"isRateFormUpadted": "true"
		}
	]
}`

func TestRateFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want trade.RateSource
	}{
		{`true`, trade.RateEdited},
		{`"true"`, trade.RateEdited},
		{`" TRUE "`, trade.RateEdited},
		{`false`, trade.RateOriginal},
		{`"false"`, trade.RateOriginal},
		{`null`, trade.RateOriginal},
		{`"yes"`, trade.RateOriginal},
		{`1`, trade.RateOriginal},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f RateFlag
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, f.Source())
		})
	}
}

func TestRateFlag_MarshalJSON(t *testing.T) {
	out, err := json.Marshal([]RateFlag{RateFlag(trade.RateEdited), RateFlag(trade.RateOriginal)})
	require.NoError(t, err)
	assert.JSONEq(t, `[true, false]`, string(out))
}

func TestDiscountTypeCode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want trade.DiscountType
	}{
		{`2`, trade.DiscountPercent},
		{`"2"`, trade.DiscountPercent},
		{`3`, trade.DiscountFixed},
		{`"3"`, trade.DiscountFixed},
		{`1`, trade.DiscountFixed},
		{`"percent"`, trade.DiscountFixed},
		{`null`, trade.DiscountUnset},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var c DiscountTypeCode
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &c))
			assert.Equal(t, tt.want, c.Type())
		})
	}
}

func TestDecodeDocuments(t *testing.T) {
	t.Run("single document", func(t *testing.T) {
		docs, err := DecodeDocuments([]byte(invoiceJSON))
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "INV-9", doc.ID)
		assert.Equal(t, KindInvoice, doc.Kind)
		require.NotNil(t, doc.RoundOff)
		assert.True(t, *doc.RoundOff)
		require.Len(t, doc.Items, 2)
	})

	t.Run("array of documents", func(t *testing.T) {
		docs, err := DecodeDocuments([]byte(`[{"kind":"invoice"},{"kind":"purchase"}]`))
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, KindPurchase, docs[1].Kind)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := DecodeDocuments([]byte(`{"kind":`))
		require.Error(t, err)

		var decodeErr *DecodeError
		assert.True(t, errors.As(err, &decodeErr))
		assert.True(t, errors.Is(err, shared.ErrInvalidDocument))
	})
}

func TestDocumentRequest_LineItems(t *testing.T) {
	docs, err := DecodeDocuments([]byte(invoiceJSON))
	require.NoError(t, err)
	items := docs[0].LineItems()
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962"), first.ID)
	assert.Equal(t, 2.0, first.Quantity)
	assert.Equal(t, 50.0, first.FormUpdatedRate)
	assert.Equal(t, trade.DiscountFixed, first.DiscountType)
	assert.Equal(t, 10.0, first.Discount)
	require.NotNil(t, first.TaxInfo)
	assert.Equal(t, 15.0, first.TaxInfo.TaxRate)
	assert.Equal(t, trade.RateOriginal, first.RateSource)

	second := items[1]
	assert.NotEqual(t, uuid.Nil, second.ID, "rows without an id get one")
	assert.Nil(t, second.TaxInfo)
	assert.Equal(t, trade.DiscountPercent, second.FormUpdatedDiscountType)
	assert.Equal(t, trade.RateEdited, second.RateSource)

	// decoded rows price like the documented scenarios
	assert.Equal(t, 103.5, trade.PriceInvoiceItem(first).Amount)
	assert.Equal(t, 189.0, trade.PriceInvoiceItem(second).Amount)
}

func TestDocumentRequest_LineItems_MalformedNumber(t *testing.T) {
	docs, err := DecodeDocuments([]byte(`{"kind":"invoice","items":[{"quantity":"two","form_updated_rate":50}]}`))
	require.NoError(t, err)
	require.NoError(t, docs[0].Validate())

	items := docs[0].LineItems()
	assert.True(t, math.IsNaN(items[0].Quantity))
	assert.True(t, math.IsNaN(trade.PriceInvoiceItem(items[0]).Amount))
}

func TestDocumentRequest_Products(t *testing.T) {
	raw := `{
		"kind": "purchase",
		"products": [
			{"name": "Widget", "sellingPrice": 120, "purchasePrice": "80", "discountValue": 5, "taxInfo": {"taxRate": 15}}
		]
	}`
	docs, err := DecodeDocuments([]byte(raw))
	require.NoError(t, err)
	require.NoError(t, docs[0].Validate())

	input := docs[0].ToInput()
	require.Len(t, input.Items, 1)

	line := input.Items[0]
	assert.Equal(t, "Widget", line.ProductName)
	assert.Equal(t, 80.0, line.Rate)
	assert.Equal(t, 120.0, line.FormUpdatedRate)
	assert.Equal(t, trade.DiscountFixed, line.DiscountType, "purchase lines default to a fixed discount")
	assert.Nil(t, input.RoundOff)
}

func TestDocumentRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		docs, err := DecodeDocuments([]byte(invoiceJSON))
		require.NoError(t, err)
		assert.NoError(t, docs[0].Validate())
	})

	t.Run("missing kind", func(t *testing.T) {
		err := (&DocumentRequest{}).Validate()
		require.Error(t, err)

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		require.Len(t, validationErr.Details, 1)
		assert.Equal(t, "kind", validationErr.Details[0].Field)
		assert.Equal(t, "This field is required", validationErr.Details[0].Message)
		assert.True(t, errors.Is(err, shared.ErrInvalidDocument))
	})

	t.Run("unsupported kind and bad item id", func(t *testing.T) {
		req := &DocumentRequest{
			Kind:  "expense",
			Items: []LineItemRequest{{ID: "not-a-uuid"}},
		}
		err := req.Validate()

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))

		fields := map[string]string{}
		for _, d := range validationErr.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Must be one of: invoice purchase", fields["kind"])
		assert.Equal(t, "Invalid UUID format", fields["items[0].id"])
		assert.Contains(t, err.Error(), "kind")
	})
}
