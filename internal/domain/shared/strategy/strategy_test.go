package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategyType(t *testing.T) {
	assert.True(t, StrategyTypeLinePricing.IsValid())
	assert.False(t, StrategyType("cost").IsValid())
	assert.Equal(t, "line_pricing", StrategyTypeLinePricing.String())
	assert.Equal(t, []StrategyType{StrategyTypeLinePricing}, AllStrategyTypes())
}

func TestBaseStrategy(t *testing.T) {
	s := NewBaseStrategy(LinePricingInvoice, StrategyTypeLinePricing, "Invoice lines")

	assert.Equal(t, "invoice", s.Name())
	assert.Equal(t, StrategyTypeLinePricing, s.Type())
	assert.Equal(t, "Invoice lines", s.Description())
}
