package strategy

import (
	"sync"
	"testing"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/shared/strategy"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock line pricing strategy for testing
type mockLinePricingStrategy struct {
	strategy.BaseStrategy
}

func newMockLinePricingStrategy(name string) *mockLinePricingStrategy {
	return &mockLinePricingStrategy{
		BaseStrategy: strategy.NewBaseStrategy(name, strategy.StrategyTypeLinePricing, "Mock line pricing strategy"),
	}
}

func (s *mockLinePricingStrategy) PriceItem(item *trade.LineItem) trade.ItemPricing {
	return trade.ItemPricing{}
}

func (s *mockLinePricingStrategy) Totals(items []*trade.LineItem) trade.DocumentTotals {
	return trade.InvoiceTotals{}
}

func (s *mockLinePricingStrategy) RoundedTotals(items []*trade.LineItem, roundOff bool) trade.RoundedTotals {
	return trade.RoundedTotals{}
}

func TestNewStrategyRegistry(t *testing.T) {
	r := NewStrategyRegistry()
	assert.NotNil(t, r)
	assert.NotNil(t, r.linePricingStrategies)
	assert.NotNil(t, r.defaults)
}

func TestRegisterLinePricingStrategy(t *testing.T) {
	r := NewStrategyRegistry()

	t.Run("successful registration", func(t *testing.T) {
		err := r.RegisterLinePricingStrategy(newMockLinePricingStrategy("test_lines"))
		assert.NoError(t, err)
		assert.True(t, r.IsRegistered(strategy.StrategyTypeLinePricing, "test_lines"))
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		s := newMockLinePricingStrategy("duplicate_lines")
		require.NoError(t, r.RegisterLinePricingStrategy(s))

		err := r.RegisterLinePricingStrategy(s)
		assert.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGetLinePricingStrategy(t *testing.T) {
	r := NewStrategyRegistry()
	require.NoError(t, r.RegisterLinePricingStrategy(newMockLinePricingStrategy("get_lines")))

	t.Run("get by name", func(t *testing.T) {
		got, err := r.GetLinePricingStrategy("get_lines")
		assert.NoError(t, err)
		assert.Equal(t, "get_lines", got.Name())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := r.GetLinePricingStrategy("nonexistent")
		assert.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("get default when name is empty", func(t *testing.T) {
		require.NoError(t, r.SetDefault(strategy.StrategyTypeLinePricing, "get_lines"))
		got, err := r.GetLinePricingStrategy("")
		assert.NoError(t, err)
		assert.Equal(t, "get_lines", got.Name())
	})

	t.Run("no default set", func(t *testing.T) {
		r2 := NewStrategyRegistry()
		_, err := r2.GetLinePricingStrategy("")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestListLinePricingStrategies(t *testing.T) {
	r := NewStrategyRegistry()
	require.NoError(t, r.RegisterLinePricingStrategy(newMockLinePricingStrategy("b_lines")))
	require.NoError(t, r.RegisterLinePricingStrategy(newMockLinePricingStrategy("a_lines")))
	require.NoError(t, r.RegisterLinePricingStrategy(newMockLinePricingStrategy("c_lines")))

	assert.Equal(t, []string{"a_lines", "b_lines", "c_lines"}, r.ListLinePricingStrategies())
}

func TestUnregisterLinePricingStrategy(t *testing.T) {
	r := NewStrategyRegistry()
	require.NoError(t, r.RegisterLinePricingStrategy(newMockLinePricingStrategy("unregister_lines")))
	require.NoError(t, r.SetDefault(strategy.StrategyTypeLinePricing, "unregister_lines"))

	t.Run("successful unregister", func(t *testing.T) {
		err := r.UnregisterLinePricingStrategy("unregister_lines")
		assert.NoError(t, err)
		assert.False(t, r.IsRegistered(strategy.StrategyTypeLinePricing, "unregister_lines"))
		assert.Empty(t, r.GetDefault(strategy.StrategyTypeLinePricing))
	})

	t.Run("unregister nonexistent", func(t *testing.T) {
		err := r.UnregisterLinePricingStrategy("nonexistent")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSetDefault(t *testing.T) {
	r := NewStrategyRegistry()

	t.Run("unregistered name fails", func(t *testing.T) {
		err := r.SetDefault(strategy.StrategyTypeLinePricing, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		require.NoError(t, r.RegisterLinePricingStrategy(newMockLinePricingStrategy("lines")))
		err := r.SetDefault(strategy.StrategyType("cost"), "lines")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestNewRegistryWithDefaults(t *testing.T) {
	r, err := NewRegistryWithDefaults()
	require.NoError(t, err)

	assert.Equal(t, []string{"invoice", "purchase"}, r.ListLinePricingStrategies())
	assert.Equal(t, "invoice", r.GetDefault(strategy.StrategyTypeLinePricing))
	assert.Equal(t, map[strategy.StrategyType]int{strategy.StrategyTypeLinePricing: 2}, r.Stats())

	s, err := r.GetLinePricingStrategy(strategy.LinePricingPurchase)
	require.NoError(t, err)
	assert.Equal(t, "purchase", s.Name())
}

func TestConcurrentAccess(t *testing.T) {
	r := NewStrategyRegistry()
	var wg sync.WaitGroup
	numGoroutines := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			name := string(rune('a' + (idx % 26)))
			// Some will succeed, some will get a duplicate error
			_ = r.RegisterLinePricingStrategy(newMockLinePricingStrategy(name))
			_, _ = r.GetLinePricingStrategy(name)
			r.Stats()
		}(i)
	}

	wg.Wait()

	list := r.ListLinePricingStrategies()
	assert.Len(t, list, 26)
}
