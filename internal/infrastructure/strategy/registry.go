package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/shared/strategy"
)

// StrategyRegistry manages line pricing strategy registrations, keyed by
// the document kind each strategy prices
type StrategyRegistry struct {
	mu                    sync.RWMutex
	linePricingStrategies map[string]strategy.LinePricingStrategy
	defaults              map[strategy.StrategyType]string
}

// NewStrategyRegistry creates a new strategy registry
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		linePricingStrategies: make(map[string]strategy.LinePricingStrategy),
		defaults:              make(map[strategy.StrategyType]string),
	}
}

// RegisterLinePricingStrategy registers a line pricing strategy
func (r *StrategyRegistry) RegisterLinePricingStrategy(s strategy.LinePricingStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.linePricingStrategies[name]; exists {
		return fmt.Errorf("%w: line pricing strategy '%s' already registered", shared.ErrAlreadyExists, name)
	}
	r.linePricingStrategies[name] = s
	return nil
}

// GetLinePricingStrategy returns a line pricing strategy by name, or the default if name is empty
func (r *StrategyRegistry) GetLinePricingStrategy(name string) (strategy.LinePricingStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaults[strategy.StrategyTypeLinePricing]
		if name == "" {
			return nil, fmt.Errorf("%w: no default line pricing strategy set", shared.ErrNotFound)
		}
	}

	s, exists := r.linePricingStrategies[name]
	if !exists {
		return nil, fmt.Errorf("%w: line pricing strategy '%s' not found", shared.ErrNotFound, name)
	}
	return s, nil
}

// ListLinePricingStrategies returns all registered line pricing strategy names
func (r *StrategyRegistry) ListLinePricingStrategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.linePricingStrategies))
	for name := range r.linePricingStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnregisterLinePricingStrategy removes a line pricing strategy
func (r *StrategyRegistry) UnregisterLinePricingStrategy(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.linePricingStrategies[name]; !exists {
		return fmt.Errorf("%w: line pricing strategy '%s' not found", shared.ErrNotFound, name)
	}
	delete(r.linePricingStrategies, name)

	if r.defaults[strategy.StrategyTypeLinePricing] == name {
		delete(r.defaults, strategy.StrategyTypeLinePricing)
	}
	return nil
}

// SetDefault sets the default strategy for a strategy type
func (r *StrategyRegistry) SetDefault(strategyType strategy.StrategyType, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRegisteredLocked(strategyType, name) {
		return fmt.Errorf("%w: strategy '%s' of type '%s' not found", shared.ErrNotFound, name, strategyType)
	}

	r.defaults[strategyType] = name
	return nil
}

// GetDefault returns the default strategy name for a strategy type
func (r *StrategyRegistry) GetDefault(strategyType strategy.StrategyType) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults[strategyType]
}

// IsRegistered returns true if a strategy with the given name is registered for the type
func (r *StrategyRegistry) IsRegistered(strategyType strategy.StrategyType, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRegisteredLocked(strategyType, name)
}

// isRegisteredLocked checks registration without locking (caller must hold lock)
func (r *StrategyRegistry) isRegisteredLocked(strategyType strategy.StrategyType, name string) bool {
	switch strategyType {
	case strategy.StrategyTypeLinePricing:
		_, exists := r.linePricingStrategies[name]
		return exists
	default:
		return false
	}
}

// Stats returns registration counts for each strategy type
func (r *StrategyRegistry) Stats() map[strategy.StrategyType]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return map[strategy.StrategyType]int{
		strategy.StrategyTypeLinePricing: len(r.linePricingStrategies),
	}
}
