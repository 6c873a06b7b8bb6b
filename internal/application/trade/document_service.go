package trade

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/shared/strategy"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/printing"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LinePricingStrategies resolves a document kind to its pricing strategy
type LinePricingStrategies interface {
	GetLinePricingStrategy(name string) (strategy.LinePricingStrategy, error)
}

// DiscountRenderer renders the discount of a priced invoice line
type DiscountRenderer interface {
	FormatPricing(p trade.InvoiceItemPricing) printing.DiscountDisplay
}

// invoiceLinePricer is implemented by strategies that expose the invoice-only
// pricing fields
type invoiceLinePricer interface {
	PriceInvoiceItem(item *trade.LineItem) trade.InvoiceItemPricing
}

// DocumentServiceConfig holds service defaults
type DocumentServiceConfig struct {
	RoundOff     bool
	BatchWorkers int
}

// DocumentService prices invoices and purchase orders
type DocumentService struct {
	strategies LinePricingStrategies
	display    DiscountRenderer
	metrics    *telemetry.PricingMetrics
	logger     *zap.Logger
	cfg        DocumentServiceConfig
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(strategies LinePricingStrategies, display DiscountRenderer, cfg DocumentServiceConfig) *DocumentService {
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = 1
	}
	return &DocumentService{
		strategies: strategies,
		display:    display,
		logger:     zap.NewNop(),
		cfg:        cfg,
	}
}

// SetLogger sets the service logger
func (s *DocumentService) SetLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetMetrics sets the pricing metrics recorder
func (s *DocumentService) SetMetrics(m *telemetry.PricingMetrics) {
	s.metrics = m
}

// Summarize prices every line of the document, renders invoice discounts and
// computes both the plain totals and the footer. Malformed numbers do not fail
// the call; they surface as NaN lines and are logged.
func (s *DocumentService) Summarize(ctx context.Context, in DocumentInput) (*DocumentSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	pricer, err := s.strategies.GetLinePricingStrategy(in.Kind)
	if err != nil {
		s.metrics.RecordFailure(ctx, in.Kind, "unknown_kind")
		return nil, fmt.Errorf("%w: %q: %v", shared.ErrUnknownDocumentKind, in.Kind, err)
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	ctx, log := logger.WithDocumentID(ctx, s.loggerFrom(ctx), id)

	roundOff := s.cfg.RoundOff
	if in.RoundOff != nil {
		roundOff = *in.RoundOff
	}

	summary := &DocumentSummary{
		ID:       id,
		Kind:     pricer.Name(),
		RoundOff: roundOff,
		Lines:    make([]LineSummary, len(in.Items)),
	}

	invoicePricer, isInvoice := pricer.(invoiceLinePricer)
	for i, item := range in.Items {
		line := LineSummary{Item: item}
		if isInvoice {
			p := invoicePricer.PriceInvoiceItem(item)
			line.Pricing = p.ItemPricing
			line.Invoice = &p
			if s.display != nil {
				d := s.display.FormatPricing(p)
				line.Display = &d
			}
		} else {
			line.Pricing = pricer.PriceItem(item)
		}

		if math.IsNaN(line.Pricing.Amount) {
			line.NaN = true
			log.Warn("line amount is not a number",
				zap.Int("line", i),
				zap.Float64("quantity", line.Pricing.Quantity),
				zap.Float64("rate", line.Pricing.Rate),
				zap.Float64("discount", line.Pricing.Discount),
				zap.Float64("tax", line.Pricing.Tax),
			)
		}
		summary.Lines[i] = line
	}

	summary.Totals = pricer.Totals(in.Items)
	summary.RoundedTotals = pricer.RoundedTotals(in.Items, roundOff)

	elapsed := time.Since(start)
	s.metrics.RecordDocument(ctx, telemetry.DocumentObservation{
		Kind:          summary.Kind,
		Lines:         len(summary.Lines),
		NaNLines:      summary.NaNLines(),
		RoundOff:      roundOff,
		RoundOffValue: summary.RoundedTotals.RoundOffValue,
		Duration:      elapsed,
	})

	log.Debug("document summarized",
		zap.String("kind", summary.Kind),
		zap.Int("lines", len(summary.Lines)),
		zap.Bool("round_off", roundOff),
		zap.Float64("total_amount", summary.RoundedTotals.TotalAmount),
		zap.Duration("elapsed", elapsed),
	)

	return summary, nil
}

// SummarizeBatch summarizes documents on up to BatchWorkers goroutines.
// Results are in input order. Documents not started before ctx is done get
// ctx's error.
func (s *DocumentService) SummarizeBatch(ctx context.Context, inputs []DocumentInput) []BatchResult {
	results := make([]BatchResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	ctx, log := logger.WithBatchID(ctx, s.loggerFrom(ctx), uuid.NewString())
	workers := min(s.cfg.BatchWorkers, len(inputs))
	log.Debug("batch started", zap.Int("documents", len(inputs)), zap.Int("workers", workers))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i].Err = err
					continue
				}
				results[i].Summary, results[i].Err = s.Summarize(ctx, inputs[i])
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(inputs); next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)

	for i := next; i < len(inputs); i++ {
		results[i].Err = ctx.Err()
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Debug("batch finished", zap.Int("documents", len(inputs)), zap.Int("failed", failed))

	return results
}

// loggerFrom prefers a logger carried by ctx over the service logger
func (s *DocumentService) loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(logger.LoggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return s.logger
}
