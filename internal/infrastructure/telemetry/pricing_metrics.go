package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a nil meter is passed to a metrics constructor.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// PricingMetrics records document pricing activity
type PricingMetrics struct {
	documentsTotal *Counter
	linesTotal     *Counter
	nanLinesTotal  *Counter
	failuresTotal  *Counter
	roundOff       *Histogram
	duration       *Histogram
}

// DocumentObservation describes one summarized document
type DocumentObservation struct {
	Kind          string
	Lines         int
	NaNLines      int
	RoundOff      bool
	RoundOffValue float64
	Duration      time.Duration
}

// NewPricingMetrics creates the pricing instruments on meter
func NewPricingMetrics(meter metric.Meter) (*PricingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		pm  PricingMetrics
		err error
	)
	if pm.documentsTotal, err = NewCounter(meter, "pricing_documents_total",
		"Documents summarized", "{document}"); err != nil {
		return nil, err
	}
	if pm.linesTotal, err = NewCounter(meter, "pricing_lines_total",
		"Line items priced", "{line}"); err != nil {
		return nil, err
	}
	if pm.nanLinesTotal, err = NewCounter(meter, "pricing_nan_lines_total",
		"Line items whose amount is not a number", "{line}"); err != nil {
		return nil, err
	}
	if pm.failuresTotal, err = NewCounter(meter, "pricing_failures_total",
		"Documents rejected before pricing", "{document}"); err != nil {
		return nil, err
	}
	if pm.roundOff, err = NewHistogram(meter, HistogramOpts{
		Name:        "pricing_round_off_value",
		Description: "Difference between rounded and unrounded document totals",
		Unit:        "1",
		Boundaries:  RoundOffBuckets,
	}); err != nil {
		return nil, err
	}
	if pm.duration, err = NewHistogram(meter, HistogramOpts{
		Name:        "pricing_document_duration_seconds",
		Description: "Time spent summarizing one document",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	}); err != nil {
		return nil, err
	}
	return &pm, nil
}

// RecordDocument records one summarized document. A nil receiver is a no-op.
func (pm *PricingMetrics) RecordDocument(ctx context.Context, obs DocumentObservation) {
	if pm == nil {
		return
	}
	kind := AttrDocumentKind.String(obs.Kind)

	pm.documentsTotal.Inc(ctx, kind, AttrRoundOff.Bool(obs.RoundOff))
	pm.linesTotal.Add(ctx, int64(obs.Lines), kind)
	if obs.NaNLines > 0 {
		pm.nanLinesTotal.Add(ctx, int64(obs.NaNLines), kind)
	}
	if obs.RoundOff {
		pm.roundOff.Record(ctx, obs.RoundOffValue, kind)
	}
	pm.duration.RecordDuration(ctx, obs.Duration, kind)
}

// RecordFailure records a document rejected before pricing. A nil receiver is a no-op.
func (pm *PricingMetrics) RecordFailure(ctx context.Context, kind, reason string) {
	if pm == nil {
		return
	}
	pm.failuresTotal.Inc(ctx, AttrDocumentKind.String(kind), AttrOutcome.String(reason))
}
