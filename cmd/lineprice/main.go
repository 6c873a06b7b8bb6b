// Command lineprice prices invoice and purchase-order documents.
//
// It reads one JSON document, or a JSON array of documents, from -file or
// stdin and writes one result envelope per document to stdout:
//
//	lineprice -file invoice.json -round-off=true
//	cat batch.json | lineprice -log-level debug
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	apptrade "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/printing"
	"github.com/erp/backoffice/internal/infrastructure/strategy"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/erp/backoffice/internal/interfaces/dto"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds the parsed command line
type options struct {
	file       string
	configPath string
	logLevel   string
	roundOff   *bool
	pretty     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("lineprice", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.file, "file", "", "Document JSON file (default: stdin)")
	fs.StringVar(&opts.configPath, "config", "", "TOML config file (default: ./config.toml if present)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides log.level")
	fs.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	fs.Func("round-off", "Round totals to whole units; overrides pricing.round_off", func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		opts.roundOff = &v
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadFile(opts.configPath)
	}
	return config.Load()
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return dto.ExitBadInput
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return dto.ExitInternal
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.roundOff != nil {
		cfg.Pricing.RoundOff = *opts.roundOff
	}

	log, closer, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return dto.ExitInternal
	}
	defer func() {
		_ = logger.Sync(log)
		_ = closer.Close()
	}()
	log = logger.Named(log, cfg.App.Name)

	svc, shutdown, err := newDocumentService(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize pricing", zap.Error(err))
		return dto.ExitInternal
	}
	defer shutdown()

	data, err := readInput(opts.file, stdin)
	if err != nil {
		log.Error("Failed to read input", zap.Error(err))
		return dto.ExitBadInput
	}

	docs, err := dto.DecodeDocuments(data)
	if err != nil {
		log.Error("Failed to decode documents", zap.Error(err))
		writeJSON(stdout, dto.NewErrorResponse(err), opts.pretty)
		return dto.ExitBadInput
	}

	responses := summarize(logger.WithContext(ctx, log), svc, docs)

	var out any = responses
	if !isArray(data) && len(responses) == 1 {
		out = responses[0]
	}
	if err := writeJSON(stdout, out, opts.pretty); err != nil {
		log.Error("Failed to write output", zap.Error(err))
		return dto.ExitInternal
	}

	return exitStatus(responses)
}

// newDocumentService wires the registry, formatter and metrics. The returned
// func flushes metrics and must be called before exit.
func newDocumentService(ctx context.Context, cfg *config.Config, log *zap.Logger) (*apptrade.DocumentService, func(), error) {
	registry, err := strategy.NewRegistryWithDefaults()
	if err != nil {
		return nil, nil, err
	}

	formatter, err := printing.NewDiscountFormatter(printing.DiscountFormatterConfig{
		Locale:             cfg.Pricing.Locale,
		CurrencySuffix:     cfg.Pricing.CurrencySuffix,
		LegacyZeroDiscount: cfg.Pricing.LegacyZeroDiscountDisplay,
	})
	if err != nil {
		return nil, nil, err
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Metrics.Enabled,
		CollectorEndpoint: cfg.Metrics.CollectorEndpoint,
		ExportInterval:    cfg.Metrics.ExportInterval,
		ServiceName:       cfg.App.Name,
		Insecure:          cfg.Metrics.Insecure,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	metrics, err := telemetry.NewPricingMetrics(meterProvider.Meter("github.com/erp/backoffice/pricing"))
	if err != nil {
		return nil, nil, err
	}

	svc := apptrade.NewDocumentService(registry, formatter, apptrade.DocumentServiceConfig{
		RoundOff:     cfg.Pricing.RoundOff,
		BatchWorkers: cfg.Pricing.BatchWorkers,
	})
	svc.SetLogger(log)
	svc.SetMetrics(metrics)

	shutdown := func() {
		// ctx may already be cancelled by a signal; flush anyway
		if err := meterProvider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("Failed to flush metrics", zap.Error(err))
		}
	}
	return svc, shutdown, nil
}

// summarize validates every document, prices the valid ones as one batch and
// returns one envelope per input document in input order
func summarize(ctx context.Context, svc *apptrade.DocumentService, docs []dto.DocumentRequest) []dto.Response {
	responses := make([]dto.Response, len(docs))

	inputs := make([]apptrade.DocumentInput, 0, len(docs))
	positions := make([]int, 0, len(docs))
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			logger.FromContext(ctx).Warn("Rejected document",
				zap.Int("index", i),
				zap.String("document_id", docs[i].ID),
				zap.Error(err),
			)
			responses[i] = dto.NewErrorResponse(err)
			continue
		}
		inputs = append(inputs, docs[i].ToInput())
		positions = append(positions, i)
	}

	batch := dto.NewBatchResponses(svc.SummarizeBatch(ctx, inputs))
	for j, resp := range batch {
		responses[positions[j]] = resp
	}
	return responses
}

// exitStatus is the status of the first failed document, or ExitOK
func exitStatus(responses []dto.Response) int {
	for _, r := range responses {
		if !r.Success && r.Error != nil {
			return dto.GetExitStatus(r.Error.Code)
		}
	}
	return dto.ExitOK
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func isArray(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
