package printing

import (
	"fmt"
	"math"

	"github.com/erp/backoffice/internal/domain/shared/valueobject"
	"github.com/erp/backoffice/internal/domain/trade"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DiscountDisplay is the two-part rendering of a row's discount.
// SecondaryValue is nil for fixed discounts.
type DiscountDisplay struct {
	MainValue      string
	SecondaryValue *string
}

// DiscountFormatterConfig configures a DiscountFormatter
type DiscountFormatterConfig struct {
	Locale         string // BCP 47 tag used for digit grouping, e.g. "en", "de"
	CurrencySuffix string // appended to absolute amounts of percent discounts
	// LegacyZeroDiscount renders every discount figure as zero, matching
	// older screens that read a field the pricing result never carried
	LegacyZeroDiscount bool
}

// DiscountFormatter renders invoice-row discounts for tables and totals panels
type DiscountFormatter struct {
	printer            *message.Printer
	currencySuffix     string
	legacyZeroDiscount bool
}

// NewDiscountFormatter creates a formatter for the configured locale
func NewDiscountFormatter(cfg DiscountFormatterConfig) (*DiscountFormatter, error) {
	locale := cfg.Locale
	if locale == "" {
		locale = "en"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid display locale %q: %w", locale, err)
	}

	return &DiscountFormatter{
		printer:            message.NewPrinter(tag),
		currencySuffix:     cfg.CurrencySuffix,
		legacyZeroDiscount: cfg.LegacyZeroDiscount,
	}, nil
}

// Format prices the invoice line and renders its discount
func (f *DiscountFormatter) Format(item *trade.LineItem) DiscountDisplay {
	return f.FormatPricing(trade.PriceInvoiceItem(item))
}

// FormatPricing renders the discount of an already priced invoice line.
//
// Percent discounts render as "<percent>%" with the absolute amount and
// currency as secondary value. Anything else renders the absolute amount with
// locale digit grouping and no secondary value. Non-numeric figures render as 0.
func (f *DiscountFormatter) FormatPricing(p trade.InvoiceItemPricing) DiscountDisplay {
	percent := finiteOrZero(p.FormUpdatedDiscount)
	amount := finiteOrZero(p.Discount)
	if f.legacyZeroDiscount {
		percent, amount = 0, 0
	}

	if p.DiscountType.IsPercent() {
		secondary := valueobject.FormatCents(amount)
		if f.currencySuffix != "" {
			secondary += " " + f.currencySuffix
		}
		return DiscountDisplay{
			MainValue:      valueobject.FormatCents(percent) + "%",
			SecondaryValue: &secondary,
		}
	}

	return DiscountDisplay{MainValue: f.grouped(amount)}
}

// grouped renders a cent amount with the locale's grouping and decimal separators
func (f *DiscountFormatter) grouped(amount float64) string {
	return f.printer.Sprint(number.Decimal(
		valueobject.Round2(amount),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
