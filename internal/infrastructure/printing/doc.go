// Package printing renders line-item figures for documents and print views.
//
// DiscountFormatter turns an invoice line's discount into a main value and an
// optional secondary value, using locale digit grouping and a currency suffix:
//
//	f, err := NewDiscountFormatter(DiscountFormatterConfig{
//	    Locale:         "en",
//	    CurrencySuffix: "SAR",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	d := f.Format(item)
//	fmt.Println(d.MainValue) // "15.00%"
package printing
