package field

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// CurrencySymbol prefixes formatted currency values.
const CurrencySymbol = "$"

const maxDecimalPlaces = 9

var (
	numericRun    = regexp.MustCompile(`[0-9,.]+`)
	numericPrefix = regexp.MustCompile(`^[0-9]*\.?[0-9]*`)
)

// FormatOptions control how currency values are rendered.
type FormatOptions struct {
	// DecimalPlaces defaults to 2 and is capped at 9.
	DecimalPlaces int
	// DecimalSeparator defaults to ".".
	DecimalSeparator string
	// ThousandsSeparator defaults to ","; set NoThousandsSeparator to drop
	// grouping entirely.
	ThousandsSeparator   string
	NoThousandsSeparator bool
	// AutoCorrect rewrites the text box with the formatted value whenever it
	// changes.
	AutoCorrect bool
}

// DefaultFormatOptions returns two decimal places with comma grouping.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		DecimalPlaces:      2,
		DecimalSeparator:   ".",
		ThousandsSeparator: ",",
	}
}

func (o FormatOptions) normalized() FormatOptions {
	if o.DecimalPlaces < 0 {
		o.DecimalPlaces = -o.DecimalPlaces
	}
	if o.DecimalPlaces > maxDecimalPlaces {
		o.DecimalPlaces = maxDecimalPlaces
	}
	if !validSeparator(o.DecimalSeparator) {
		o.DecimalSeparator = "."
	}
	if o.NoThousandsSeparator {
		o.ThousandsSeparator = ""
	} else if !validSeparator(o.ThousandsSeparator) || o.ThousandsSeparator == o.DecimalSeparator {
		o.ThousandsSeparator = ","
		if o.DecimalSeparator == "," {
			o.DecimalSeparator = "."
		}
	}
	return o
}

// validSeparator accepts one printable ASCII symbol that humanize does not
// read as a digit or sign directive.
func validSeparator(sep string) bool {
	if len(sep) != 1 || sep[0] < 0x20 || sep[0] > 0x7e {
		return false
	}
	r := rune(sep[0])
	return !unicode.IsDigit(r) && r != '#' && r != '+' && r != '-'
}

// FormatMoney renders n with the grouping and precision in opts, without a
// currency symbol: 1234.5 becomes "1,234.50" with the defaults.
func FormatMoney(n float64, opts FormatOptions) string {
	opts = opts.normalized()
	if opts.ThousandsSeparator == "" {
		// humanize always groups, so ungrouped output is rendered directly.
		out := strconv.FormatFloat(n, 'f', opts.DecimalPlaces, 64)
		return strings.Replace(out, ".", opts.DecimalSeparator, 1)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	if math.Abs(n) >= 1<<63 {
		// humanize truncates through int64.
		return groupFixed(strconv.FormatFloat(n, 'f', opts.DecimalPlaces, 64), opts)
	}
	var format strings.Builder
	format.WriteString("#")
	format.WriteString(opts.ThousandsSeparator)
	format.WriteString("###")
	format.WriteString(opts.DecimalSeparator)
	format.WriteString(strings.Repeat("#", opts.DecimalPlaces))
	return humanize.FormatFloat(format.String(), n)
}

// groupFixed inserts thousands separators into a strconv 'f' formatted
// number and swaps in the decimal separator.
func groupFixed(fixed string, opts FormatOptions) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, hasFrac := strings.Cut(fixed, ".")
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(opts.ThousandsSeparator)
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteString(opts.DecimalSeparator)
		b.WriteString(frac)
	}
	return b.String()
}

// FormatCurrency is FormatMoney with the currency symbol in front.
func FormatCurrency(n float64, opts FormatOptions) string {
	return CurrencySymbol + FormatMoney(n, opts)
}

// ParseNumber extracts a number from locale formatted text such as
// "$1,234.50". The first run of digits, commas and dots is used with the
// commas removed; a minus sign right before it makes the result negative.
func ParseNumber(raw string) (float64, bool) {
	loc := numericRun.FindStringIndex(raw)
	if loc == nil {
		return 0, false
	}
	run := strings.ReplaceAll(raw[loc[0]:loc[1]], ",", "")
	prefix := numericPrefix.FindString(run)
	if prefix == "" || prefix == "." {
		return 0, false
	}
	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	if loc[0] > 0 && raw[loc[0]-1] == '-' {
		n = -n
	}
	return n, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
