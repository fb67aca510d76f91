package field

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		name string
		n    float64
		opts FormatOptions
		want string
	}{
		{name: "defaults", n: 1234.5, opts: DefaultFormatOptions(), want: "$1,234.50"},
		{name: "small", n: 7, opts: DefaultFormatOptions(), want: "$7.00"},
		{name: "millions", n: 1234567.891, opts: DefaultFormatOptions(), want: "$1,234,567.89"},
		{name: "negative", n: -1234.5, opts: DefaultFormatOptions(), want: "$-1,234.50"},
		{name: "no decimals", n: 1234.6, opts: FormatOptions{DecimalPlaces: 0}, want: "$1,235"},
		{name: "zero value options", n: 1234.5, opts: FormatOptions{}, want: "$1,235"},
		{
			name: "european separators",
			n:    1234567.891,
			opts: FormatOptions{DecimalPlaces: 2, DecimalSeparator: ",", ThousandsSeparator: "."},
			want: "$1.234.567,89",
		},
		{
			name: "no grouping",
			n:    1234.5,
			opts: FormatOptions{DecimalPlaces: 2, NoThousandsSeparator: true},
			want: "$1234.50",
		},
		{name: "beyond int64", n: 1e19, opts: DefaultFormatOptions(), want: "$10,000,000,000,000,000,000.00"},
		{name: "negative beyond int64", n: -1e19, opts: DefaultFormatOptions(), want: "$-10,000,000,000,000,000,000.00"},
		{
			name: "beyond int64 european",
			n:    2e19,
			opts: FormatOptions{DecimalPlaces: 1, DecimalSeparator: ",", ThousandsSeparator: "."},
			want: "$20.000.000.000.000.000.000,0",
		},
		{
			name: "invalid separator falls back",
			n:    1234.5,
			opts: FormatOptions{DecimalPlaces: 1, ThousandsSeparator: "##"},
			want: "$1,234.5",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCurrency(tc.n, tc.opts); got != tc.want {
				t.Fatalf("FormatCurrency(%v) = %q, want %q", tc.n, got, tc.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{raw: "1,234.50", want: 1234.5, wantOK: true},
		{raw: "$1,234.50", want: 1234.5, wantOK: true},
		{raw: "42", want: 42, wantOK: true},
		{raw: "-0.5", want: -0.5, wantOK: true},
		{raw: "12.5.3", want: 12.5, wantOK: true},
		{raw: "about 7 apples", want: 7, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "abc", wantOK: false},
		{raw: ".", wantOK: false},
	}
	for _, tc := range cases {
		got, ok := ParseNumber(tc.raw)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFormatCurrencyOfParsedHugeNumber(t *testing.T) {
	n, ok := ParseNumber("99999999999999999999")
	if !ok {
		t.Fatalf("expected a number")
	}
	if got := FormatCurrency(n, DefaultFormatOptions()); got != "$100,000,000,000,000,000,000.00" {
		t.Fatalf("FormatCurrency(%v) = %q", n, got)
	}
}
