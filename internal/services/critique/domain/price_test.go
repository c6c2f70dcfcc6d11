package domain

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1_000_000, "¥1,000,000"},
		{1_234_567, "¥1,234,567"},
		{10_000_000_000, "¥10,000,000,000"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.in); got != c.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPriceReadable(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{5_000, "5,000円"},
		{12_340_000, "1,234万円"},
		{100_000_000, "1億円"},
		{120_000_000, "1.2億円"},
	}
	for _, c := range cases {
		if got := FormatPriceReadable(c.in); got != c.want {
			t.Errorf("FormatPriceReadable(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
