package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := map[string]struct {
		in   float64
		want string
	}{
		"zero":          {0, "$0.00"},
		"small":         {12.5, "$12.50"},
		"thousands":     {2827.116789, "$2,827.12"},
		"millions":      {1234567.891, "$1,234,567.89"},
		"negative":      {-1234.56, "-$1,234.56"},
		"negative zero": {-0.001, "$0.00"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Currency(tt.in); got != tt.want {
				t.Errorf("Currency(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(2.5); got != "2.500%" {
		t.Errorf("Percent(2.5) = %q, want %q", got, "2.500%")
	}
}
