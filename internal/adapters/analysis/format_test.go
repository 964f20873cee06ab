package analysis

import "testing"

func f(v float64) *float64 { return &v }

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		expected string
	}{
		{name: "trillions", value: f(2.5e12), expected: "$2.50T"},
		{name: "billions", value: f(3.0e9), expected: "$3.00B"},
		{name: "millions", value: f(450.5e6), expected: "$450.50M"},
		{name: "thousands", value: f(12500), expected: "$12.50K"},
		{name: "small value", value: f(999.99), expected: "$999.99"},
		{name: "negative billions", value: f(-1.5e9), expected: "$-1.50B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatLargeNumber(tt.value)
			if got == nil {
				t.Fatal("Expected formatted string, got nil")
			}
			if *got != tt.expected {
				t.Errorf("FormatLargeNumber(%v) = %q, want %q", *tt.value, *got, tt.expected)
			}
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		if got := FormatLargeNumber(nil); got != nil {
			t.Errorf("Expected nil, got %q", *got)
		}
	})
}

func TestNetCash(t *testing.T) {
	t.Run("both operands present", func(t *testing.T) {
		got := NetCash(f(5e9), f(2e9))
		if got == nil {
			t.Fatal("Expected net cash, got nil")
		}
		if *got != "$3.00B" {
			t.Errorf("NetCash = %q, want $3.00B", *got)
		}
	})

	t.Run("missing debt yields absent not zero", func(t *testing.T) {
		if got := NetCash(f(5e9), nil); got != nil {
			t.Errorf("Expected nil, got %q", *got)
		}
	})

	t.Run("missing cash yields absent", func(t *testing.T) {
		if got := NetCash(nil, f(2e9)); got != nil {
			t.Errorf("Expected nil, got %q", *got)
		}
	})

	t.Run("negative net cash keeps sign", func(t *testing.T) {
		got := NetCash(f(1e9), f(4e9))
		if got == nil || *got != "$-3.00B" {
			t.Errorf("NetCash = %v, want $-3.00B", got)
		}
	})
}

func TestFormatPriceTarget(t *testing.T) {
	tests := []struct {
		name     string
		target   *float64
		price    *float64
		expected string
	}{
		{name: "upside carries plus sign", target: f(120.0), price: f(100.0), expected: "$120.00 (+20.0%)"},
		{name: "downside carries minus sign", target: f(90.0), price: f(100.0), expected: "$90.00 (-10.0%)"},
		{name: "no change no sign", target: f(100.0), price: f(100.0), expected: "$100.00 (0.0%)"},
		{name: "missing price shows target only", target: f(120.0), price: nil, expected: "$120.00"},
		{name: "zero price shows target only", target: f(120.0), price: f(0), expected: "$120.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPriceTarget(tt.target, tt.price)
			if got == nil {
				t.Fatal("Expected formatted string, got nil")
			}
			if *got != tt.expected {
				t.Errorf("FormatPriceTarget = %q, want %q", *got, tt.expected)
			}
		})
	}

	t.Run("nil target stays nil", func(t *testing.T) {
		if got := FormatPriceTarget(nil, f(100.0)); got != nil {
			t.Errorf("Expected nil, got %q", *got)
		}
	})
}

func TestToPercent(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		expected float64
	}{
		{name: "fraction to percent", value: f(0.2534), expected: 25.34},
		{name: "rounds to two decimals", value: f(0.123456), expected: 12.35},
		{name: "negative fraction", value: f(-0.05), expected: -5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPercent(tt.value)
			if got == nil {
				t.Fatal("Expected value, got nil")
			}
			if *got != tt.expected {
				t.Errorf("ToPercent(%v) = %v, want %v", *tt.value, *got, tt.expected)
			}
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		if got := ToPercent(nil); got != nil {
			t.Errorf("Expected nil, got %v", *got)
		}
	})
}
