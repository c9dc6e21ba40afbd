package fixed

import (
	"testing"
)

func TestFixedPoint_Construction(t *testing.T) {
	tests := []struct {
		name     string
		point    Point
		expected string
	}{
		{"FromInt(42, 0)", FromInt(42, 0), "42"},
		{"FromInt(125, 2)", FromInt(125, 2), "1.25"},
		{"FromInt64(-3, 1)", FromInt64(-3, 1), "-0.3"},
		{"FromUint64(7, 0)", FromUint64(7, 0), "7"},
		{"FromFloat64(0.5)", FromFloat64(0.5), "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.point.String(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestFixedPoint_Arithmetic(t *testing.T) {
	a := FromFloat64(1.5)
	b := FromFloat64(0.5)

	tests := []struct {
		name     string
		result   Point
		expected Point
	}{
		{"Add", a.Add(b), FromFloat64(2.0)},
		{"Sub", a.Sub(b), FromFloat64(1.0)},
		{"Mul", a.Mul(b), FromFloat64(0.75)},
		{"Div", a.Div(b), FromFloat64(3.0)},
		{"DivInt", a.DivInt(3), FromFloat64(0.5)},
		{"Neg", a.Neg(), FromFloat64(-1.5)},
		{"Abs", a.Neg().Abs(), a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.Eq(tt.expected) {
				t.Errorf("got %s, want %s", tt.result, tt.expected)
			}
		})
	}
}

func TestFixedPoint_Comparison(t *testing.T) {
	tests := []struct {
		name     string
		result   bool
		expected bool
	}{
		{"One > Zero", One.Gt(Zero), true},
		{"NegOne < Zero", NegOne.Lt(Zero), true},
		{"One >= One", One.Gte(One), true},
		{"Zero <= One", Zero.Lte(One), true},
		{"Zero.IsZero", Zero.IsZero(), true},
		{"One.IsZero", One.IsZero(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result != tt.expected {
				t.Errorf("got %v, want %v", tt.result, tt.expected)
			}
		})
	}
}

func TestFixedPoint_TextRoundTrip(t *testing.T) {
	orig := FromFloat64(1.2345)

	text, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var parsed Point
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if !parsed.Eq(orig) {
		t.Errorf("round trip changed value: got %s, want %s", parsed, orig)
	}

	if err := parsed.UnmarshalText([]byte("not a number")); err == nil {
		t.Error("expected error for invalid input")
	}
}
