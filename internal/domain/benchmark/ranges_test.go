package benchmark

import (
	"math"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		numeric bool
	}{
		{"95", 95, true},
		{"5.5", 5.5, true},
		{"5,5", 5.5, true},
		{" 13.2 ", 13.2, true},
		{"N/A", 0, false},
		{"Pending", 0, false},
		{"<0.1", 0, false},
		{"", 0, false},
		{"1,234.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseValue(tt.raw)
		if ok != tt.numeric {
			t.Errorf("ParseValue(%q) numeric = %v, want %v", tt.raw, ok, tt.numeric)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseValue(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseRangeClosed(t *testing.T) {
	bounds := ParseRange("70-99 mg/dL")
	if len(bounds) != 1 {
		t.Fatalf("expected 1 bounds, got %d", len(bounds))
	}
	b := bounds[0]
	if b.Low == nil || *b.Low != 70 || b.High == nil || *b.High != 99 {
		t.Errorf("got bounds %+v", b)
	}
	if b.Unit != "mg/dL" {
		t.Errorf("unit = %q", b.Unit)
	}
}

func TestParseRangeDualUnit(t *testing.T) {
	bounds := ParseRange("3.9-5.5 mmol/L (70-99 mg/dL)")
	if len(bounds) != 2 {
		t.Fatalf("expected 2 bounds, got %d", len(bounds))
	}
	if bounds[0].Unit != "mmol/L" || bounds[1].Unit != "mg/dL" {
		t.Errorf("units = %q, %q", bounds[0].Unit, bounds[1].Unit)
	}
	if *bounds[1].Low != 70 || *bounds[1].High != 99 {
		t.Errorf("secondary bounds = %+v", bounds[1])
	}
}

func TestParseRangeUnary(t *testing.T) {
	tests := []struct {
		expr     string
		low      *float64
		high     *float64
		unit     string
	}{
		{"< 150 mg/dL", nil, fptr(150), "mg/dL"},
		{"<= 5.7 %", nil, fptr(5.7), "%"},
		{"≤ 5.7 %", nil, fptr(5.7), "%"},
		{"> 40 mg/dL", fptr(40), nil, "mg/dL"},
		{"≥ 1.0 mmol/L", fptr(1.0), nil, "mmol/L"},
	}
	for _, tt := range tests {
		bounds := ParseRange(tt.expr)
		if len(bounds) != 1 {
			t.Errorf("ParseRange(%q) returned %d bounds", tt.expr, len(bounds))
			continue
		}
		b := bounds[0]
		if (b.Low == nil) != (tt.low == nil) || (b.Low != nil && *b.Low != *tt.low) {
			t.Errorf("ParseRange(%q) low = %v", tt.expr, b.Low)
		}
		if (b.High == nil) != (tt.high == nil) || (b.High != nil && *b.High != *tt.high) {
			t.Errorf("ParseRange(%q) high = %v", tt.expr, b.High)
		}
		if b.Unit != tt.unit {
			t.Errorf("ParseRange(%q) unit = %q, want %q", tt.expr, b.Unit, tt.unit)
		}
	}
}

func TestParseRangeMalformed(t *testing.T) {
	for _, expr := range []string{"", "normal", "seventy to ninety", "--", "70-"} {
		if bounds := ParseRange(expr); len(bounds) != 0 {
			t.Errorf("ParseRange(%q) = %+v, want none", expr, bounds)
		}
	}
}

func TestParseRangeDecimalComma(t *testing.T) {
	bounds := ParseRange("3,9-5,5 mmol/L")
	if len(bounds) != 1 {
		t.Fatalf("expected 1 bounds, got %d", len(bounds))
	}
	if *bounds[0].Low != 3.9 || *bounds[0].High != 5.5 {
		t.Errorf("bounds = %+v", bounds[0])
	}
}

func TestConvertCellsPerMicroliter(t *testing.T) {
	got, unit, converted := Convert("White Blood Cell Count", 3500, "cells/µL", []string{"×10³/µL", "cells/µL"})
	if !converted {
		t.Fatal("expected a conversion")
	}
	if got != 3.5 {
		t.Errorf("value = %v, want 3.5", got)
	}
	if unit != "×10³/µL" {
		t.Errorf("unit = %q", unit)
	}
}

func TestConvertSameUnitIsIdentity(t *testing.T) {
	got, unit, converted := Convert("Glucose", 95, "mg/dL", []string{"mg/dL", "mmol/L"})
	if converted || got != 95 || unit != "mg/dL" {
		t.Errorf("got %v %q converted=%v", got, unit, converted)
	}
	// Micro-sign spelling differences do not force a numeric conversion.
	got, _, converted = Convert("Iron", 120, "μg/dL", []string{"µg/dL"})
	if converted || got != 120 {
		t.Errorf("got %v converted=%v", got, converted)
	}
}

func TestConvertUnknownUnitPassesThrough(t *testing.T) {
	got, unit, converted := Convert("Glucose", 95, "furlongs", []string{"mg/dL"})
	if converted || got != 95 || unit != "furlongs" {
		t.Errorf("got %v %q converted=%v", got, unit, converted)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	f1, ok1 := ConversionFactor("Glucose", "mg/dL", "mmol/L")
	f2, ok2 := ConversionFactor("Glucose", "mmol/L", "mg/dL")
	if !ok1 || !ok2 {
		t.Fatal("expected both directions")
	}
	if math.Abs(f1*f2-1.0) > 1e-9 {
		t.Errorf("round trip factor = %v", f1*f2)
	}
}

func TestResolveBoundsDirectMatch(t *testing.T) {
	b := ResolveBounds("Glucose", "3.9-5.5 mmol/L (70-99 mg/dL)", "mg/dL")
	if b == nil {
		t.Fatal("expected bounds")
	}
	if *b.Low != 70 || *b.High != 99 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestResolveBoundsViaConversion(t *testing.T) {
	// Range only in mg/dL, reading in mmol/L: bounds are scaled.
	b := ResolveBounds("Glucose", "70-99 mg/dL", "mmol/L")
	if b == nil {
		t.Fatal("expected bounds")
	}
	if math.Abs(*b.Low-70.0/18.0) > 1e-9 || math.Abs(*b.High-99.0/18.0) > 1e-9 {
		t.Errorf("bounds = [%v, %v]", *b.Low, *b.High)
	}
	if b.Unit != "mmol/L" {
		t.Errorf("unit = %q", b.Unit)
	}
}

func TestResolveBoundsUnitless(t *testing.T) {
	b := ResolveBounds("HbA1c", "4.0-5.6", "%")
	if b == nil {
		t.Fatal("expected unitless bounds to apply")
	}
	if *b.Low != 4.0 || *b.High != 5.6 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestResolveBoundsUnresolvable(t *testing.T) {
	if b := ResolveBounds("Glucose", "70-99 mg/dL", "furlongs"); b != nil {
		t.Errorf("expected nil bounds, got %+v", b)
	}
	if b := ResolveBounds("Glucose", "garbage", "mg/dL"); b != nil {
		t.Errorf("expected nil bounds for malformed range, got %+v", b)
	}
}

func TestEvaluate(t *testing.T) {
	closed := &Bounds{Low: fptr(70), High: fptr(99), Unit: "mg/dL"}
	tests := []struct {
		value float64
		b     *Bounds
		want  Status
	}{
		{69.9, closed, StatusBelowRange},
		{70, closed, StatusInRange}, // boundaries are inclusive
		{99, closed, StatusInRange},
		{99.1, closed, StatusAboveRange},
		{149, &Bounds{High: fptr(150)}, StatusInRange},
		{151, &Bounds{High: fptr(150)}, StatusAboveRange},
		{39, &Bounds{Low: fptr(40)}, StatusBelowRange},
		{41, &Bounds{Low: fptr(40)}, StatusInRange},
		{100, nil, StatusUnknown},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.value, tt.b); got != tt.want {
			t.Errorf("Evaluate(%v, %+v) = %v, want %v", tt.value, tt.b, got, tt.want)
		}
	}
}
