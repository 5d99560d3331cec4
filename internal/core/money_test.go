package core

import (
	"encoding/json"
	"testing"
)

func TestDollars_RoundsToCents(t *testing.T) {
	tests := []struct {
		in   float64
		want Money
	}{
		{0, 0},
		{1, 100},
		{1.005, 101},
		{149.999, 15000},
		{-2.50, -250},
	}
	for _, tt := range tests {
		if got := Dollars(tt.in); got != tt.want {
			t.Errorf("Dollars(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMoney_MulRate(t *testing.T) {
	// 70% rule on $250,000
	m := Dollars(250000)
	if got := m.MulRate(0.70); got != Dollars(175000) {
		t.Errorf("MulRate(0.70) = %s, want 175000.00", got)
	}
	// rounding at cent boundary
	if got := Dollars(0.01).MulRate(0.5); got != 1 {
		t.Errorf("expected half-cent to round to 1 cent, got %d", got)
	}
}

func TestMoney_RoundDollar(t *testing.T) {
	if got := Dollars(123.49).RoundDollar(); got != Dollars(123) {
		t.Errorf("123.49 rounded = %s, want 123.00", got)
	}
	if got := Dollars(123.50).RoundDollar(); got != Dollars(124) {
		t.Errorf("123.50 rounded = %s, want 124.00", got)
	}
}

func TestMoney_ClampZero(t *testing.T) {
	if got := Dollars(-5000).ClampZero(); got != 0 {
		t.Errorf("expected clamp to zero, got %s", got)
	}
	if got := Dollars(5000).ClampZero(); got != Dollars(5000) {
		t.Errorf("positive amount should be unchanged, got %s", got)
	}
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := Dollars(199999.99)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "199999.99" {
		t.Errorf("marshal = %s, want 199999.99", data)
	}

	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != m {
		t.Errorf("round trip changed value: %d != %d", back, m)
	}
}
