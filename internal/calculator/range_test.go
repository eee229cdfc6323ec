package calculator

import (
	"testing"

	"CryptoBoard/internal/model"

	"github.com/shopspring/decimal"
)

func points(closes ...string) []model.ChartPoint {
	out := make([]model.ChartPoint, len(closes))
	for i, c := range closes {
		out[i] = model.ChartPoint{Close: decimal.RequireFromString(c)}
	}
	return out
}

func TestPriceRange(t *testing.T) {
	high, low, err := PriceRange(points("100.5", "98", "104.25", "101"))
	if err != nil {
		t.Fatalf("PriceRange failed: %v", err)
	}
	if high != 104.25 || low != 98 {
		t.Errorf("expected 104.25/98, got %v/%v", high, low)
	}

	if _, _, err := PriceRange(nil); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestPadded(t *testing.T) {
	top, bottom := Padded(110, 100, 0.1)
	if top != 111 || bottom != 99 {
		t.Errorf("expected 111/99, got %v/%v", top, bottom)
	}

	top, bottom = Padded(50, 50, 0.1)
	if top <= 50 || bottom >= 50 {
		t.Errorf("flat range should be widened, got %v/%v", top, bottom)
	}

	top, bottom = Padded(0, 0, 0.5)
	if top != 0.5 || bottom != -0.5 {
		t.Errorf("zero range should widen by one unit, got %v/%v", top, bottom)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		v, high, low float64
		want         float64
	}{
		{105, 110, 100, 0.5},
		{100, 110, 100, 0},
		{120, 110, 100, 1},
		{90, 110, 100, 0},
		{7, 7, 7, 0.5},
	}
	for _, tt := range tests {
		got, err := Position(tt.v, tt.high, tt.low)
		if err != nil {
			t.Fatalf("Position(%v,%v,%v) failed: %v", tt.v, tt.high, tt.low, err)
		}
		if got != tt.want {
			t.Errorf("Position(%v,%v,%v): expected %v, got %v", tt.v, tt.high, tt.low, tt.want, got)
		}
	}
	if _, err := Position(1, 0, 10); err == nil {
		t.Error("expected error when high < low")
	}
}
