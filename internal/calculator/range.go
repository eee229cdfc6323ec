package calculator

import (
	"errors"
	"math"

	"CryptoBoard/internal/model"
)

// PriceRange scans the series and returns the highest and lowest close.
func PriceRange(points []model.ChartPoint) (high, low float64, err error) {
	if len(points) == 0 {
		return 0, 0, errors.New("no chart points provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range points {
		c := p.Close.InexactFloat64()
		if c > high {
			high = c
		}
		if c < low {
			low = c
		}
	}
	return high, low, nil
}

// Padded widens [low, high] by frac of its span on each side. A flat range
// is widened by frac of its value so the axis never collapses.
func Padded(high, low, frac float64) (top, bottom float64) {
	span := high - low
	if span <= 0 {
		span = math.Abs(high)
		if span == 0 {
			span = 1
		}
	}
	return high + span*frac, low - span*frac
}

// Position returns where v sits within [low, high] (0.0~1.0).
func Position(v, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (v - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
