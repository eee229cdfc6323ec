package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MarketSample is one provider record for a tracked asset. It lives for a
// single fetch cycle and is discarded after rendering.
type MarketSample struct {
	ID                string          `json:"id"`
	PriceUSD          decimal.Decimal `json:"priceUsd"`
	MarketCapUSD      decimal.Decimal `json:"marketCapUsd"`
	ChangePercent24Hr decimal.Decimal `json:"changePercent24Hr"`
}

// Candle is the subset of a daily candlestick the chart needs.
type Candle struct {
	OpenTime time.Time
	Close    decimal.Decimal
}

// ChartPoint is a single labelled closing price on the chart.
type ChartPoint struct {
	Time  time.Time       `json:"time"`
	Label string          `json:"label"` // day/month, e.g. "7/3"
	Close decimal.Decimal `json:"close"`
}

// DayMonthLabel formats t as day/month without zero padding.
func DayMonthLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
}

// PointsFromCandles converts candles to chart points, labelling each one in loc.
func PointsFromCandles(candles []Candle, loc *time.Location) []ChartPoint {
	if loc == nil {
		loc = time.Local
	}
	points := make([]ChartPoint, len(candles))
	for i, c := range candles {
		t := c.OpenTime.In(loc)
		points[i] = ChartPoint{Time: t, Label: DayMonthLabel(t), Close: c.Close}
	}
	return points
}
