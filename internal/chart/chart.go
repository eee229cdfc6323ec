package chart

import (
	"errors"
	"sync"

	"CryptoBoard/internal/model"
)

// ErrNotDrawn is returned when the chart is read before its first draw.
var ErrNotDrawn = errors.New("chart has not been drawn yet")

// Chart is the single chart instance of the dashboard. Redrawing replaces
// its dataset in place.
type Chart struct {
	mu       sync.RWMutex
	points   []model.ChartPoint
	revision int
	onDraw   func(Config)
}

// New creates an undrawn chart. onDraw, if non-nil, receives the
// configuration after every draw.
func New(onDraw func(Config)) *Chart {
	return &Chart{onDraw: onDraw}
}

// Draw sets the series shown by the chart.
func (c *Chart) Draw(points []model.ChartPoint) {
	c.mu.Lock()
	c.points = append(c.points[:0:0], points...)
	c.revision++
	cfg := c.configLocked()
	c.mu.Unlock()

	if c.onDraw != nil {
		c.onDraw(cfg)
	}
}

// Drawn reports whether Draw has been called at least once.
func (c *Chart) Drawn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision > 0
}

// Revision counts the draws applied to this chart.
func (c *Chart) Revision() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Points returns a copy of the current series.
func (c *Chart) Points() []model.ChartPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.ChartPoint(nil), c.points...)
}

// Config returns the Chart.js definition of the current series.
func (c *Chart) Config() (Config, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.revision == 0 {
		return Config{}, ErrNotDrawn
	}
	return c.configLocked(), nil
}

func (c *Chart) configLocked() Config {
	labels := make([]string, len(c.points))
	prices := make([]float64, len(c.points))
	for i, p := range c.points {
		labels[i] = p.Label
		prices[i] = p.Close.InexactFloat64()
	}
	return newConfig(labels, prices)
}
