package render

import (
	"time"

	"CryptoBoard/internal/formatter"
	"CryptoBoard/internal/model"
)

// Renderer turns market samples into board rows and publishes the result.
type Renderer struct {
	store    *Store
	lookup   func(id string) (model.AssetMetadata, bool)
	loc      *time.Location
	now      func() time.Time
	onRender func(Board)
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithLocation sets the zone used for the timestamp.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithLookup overrides the asset metadata table.
func WithLookup(lookup func(id string) (model.AssetMetadata, bool)) Option {
	return func(r *Renderer) { r.lookup = lookup }
}

// OnRender registers a hook called with every freshly rendered board.
func OnRender(fn func(Board)) Option {
	return func(r *Renderer) { r.onRender = fn }
}

// NewRenderer creates a Renderer writing into store.
func NewRenderer(store *Store, opts ...Option) *Renderer {
	r := &Renderer{
		store:  store,
		lookup: model.LookupAsset,
		loc:    time.Local,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render rebuilds the board from samples, in the order given, and replaces
// the stored board. Samples for untracked assets are skipped.
func (r *Renderer) Render(samples []model.MarketSample) Board {
	board := r.Build(samples)
	r.store.Replace(board)
	if r.onRender != nil {
		r.onRender(board)
	}
	return board
}

// Build composes a board without storing or publishing it.
func (r *Renderer) Build(samples []model.MarketSample) Board {
	rows := make([]Row, 0, len(samples))
	for _, s := range samples {
		meta, ok := r.lookup(s.ID)
		if !ok {
			continue
		}
		change, class := formatter.Change(s.ChangePercent24Hr)
		rows = append(rows, Row{
			ID:          meta.ID,
			Icon:        meta.Icon,
			IconClass:   meta.IconClass,
			Name:        meta.Name,
			MarketCap:   formatter.MarketCap(s.MarketCapUSD),
			Price:       formatter.Price(s.PriceUSD),
			Change:      change,
			ChangeClass: class,
		})
	}
	now := r.now().In(r.loc)
	return Board{
		Rows:      rows,
		Timestamp: formatter.Clock(now),
		UpdatedAt: now,
	}
}
