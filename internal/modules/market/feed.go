package market

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"
)

// Feed simulates a market price for every tracked position id.
//
// Quotes start at the position's purchase price and then follow a
// bounded random walk: on every tick each price is multiplied by
// (1 + delta) with delta drawn uniformly from [-bound, +bound]. The
// same bound applies to every tracked id.
//
// All methods are safe for concurrent use; the cron tick runs on its
// own goroutine while HTTP handlers read quotes.
type Feed struct {
	mu      sync.Mutex
	prices  map[string]float64
	drift   distuv.Uniform
	version uint64
	log     zerolog.Logger
}

// NewFeed creates a price feed with the given symmetric drift bound.
// The random source is injected so tests can run with a fixed seed.
func NewFeed(bound float64, src rand.Source, log zerolog.Logger) *Feed {
	return &Feed{
		prices: make(map[string]float64),
		drift: distuv.Uniform{
			Min: -bound,
			Max: bound,
			Src: src,
		},
		log: log.With().Str("component", "market").Logger(),
	}
}

// Seed sets the initial quote for an id. It is idempotent: an existing
// quote is never overwritten. Non-positive prices are rejected so the
// feed invariant (every quote > 0) holds from the start.
func (f *Feed) Seed(id string, price float64) {
	if !positiveFinite(price) {
		f.log.Warn().Str("id", id).Float64("price", price).Msg("Ignoring invalid seed price")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.prices[id]; ok {
		return
	}
	f.prices[id] = price
}

// Reset overwrites the quote for an id, e.g. after a position update
// changed its purchase price.
func (f *Feed) Reset(id string, price float64) {
	if !positiveFinite(price) {
		f.log.Warn().Str("id", id).Float64("price", price).Msg("Ignoring invalid reset price")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[id] = price
}

// Remove drops the quote for an id. Removing an untracked id is a no-op.
func (f *Feed) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.prices, id)
}

// PriceOf returns the current quote for an id, or the given fallback
// when the id is not tracked. Callers pass the purchase price so a
// freshly created position is valued before its first tick.
func (f *Feed) PriceOf(id string, fallback float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if price, ok := f.prices[id]; ok {
		return price
	}
	return fallback
}

// Tick advances every tracked price one random-walk step and returns
// the new snapshot version. It never fails: a malformed step is
// clamped to the previous price.
func (f *Feed) Tick() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, price := range f.prices {
		f.prices[id] = clampPrice(price, price*(1+f.drift.Rand()))
	}
	f.version++
	return f.version
}

// Snapshot returns a copy of the quote map together with the version
// it was taken at. Versions increase monotonically with each tick so
// consumers can discard results that arrive out of order.
func (f *Feed) Snapshot() (map[string]float64, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	quotes := make(map[string]float64, len(f.prices))
	for id, price := range f.prices {
		quotes[id] = price
	}
	return quotes, f.version
}

// Version returns the current snapshot version.
func (f *Feed) Version() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version
}

// clampPrice keeps the feed invariant: if the candidate price is not a
// positive finite number, the previous price wins.
func clampPrice(prev, next float64) float64 {
	if !positiveFinite(next) {
		return prev
	}
	return next
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
