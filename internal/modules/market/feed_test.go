package market

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
)

func newTestFeed(bound float64) *Feed {
	return NewFeed(bound, rand.NewPCG(1, 2), zerolog.Nop())
}

func TestFeed_SeedDoesNotOverwrite(t *testing.T) {
	feed := newTestFeed(0.01)

	feed.Seed("a", 30.0)
	feed.Seed("a", 99.0)

	if got := feed.PriceOf("a", 0); got != 30.0 {
		t.Errorf("Expected seeded price 30.0 to survive re-seed, got %v", got)
	}
}

func TestFeed_SeedRejectsInvalidPrices(t *testing.T) {
	feed := newTestFeed(0.01)

	feed.Seed("a", 0)
	feed.Seed("b", -5)
	feed.Seed("c", math.NaN())

	for _, id := range []string{"a", "b", "c"} {
		if got := feed.PriceOf(id, 7.0); got != 7.0 {
			t.Errorf("Expected fallback for %q, got %v", id, got)
		}
	}
}

func TestFeed_ResetOverwrites(t *testing.T) {
	feed := newTestFeed(0.01)

	feed.Seed("a", 30.0)
	feed.Reset("a", 30.2)

	if got := feed.PriceOf("a", 0); got != 30.2 {
		t.Errorf("Expected reset price 30.2, got %v", got)
	}
}

func TestFeed_PriceOfFallsBackForUntrackedID(t *testing.T) {
	feed := newTestFeed(0.01)

	// A freshly created position must be valuable before its first tick
	if got := feed.PriceOf("missing", 42.5); got != 42.5 {
		t.Errorf("Expected fallback 42.5, got %v", got)
	}
}

func TestFeed_RemoveIsNoOpForUnknownID(t *testing.T) {
	feed := newTestFeed(0.01)

	feed.Seed("a", 10.0)
	feed.Remove("a")
	feed.Remove("a")

	if got := feed.PriceOf("a", 1.0); got != 1.0 {
		t.Errorf("Expected removed quote to fall back, got %v", got)
	}
}

func TestFeed_TickStaysWithinBound(t *testing.T) {
	const bound = 0.01
	feed := newTestFeed(bound)
	feed.Seed("a", 30.0)

	for i := 0; i < 1000; i++ {
		prev := feed.PriceOf("a", 0)
		feed.Tick()
		cur := feed.PriceOf("a", 0)

		lo := prev * (1 - bound)
		hi := prev * (1 + bound)
		if cur < lo-1e-9 || cur > hi+1e-9 {
			t.Fatalf("Tick %d: price %v outside [%v, %v]", i, cur, lo, hi)
		}
		if cur <= 0 {
			t.Fatalf("Tick %d: price %v not positive", i, cur)
		}
	}
}

func TestFeed_TickAdvancesVersion(t *testing.T) {
	feed := newTestFeed(0.01)

	if feed.Version() != 0 {
		t.Errorf("Expected initial version 0, got %d", feed.Version())
	}

	v1 := feed.Tick()
	v2 := feed.Tick()

	if v1 != 1 || v2 != 2 {
		t.Errorf("Expected versions 1, 2, got %d, %d", v1, v2)
	}
	if feed.Version() != 2 {
		t.Errorf("Expected version 2, got %d", feed.Version())
	}
}

func TestFeed_SnapshotIsACopy(t *testing.T) {
	feed := newTestFeed(0.01)
	feed.Seed("a", 30.0)

	quotes, version := feed.Snapshot()
	quotes["a"] = 1.0

	if got := feed.PriceOf("a", 0); got != 30.0 {
		t.Errorf("Mutating the snapshot changed the feed: got %v", got)
	}
	if version != 0 {
		t.Errorf("Expected snapshot version 0, got %d", version)
	}
}

func TestClampPrice(t *testing.T) {
	tests := []struct {
		name     string
		prev     float64
		next     float64
		expected float64
	}{
		{"valid step", 10.0, 10.1, 10.1},
		{"NaN keeps previous", 10.0, math.NaN(), 10.0},
		{"positive infinity keeps previous", 10.0, math.Inf(1), 10.0},
		{"negative keeps previous", 10.0, -1.0, 10.0},
		{"zero keeps previous", 10.0, 0.0, 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampPrice(tt.prev, tt.next); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
