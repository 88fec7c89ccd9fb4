// Package history produces a synthetic price series for charting. It is
// illustrative only and never a market feed.
package history

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/noah-isme/goldshop-api/internal/pricing"
)

// MinPrice floors the simulated 24K price. This is an intentional clamp on
// synthetic data, not input validation.
const MinPrice = 1000.0

// Point is one simulated day.
type Point struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Simulator evolves a random-walk price series. The random source is
// injected so tests can seed it; a mutex guards it because *rand.Rand is
// not safe for concurrent use.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSimulator constructs a Simulator. Pass nil for either argument to use
// a time-seeded source and the wall clock.
func NewSimulator(rng *rand.Rand, now func() time.Time) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if now == nil {
		now = time.Now
	}
	return &Simulator{rng: rng, now: now}
}

// Simulate returns days consecutive calendar dates ending today, ascending,
// with the 24K price evolving as price *= 1 + N(0, volatility), floored at
// MinPrice.
func (s *Simulator) Simulate(base24K float64, days int, volatility float64) []Point {
	if days <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.now()
	price := base24K
	out := make([]Point, 0, days)
	for i := 0; i < days; i++ {
		price *= 1 + s.rng.NormFloat64()*volatility
		if price < MinPrice {
			price = MinPrice
		}
		out = append(out, Point{
			Date:  today.AddDate(0, 0, -(days - 1 - i)).Format("2006-01-02"),
			Price: pricing.Round2(price),
		})
	}
	return out
}

// ScaleForKarat derives a per-karat series from a 24K series using the
// purity ratio.
func ScaleForKarat(points []Point, karat float64) []Point {
	ratio := pricing.PurityRatio(karat)
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Date: p.Date, Price: pricing.Round2(p.Price * ratio)}
	}
	return out
}
