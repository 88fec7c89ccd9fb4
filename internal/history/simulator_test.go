package history

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seededSim(seed uint64, now time.Time) *Simulator {
	return NewSimulator(rand.New(rand.NewPCG(seed, 0)), func() time.Time { return now })
}

func TestSimulateShape(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	points := seededSim(1, now).Simulate(6000, 5, 0.01)

	require.Len(t, points, 5)
	require.Equal(t, "2025-05-28", points[0].Date)
	require.Equal(t, "2025-06-01", points[4].Date)
	for i := 1; i < len(points); i++ {
		require.Less(t, points[i-1].Date, points[i].Date)
	}
}

func TestSimulateFloor(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	points := seededSim(42, now).Simulate(1001, 500, 0.9)

	for _, p := range points {
		require.GreaterOrEqual(t, p.Price, MinPrice)
	}
}

func TestSimulateSeededDeterminism(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := seededSim(7, now).Simulate(6000, 30, 0.02)
	b := seededSim(7, now).Simulate(6000, 30, 0.02)
	require.Equal(t, a, b)
}

func TestScaleForKarat(t *testing.T) {
	points := []Point{
		{Date: "2025-06-01", Price: 6000},
		{Date: "2025-06-02", Price: 6100},
	}
	scaled := ScaleForKarat(points, 22)

	require.Len(t, scaled, 2)
	require.Equal(t, points[0].Date, scaled[0].Date)
	require.InDelta(t, 6000*0.916/0.999, scaled[0].Price, 0.005)
	require.InDelta(t, 6100*0.916/0.999, scaled[1].Price, 0.005)
}

func TestSimulateZeroDays(t *testing.T) {
	require.Nil(t, seededSim(1, time.Now()).Simulate(6000, 0, 0.01))
}
