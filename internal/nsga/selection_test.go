package nsga

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockSched/internal/dock"
)

func scored(points ...[2]float64) []*Individual {
	out := make([]*Individual, len(points))
	for i, p := range points {
		out[i] = &Individual{order: []int{i}}
		out[i].SetFitness(dock.Fitness{Wait: p[0], Makespan: p[1]})
	}
	return out
}

func TestDominates(t *testing.T) {
	a := dock.Fitness{Wait: 10, Makespan: 30}
	b := dock.Fitness{Wait: 10, Makespan: 40}
	c := dock.Fitness{Wait: 5, Makespan: 50}

	assert.True(t, Dominates(a, b))
	assert.False(t, Dominates(b, a))
	assert.False(t, Dominates(a, c))
	assert.False(t, Dominates(c, a))
	assert.False(t, Dominates(a, a))
}

func TestNonDominatedSort(t *testing.T) {
	pool := scored(
		[2]float64{10, 30}, // 0: F1
		[2]float64{10, 40}, // 1: F2
		[2]float64{5, 50},  // 2: F1
		[2]float64{20, 60}, // 3: F3
		[2]float64{5, 50},  // 4: F1, копия 2
	)
	fronts := nonDominatedSort(pool)
	assert.Equal(t, [][]int{{0, 2, 4}, {1}, {3}}, fronts)
}

func TestCrowdingDistance(t *testing.T) {
	pool := scored(
		[2]float64{0, 10},
		[2]float64{1, 6},
		[2]float64{3, 3},
		[2]float64{10, 0},
	)
	dist := crowdingDistance(pool, []int{0, 1, 2, 3})
	assert.True(t, math.IsInf(dist[0], 1))
	assert.True(t, math.IsInf(dist[3], 1))
	assert.InDelta(t, 1.0, dist[1], 1e-9)
	assert.InDelta(t, 1.5, dist[2], 1e-9)

	small := crowdingDistance(pool, []int{1, 2})
	assert.True(t, math.IsInf(small[0], 1))
	assert.True(t, math.IsInf(small[1], 1))
}

func TestCrowdingDistanceFlatObjective(t *testing.T) {
	pool := scored(
		[2]float64{1, 5},
		[2]float64{2, 5},
		[2]float64{4, 5},
	)
	dist := crowdingDistance(pool, []int{0, 1, 2})
	assert.InDelta(t, 1.0, dist[1], 1e-9)
}

func TestSelectNSGA2(t *testing.T) {
	pool := scored(
		[2]float64{0, 10},  // F1
		[2]float64{1, 6},   // F1
		[2]float64{3, 3},   // F1
		[2]float64{10, 0},  // F1
		[2]float64{11, 7},  // F2
		[2]float64{2, 12},  // F2
	)

	sel := selectNSGA2(pool, 5)
	require.Len(t, sel, 5)
	assert.Equal(t, pool[:4], sel[:4])
	// Из F2 обе точки граничные; остаётся первая по порядку пула
	assert.Same(t, pool[4], sel[4])
	for _, ind := range sel[:4] {
		assert.Equal(t, 0, ind.Rank)
	}

	// Переполнение первого фронта: внутренняя точка с меньшим расстоянием отбрасывается
	sel = selectNSGA2(pool, 3)
	require.Len(t, sel, 3)
	assert.ElementsMatch(t, []*Individual{pool[0], pool[3], pool[2]}, sel)
}

func TestSelectNSGA2KeepsTies(t *testing.T) {
	pool := scored(
		[2]float64{1, 1},
		[2]float64{1, 1},
		[2]float64{5, 5},
	)
	sel := selectNSGA2(pool, 2)
	assert.Equal(t, pool[:2], sel)
}

func TestCrowdedTournament(t *testing.T) {
	pool := scored(
		[2]float64{0, 0},
		[2]float64{5, 5},
	)
	rankPool(pool)
	rng := newTestRng()
	for i := 0; i < 20; i++ {
		assert.Same(t, pool[0], crowdedTournament(pool, rng))
	}
}
