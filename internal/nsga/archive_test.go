package nsga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockSched/internal/dock"
)

func assertNonDominated(t *testing.T, members []*Individual) {
	t.Helper()
	for i, a := range members {
		for j, b := range members {
			if i != j {
				require.False(t, Dominates(a.fitness, b.fitness), "%v dominates %v", a.fitness, b.fitness)
			}
		}
	}
}

func TestArchiveUpdate(t *testing.T) {
	a := NewArchive(0)
	a.Update(scored(
		[2]float64{10, 30},
		[2]float64{10, 40},
		[2]float64{5, 50},
	))
	assert.ElementsMatch(t, []dock.Fitness{{Wait: 10, Makespan: 30}, {Wait: 5, Makespan: 50}}, a.Fitnesses())

	a.Update(scored([2]float64{4, 29}))
	assert.Equal(t, []dock.Fitness{{Wait: 4, Makespan: 29}}, a.Fitnesses())
	assertNonDominated(t, a.Members())
}

func TestArchiveDuplicates(t *testing.T) {
	a := NewArchive(0)

	same := &Individual{order: []int{0, 1}}
	same.SetFitness(dock.Fitness{Wait: 1, Makespan: 2})
	twin := same.Clone()
	other := &Individual{order: []int{1, 0}}
	other.SetFitness(dock.Fitness{Wait: 1, Makespan: 2})

	a.Update([]*Individual{same, twin, other})
	assert.Equal(t, 2, a.Len())

	a.Update([]*Individual{same})
	assert.Equal(t, 2, a.Len())
}

func TestArchiveCopiesMembers(t *testing.T) {
	a := NewArchive(0)
	pop := scored([2]float64{1, 1})
	a.Update(pop)
	pop[0].Rank = 7
	assert.Equal(t, 0, a.Members()[0].Rank)
}

func TestArchiveLimitKeepsInsertionOrder(t *testing.T) {
	a := NewArchive(2)
	a.Update(scored(
		[2]float64{0, 10},
		[2]float64{5, 5},
		[2]float64{10, 0},
	))
	assert.Equal(t, []dock.Fitness{{Wait: 0, Makespan: 10}, {Wait: 5, Makespan: 5}}, a.Fitnesses())

	a.Update(scored([2]float64{4, 7}))
	assert.Equal(t, []dock.Fitness{{Wait: 0, Makespan: 10}, {Wait: 5, Makespan: 5}}, a.Fitnesses())
}
