package nsga

import (
	"slices"

	"dockSched/internal/dock"
)

// Individual — перестановка индексов работ вместе с необязательной оценкой.
// Оценка сбрасывается при любом изменении порядка.
type Individual struct {
	order     []int
	fitness   dock.Fitness
	evaluated bool

	// Rank и Crowding выставляются последним отбором NSGA-II.
	Rank     int
	Crowding float64
}

// NewIndividual проверяет, что order является перестановкой работ задачи, и копирует его.
func NewIndividual(p *dock.Problem, order []int) (*Individual, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dock.ValidatePermutation(order, p.Len()); err != nil {
		return nil, err
	}
	return &Individual{order: slices.Clone(order)}, nil
}

// Order возвращает копию перестановки.
func (ind *Individual) Order() []int { return slices.Clone(ind.order) }

func (ind *Individual) Fitness() (dock.Fitness, bool) { return ind.fitness, ind.evaluated }

func (ind *Individual) Evaluated() bool { return ind.evaluated }

func (ind *Individual) SetFitness(f dock.Fitness) {
	ind.fitness = f
	ind.evaluated = true
}

func (ind *Individual) Invalidate() {
	ind.fitness = dock.Fitness{}
	ind.evaluated = false
}

// SetOrder заменяет перестановку и сбрасывает оценку.
func (ind *Individual) SetOrder(order []int) {
	ind.order = slices.Clone(order)
	ind.Invalidate()
}

func (ind *Individual) Clone() *Individual {
	c := *ind
	c.order = slices.Clone(ind.order)
	return &c
}

func (ind *Individual) sameAs(other *Individual) bool {
	return ind.fitness == other.fitness && slices.Equal(ind.order, other.order)
}
