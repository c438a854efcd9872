package dock

import "fmt"

// Fitness holds both objectives; smaller is better for each.
type Fitness struct {
	Wait     float64
	Makespan float64
}

// Slot is one job's occupation of its dock.
type Slot struct {
	JobID int
	Class string
	Start int
	End   int
}

// Evaluator is safe for concurrent use: every call owns its own dock buffer.
type Evaluator struct {
	p *Problem
}

func NewEvaluator(p *Problem) (*Evaluator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{p: p}, nil
}

func (e *Evaluator) Evaluate(order []int) (Fitness, error) {
	return e.simulate(order, nil)
}

func (e *Evaluator) MustEvaluate(order []int) Fitness {
	f, err := e.Evaluate(order)
	if err != nil {
		panic(err)
	}
	return f
}

// Resimulate replays the ordering and reports when each job occupied its dock.
func (e *Evaluator) Resimulate(order []int) (Fitness, []Slot, error) {
	slots := make([]Slot, 0, len(order))
	f, err := e.simulate(order, func(idx, start, end int) {
		j := e.p.jobs[idx]
		slots = append(slots, Slot{JobID: j.ID, Class: j.Class, Start: start, End: end})
	})
	if err != nil {
		return Fitness{}, nil, err
	}
	return f, slots, nil
}

func (e *Evaluator) simulate(order []int, visit func(idx, start, end int)) (Fitness, error) {
	if e == nil || e.p == nil {
		return Fitness{}, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePermutation(order, len(e.p.jobs)); err != nil {
		return Fitness{}, err
	}

	dockFreeAt := make([]int, len(e.p.classes))
	clock := 0
	totalWait := 0

	for _, idx := range order {
		r := e.p.classOf[idx]
		// Док занят: поезд ждёт, общий счётчик времени сдвигается.
		if avail := dockFreeAt[r]; avail > clock {
			totalWait += avail - clock
			clock = avail
		}
		end := clock + e.p.jobs[idx].Size
		dockFreeAt[r] = end
		if visit != nil {
			visit(idx, clock, end)
		}
	}

	// Makespan is the latest dock finish, not the final clock.
	makespan := 0
	for _, t := range dockFreeAt {
		makespan = max(makespan, t)
	}
	return Fitness{Wait: float64(totalWait), Makespan: float64(makespan)}, nil
}
