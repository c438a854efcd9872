package opt

import (
	"context"
	"math"
	"time"

	"dockSched/internal/dock"
)

type Optimizer interface {
	Solve(ctx context.Context, p *dock.Problem) (Result, error)
}

// Point — одно недоминируемое решение: значения целей и порядок работ (ID работ).
type Point struct {
	Wait     float64
	Makespan float64
	Order    []int
}

type Result struct {
	Front       []Point
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// Knee возвращает точку фронта с минимальной суммой нормированных целей.
// При равенстве выбирается более ранняя точка.
func (r Result) Knee() (Point, bool) {
	if len(r.Front) == 0 {
		return Point{}, false
	}
	minW, maxW := math.Inf(1), math.Inf(-1)
	minM, maxM := math.Inf(1), math.Inf(-1)
	for _, p := range r.Front {
		minW, maxW = math.Min(minW, p.Wait), math.Max(maxW, p.Wait)
		minM, maxM = math.Min(minM, p.Makespan), math.Max(maxM, p.Makespan)
	}
	norm := func(v, lo, hi float64) float64 {
		if hi == lo {
			return 0
		}
		return (v - lo) / (hi - lo)
	}

	best := 0
	bestScore := math.Inf(1)
	for i, p := range r.Front {
		score := norm(p.Wait, minW, maxW) + norm(p.Makespan, minM, maxM)
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	return r.Front[best], true
}
