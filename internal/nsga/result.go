package nsga

import (
	"time"

	"dockSched/internal/dock"
	"dockSched/internal/opt"
)

// GenStats — запись журнала одного поколения. Поколение 0 — начальная популяция.
type GenStats struct {
	Gen         int
	Evals       int
	Min         dock.Fitness
	Mean        dock.Fitness
	ArchiveSize int
}

type Result struct {
	Population  []*Individual
	Archive     []*Individual
	Log         []GenStats
	Evaluations int
	Generations int
	Duration    time.Duration
	// Stopped пуст при штатном завершении, иначе "context" или "time_budget".
	Stopped string
}

func genStats(gen, evals int, pop []*Individual, archive *Archive) GenStats {
	st := GenStats{Gen: gen, Evals: evals, ArchiveSize: archive.Len()}
	if len(pop) == 0 {
		return st
	}
	st.Min = pop[0].fitness
	for _, ind := range pop {
		f := ind.fitness
		st.Min.Wait = min(st.Min.Wait, f.Wait)
		st.Min.Makespan = min(st.Min.Makespan, f.Makespan)
		st.Mean.Wait += f.Wait
		st.Mean.Makespan += f.Makespan
	}
	st.Mean.Wait /= float64(len(pop))
	st.Mean.Makespan /= float64(len(pop))
	return st
}

func ToOptResult(p *dock.Problem, res Result, meta map[string]any) opt.Result {
	front := make([]opt.Point, len(res.Archive))
	for i, ind := range res.Archive {
		front[i] = opt.Point{
			Wait:     ind.fitness.Wait,
			Makespan: ind.fitness.Makespan,
			Order:    p.IDs(ind.order),
		}
	}
	return opt.Result{
		Front:       front,
		Evaluations: res.Evaluations,
		Iterations:  res.Generations,
		Duration:    res.Duration,
		Meta:        meta,
	}
}
