package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"dockSched/internal/dock"
	"dockSched/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	Jobs         int
	Sizes        dock.SizeRange
	Classes      []string
	InstanceSeed int64
}

type Record struct {
	Algo    string
	Jobs    int
	Classes int
	Runs    int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	FrontMean float64

	WaitBest     float64
	WaitMean     float64
	MakespanBest float64
	MakespanMean float64

	HypervolumeMean float64
	HypervolumeStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	inst, err := dock.GenerateProblem(c.Jobs, c.Sizes, c.Classes, randForSeed(c.InstanceSeed))
	if err != nil {
		return Record{}, err
	}

	fronts := make([][]opt.Point, 0, r.Runs)
	frontSizes := make([]int, 0, r.Runs)
	bestWaits := make([]float64, 0, r.Runs)
	bestMakespans := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if len(res.Front) == 0 {
			return Record{}, fmt.Errorf("run %d: empty pareto front", i)
		}
		for k, pt := range res.Front {
			if _, err := inst.OrderingFromIDs(pt.Order); err != nil {
				return Record{}, fmt.Errorf("run %d: front point %d: %w", i, k, err)
			}
		}

		w, m := bestObjectives(res.Front)
		fronts = append(fronts, res.Front)
		frontSizes = append(frontSizes, len(res.Front))
		bestWaits = append(bestWaits, w)
		bestMakespans = append(bestMakespans, m)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	// Общая опорная точка для всех запусков случая, иначе гиперобъёмы несравнимы
	ref := ReferencePoint(fronts...)
	hvs := make([]float64, len(fronts))
	for i, f := range fronts {
		hvs[i] = Hypervolume(f, ref)
	}

	tStats := Calc(timesMs)
	sizeStats := Calc(frontSizes)
	wStats := Calc(bestWaits)
	mStats := Calc(bestMakespans)
	hvStats := Calc(hvs)

	return Record{
		Algo:    algo.Name,
		Jobs:    c.Jobs,
		Classes: len(c.Classes),
		Runs:    r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		FrontMean: sizeStats.Mean,

		WaitBest:     wStats.Best,
		WaitMean:     wStats.Mean,
		MakespanBest: mStats.Best,
		MakespanMean: mStats.Mean,

		HypervolumeMean: hvStats.Mean,
		HypervolumeStd:  hvStats.Std,
	}, nil
}

func bestObjectives(front []opt.Point) (float64, float64) {
	w, m := front[0].Wait, front[0].Makespan
	for _, p := range front[1:] {
		w = min(w, p.Wait)
		m = min(m, p.Makespan)
	}
	return w, m
}

func WriteCSV(path string, records []Record) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "jobs", "classes", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"front_mean",
		"wait_best", "wait_mean", "makespan_best", "makespan_mean",
		"hv_mean", "hv_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Classes),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.FrontMean),

			ftoa(r.WaitBest),
			ftoa(r.WaitMean),
			ftoa(r.MakespanBest),
			ftoa(r.MakespanMean),

			ftoa(r.HypervolumeMean),
			ftoa(r.HypervolumeStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
