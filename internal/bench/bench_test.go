package bench

import (
	"context"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockSched/internal/dock"
	"dockSched/internal/nsga"
	"dockSched/internal/opt"
)

func TestHypervolume(t *testing.T) {
	front := []opt.Point{
		{Wait: 2, Makespan: 1},
		{Wait: 1, Makespan: 3},
		{Wait: 3, Makespan: 2}, // доминируется (2,1)
		{Wait: 5, Makespan: 0}, // вне опорной точки
	}
	assert.InDelta(t, 7.0, Hypervolume(front, opt.Point{Wait: 4, Makespan: 4}), 1e-9)
	assert.Zero(t, Hypervolume(nil, opt.Point{Wait: 4, Makespan: 4}))
}

func TestReferencePoint(t *testing.T) {
	ref := ReferencePoint(
		[]opt.Point{{Wait: 10, Makespan: 5}},
		[]opt.Point{{Wait: 0, Makespan: 20}},
	)
	assert.InDelta(t, 12.0, ref.Wait, 1e-9)
	assert.InDelta(t, 23.0, ref.Makespan, 1e-9)
}

func TestCalcStats(t *testing.T) {
	s := Calc([]float64{2, 4, 6})
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 2.0, s.Best)
	assert.InDelta(t, 4.0, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.Std, 1e-9)

	is := Calc([]int{5, 1})
	assert.Equal(t, 1.0, is.Best)
	assert.InDelta(t, 3.0, is.Mean, 1e-9)

	assert.Equal(t, Stats{}, Calc[float64](nil))
}

func TestRunCaseAndWriteCSV(t *testing.T) {
	cfg := nsga.DefaultConfig()
	cfg.Mu = 10
	cfg.Lambda = 10
	cfg.Generations = 5
	algo := Algorithm{
		Name: "NSGA2",
		Factory: func(seed int64) opt.Optimizer {
			s, err := nsga.New(cfg, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)
			return s
		},
	}
	c := Case{
		Jobs:         15,
		Sizes:        dock.SizeRange{Min: 10, Max: 30},
		Classes:      []string{"op1", "op2", "op3"},
		InstanceSeed: 777,
	}

	rec, err := Runner{Runs: 3, BaseSeed: 1000}.RunCase(context.Background(), c, algo)
	require.NoError(t, err)
	assert.Equal(t, "NSGA2", rec.Algo)
	assert.Equal(t, 3, rec.Runs)
	assert.Equal(t, 3, rec.Classes)
	assert.GreaterOrEqual(t, rec.FrontMean, 1.0)
	assert.LessOrEqual(t, rec.WaitBest, rec.WaitMean)
	assert.Greater(t, rec.HypervolumeMean, 0.0)

	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteCSV(path, []Record{rec}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "algo", rows[0][0])
	assert.Equal(t, "NSGA2", rows[1][0])
	assert.Equal(t, "15", rows[1][1])
}

func TestRunCaseInvalidProblem(t *testing.T) {
	c := Case{Jobs: 5, Sizes: dock.SizeRange{Min: 3, Max: 1}, Classes: []string{"a"}}
	_, err := Runner{Runs: 1}.RunCase(context.Background(), c, Algorithm{})
	assert.ErrorIs(t, err, dock.ErrInvalidConfiguration)
}
