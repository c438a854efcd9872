package report

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"dockSched/internal/dock"
	"dockSched/internal/opt"
)

type Summary struct {
	RunID       string         `yaml:"run_id"`
	Seed        int64          `yaml:"seed"`
	Jobs        int            `yaml:"jobs"`
	Classes     []string       `yaml:"classes"`
	Params      map[string]any `yaml:"params,omitempty"`
	Evaluations int            `yaml:"evaluations"`
	Generations int            `yaml:"generations"`
	DurationMs  float64        `yaml:"duration_ms"`
	Front       []FrontPoint   `yaml:"front"`
	Knee        *Timeline      `yaml:"knee,omitempty"`
}

type FrontPoint struct {
	Wait     float64 `yaml:"wait"`
	Makespan float64 `yaml:"makespan"`
	Order    []int   `yaml:"order,flow"`
}

// Timeline — расписание выбранного решения для построения диаграммы Ганта.
type Timeline struct {
	Wait     float64   `yaml:"wait"`
	Makespan float64   `yaml:"makespan"`
	Slots    []SlotRow `yaml:"slots"`
}

type SlotRow struct {
	Job   int    `yaml:"job"`
	Dock  string `yaml:"dock"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// NewSummary собирает итог запуска; для точки перегиба фронта расписание пересчитывается заново.
func NewSummary(p *dock.Problem, res opt.Result, seed int64) (Summary, error) {
	s := Summary{
		RunID:       uuid.NewString(),
		Seed:        seed,
		Jobs:        p.Len(),
		Classes:     p.Classes(),
		Params:      res.Meta,
		Evaluations: res.Evaluations,
		Generations: res.Iterations,
		DurationMs:  float64(res.Duration.Microseconds()) / 1000.0,
		Front:       make([]FrontPoint, len(res.Front)),
	}
	for i, pt := range res.Front {
		s.Front[i] = FrontPoint{Wait: pt.Wait, Makespan: pt.Makespan, Order: pt.Order}
	}

	knee, ok := res.Knee()
	if !ok {
		return s, nil
	}
	order, err := p.OrderingFromIDs(knee.Order)
	if err != nil {
		return Summary{}, err
	}
	eval, err := dock.NewEvaluator(p)
	if err != nil {
		return Summary{}, err
	}
	f, slots, err := eval.Resimulate(order)
	if err != nil {
		return Summary{}, err
	}

	tl := &Timeline{Wait: f.Wait, Makespan: f.Makespan, Slots: make([]SlotRow, len(slots))}
	for i, sl := range slots {
		tl.Slots[i] = SlotRow{Job: sl.JobID, Dock: sl.Class, Start: sl.Start, End: sl.End}
	}
	s.Knee = tl
	return s, nil
}

func WriteYAML(path string, s Summary) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ReadYAML(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("read %s: %w", path, err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Summary{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}
