package nsga

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sourcegraph/conc/pool"

	"dockSched/internal/dock"
	"dockSched/internal/opt"
)

// Solver — реализация NSGA-II (μ+λ) для задачи распределения поездов по докам.
type Solver struct {
	Cfg    Config
	Rng    *rand.Rand
	Logger *slog.Logger

	// OnGeneration, если задан, вызывается после начальной оценки и после каждого поколения.
	OnGeneration func(st GenStats, pop, archive []*Individual)
}

// New возвращает новый NSGA-II солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", dock.ErrInvalidConfiguration)
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve реализует opt.Optimizer: возвращает точки финального Парето-архива.
func (s *Solver) Solve(ctx context.Context, p *dock.Problem) (opt.Result, error) {
	res, err := s.Run(ctx, p)
	meta := map[string]any{
		"mu":          s.Cfg.Mu,
		"lambda":      s.Cfg.Lambda,
		"generations": s.Cfg.Generations,
	}
	if res.Stopped != "" {
		meta["stopped"] = res.Stopped
	}
	return ToOptResult(p, res, meta), err
}

// Run выполняет эволюционный цикл и возвращает популяцию, журнал поколений и архив.
// При отмене ctx возвращаются накопленные результаты вместе с ошибкой контекста.
func (s *Solver) Run(ctx context.Context, p *dock.Problem) (Result, error) {
	start := time.Now()

	// Проверка корректности входных данных и конфигурации
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return Result{}, err
	}
	if s.Rng == nil {
		return Result{}, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", dock.ErrInvalidConfiguration)
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	eval, err := dock.NewEvaluator(p)
	if err != nil {
		return Result{}, err
	}

	n := p.Len()
	mu := s.Cfg.Mu

	// Инициализация начальной популяции
	pop := make([]*Individual, mu)
	for i := range pop {
		order := dock.Identity(n)
		shufflePermutation(order, s.Rng)
		pop[i] = &Individual{order: order}
	}
	if err := s.evaluate(eval, pop); err != nil {
		return Result{}, err
	}
	evaluations := mu
	rankPool(pop)

	archive := NewArchive(s.Cfg.ArchiveLimit)
	archive.Update(pop)

	log := []GenStats{genStats(0, mu, pop, archive)}
	s.notify(log[0], pop, archive)

	// Буферы отображений для PMX
	m1 := make([]int, n)
	m2 := make([]int, n)

	finish := func(gen int, stopped string) Result {
		return Result{
			Population:  pop,
			Archive:     archive.Members(),
			Log:         log,
			Evaluations: evaluations,
			Generations: gen,
			Duration:    time.Since(start),
			Stopped:     stopped,
		}
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Остановка возможна только на границе поколений
		if err := ctx.Err(); err != nil {
			return finish(gen, "context"), err
		}
		if s.Cfg.TimeBudget > 0 && time.Since(start) >= s.Cfg.TimeBudget {
			logger.Info("бюджет времени исчерпан", slog.Int("generation", gen))
			return finish(gen, "time_budget"), nil
		}

		offspring, err := s.breed(pop, n, m1, m2)
		if err != nil {
			return finish(gen, ""), err
		}
		if err := s.evaluate(eval, offspring); err != nil {
			return finish(gen, ""), err
		}
		evaluations += len(offspring)

		merged := make([]*Individual, 0, len(pop)+len(offspring))
		merged = append(merged, pop...)
		merged = append(merged, offspring...)
		pop = selectNSGA2(merged, mu)
		archive.Update(pop)

		st := genStats(gen+1, len(offspring), pop, archive)
		log = append(log, st)
		s.notify(st, pop, archive)
		logger.Debug("поколение завершено",
			slog.Int("generation", st.Gen),
			slog.Float64("min_wait", st.Min.Wait),
			slog.Float64("min_makespan", st.Min.Makespan),
			slog.Int("archive", st.ArchiveSize),
		)
	}

	return finish(s.Cfg.Generations, ""), nil
}

// breed создаёт λ потомков: выбор пары родителей, PMX с вероятностью CrossoverRate,
// инверсия каждого потомка с вероятностью MutationRate.
func (s *Solver) breed(pop []*Individual, n int, m1, m2 []int) ([]*Individual, error) {
	lambda := s.Cfg.Lambda
	out := make([]*Individual, 0, lambda)

	for len(out) < lambda {
		p1, p2 := s.pickParents(pop)

		// Потомки создаются без оценки
		c1 := &Individual{order: make([]int, n)}
		c2 := &Individual{order: make([]int, n)}

		// Кроссовер
		if s.Rng.Float64() < s.Cfg.CrossoverRate {
			pmxCrossover(p1.order, p2.order, c1.order, c2.order, s.Rng, m1, m2)
		} else {
			copy(c1.order, p1.order)
			copy(c2.order, p2.order)
		}

		// Мутация
		if s.Rng.Float64() < s.Cfg.MutationRate {
			inversionMutation(c1.order, s.Rng)
		}
		if s.Rng.Float64() < s.Cfg.MutationRate {
			inversionMutation(c2.order, s.Rng)
		}

		for _, c := range [...]*Individual{c1, c2} {
			if len(out) == lambda {
				break
			}
			if err := dock.ValidatePermutation(c.order, n); err != nil {
				return nil, fmt.Errorf("потомок %d: %w", len(out), err)
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Solver) notify(st GenStats, pop []*Individual, archive *Archive) {
	if s.OnGeneration != nil {
		s.OnGeneration(st, pop, archive.Members())
	}
}

func (s *Solver) pickParents(pop []*Individual) (*Individual, *Individual) {
	if s.Cfg.ParentSelection == ParentTournament {
		return crowdedTournament(pop, s.Rng), crowdedTournament(pop, s.Rng)
	}
	i := s.Rng.Intn(len(pop))
	j := s.Rng.Intn(len(pop))
	if len(pop) > 1 {
		for j == i {
			j = s.Rng.Intn(len(pop))
		}
	}
	return pop[i], pop[j]
}

// evaluate оценивает особи. Оценка чистая, поэтому горутины пишут только в свою особь,
// а порядок завершения не влияет на результат.
func (s *Solver) evaluate(eval *dock.Evaluator, inds []*Individual) error {
	if s.Cfg.Workers <= 1 {
		for _, ind := range inds {
			f, err := eval.Evaluate(ind.order)
			if err != nil {
				return err
			}
			ind.SetFitness(f)
		}
		return nil
	}

	p := pool.New().WithErrors().WithFirstError().WithMaxGoroutines(s.Cfg.Workers)
	for _, ind := range inds {
		ind := ind
		p.Go(func() error {
			f, err := eval.Evaluate(ind.order)
			if err != nil {
				return err
			}
			ind.SetFitness(f)
			return nil
		})
	}
	return p.Wait()
}
