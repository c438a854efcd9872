package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"dockSched/internal/bench"
	"dockSched/internal/config"
	"dockSched/internal/dock"
	"dockSched/internal/nsga"
	"dockSched/internal/opt"
)

// Фабрики

func newNSGAFactory(cfg nsga.Config, logger *slog.Logger) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := nsga.New(cfg, rand.New(rand.NewSource(seed)))
		solver.Logger = logger
		return solver
	}
}

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в переменных окружения:", err)
		os.Exit(2)
	}
	defaults := env.NSGA()

	// CLI флаги для настройки параметров алгоритма и политики запуска
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		jobs         = flag.String("jobs", "20,50,100", "конфигурации: количество поездов (через запятую)")
		classes      = flag.String("classes", strings.Join(env.Problem.Classes, ","), "типы доков (через запятую)")
		minSize      = flag.Int("min_size", env.Problem.MinSize, "минимальный размер поезда")
		maxSize      = flag.Int("max_size", env.Problem.MaxSize, "максимальный размер поезда")
		algos        = flag.String("algos", "NSGA2,NSGA2T", "список вариантов: NSGA2 (случайные родители), NSGA2T (турнир)")
		runs         = flag.Int("runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", env.Seed, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", env.Problem.Seed, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

		// --- NSGA-II ---
		mu      = flag.Int("mu", defaults.Mu, "размер популяции (μ)")
		lambda  = flag.Int("lambda", defaults.Lambda, "количество потомков за поколение (λ)")
		gens    = flag.Int("gen", defaults.Generations, "количество поколений")
		cx      = flag.Float64("cx", defaults.CrossoverRate, "вероятность применения кроссовера")
		mut     = flag.Float64("mut", defaults.MutationRate, "вероятность мутации")
		workers = flag.Int("workers", defaults.Workers, "число горутин для оценки; 0 — без параллелизма")
	)
	flag.Parse()

	lvl, err := env.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cases, err := parseCases(*jobs, splitCSV(*classes), dock.SizeRange{Min: *minSize, Max: *maxSize}, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	base := defaults
	base.Mu = *mu
	base.Lambda = *lambda
	base.Generations = *gens
	base.CrossoverRate = *cx
	base.MutationRate = *mut
	base.Workers = *workers

	randomCfg := base
	randomCfg.ParentSelection = nsga.ParentRandom
	tournamentCfg := base
	tournamentCfg.ParentSelection = nsga.ParentTournament

	for _, c := range []nsga.Config{randomCfg, tournamentCfg} {
		if err := c.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в конфигурации NSGA-II:", err)
			os.Exit(2)
		}
	}

	available := map[string]bench.Algorithm{
		"NSGA2":  {Name: "NSGA2", Factory: newNSGAFactory(randomCfg, logger)},
		"NSGA2T": {Name: "NSGA2T", Factory: newNSGAFactory(tournamentCfg, logger)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			logger.Info("запуск алгоритма",
				slog.String("algo", a.Name),
				slog.Int("jobs", c.Jobs),
				slog.Int("docks", len(c.Classes)),
				slog.Int("runs", runner.Runs),
			)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				logger.Error("ошибка запуска", slog.String("error", err.Error()))
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Ожидание: лучшее=%.0f среднее=%.2f | Makespan: лучший=%.0f средний=%.2f | HV: среднее=%.1f отклонение=%.1f | Время: среднее=%.2fms\n",
				rec.WaitBest, rec.WaitMean,
				rec.MakespanBest, rec.MakespanMean,
				rec.HypervolumeMean, rec.HypervolumeStd,
				rec.TimeMeanMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		logger.Error("ошибка при записи в CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parseCases(s string, classes []string, sizes dock.SizeRange, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		jobs, err := atoiStrict(p)
		if err != nil {
			return nil, fmt.Errorf("конфигурация %q: ошибка парсинга количества поездов: %w", p, err)
		}
		if jobs <= 0 {
			return nil, fmt.Errorf("конфигурация %q: количество поездов должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(len(classes))

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			Sizes:        sizes,
			Classes:      classes,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
