package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"dockSched/internal/config"
	"dockSched/internal/dock"
	"dockSched/internal/nsga"
	"dockSched/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid environment:", err)
		os.Exit(2)
	}
	search := cfg.NSGA()

	var (
		outDir    = flag.String("out", "artifacts", "output directory for front.csv, log.csv and summary.yaml")
		jobs      = flag.Int("jobs", cfg.Problem.Jobs, "number of trains")
		classes   = flag.String("classes", strings.Join(cfg.Problem.Classes, ","), "dock types, comma separated")
		minSize   = flag.Int("min_size", cfg.Problem.MinSize, "minimum train size")
		maxSize   = flag.Int("max_size", cfg.Problem.MaxSize, "maximum train size")
		probSeed  = flag.Int64("instance_seed", cfg.Problem.Seed, "seed for problem generation")
		seed      = flag.Int64("seed", cfg.Seed, "seed for the search")
		parents   = flag.String("parents", string(search.ParentSelection), "parent selection: random | tournament")
		budget    = flag.Duration("budget", search.TimeBudget, "wall-clock budget, checked between generations; 0 = none")
		logLevel  = flag.String("log_level", cfg.LogLevel, "debug | info | warn | error")
		workers   = flag.Int("workers", search.Workers, "evaluation goroutines; 0 = inline")
		gens      = flag.Int("gen", search.Generations, "number of generations")
		mu        = flag.Int("mu", search.Mu, "population size")
		lambda    = flag.Int("lambda", search.Lambda, "offspring per generation")
		cx        = flag.Float64("cx", search.CrossoverRate, "crossover probability")
		mut       = flag.Float64("mut", search.MutationRate, "mutation probability")
	)
	flag.Parse()

	cfg.LogLevel = *logLevel
	lvl, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	search.Mu = *mu
	search.Lambda = *lambda
	search.Generations = *gens
	search.CrossoverRate = *cx
	search.MutationRate = *mut
	search.ParentSelection = nsga.ParentSelection(*parents)
	search.TimeBudget = *budget
	search.Workers = *workers

	problem, err := dock.GenerateProblem(*jobs, dock.SizeRange{Min: *minSize, Max: *maxSize}, splitCSV(*classes), rand.New(rand.NewSource(*probSeed)))
	if err != nil {
		logger.Error("invalid problem", slog.String("error", err.Error()))
		os.Exit(2)
	}

	solver, err := nsga.New(search, rand.New(rand.NewSource(*seed)))
	if err != nil {
		logger.Error("invalid search parameters", slog.String("error", err.Error()))
		os.Exit(2)
	}
	solver.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("NSGA-II started",
		slog.Int("jobs", problem.Len()),
		slog.Int("docks", len(problem.Classes())),
		slog.Int("mu", search.Mu),
		slog.Int("generations", search.Generations),
	)

	res, err := solver.Run(ctx, problem)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("search failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if res.Stopped != "" {
		logger.Warn("search stopped early", slog.String("reason", res.Stopped), slog.Int("generation", res.Generations))
	}

	out := nsga.ToOptResult(problem, res, map[string]any{
		"mu":               search.Mu,
		"lambda":           search.Lambda,
		"generations":      search.Generations,
		"cxpb":             search.CrossoverRate,
		"mutpb":            search.MutationRate,
		"parent_selection": string(search.ParentSelection),
	})

	summary, err := report.NewSummary(problem, out, *seed)
	if err != nil {
		logger.Error("build summary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := report.WriteFrontCSV(filepath.Join(*outDir, "front.csv"), out.Front); err != nil {
		logger.Error("write front", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := report.WriteLogCSV(filepath.Join(*outDir, "log.csv"), res.Log); err != nil {
		logger.Error("write log", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := report.WriteYAML(filepath.Join(*outDir, "summary.yaml"), summary); err != nil {
		logger.Error("write summary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	attrs := []any{
		slog.String("run_id", summary.RunID),
		slog.Int("front", len(out.Front)),
		slog.Int("evaluations", out.Evaluations),
		slog.Duration("duration", out.Duration),
	}
	if summary.Knee != nil {
		attrs = append(attrs,
			slog.Float64("knee_wait", summary.Knee.Wait),
			slog.Float64("knee_makespan", summary.Knee.Makespan),
		)
	}
	logger.Info("NSGA-II finished", attrs...)
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
