package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lk16/minithello/internal/config"
	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/report"
	"github.com/lk16/minithello/internal/repository"
	"github.com/lk16/minithello/internal/services"
	"github.com/lk16/minithello/internal/solver"
)

func main() {
	config.LoadDotEnv()
	config.SetLogLevel()

	solverCfg := config.LoadSolverConfig()
	storeCfg := config.LoadStoreConfig()

	output := flag.String("o", storeCfg.TablePath, "JSON file to write the value table to")
	chartPath := flag.String("chart", "", "HTML file to write a convergence chart to")
	workers := flag.Int("workers", solverCfg.Workers, "number of goroutines per sweep")
	flag.Parse()

	storeCfg.TablePath = *output

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := solve(ctx, solverCfg, storeCfg, *workers, *chartPath); err != nil {
		slog.Error("Failed to solve", "error", err)
		os.Exit(1)
	}
}

func solve(ctx context.Context, solverCfg *config.SolverConfig, storeCfg *config.StoreConfig, workers int, chartPath string) error {
	start := othello.NewBoardStart()

	table := solver.EnumerateReachable(start)
	slog.Info("Enumerated reachable states", "states", len(table))

	engine := solver.NewEngine(
		solver.WithDiscount(solverCfg.Discount),
		solver.WithTolerance(solverCfg.Tolerance),
		solver.WithMaxSweeps(solverCfg.MaxSweeps),
		solver.WithWorkers(workers),
		solver.WithProgress(func(stats solver.SweepStats) {
			slog.Info("Sweep done", "sweep", stats.Sweep, "max_delta", stats.MaxDelta, "duration", stats.Duration)
		}),
	)

	values, result, err := engine.Run(ctx, table)
	if err != nil {
		return err
	}

	slog.Info("Value iteration converged",
		"sweeps", result.Sweeps,
		"max_delta", result.MaxDelta,
		"duration", result.Duration,
		"start_value", values[start.Key()],
	)

	run := repository.NewRun(values, engine, result)

	if err = save(ctx, storeCfg, run); err != nil {
		return err
	}

	if chartPath != "" {
		if err = report.SaveConvergenceChart(chartPath, result.History, engine.Tolerance()); err != nil {
			return err
		}
		slog.Info("Saved convergence chart", "path", chartPath)
	}

	return nil
}

// save writes the run to the file store and to every configured service.
func save(ctx context.Context, storeCfg *config.StoreConfig, run repository.Run) error {
	if err := repository.NewFileStore(storeCfg.TablePath).Save(ctx, run); err != nil {
		return err
	}
	slog.Info("Saved value table", "path", storeCfg.TablePath, "run", run.ID)

	services, err := services.InitServices(storeCfg)
	if err != nil {
		return err
	}
	defer services.Close() //nolint: errcheck

	if services.Postgres != nil {
		store := repository.NewPostgresStore(services.Postgres)

		if err = store.EnsureSchema(ctx); err != nil {
			return err
		}

		if err = store.Save(ctx, run); err != nil {
			return err
		}
		slog.Info("Saved value table to postgres", "run", run.ID)
	}

	if services.Redis != nil {
		if err = repository.NewRedisStore(services.Redis).Save(ctx, run); err != nil {
			return err
		}
		slog.Info("Saved value table to redis", "run", run.ID)
	}

	return nil
}
