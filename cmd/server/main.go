package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lk16/minithello/internal/api"
	"github.com/lk16/minithello/internal/config"
	"github.com/lk16/minithello/internal/policy"
	"github.com/lk16/minithello/internal/repository"
	"github.com/lk16/minithello/internal/services"
)

func main() {
	config.LoadDotEnv()
	config.SetLogLevel()

	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(&cfg.Store)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	store, err := repository.NewTableStore(cfg.Store.TableSource, &cfg.Store, services)
	if err != nil {
		slog.Error("Failed to create table store", "error", err)
		os.Exit(1)
	}

	run, err := store.Load(context.Background())
	if err != nil {
		slog.Error("Failed to load value table", "source", cfg.Store.TableSource, "error", err)
		os.Exit(1)
	}

	// The file store does not keep the discount or tolerance
	discount := run.Discount
	if discount == 0 {
		discount = cfg.Solver.Discount
	}

	tolerance := run.Tolerance
	if tolerance == 0 {
		tolerance = cfg.Solver.Tolerance
	}

	slog.Info("Loaded value table", "source", cfg.Store.TableSource, "states", len(run.Values), "run", run.ID)

	player := policy.NewPlayer(run.Values, discount, policy.NewSelector(cfg.Solver.Seed))
	if err = player.CheckDiscount(run.Values.Keys(), tolerance); err != nil {
		slog.Error("Value table does not match discount", "discount", discount, "error", err)
		os.Exit(1)
	}

	// Setup app
	app := api.BuildApp(cfg, player)

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	if err = app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
