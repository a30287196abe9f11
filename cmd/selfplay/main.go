package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lk16/minithello/internal/arena"
	"github.com/lk16/minithello/internal/config"
	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/policy"
	"github.com/lk16/minithello/internal/repository"
	"github.com/logrusorgru/aurora"
)

func main() {
	config.LoadDotEnv()
	config.SetLogLevel()

	solverCfg := config.LoadSolverConfig()
	storeCfg := config.LoadStoreConfig()

	games := flag.Int("games", 100, "number of games to play")
	blackName := flag.String("black", "solved", "black agent: solved, random or epsilon")
	whiteName := flag.String("white", "random", "white agent: solved, random or epsilon")
	tablePath := flag.String("table", storeCfg.TablePath, "JSON value table")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := selfplay(ctx, *tablePath, *games, *blackName, *whiteName, solverCfg); err != nil {
		slog.Error("Self play failed", "error", err)
		os.Exit(1)
	}
}

func selfplay(ctx context.Context, tablePath string, games int, blackName, whiteName string, cfg *config.SolverConfig) error {
	run, err := repository.NewFileStore(tablePath).Load(ctx)
	if err != nil {
		return err
	}

	player := policy.NewPlayer(run.Values, cfg.Discount, policy.NewSelector(cfg.Seed))
	if err = player.CheckDiscount(run.Values.Keys(), cfg.Tolerance); err != nil {
		return err
	}

	black, err := arena.NewAgent(blackName, player)
	if err != nil {
		return err
	}

	white, err := arena.NewAgent(whiteName, player)
	if err != nil {
		return err
	}

	tally, err := arena.Tournament(ctx, othello.NewBoardStart(), games, black, white)
	if err != nil {
		return err
	}

	slog.Info("Tournament finished",
		"black", black.Name(),
		"white", white.Name(),
		"games", tally.Games(),
		"black_wins", tally.BlackWins,
		"white_wins", tally.WhiteWins,
		"draws", tally.Draws,
	)

	fmt.Printf("%s %d  %s %d  %s %d\n",
		aurora.Green(black.Name()), tally.BlackWins,
		aurora.Blue(white.Name()), tally.WhiteWins,
		aurora.White("draws"), tally.Draws,
	)

	return nil
}
