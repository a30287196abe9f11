package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/lk16/minithello/internal/config"
	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/policy"
	"github.com/lk16/minithello/internal/repository"
	"github.com/logrusorgru/aurora"
)

func main() {
	config.LoadDotEnv()
	solverCfg := config.LoadSolverConfig()

	boardString := flag.String("board", "", "the board to show, for example \"..../.XO./.OX./....-b\"")
	key := flag.Int("key", -1, "key of the board to show")
	moves := flag.String("moves", "", "moves played from the start, for example \"c1 b1\"")
	tablePath := flag.String("table", "", "JSON value table to look up the value and best moves")
	flag.Parse()

	board, err := loadBoard(*boardString, *key, *moves)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	printBoard(board)

	if *tablePath == "" {
		return
	}

	run, err := repository.NewFileStore(*tablePath).Load(context.Background())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	player := policy.NewPlayer(run.Values, solverCfg.Discount, policy.NewSelector(solverCfg.Seed))
	if err = player.CheckDiscount(run.Values.Keys(), solverCfg.Tolerance); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err = printValues(player, board); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadBoard(boardString string, key int, moves string) (othello.Board, error) {
	switch {
	case boardString != "":
		return othello.NewBoardFromString(boardString)
	case key >= 0:
		return othello.NewBoardFromKey(othello.Key(key))
	default:
		game, err := othello.NewGameFromString(moves)
		if err != nil {
			return othello.Board{}, err
		}
		return game.Board(), nil
	}
}

func printBoard(board othello.Board) {
	for _, line := range board.ASCIIArtLines() {
		line = strings.ReplaceAll(line, "●", aurora.Green("●").String())
		line = strings.ReplaceAll(line, "○", aurora.Blue("○").String())
		line = strings.ReplaceAll(line, "·", aurora.White("·").String())
		fmt.Println(line)
	}

	black, white := board.CountDiscs()
	fmt.Printf("key: %d  black: %d  white: %d  to move: %s\n", board.Key(), black, white, turnName(board.Turn()))
}

func printValues(player *policy.Player, board othello.Board) error {
	value, err := player.Value(board.Key())
	if err != nil {
		return err
	}

	fmt.Printf("value: %s\n", colorValue(value))

	if board.IsTerminal() {
		fmt.Printf("game over, winner: %s\n", turnName(board.Winner()))
		return nil
	}

	values, err := player.ActionValues(board)
	if err != nil {
		return err
	}

	candidates, err := player.BestMoveCandidates(board.Key())
	if err != nil {
		return err
	}

	for _, move := range board.Moves() {
		marker := " "
		if slices.Contains(candidates, move) {
			marker = aurora.Bold("*").String()
		}
		fmt.Printf("%s %s %s\n", marker, othello.MoveToField(move), colorValue(values[move]))
	}

	return nil
}

func colorValue(value float32) string {
	text := fmt.Sprintf("%8.3f", value)

	switch {
	case value > 0:
		return aurora.Green(text).String()
	case value < 0:
		return aurora.Blue(text).String()
	default:
		return aurora.White(text).String()
	}
}

func turnName(color int) string {
	switch color {
	case othello.BLACK:
		return "black"
	case othello.WHITE:
		return "white"
	default:
		return "nobody"
	}
}
