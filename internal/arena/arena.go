package arena

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lk16/minithello/internal/othello"
)

// Tally counts game outcomes from black's point of view.
type Tally struct {
	BlackWins int
	WhiteWins int
	Draws     int
}

// Games returns the number of counted games.
func (t Tally) Games() int {
	return t.BlackWins + t.WhiteWins + t.Draws
}

func (t *Tally) add(winner int) {
	switch winner {
	case othello.BLACK:
		t.BlackWins++
	case othello.WHITE:
		t.WhiteWins++
	default:
		t.Draws++
	}
}

// Play lets two agents play from start until neither side can move.
func Play(ctx context.Context, start othello.Board, black, white Agent) (*othello.Game, error) {
	game := othello.NewGameWithStart(start)

	for !game.IsOver() {
		if err := ctx.Err(); err != nil {
			return game, err
		}

		board := game.Board()

		agent := black
		if board.Turn() == othello.WHITE {
			agent = white
		}

		move, err := agent.Move(ctx, board)
		if err != nil {
			return game, fmt.Errorf("%s failed to move on %s: %w", agent.Name(), board, err)
		}

		if err = game.PushMove(move); err != nil {
			return game, fmt.Errorf("%s played an invalid move: %w", agent.Name(), err)
		}
	}

	return game, nil
}

// Tournament plays n games between the same agents from start.
func Tournament(ctx context.Context, start othello.Board, n int, black, white Agent) (Tally, error) {
	var tally Tally

	for i := range n {
		game, err := Play(ctx, start, black, white)
		if err != nil {
			return tally, err
		}

		tally.add(game.Winner())

		blackDiscs, whiteDiscs := game.Board().CountDiscs()
		slog.Debug("Game finished",
			"game", i+1,
			"moves", game.String(),
			"black", blackDiscs,
			"white", whiteDiscs,
		)
	}

	return tally, nil
}
