package arena

import (
	"context"
	"fmt"

	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/policy"
)

// DefaultEpsilon is the exploration rate of an EpsilonAgent.
const DefaultEpsilon = 0.1

// Agent picks a move for the side to move. The move must be one of board.Moves().
type Agent interface {
	Name() string
	Move(ctx context.Context, board othello.Board) (int, error)
}

// SolvedAgent plays a random optimal move from a solved table.
type SolvedAgent struct {
	player *policy.Player
}

func NewSolvedAgent(player *policy.Player) *SolvedAgent {
	return &SolvedAgent{player: player}
}

func (a *SolvedAgent) Name() string {
	return "solved"
}

func (a *SolvedAgent) Move(_ context.Context, board othello.Board) (int, error) {
	return a.player.BestMove(board.Key())
}

// RandomAgent plays a uniformly random legal move.
type RandomAgent struct {
	selector *policy.Selector
}

func NewRandomAgent(selector *policy.Selector) *RandomAgent {
	return &RandomAgent{selector: selector}
}

func (a *RandomAgent) Name() string {
	return "random"
}

func (a *RandomAgent) Move(_ context.Context, board othello.Board) (int, error) {
	return a.selector.Choose(board.Moves()), nil
}

// EpsilonAgent plays epsilon greedy over the solved action values.
type EpsilonAgent struct {
	player  *policy.Player
	epsilon float64
}

func NewEpsilonAgent(player *policy.Player, epsilon float64) *EpsilonAgent {
	return &EpsilonAgent{player: player, epsilon: epsilon}
}

func (a *EpsilonAgent) Name() string {
	return fmt.Sprintf("epsilon(%g)", a.epsilon)
}

func (a *EpsilonAgent) Move(_ context.Context, board othello.Board) (int, error) {
	values, err := a.player.ActionValues(board)
	if err != nil {
		return 0, err
	}

	return a.player.Selector().EpsilonGreedyAction(board.Turn(), values, a.epsilon), nil
}

// NewAgent creates an agent by name: "solved", "random" or "epsilon".
func NewAgent(name string, player *policy.Player) (Agent, error) {
	switch name {
	case "solved":
		return NewSolvedAgent(player), nil
	case "random":
		return NewRandomAgent(player.Selector()), nil
	case "epsilon":
		return NewEpsilonAgent(player, DefaultEpsilon), nil
	default:
		return nil, fmt.Errorf("unknown agent: %q", name)
	}
}
