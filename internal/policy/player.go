package policy

import (
	"errors"
	"fmt"
	"math"

	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/solver"
)

// ErrDiscountMismatch means the table was solved with another discount than the Player uses.
var ErrDiscountMismatch = errors.New("value table does not match discount")

// Player turns a solved value table into moves.
// The table is never modified, so a Player can be shared between goroutines.
type Player struct {
	table    solver.ValueTable
	discount float32
	selector *Selector
}

// NewPlayer creates a Player. The discount must be the one the table was solved with.
func NewPlayer(table solver.ValueTable, discount float32, selector *Selector) *Player {
	return &Player{
		table:    table,
		discount: discount,
		selector: selector,
	}
}

// Table returns the solved value table.
func (p *Player) Table() solver.ValueTable {
	return p.table
}

// Discount returns the discount the table was solved with.
func (p *Player) Discount() float32 {
	return p.discount
}

// Selector returns the random tie breaker.
func (p *Player) Selector() *Selector {
	return p.selector
}

// Value returns the solved value of a board key.
func (p *Player) Value(key othello.Key) (float32, error) {
	return p.table.Lookup(key)
}

// ActionValues computes the value of every move on board. Terminal boards get an empty mapping.
func (p *Player) ActionValues(board othello.Board) (ActionValues, error) {
	values, err := solver.ActionValues(board, p.table, p.discount)
	if err != nil {
		return nil, fmt.Errorf("error computing action values: %w", err)
	}
	return values, nil
}

// board decodes key and checks that the table knows it.
func (p *Player) board(key othello.Key) (othello.Board, error) {
	board, err := othello.NewBoardFromKey(key)
	if err != nil {
		return othello.Board{}, err
	}

	if _, err := p.table.Lookup(key); err != nil {
		return othello.Board{}, err
	}

	return board, nil
}

// CheckDiscount verifies that the stored value of every board in keys is the greedy action value
// under the Player's discount, within tolerance. Terminal boards are skipped.
func (p *Player) CheckDiscount(keys []othello.Key, tolerance float32) error {
	if err := solver.CheckDiscount(p.discount); err != nil {
		return err
	}

	for _, key := range keys {
		board, err := p.board(key)
		if err != nil {
			return err
		}

		if board.IsTerminal() {
			continue
		}

		values, err := p.ActionValues(board)
		if err != nil {
			return err
		}

		stored := p.table[key]
		greedy := GreedyValue(board.Turn(), values)

		if math.Abs(float64(stored-greedy)) > float64(tolerance) {
			return fmt.Errorf("%w: board %d has value %g, discount %g gives %g",
				ErrDiscountMismatch, key, stored, p.discount, greedy)
		}
	}

	return nil
}

// BestMoveCandidates returns every optimal move for the board with the given key, in increasing order.
// Terminal boards have no candidates.
func (p *Player) BestMoveCandidates(key othello.Key) ([]int, error) {
	board, err := p.board(key)
	if err != nil {
		return nil, err
	}

	values, err := p.ActionValues(board)
	if err != nil {
		return nil, err
	}

	return GreedyCandidates(board.Turn(), values), nil
}

// BestMove returns a random optimal move for the board with the given key.
// It returns PassMove for terminal boards.
func (p *Player) BestMove(key othello.Key) (int, error) {
	candidates, err := p.BestMoveCandidates(key)
	if err != nil {
		return 0, err
	}

	return p.selector.Choose(candidates), nil
}

// Agreement returns the percentage of boards among keys on which every optimal move of other is also
// optimal for reference. Only boards where a disc can be placed are compared.
func Agreement(reference, other *Player, keys []othello.Key) (float64, error) {
	compared := 0
	agreed := 0

	for _, key := range keys {
		board, err := othello.NewBoardFromKey(key)
		if err != nil {
			return 0, err
		}

		if board.IsTerminal() || !board.HasMoves() {
			continue
		}

		want, err := reference.BestMoveCandidates(key)
		if err != nil {
			return 0, err
		}

		got, err := other.BestMoveCandidates(key)
		if err != nil {
			return 0, err
		}

		compared++
		if isSubset(got, want) {
			agreed++
		}
	}

	if compared == 0 {
		return 100, nil
	}

	return 100 * float64(agreed) / float64(compared), nil
}

func isSubset(sub, set []int) bool {
	lookup := make(map[int]struct{}, len(set))
	for _, item := range set {
		lookup[item] = struct{}{}
	}

	for _, item := range sub {
		if _, ok := lookup[item]; !ok {
			return false
		}
	}
	return true
}
