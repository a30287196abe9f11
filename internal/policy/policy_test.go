package policy

import (
	"context"
	"sync"
	"testing"

	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/solver"
	"github.com/stretchr/testify/require"
)

func TestGreedyCandidates(t *testing.T) {
	tests := []struct {
		name   string
		turn   int
		values ActionValues
		want   []int
		value  float32
	}{
		{"blackTie", othello.BLACK, ActionValues{1: 5, 2: 5, 3: 2}, []int{1, 2}, 5},
		{"whiteMin", othello.WHITE, ActionValues{1: 5, 2: 5, 3: 2}, []int{3}, 2},
		{"negative", othello.BLACK, ActionValues{4: -90, 9: -81}, []int{9}, -81},
		{"single", othello.WHITE, ActionValues{othello.PassMove: 12.5}, []int{othello.PassMove}, 12.5},
		{"empty", othello.BLACK, ActionValues{}, []int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GreedyCandidates(tt.turn, tt.values))
			require.Equal(t, tt.value, GreedyValue(tt.turn, tt.values))
		})
	}
}

func TestSelector_Choose(t *testing.T) {
	selector := NewSelector(42)

	require.Equal(t, othello.PassMove, selector.Choose(nil))
	require.Equal(t, 7, selector.Choose([]int{7}))

	seen := make(map[int]bool)
	for range 200 {
		move := selector.Choose([]int{1, 2, 3})
		require.Contains(t, []int{1, 2, 3}, move)
		seen[move] = true
	}
	require.Len(t, seen, 3)
}

func TestSelector_Seeded(t *testing.T) {
	values := ActionValues{1: 5, 2: 5, 3: 5, 4: 5}

	first := NewSelector(7)
	second := NewSelector(7)

	for range 50 {
		require.Equal(t, first.GreedyAction(othello.BLACK, values), second.GreedyAction(othello.BLACK, values))
	}
}

func TestSelector_GreedyAction(t *testing.T) {
	selector := NewSelector(1)

	for range 100 {
		move := selector.GreedyAction(othello.BLACK, ActionValues{1: 5, 2: 5, 3: 2})
		require.Contains(t, []int{1, 2}, move)
	}

	require.Equal(t, othello.PassMove, selector.GreedyAction(othello.BLACK, ActionValues{}))
}

func TestSelector_EpsilonGreedyAction(t *testing.T) {
	selector := NewSelector(3)
	values := ActionValues{1: 5, 2: 5, 3: 2}

	tests := []struct {
		name    string
		turn    int
		values  ActionValues
		epsilon float64
		want    []int
	}{
		{"exploit", othello.BLACK, values, 0, []int{1, 2}},
		{"explore", othello.BLACK, values, 1, []int{3}},
		{"exploreWhite", othello.WHITE, values, 1, []int{1, 2}},
		{"allTied", othello.BLACK, ActionValues{1: 5, 2: 5}, 1, []int{1, 2}},
		{"empty", othello.BLACK, ActionValues{}, 1, []int{othello.PassMove}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 50 {
				require.Contains(t, tt.want, selector.EpsilonGreedyAction(tt.turn, tt.values, tt.epsilon))
			}
		})
	}
}

func TestSelector_Concurrent(t *testing.T) {
	selector := NewSelector(5)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				selector.Choose([]int{1, 2, 3})
			}
		}()
	}
	wg.Wait()
}

func solvedPlayer(t *testing.T, s string) (*Player, othello.Board) {
	t.Helper()

	start, err := othello.NewBoardFromString(s)
	require.NoError(t, err)

	table, _, err := solver.Solve(context.Background(), start)
	require.NoError(t, err)

	return NewPlayer(table, solver.DefaultDiscount, NewSelector(11)), start
}

func TestPlayer_BestMove(t *testing.T) {
	player, start := solvedPlayer(t, ".OX./.OX./.OX./....-b")

	for _, key := range player.Table().Keys() {
		board := othello.NewBoardFromKeyMust(key)

		candidates, err := player.BestMoveCandidates(key)
		require.NoError(t, err)

		move, err := player.BestMove(key)
		require.NoError(t, err)

		if board.IsTerminal() {
			require.Empty(t, candidates)
			require.Equal(t, othello.PassMove, move)
			continue
		}

		require.NotEmpty(t, candidates)
		require.Contains(t, candidates, move)
		require.True(t, board.IsValidMove(move))

		// The solved value is the value of the best move.
		values, err := player.ActionValues(board)
		require.NoError(t, err)

		value, err := player.Value(key)
		require.NoError(t, err)
		require.Equal(t, value, GreedyValue(board.Turn(), values))
	}

	_, err := player.BestMove(start.Key())
	require.NoError(t, err)
}

func TestPlayer_ForcedPass(t *testing.T) {
	player, start := solvedPlayer(t, "XXXX/XXXX/XXXX/XXO.-w")

	candidates, err := player.BestMoveCandidates(start.Key())
	require.NoError(t, err)
	require.Equal(t, []int{othello.PassMove}, candidates)

	candidates, err = player.BestMoveCandidates(start.DoMove(othello.PassMove).Key())
	require.NoError(t, err)
	require.Equal(t, []int{16}, candidates)
}

func TestPlayer_CheckDiscount(t *testing.T) {
	player, start := solvedPlayer(t, "XXXX/XXXX/XXXX/XXO.-w")
	keys := player.Table().Keys()

	require.NoError(t, player.CheckDiscount(keys, solver.DefaultTolerance))

	tests := []struct {
		name     string
		discount float32
		wantErr  error
	}{
		{"one", 1, solver.ErrInvalidOption},
		{"zero", 0, solver.ErrInvalidOption},
		{"other", 0.5, ErrDiscountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := NewPlayer(player.Table(), tt.discount, NewSelector(11))
			require.ErrorIs(t, other.CheckDiscount(keys, solver.DefaultTolerance), tt.wantErr)
		})
	}

	// Stored 90 after a forced pass, while 0.5 would give 50.
	other := NewPlayer(player.Table(), 0.5, NewSelector(11))
	require.ErrorIs(t, other.CheckDiscount([]othello.Key{start.Key()}, solver.DefaultTolerance), ErrDiscountMismatch)

	err := player.CheckDiscount([]othello.Key{othello.NewBoardStart().Key()}, solver.DefaultTolerance)
	require.ErrorIs(t, err, solver.ErrUnknownState)
}

func TestPlayer_Errors(t *testing.T) {
	player, _ := solvedPlayer(t, "XXXX/XXXX/XXXX/XXO.-b")

	_, err := player.BestMove(othello.NewBoardStart().Key())
	require.ErrorIs(t, err, solver.ErrUnknownState)

	_, err = player.BestMoveCandidates(-1)
	require.ErrorIs(t, err, othello.ErrInvalidKey)

	_, err = player.Value(othello.NewBoardStart().Key())
	require.ErrorIs(t, err, solver.ErrUnknownState)
}

func TestAgreement(t *testing.T) {
	player, _ := solvedPlayer(t, ".OX./.OX./.OX./....-b")
	keys := player.Table().Keys()

	agreement, err := Agreement(player, player, keys)
	require.NoError(t, err)
	require.Equal(t, float64(100), agreement)

	// Without lookahead only the immediate rewards count.
	unsolved := make(solver.ValueTable, len(keys))
	for _, key := range keys {
		unsolved[key] = 0
	}
	naive := NewPlayer(unsolved, solver.DefaultDiscount, NewSelector(11))

	agreement, err = Agreement(player, naive, keys)
	require.NoError(t, err)
	require.Less(t, agreement, float64(100))

	agreement, err = Agreement(player, naive, nil)
	require.NoError(t, err)
	require.Equal(t, float64(100), agreement)
}
