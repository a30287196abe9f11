package othello

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldToMove(t *testing.T) {
	tests := []struct {
		field    string
		wantMove int
		wantErr  bool
	}{
		{"a1", 1, false},
		{"d1", 4, false},
		{"a2", 5, false},
		{"D4", 16, false},
		{"c1", 3, false},
		{"--", PassMove, false},
		{"ps", PassMove, false},
		{"e1", 0, true},
		{"a5", 0, true},
		{"a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			move, err := FieldToMove(tt.field)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidField)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantMove, move)
		})
	}
}

func TestMoveToField(t *testing.T) {
	for move := MinMove; move <= MaxMove; move++ {
		parsed, err := FieldToMove(MoveToField(move))
		require.NoError(t, err)
		require.Equal(t, move, parsed)
	}

	require.Equal(t, "--", MoveToField(PassMove))
}

func TestNewGameFromString(t *testing.T) {
	game, err := NewGameFromString("c1 b1")
	require.NoError(t, err)

	require.Equal(t, []int{3, 2}, game.Moves())
	require.Equal(t, "c1 b1", game.String())
	require.Equal(t, BLACK, game.Board().Turn())
	require.Len(t, game.Boards(), 3)
	require.Equal(t, NewBoardStart(), game.Boards()[0])
}

func TestGame_PushMove_Invalid(t *testing.T) {
	game := NewGame()

	err := game.PushMove(1)
	require.ErrorIs(t, err, ErrInvalidMove)
	require.Empty(t, game.Moves())

	_, err = NewGameFromString("c1 zz")
	require.ErrorIs(t, err, ErrInvalidField)

	_, err = NewGameFromMoves([]int{3, 3})
	require.ErrorIs(t, err, ErrInvalidMove)
}

func TestGame_PushMove_AddsForcedPass(t *testing.T) {
	start, err := NewBoardFromString("XO../O.../..../....-b")
	require.NoError(t, err)

	game := NewGameWithStart(start)

	// After c1 white has no placement left, so its pass is recorded.
	require.NoError(t, game.PushMove(3))
	require.Equal(t, []int{3, PassMove}, game.Moves())
	require.Equal(t, BLACK, game.Board().Turn())
	require.False(t, game.IsOver())

	// An explicit pass right after the forced one is ignored.
	require.NoError(t, game.PushMove(PassMove))
	require.Equal(t, []int{3, PassMove}, game.Moves())

	require.NoError(t, game.PushMove(9))
	require.True(t, game.IsOver())
	require.Equal(t, BLACK, game.Winner())
	require.Equal(t, "c1 -- a3", game.String())
}

func TestGame_PopMove(t *testing.T) {
	start, err := NewBoardFromString("XO../O.../..../....-b")
	require.NoError(t, err)

	game := NewGameWithStart(start)
	game.PopMove()
	require.Empty(t, game.Moves())

	require.NoError(t, game.PushMove(3))
	game.PopMove()
	require.Empty(t, game.Moves())
	require.Equal(t, start, game.Board())
}
