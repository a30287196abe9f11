package othello

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoard_Key_Start(t *testing.T) {
	// cells 5 and 10 are black, 6 and 9 are white:
	// 3^10 + 2*3^9 + 2*3^6 + 3^5 = 100116, then the turn digit is appended.
	require.Equal(t, Key(300349), NewBoardStart().Key())
	require.Equal(t, Key(300350), NewBoardMust(NewPositionStart(), WHITE).Key())
}

func TestBoard_Key_Extremes(t *testing.T) {
	require.Equal(t, Key(1), NewBoardMust(NewPositionEmpty(), BLACK).Key())

	var allWhite Position
	for i := range allWhite {
		allWhite[i] = WHITE
	}
	require.Equal(t, MaxKey, NewBoardMust(allWhite, WHITE).Key())

	board, err := NewBoardFromKey(MaxKey)
	require.NoError(t, err)
	require.Equal(t, allWhite, board.Position())

	black, white := board.CountDiscs()
	require.Equal(t, 0, black)
	require.Equal(t, Cells, white)
}

// TestNewBoardFromKey_RoundTrip decodes every board reachable within a few moves of the start.
func TestNewBoardFromKey_RoundTrip(t *testing.T) {
	frontier := []Board{NewBoardStart()}
	seen := 0

	for range 6 {
		next := make([]Board, 0)
		for _, board := range frontier {
			decoded, err := NewBoardFromKey(board.Key())
			require.NoError(t, err)
			require.Equal(t, board, decoded)
			seen++

			next = append(next, board.GetChildren()...)
		}
		frontier = next
	}

	require.Greater(t, seen, 100)
}

func TestNewBoardFromKey_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  Key
	}{
		{"negative", -1},
		{"too large", MaxKey + 1},
		{"no turn digit", 3},
		{"zero", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoardFromKey(tt.key)
			require.ErrorIs(t, err, ErrInvalidKey)
			require.Panics(t, func() { NewBoardFromKeyMust(tt.key) })
		})
	}
}
