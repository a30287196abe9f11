package othello

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoardStart(t *testing.T) {
	board := NewBoardStart()

	require.Equal(t, BLACK, board.Turn())
	require.Equal(t, NewPositionStart(), board.Position())

	black, white := board.CountDiscs()
	require.Equal(t, 2, black)
	require.Equal(t, 2, white)

	require.True(t, board.HasMoves())
	require.False(t, board.IsTerminal())
	require.Equal(t, "..../.XO./.OX./....-b", board.String())
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name     string
		position Position
		turn     int
		wantErr  bool
	}{
		{"start black", NewPositionStart(), BLACK, false},
		{"start white", NewPositionStart(), WHITE, false},
		{"empty turn", NewPositionStart(), EMPTY, true},
		{"bad turn", NewPositionStart(), 3, true},
		{"bad square", Position{0: 5}, BLACK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.position, tt.turn)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewBoardFromString(t *testing.T) {
	board, err := NewBoardFromString("XO../O.../..../....-w")
	require.NoError(t, err)
	require.Equal(t, WHITE, board.Turn())
	require.Equal(t, BLACK, board.Square(0))
	require.Equal(t, WHITE, board.Square(1))
	require.Equal(t, WHITE, board.Square(4))
	require.Equal(t, EMPTY, board.Square(15))

	_, err = NewBoardFromString("XO../O.../..../....-x")
	require.Error(t, err)

	_, err = NewBoardFromString("XO../O.../....-b")
	require.ErrorIs(t, err, ErrInvalidPosition)

	_, err = NewBoardFromString("b")
	require.Error(t, err)
}

func TestBoard_Moves(t *testing.T) {
	tests := []struct {
		name      string
		board     string
		wantMoves []int
	}{
		{
			name:      "start",
			board:     "..../.XO./.OX./....-b",
			wantMoves: []int{3, 8, 9, 14},
		},
		{
			name:      "start white",
			board:     "..../.XO./.OX./....-w",
			wantMoves: []int{2, 5, 12, 15},
		},
		{
			name:      "no placement",
			board:     "XXXX/XXXX/XXXX/XXO.-w",
			wantMoves: []int{PassMove},
		},
		{
			name:      "full board",
			board:     "XXXX/XXXX/XXOO/OOOO-b",
			wantMoves: []int{PassMove},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromString(tt.board)
			require.NoError(t, err)
			require.Equal(t, tt.wantMoves, board.Moves())

			for _, move := range tt.wantMoves {
				require.True(t, board.IsValidMove(move), "Move %d should be valid", move)
			}
		})
	}
}

func TestBoard_IsValidMove(t *testing.T) {
	board := NewBoardStart()

	invalidMoves := []int{1, 4, 6, 7, 11, 13, 16, PassMove, -1, 17}
	for _, move := range invalidMoves {
		require.False(t, board.IsValidMove(move), "Move %d should be invalid", move)
	}
}

func TestBoard_DoMove(t *testing.T) {
	tests := []struct {
		name      string
		board     string
		move      int
		wantBoard string
	}{
		{
			name:      "single flip",
			board:     "..../.XO./.OX./....-b",
			move:      3,
			wantBoard: "..X./.XX./.OX./....-w",
		},
		{
			name:      "long run",
			board:     "XOO./..../..../....-b",
			move:      4,
			wantBoard: "XXXX/..../..../....-w",
		},
		{
			name:      "run ending at edge is kept",
			board:     ".OOO/O.../X.../....-b",
			move:      1,
			wantBoard: "XOOO/X.../X.../....-w",
		},
		{
			name:      "two directions",
			board:     "X.X./.OO./..../....-b",
			move:      11,
			wantBoard: "X.X./.XX./..X./....-w",
		},
		{
			name:      "white move",
			board:     "..X./.XX./.OX./....-w",
			move:      2,
			wantBoard: ".OX./.OX./.OX./....-b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromString(tt.board)
			require.NoError(t, err)
			require.True(t, board.IsValidMove(tt.move))

			want, err := NewBoardFromString(tt.wantBoard)
			require.NoError(t, err)
			require.Equal(t, want, board.DoMove(tt.move))
		})
	}
}

func TestBoard_DoMove_SingleFlipCounts(t *testing.T) {
	board := NewBoardStart().DoMove(3)

	black, white := board.CountDiscs()
	require.Equal(t, 4, black)
	require.Equal(t, 1, white)
	require.Equal(t, BLACK, board.Square(6))
	require.Equal(t, WHITE, board.Square(9))
}

func TestBoard_DoMove_Pass(t *testing.T) {
	board, err := NewBoardFromString("XXXX/XXXX/XXXX/XXO.-w")
	require.NoError(t, err)

	require.False(t, board.HasMoves())
	require.False(t, board.IsTerminal())
	require.Equal(t, []int{PassMove}, board.Moves())

	passed := board.DoMove(PassMove)
	require.Equal(t, BLACK, passed.Turn())
	require.Equal(t, board.Position(), passed.Position())
	require.Equal(t, []int{16}, passed.Moves())
}

func TestBoard_GetChildren(t *testing.T) {
	board := NewBoardStart()

	children := board.GetChildren()
	require.Len(t, children, 4)

	keys := make(map[Key]bool)
	for _, child := range children {
		require.Equal(t, WHITE, child.Turn())
		keys[child.Key()] = true
	}
	require.Len(t, keys, 4)
}

func TestBoard_Terminal(t *testing.T) {
	tests := []struct {
		name         string
		board        string
		wantTerminal bool
		wantWinner   int
		wantReward   float32
	}{
		{"black wins 10-6", "XXXX/XXXX/XXOO/OOOO-b", true, BLACK, 100},
		{"black wins with white to move", "XXXX/XXXX/XXOO/OOOO-w", true, BLACK, 100},
		{"draw 8-8", "XXXX/XXXX/OOOO/OOOO-b", true, DRAW, 0},
		{"white wins", "OOOO/OOOO/OOOO/XXXX-w", true, WHITE, -100},
		{"no opponent discs", "X.../..../..../....-w", true, BLACK, 100},
		{"start", "..../.XO./.OX./....-b", false, DRAW, 0},
		{"only black stuck", "XXXX/XXXX/XXXX/XXO.-w", false, DRAW, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromString(tt.board)
			require.NoError(t, err)

			require.Equal(t, tt.wantTerminal, board.IsTerminal())
			require.Equal(t, tt.wantWinner, board.Winner())
			require.Equal(t, tt.wantReward, board.Reward())
		})
	}
}

func TestBoard_Equal(t *testing.T) {
	board1 := NewBoardStart()
	board2 := NewBoardStart()

	require.True(t, board1.Equal(board2))
	require.False(t, board1.Equal(board1.DoMove(3)))
	require.False(t, board1.Equal(NewBoardMust(NewPositionStart(), WHITE)))
}

func TestBoard_ASCIIArtLines(t *testing.T) {
	lines := NewBoardStart().ASCIIArtLines()

	require.Equal(t, []string{
		"+-a-b-c-d-+",
		"1     ·   |",
		"2   ● ○ · |",
		"3 · ○ ●   |",
		"4   ·     |",
		"+---------+",
	}, lines)
}

func TestBoard_OpponentCalculation(t *testing.T) {
	require.Equal(t, WHITE, NewBoardStart().Opponent())
	require.Equal(t, BLACK, NewBoardMust(NewPositionStart(), WHITE).Opponent())
}
