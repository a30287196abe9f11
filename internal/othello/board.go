package othello

import (
	"errors"
	"fmt"
)

// WinReward is the reward for a finished game won by black. A win for white is worth -WinReward.
const WinReward float32 = 100

var ErrInvalidMove = errors.New("invalid move")

// Board represents a 4x4 Othello position with the side to move.
type Board struct {
	position Position
	turn     int

	// black and white are derived from position when the board is built
	black int
	white int
}

// newBoard builds a board and counts its discs.
func newBoard(position Position, turn int) Board {
	black, white := position.CountDiscs()
	return Board{
		position: position,
		turn:     turn,
		black:    black,
		white:    white,
	}
}

// NewBoardStart creates a new board with the starting position, black to move.
func NewBoardStart() Board {
	return newBoard(NewPositionStart(), BLACK)
}

// NewBoard creates a board from a position and the side to move.
func NewBoard(position Position, turn int) (Board, error) {
	if turn != BLACK && turn != WHITE {
		return Board{}, fmt.Errorf("invalid turn: %d", turn)
	}

	for index, square := range position {
		if square != EMPTY && square != BLACK && square != WHITE {
			return Board{}, fmt.Errorf("%w: square %d has colour %d", ErrInvalidPosition, index, square)
		}
	}

	return newBoard(position, turn), nil
}

// NewBoardMust creates a board and panics if it is invalid.
func NewBoardMust(position Position, turn int) Board {
	board, err := NewBoard(position, turn)
	if err != nil {
		panic(err)
	}
	return board
}

// NewBoardFromString creates a board from a position string followed by "-b" or "-w" for the side to move.
func NewBoardFromString(s string) (Board, error) {
	if len(s) < 2 {
		return Board{}, fmt.Errorf("board string too short: %q", s)
	}

	var turn int
	switch s[len(s)-2:] {
	case "-b":
		turn = BLACK
	case "-w":
		turn = WHITE
	default:
		return Board{}, fmt.Errorf("invalid turn: %s", s[len(s)-2:])
	}

	position, err := NewPositionFromString(s[:len(s)-2])
	if err != nil {
		return Board{}, err
	}

	return NewBoard(position, turn)
}

// Position returns the underlying position.
func (b Board) Position() Position {
	return b.position
}

// Turn returns the side to move.
func (b Board) Turn() int {
	return b.turn
}

// Opponent returns the colour of the side not to move.
func (b Board) Opponent() int {
	return BLACK + WHITE - b.turn
}

// Square returns the colour at the given cell index.
func (b Board) Square(index int) int {
	return b.position.Square(index)
}

// CountDiscs returns the number of black and white discs.
func (b Board) CountDiscs() (black, white int) {
	return b.black, b.white
}

// IsValidMove checks if a move is valid. Passing is only valid without other moves.
func (b Board) IsValidMove(move int) bool {
	if move == PassMove {
		return !b.HasMoves()
	}

	if move < MinMove || move > MaxMove {
		return false
	}

	return b.position.flipped(move-1, b.turn) != 0
}

// HasMoves checks if the side to move can place a disc.
func (b Board) HasMoves() bool {
	return b.position.hasMoves(b.turn)
}

// Moves returns all valid moves in increasing order, or only PassMove if no disc can be placed.
func (b Board) Moves() []int {
	bitset := b.position.moves(b.turn)
	if bitset == 0 {
		return []int{PassMove}
	}

	moves := make([]int, 0, Cells)
	for index := range Cells {
		if bitset&(1<<index) != 0 {
			moves = append(moves, index+1)
		}
	}
	return moves
}

// DoMove performs a move and returns the new board. The move must be one of Moves().
func (b Board) DoMove(move int) Board {
	if move == PassMove {
		next := b
		next.turn = b.Opponent()
		return next
	}

	return newBoard(b.position.doMove(move-1, b.turn), b.Opponent())
}

// GetChildren returns the boards reachable with one move, in the order of Moves().
func (b Board) GetChildren() []Board {
	moves := b.Moves()
	children := make([]Board, len(moves))
	for i, move := range moves {
		children[i] = b.DoMove(move)
	}
	return children
}

// IsTerminal checks if neither side can place a disc, regardless of whose turn it is.
func (b Board) IsTerminal() bool {
	return !b.position.hasMoves(BLACK) && !b.position.hasMoves(WHITE)
}

// Winner returns the colour with most discs on a terminal board, or DRAW.
// It returns DRAW for boards that are not terminal.
func (b Board) Winner() int {
	if !b.IsTerminal() {
		return DRAW
	}

	switch {
	case b.black > b.white:
		return BLACK
	case b.black < b.white:
		return WHITE
	default:
		return DRAW
	}
}

// Reward returns WinReward when black won, -WinReward when white won and 0 otherwise.
func (b Board) Reward() float32 {
	switch b.Winner() {
	case BLACK:
		return WinReward
	case WHITE:
		return -WinReward
	default:
		return 0
	}
}

// Equal checks if two boards are equal.
func (b Board) Equal(other Board) bool {
	return b.position == other.position && b.turn == other.turn
}

// ASCIIArtLines returns the ascii art lines for the board. Valid moves are marked with a dot.
func (b Board) ASCIIArtLines() []string {
	moves := b.position.moves(b.turn)
	lines := make([]string, Size+2)

	lines[0] = "+-a-b-c-d-+"
	for y := range Size {
		line := fmt.Sprintf("%d ", y+1)

		for x := range Size {
			index := y*Size + x

			switch {
			case b.position[index] == WHITE:
				line += "○ "
			case b.position[index] == BLACK:
				line += "● "
			case moves&(1<<index) != 0:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[y+1] = line + "|"
	}

	lines[Size+1] = "+---------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print() {
	for _, line := range b.ASCIIArtLines() {
		fmt.Println(line)
	}
}

// String returns the position string followed by "-b" or "-w".
func (b Board) String() string {
	if b.turn == WHITE {
		return b.position.String() + "-w"
	}
	return b.position.String() + "-b"
}
