package othello

import (
	"fmt"
	"strings"
)

// Game represents an Othello game, either complete or in progress.
type Game struct {
	// moves is the list of moves in the game. Forced passes are added automatically.
	moves []int

	// start is the board before any move is played. This allows games from custom positions.
	start Board
}

// NewGameWithStart creates a new empty game with a custom start board.
func NewGameWithStart(start Board) *Game {
	return &Game{
		moves: make([]int, 0),
		start: start,
	}
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return NewGameWithStart(NewBoardStart())
}

// NewGameFromMoves creates a new game from a list of moves.
func NewGameFromMoves(moves []int) (*Game, error) {
	game := NewGame()

	for _, move := range moves {
		if err := game.PushMove(move); err != nil {
			return nil, fmt.Errorf("failed to push move: %w", err)
		}
	}

	return game, nil
}

// NewGameFromString creates a new game from whitespace separated fields, such as "c1 d1 d2".
func NewGameFromString(s string) (*Game, error) {
	words := strings.Fields(s)
	moves := make([]int, 0, len(words))

	for _, word := range words {
		move, err := FieldToMove(word)
		if err != nil {
			return nil, fmt.Errorf("failed to parse move %s: %w", word, err)
		}
		moves = append(moves, move)
	}

	return NewGameFromMoves(moves)
}

// Start returns the board before the first move.
func (g *Game) Start() Board {
	return g.start
}

// Moves returns a copy of the moves played so far.
func (g *Game) Moves() []int {
	moves := make([]int, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// Board returns the last board in the game.
func (g *Game) Board() Board {
	return g.getBoard(len(g.moves))
}

// Boards returns every board of the game, starting with the start board.
func (g *Game) Boards() []Board {
	boards := make([]Board, 0, len(g.moves)+1)

	board := g.start
	boards = append(boards, board)
	for _, move := range g.moves {
		board = board.DoMove(move)
		boards = append(boards, board)
	}

	return boards
}

// getBoard returns the board after doing the moves up to the given move index.
func (g *Game) getBoard(moveIndex int) Board {
	board := g.start

	for i := range moveIndex {
		board = board.DoMove(g.moves[i])
	}

	return board
}

// PushMove appends a move to the game.
func (g *Game) PushMove(move int) error {
	moveCount := len(g.moves)

	if moveCount > 0 {
		lastMove := g.moves[moveCount-1]

		// Prevent double pass.
		if lastMove == PassMove && move == PassMove {
			return nil
		}
	}

	board := g.Board()
	if !board.IsValidMove(move) {
		return fmt.Errorf("%w: %d on %s", ErrInvalidMove, move, board)
	}

	g.moves = append(g.moves, move)

	// Try adding a pass move if we didn't pass last move.
	if move != PassMove {
		board = board.DoMove(move)

		// Add pass move if current player doesn't have moves but opponent does.
		if !board.HasMoves() && !board.IsTerminal() {
			g.moves = append(g.moves, PassMove)
		}
	}

	return nil
}

// PopMove undoes the last move.
func (g *Game) PopMove() {
	if len(g.moves) == 0 {
		return
	}

	poppedMoves := 1
	// Prevent having a last board without moves.
	if g.moves[len(g.moves)-1] == PassMove && len(g.moves) >= 2 {
		poppedMoves = 2
	}

	g.moves = g.moves[:len(g.moves)-poppedMoves]
}

// IsOver checks if neither side can move on the last board.
func (g *Game) IsOver() bool {
	return g.Board().IsTerminal()
}

// Winner returns the winner of a finished game, or DRAW if it is a draw or not over.
func (g *Game) Winner() int {
	return g.Board().Winner()
}

// String returns the moves in field notation.
func (g *Game) String() string {
	fields := make([]string, len(g.moves))
	for i, move := range g.moves {
		fields[i] = MoveToField(move)
	}
	return strings.Join(fields, " ")
}
