package api

import (
	"github.com/lk16/minithello/internal/othello"
)

// MoveView describes a legal move.
type MoveView struct {
	Move  int    `json:"move"`
	Field string `json:"field"`
}

// StateResponse describes a board and its solved value.
type StateResponse struct {
	Key      othello.Key `json:"key"`
	Board    string      `json:"board"`
	Rows     []string    `json:"rows"`
	Turn     string      `json:"turn"`
	Black    int         `json:"black"`
	White    int         `json:"white"`
	Terminal bool        `json:"terminal"`
	Winner   string      `json:"winner,omitempty"`
	Moves    []MoveView  `json:"moves"`
	Value    float32     `json:"value"`
}

// BestMoveResponse contains a chosen optimal move and every move it was chosen from.
type BestMoveResponse struct {
	Move         int             `json:"move"`
	Field        string          `json:"field"`
	Candidates   []int           `json:"candidates"`
	ActionValues map[int]float32 `json:"action_values"`
}

// MoveRequest is the body of a move submission.
type MoveRequest struct {
	Move *int `json:"move"`
}

type VersionResponse struct {
	Commit string `json:"commit"`
}

func colorName(color int) string {
	switch color {
	case othello.BLACK:
		return "black"
	case othello.WHITE:
		return "white"
	default:
		return "draw"
	}
}

// newStateResponse builds the view of a board with the given value.
func newStateResponse(board othello.Board, value float32) StateResponse {
	black, white := board.CountDiscs()

	moves := make([]MoveView, 0)
	if !board.IsTerminal() {
		for _, move := range board.Moves() {
			moves = append(moves, MoveView{Move: move, Field: othello.MoveToField(move)})
		}
	}

	response := StateResponse{
		Key:      board.Key(),
		Board:    board.String(),
		Rows:     board.ASCIIArtLines(),
		Turn:     colorName(board.Turn()),
		Black:    black,
		White:    white,
		Terminal: board.IsTerminal(),
		Moves:    moves,
		Value:    value,
	}

	if response.Terminal {
		response.Winner = colorName(board.Winner())
	}

	return response
}
