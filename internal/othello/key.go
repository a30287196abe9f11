package othello

import (
	"errors"
	"fmt"
)

// Key identifies a board: the cells as base-3 digits (first cell most significant), followed by one digit for the turn.
type Key int

// MaxKey is the largest key: every cell white and white to move.
const MaxKey Key = 129140162 // 3^17 - 1

var ErrInvalidKey = errors.New("invalid board key")

// Key returns the key of the board.
func (b Board) Key() Key {
	key := 0
	for _, square := range b.position {
		key = key*3 + int(square)
	}
	return Key(key*3 + b.turn)
}

// NewBoardFromKey decodes a key produced by Board.Key. Discs are counted while the cells are unpacked.
func NewBoardFromKey(key Key) (Board, error) {
	if key < 0 || key > MaxKey {
		return Board{}, fmt.Errorf("%w: %d out of range", ErrInvalidKey, key)
	}

	turn := int(key % 3)
	if turn == EMPTY {
		return Board{}, fmt.Errorf("%w: %d has no turn digit", ErrInvalidKey, key)
	}

	board := Board{turn: turn}

	rest := int(key / 3)
	for index := Cells - 1; index >= 0; index-- {
		square := rest % 3
		rest /= 3

		board.position[index] = int8(square)
		switch square {
		case BLACK:
			board.black++
		case WHITE:
			board.white++
		}
	}

	return board, nil
}

// NewBoardFromKeyMust decodes a key and panics if it is invalid.
func NewBoardFromKeyMust(key Key) Board {
	board, err := NewBoardFromKey(key)
	if err != nil {
		panic(err)
	}
	return board
}
