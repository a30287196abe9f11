package othello

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EMPTY = 0
	BLACK = 1
	WHITE = 2
	DRAW  = EMPTY
)

const (
	Size  = 4
	Cells = Size * Size

	PassMove = 0
	MinMove  = 1
	MaxMove  = Cells
)

var ErrInvalidPosition = errors.New("invalid position")

// directions lists the eight compass directions as (row, col) increments.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Position holds the colour of every cell, indexed row-major (index = row*Size + col).
type Position [Cells]int8

// NewPositionStart creates the starting position: the four center cells split two and two.
func NewPositionStart() Position {
	var p Position
	p[1*Size+1] = BLACK
	p[1*Size+2] = WHITE
	p[2*Size+1] = WHITE
	p[2*Size+2] = BLACK
	return p
}

// NewPositionEmpty creates a position without discs.
func NewPositionEmpty() Position {
	return Position{}
}

// NewPositionFromString parses a position from 16 cells written as 'X' (black), 'O' (white) and '.' or '-' (empty).
// Spaces and '/' are ignored, so "..../.XO./.OX./...." is the starting position.
func NewPositionFromString(s string) (Position, error) {
	var p Position

	index := 0
	for _, r := range s {
		var square int8
		switch r {
		case ' ', '/', '\n':
			continue
		case 'X', 'x':
			square = BLACK
		case 'O', 'o':
			square = WHITE
		case '.', '-':
			square = EMPTY
		default:
			return Position{}, fmt.Errorf("%w: unexpected character %q", ErrInvalidPosition, r)
		}

		if index >= Cells {
			return Position{}, fmt.Errorf("%w: more than %d cells", ErrInvalidPosition, Cells)
		}

		p[index] = square
		index++
	}

	if index != Cells {
		return Position{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidPosition, index, Cells)
	}

	return p, nil
}

// NewPositionMust works like NewPositionFromString but panics on invalid input.
func NewPositionMust(s string) Position {
	p, err := NewPositionFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Square returns the colour at the given index.
func (p Position) Square(index int) int {
	return int(p[index])
}

// CountDiscs returns the number of black and white discs.
func (p Position) CountDiscs() (black, white int) {
	for _, square := range p {
		switch square {
		case BLACK:
			black++
		case WHITE:
			white++
		}
	}
	return black, white
}

// flipped returns a bitset with all discs that would be flipped if color played on index.
// A direction only flips when a non-empty run of opponent discs is closed by a disc of color.
func (p Position) flipped(index, color int) uint16 {
	if p[index] != EMPTY {
		return 0
	}

	flipped := uint16(0)
	row, col := index/Size, index%Size

	for _, dir := range directions {
		dy, dx := dir[0], dir[1]
		run := uint16(0)

		for s := 1; ; s++ {
			y := row + dy*s
			x := col + dx*s
			if y < 0 || y >= Size || x < 0 || x >= Size {
				break
			}

			cur := y*Size + x
			square := int(p[cur])

			if square == EMPTY {
				break
			}

			if square == color {
				flipped |= run
				break
			}

			run |= 1 << cur
		}
	}

	return flipped
}

// moves returns a bitset with all cells where color can place a disc.
func (p Position) moves(color int) uint16 {
	moves := uint16(0)
	for index := range Cells {
		if p.flipped(index, color) != 0 {
			moves |= 1 << index
		}
	}
	return moves
}

// hasMoves checks if color can place a disc anywhere.
func (p Position) hasMoves(color int) bool {
	for index := range Cells {
		if p.flipped(index, color) != 0 {
			return true
		}
	}
	return false
}

// doMove returns a copy of the position where color placed a disc on index.
func (p Position) doMove(index, color int) Position {
	flipped := p.flipped(index, color)

	next := p
	next[index] = int8(color)
	for i := range Cells {
		if flipped&(1<<i) != 0 {
			next[i] = int8(color)
		}
	}
	return next
}

// String returns the rows of the position separated by '/'.
func (p Position) String() string {
	var sb strings.Builder
	for index, square := range p {
		if index > 0 && index%Size == 0 {
			sb.WriteByte('/')
		}
		switch square {
		case BLACK:
			sb.WriteByte('X')
		case WHITE:
			sb.WriteByte('O')
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
