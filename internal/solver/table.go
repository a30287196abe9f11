package solver

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/lk16/minithello/internal/othello"
)

var ErrUnknownState = errors.New("unknown state")

// ValueTable maps the key of every enumerated board to its value.
type ValueTable map[othello.Key]float32

// Lookup returns the value of a board key. Keys missing from the table are an error, never an implicit 0.
func (t ValueTable) Lookup(key othello.Key) (float32, error) {
	value, ok := t[key]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownState, key)
	}
	return value, nil
}

// Keys returns all keys in increasing order.
func (t ValueTable) Keys() []othello.Key {
	return slices.Sorted(maps.Keys(t))
}

// Clone returns a copy of the table.
func (t ValueTable) Clone() ValueTable {
	return maps.Clone(t)
}
