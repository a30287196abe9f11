package othello

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidField = errors.New("invalid field")

// FieldToMove converts a field notation (e.g. "a1", "d4") to a move (1-16).
// PassMove is returned if the field is "--", "ps", or "pa".
func FieldToMove(field string) (int, error) {
	if len(field) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	field = strings.ToLower(field)

	if field == "--" || field == "ps" || field == "pa" {
		return PassMove, nil
	}

	if !('a' <= field[0] && field[0] <= 'd' && '1' <= field[1] && field[1] <= '4') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	x := int(field[0] - 'a')
	y := int(field[1] - '1')
	return y*Size + x + 1, nil
}

// MoveToField converts a move to field notation. Pass is written as "--".
func MoveToField(move int) string {
	if move < MinMove || move > MaxMove {
		return "--"
	}

	index := move - 1
	return fmt.Sprintf("%c%d", 'a'+index%Size, index/Size+1)
}
