package solver

import (
	"github.com/lk16/minithello/internal/othello"
)

// EnumerateReachable discovers every board reachable from start, breadth first.
// The returned table contains each discovered key with value 0. Terminal boards are not expanded.
func EnumerateReachable(start othello.Board) ValueTable {
	table := make(ValueTable)
	frontier := []othello.Key{start.Key()}

	for len(frontier) > 0 {
		next := make([]othello.Key, 0, len(frontier))
		queued := make(map[othello.Key]struct{})

		for _, key := range frontier {
			if _, ok := table[key]; ok {
				continue
			}

			table[key] = 0

			board := othello.NewBoardFromKeyMust(key)
			if board.IsTerminal() {
				continue
			}

			for _, child := range board.GetChildren() {
				childKey := child.Key()

				if _, ok := table[childKey]; ok {
					continue
				}

				if _, ok := queued[childKey]; ok {
					continue
				}

				queued[childKey] = struct{}{}
				next = append(next, childKey)
			}
		}

		frontier = next
	}

	return table
}
