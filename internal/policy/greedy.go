package policy

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/lk16/minithello/internal/othello"
	"golang.org/x/exp/rand"
)

// ActionValues maps moves to their one step lookahead value.
type ActionValues map[int]float32

// GreedyValue returns the best value for turn: the maximum for black and the minimum for white.
// It returns 0 for an empty mapping.
func GreedyValue(turn int, values ActionValues) float32 {
	first := true

	var best float32
	for _, value := range values {
		if first || (turn == othello.BLACK && value > best) || (turn != othello.BLACK && value < best) {
			best = value
			first = false
		}
	}

	return best
}

// GreedyCandidates returns all moves whose value equals the best value for turn, in increasing order.
// Values are compared exactly.
func GreedyCandidates(turn int, values ActionValues) []int {
	if len(values) == 0 {
		return []int{}
	}

	best := GreedyValue(turn, values)

	candidates := make([]int, 0, len(values))
	for _, move := range sortedMoves(values) {
		if values[move] == best {
			candidates = append(candidates, move)
		}
	}

	return candidates
}

// nonGreedyMoves returns all moves not in GreedyCandidates, in increasing order.
func nonGreedyMoves(turn int, values ActionValues) []int {
	best := GreedyValue(turn, values)

	moves := make([]int, 0, len(values))
	for _, move := range sortedMoves(values) {
		if values[move] != best {
			moves = append(moves, move)
		}
	}

	return moves
}

// sortedMoves keeps random choices reproducible, map iteration order is not.
func sortedMoves(values ActionValues) []int {
	return slices.Sorted(maps.Keys(values))
}

// Selector breaks ties between moves at random.
type Selector struct {
	// rng is the random source
	rng *rand.Rand

	// rngMutex protects rng
	rngMutex sync.Mutex
}

// NewSelector creates a Selector. A seed of 0 seeds from the current time.
func NewSelector(seed uint64) *Selector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Selector{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Choose returns a uniformly random element of moves, or PassMove if moves is empty.
func (s *Selector) Choose(moves []int) int {
	if len(moves) == 0 {
		return othello.PassMove
	}

	s.rngMutex.Lock()
	defer s.rngMutex.Unlock()

	return moves[s.rng.Intn(len(moves))]
}

// chance returns true with probability p.
func (s *Selector) chance(p float64) bool {
	s.rngMutex.Lock()
	defer s.rngMutex.Unlock()

	return s.rng.Float64() < p
}

// GreedyAction picks one of the greedy candidates at random. It returns PassMove for an empty mapping.
func (s *Selector) GreedyAction(turn int, values ActionValues) int {
	return s.Choose(GreedyCandidates(turn, values))
}

// EpsilonGreedyAction picks a move that is not greedy with probability epsilon, and a greedy move otherwise.
// When all moves are greedy it always picks a greedy move.
func (s *Selector) EpsilonGreedyAction(turn int, values ActionValues, epsilon float64) int {
	if s.chance(epsilon) {
		if explore := nonGreedyMoves(turn, values); len(explore) > 0 {
			return s.Choose(explore)
		}
	}

	return s.GreedyAction(turn, values)
}
