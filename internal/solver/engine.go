package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lk16/minithello/internal/othello"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDiscount  float32 = 0.9
	DefaultTolerance float32 = 0.01
	DefaultMaxSweeps         = 1000
)

var (
	ErrNotConverged  = errors.New("value iteration did not converge")
	ErrInvalidOption = errors.New("invalid engine option")
)

// SweepStats describes one completed sweep.
type SweepStats struct {
	Sweep    int
	MaxDelta float32
	Duration time.Duration
}

// Result summarizes a value iteration run.
type Result struct {
	Sweeps   int
	MaxDelta float32
	History  []float32 // max delta of every sweep
	Duration time.Duration
}

type Option func(e *Engine)

// Engine runs synchronous value iteration. Black maximizes and white minimizes the same value.
type Engine struct {
	discount  float32
	tolerance float32
	maxSweeps int
	workers   int
	progress  func(SweepStats)
	err       error // first invalid option, returned by Run and Sweep
}

// reject records the first rejected option.
func (e *Engine) reject(err error) {
	if e.err == nil {
		e.err = err
	}
}

// CheckDiscount returns an error unless discount lies strictly between 0 and 1.
func CheckDiscount(discount float32) error {
	if discount > 0 && discount < 1 {
		return nil
	}
	return fmt.Errorf("%w: discount %g must be between 0 and 1 exclusive", ErrInvalidOption, discount)
}

func WithDiscount(discount float32) Option {
	return func(e *Engine) {
		if err := CheckDiscount(discount); err != nil {
			e.reject(err)
			return
		}
		e.discount = discount
	}
}

func WithTolerance(tolerance float32) Option {
	return func(e *Engine) {
		if tolerance <= 0 {
			e.reject(fmt.Errorf("%w: tolerance %g must be positive", ErrInvalidOption, tolerance))
			return
		}
		e.tolerance = tolerance
	}
}

func WithMaxSweeps(sweeps int) Option {
	return func(e *Engine) {
		if sweeps <= 0 {
			e.reject(fmt.Errorf("%w: max sweeps %d must be positive", ErrInvalidOption, sweeps))
			return
		}
		e.maxSweeps = sweeps
	}
}

// WithWorkers splits every sweep over the given number of goroutines.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		if workers <= 0 {
			e.reject(fmt.Errorf("%w: workers %d must be positive", ErrInvalidOption, workers))
			return
		}
		e.workers = workers
	}
}

// WithProgress registers a callback that is called after every sweep.
func WithProgress(progress func(SweepStats)) Option {
	return func(e *Engine) {
		e.progress = progress
	}
}

// NewEngine applies options over the defaults. A rejected option keeps its default,
// and the engine refuses to run with ErrInvalidOption.
func NewEngine(options ...Option) *Engine {
	e := &Engine{ // Default values
		discount:  DefaultDiscount,
		tolerance: DefaultTolerance,
		maxSweeps: DefaultMaxSweeps,
		workers:   1,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Discount returns the discount factor used in backups.
func (e *Engine) Discount() float32 {
	return e.discount
}

// Tolerance returns the max delta below which iteration stops.
func (e *Engine) Tolerance() float32 {
	return e.tolerance
}

// Err returns the error of the first rejected option, if any.
func (e *Engine) Err() error {
	return e.err
}

// Run sweeps until the largest change of any value drops below the tolerance.
// If the sweep budget runs out first, the last table is returned with ErrNotConverged.
func (e *Engine) Run(ctx context.Context, table ValueTable) (ValueTable, Result, error) {
	if e.err != nil {
		return table, Result{}, e.err
	}

	start := time.Now()
	keys := table.Keys()

	var result Result
	current := table

	for {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return current, result, err
		}

		sweepStart := time.Now()

		next, maxDelta, err := e.sweep(keys, current)
		if err != nil {
			result.Duration = time.Since(start)
			return current, result, err
		}

		current = next
		result.Sweeps++
		result.MaxDelta = maxDelta
		result.History = append(result.History, maxDelta)

		if e.progress != nil {
			e.progress(SweepStats{
				Sweep:    result.Sweeps,
				MaxDelta: maxDelta,
				Duration: time.Since(sweepStart),
			})
		}

		if maxDelta < e.tolerance {
			break
		}

		if result.Sweeps >= e.maxSweeps {
			result.Duration = time.Since(start)
			return current, result, fmt.Errorf("%w: max delta %g after %d sweeps", ErrNotConverged, maxDelta, result.Sweeps)
		}
	}

	result.Duration = time.Since(start)
	return current, result, nil
}

// Sweep computes one synchronous backup of every value. The input table is not modified.
func (e *Engine) Sweep(table ValueTable) (ValueTable, float32, error) {
	if e.err != nil {
		return nil, 0, e.err
	}
	return e.sweep(table.Keys(), table)
}

// sweep backs up keys from table into a fresh table and returns the largest absolute change.
func (e *Engine) sweep(keys []othello.Key, table ValueTable) (ValueTable, float32, error) {
	values := make([]float32, len(keys))
	deltas := make([]float32, e.workers)

	chunk := (len(keys) + e.workers - 1) / e.workers

	// Workers only read table and write disjoint ranges of values.
	var group errgroup.Group
	for w := range e.workers {
		lo := w * chunk
		hi := min(lo+chunk, len(keys))

		if lo >= hi {
			continue
		}

		group.Go(func() error {
			for i := lo; i < hi; i++ {
				value, err := e.backup(keys[i], table)
				if err != nil {
					return err
				}

				values[i] = value

				delta := float32(math.Abs(float64(value - table[keys[i]])))
				if delta > deltas[w] {
					deltas[w] = delta
				}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, 0, err
	}

	next := make(ValueTable, len(keys))
	for i, key := range keys {
		next[key] = values[i]
	}

	maxDelta := float32(0)
	for _, delta := range deltas {
		maxDelta = max(maxDelta, delta)
	}

	return next, maxDelta, nil
}

// backup computes the new value of a single board.
func (e *Engine) backup(key othello.Key, table ValueTable) (float32, error) {
	board, err := othello.NewBoardFromKey(key)
	if err != nil {
		return 0, err
	}

	// Terminal boards keep value 0, their reward is added by the parent's action value.
	if board.IsTerminal() {
		return 0, nil
	}

	maximize := board.Turn() == othello.BLACK

	var best float32
	for i, move := range board.Moves() {
		value, err := actionValue(board, move, table, e.discount)
		if err != nil {
			return 0, err
		}

		if i == 0 || (maximize && value > best) || (!maximize && value < best) {
			best = value
		}
	}

	return best, nil
}

// ActionValues returns the one step lookahead value of every move on board:
// the reward of the resulting board plus the discounted value stored for it.
// Terminal boards get an empty map.
func ActionValues(board othello.Board, table ValueTable, discount float32) (map[int]float32, error) {
	values := make(map[int]float32)

	if board.IsTerminal() {
		return values, nil
	}

	for _, move := range board.Moves() {
		value, err := actionValue(board, move, table, discount)
		if err != nil {
			return nil, err
		}
		values[move] = value
	}

	return values, nil
}

func actionValue(board othello.Board, move int, table ValueTable, discount float32) (float32, error) {
	child := board.DoMove(move)

	next, err := table.Lookup(child.Key())
	if err != nil {
		return 0, err
	}

	// The conversion rounds the product, so no fused multiply-add changes the result.
	return child.Reward() + float32(discount*next), nil
}

// Solve enumerates every board reachable from start and runs value iteration over them.
func Solve(ctx context.Context, start othello.Board, options ...Option) (ValueTable, Result, error) {
	table := EnumerateReachable(start)
	return NewEngine(options...).Run(ctx, table)
}
