package main

import (
	"errors"
	"fmt"
	"math"
)

// Scoring constants of the contest the solver targets.
const (
	// MaxOperationsPerTarget caps an operation log at this many times N.
	MaxOperationsPerTarget = 5
	// CoordinateScale is L in the score formula.
	CoordinateScale = 1e9
)

var (
	// ErrTooManyOperations is returned when a log exceeds 5N operations.
	ErrTooManyOperations = errors.New("too many operations")
	// ErrIncomplete is returned when a log leaves a target unproduced.
	ErrIncomplete = errors.New("targets left unproduced")
)

// Verdict is the outcome of judging an accepted operation log.
type Verdict struct {
	Operations int
	Cost       int64
	Score      int64
}

// Score converts a total cost into contest points:
// round(10^6 * N * L / (1 + cost)).
func Score(n int, cost int64) int64 {
	return int64(math.Round(1e6 * float64(n) * CoordinateScale / float64(1+cost)))
}

// Judge replays ops against inst under the same rules the solver obeys and
// scores the result.
func Judge(inst *Instance, ops []Operation) (Verdict, error) {
	n := len(inst.Targets)
	if limit := MaxOperationsPerTarget * n; len(ops) > limit {
		return Verdict{}, fmt.Errorf("%w: %d > %d", ErrTooManyOperations, len(ops), limit)
	}

	b := NewBlender(inst.Targets)
	for i, op := range ops {
		if err := b.ApplyOperation(op.Source, op.Result); err != nil {
			return Verdict{}, fmt.Errorf("operation %d: %w", i, err)
		}
	}
	if !b.IsComplete() {
		return Verdict{}, fmt.Errorf("%w: %d remaining, first %v", ErrIncomplete, len(b.Pending()), b.Pending()[0])
	}
	return Verdict{
		Operations: len(ops),
		Cost:       b.TotalCost(),
		Score:      Score(n, b.TotalCost()),
	}, nil
}
