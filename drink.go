package main

import (
	"cmp"
	"errors"
	"fmt"
	"math"
)

// InfCost marks an operation that would dilute a drink downwards. It is
// larger than any total a run can accumulate.
const InfCost int64 = math.MaxInt64

// Input bounds. One blend costs at most 2*MaxCoordinate (2^37) and a judged
// log holds at most MaxOperationsPerTarget*MaxTargets operations (under 2^23),
// so a total stays below 2^60.
const (
	MaxCoordinate int64 = 1 << 36
	MaxTargets          = 1 << 20
)

// ErrInvalidOperation is returned when a blend uses a source that has not been
// produced yet or would make a drink thinner than its source.
var ErrInvalidOperation = errors.New("invalid operation")

// Drink is a point in the (sweetness, fizziness) plane.
type Drink struct {
	Sweetness int64
	Fizziness int64
}

// Origin is the base drink every run starts from.
var Origin = Drink{}

// Compare orders drinks by sweetness, then fizziness.
func (d Drink) Compare(o Drink) int {
	if c := cmp.Compare(d.Sweetness, o.Sweetness); c != 0 {
		return c
	}
	return cmp.Compare(d.Fizziness, o.Fizziness)
}

// Covers reports whether d can be used as a base for o.
func (d Drink) Covers(o Drink) bool {
	return d.Sweetness <= o.Sweetness && d.Fizziness <= o.Fizziness
}

func (d Drink) String() string {
	return fmt.Sprintf("(%d,%d)", d.Sweetness, d.Fizziness)
}

// Cost returns the price of blending result from source, or InfCost when
// result is thinner than source on either axis. Finite costs saturate at
// InfCost-1 for coordinates outside [0, MaxCoordinate].
func Cost(source, result Drink) int64 {
	if !source.Covers(result) {
		return InfCost
	}
	ds := result.Sweetness - source.Sweetness
	df := result.Fizziness - source.Fizziness
	if ds < 0 || df < 0 || ds > InfCost-1-df {
		return InfCost - 1
	}
	return ds + df
}

// Operation records that Result was blended from Source.
type Operation struct {
	Source Drink
	Result Drink
}

// Cost is the price of the operation.
func (op Operation) Cost() int64 { return Cost(op.Source, op.Result) }
