package main

import (
	"fmt"
	"slices"
)

// Blender holds the state of one run: which drinks exist, which targets are
// still missing and the operations applied so far.
type Blender struct {
	// produced is in insertion order, origin first. Nearest-source lookups
	// depend on that order for tie-breaking.
	produced []Drink
	// pending is kept sorted by Drink.Compare.
	pending []Drink

	// unused sweetness / fizziness values of targets, sorted ascending
	sweet []int64
	fizz  []int64

	totalCost int64
	ops       []Operation
	// snapshots used by the lookahead search skip the operation log
	noLog bool
}

// NewBlender builds the initial state for targets. Duplicate targets collapse
// into one and the origin is dropped since it already exists.
func NewBlender(targets []Drink) *Blender {
	pending := slices.Clone(targets)
	slices.SortFunc(pending, Drink.Compare)
	pending = slices.Compact(pending)
	pending = slices.DeleteFunc(pending, func(d Drink) bool { return d == Origin })

	b := &Blender{
		produced: []Drink{Origin},
		pending:  pending,
		sweet:    make([]int64, len(pending)),
		fizz:     make([]int64, len(pending)),
	}
	for i, d := range pending {
		b.sweet[i] = d.Sweetness
		b.fizz[i] = d.Fizziness
	}
	slices.Sort(b.sweet)
	slices.Sort(b.fizz)
	return b
}

// IsComplete reports whether every target has been produced.
func (b *Blender) IsComplete() bool { return len(b.pending) == 0 }

// TotalCost is the sum of the costs of all applied operations.
func (b *Blender) TotalCost() int64 { return b.totalCost }

// Operations returns the applied operations in order. The slice is shared
// with the Blender.
func (b *Blender) Operations() []Operation { return b.ops }

// Pending returns the targets not produced yet, smallest first.
func (b *Blender) Pending() []Drink { return b.pending }

// Produced returns every drink made so far in insertion order.
func (b *Blender) Produced() []Drink { return b.produced }

func (b *Blender) isProduced(d Drink) bool {
	return slices.Contains(b.produced, d)
}

// ApplyOperation blends result from source and records it.
func (b *Blender) ApplyOperation(source, result Drink) error {
	if !b.isProduced(source) {
		return fmt.Errorf("%w: source %v has not been produced", ErrInvalidOperation, source)
	}
	if !source.Covers(result) {
		return fmt.Errorf("%w: cannot thin %v down to %v", ErrInvalidOperation, source, result)
	}
	c := Cost(source, result)
	if c > InfCost-1-b.totalCost {
		return fmt.Errorf("%w: total cost overflows blending %v from %v", ErrInvalidOperation, result, source)
	}

	b.totalCost += c
	if !b.isProduced(result) {
		b.produced = append(b.produced, result)
	}
	if i, ok := slices.BinarySearchFunc(b.pending, result, Drink.Compare); ok {
		b.pending = slices.Delete(b.pending, i, i+1)
	}
	b.sweet = removeOne(b.sweet, result.Sweetness)
	b.fizz = removeOne(b.fizz, result.Fizziness)
	if !b.noLog {
		b.ops = append(b.ops, Operation{Source: source, Result: result})
	}
	return nil
}

// mustApply is used by the heuristics, which only ever pick produced,
// covering sources. A failure there is a bug, not an input problem.
func (b *Blender) mustApply(source, result Drink) {
	if err := b.ApplyOperation(source, result); err != nil {
		panic(err)
	}
}

// nearestSource returns the produced drink that makes d cheapest. The first
// strictly cheaper drink in insertion order wins.
func (b *Blender) nearestSource(d Drink) Drink {
	best, bestCost := Origin, Cost(Origin, d)
	for _, p := range b.produced {
		if c := Cost(p, d); c < bestCost {
			best, bestCost = p, c
		}
	}
	return best
}

// GreedyStep makes the smallest pending target from its nearest source.
func (b *Blender) GreedyStep() bool {
	if b.IsComplete() {
		return false
	}
	target := b.pending[0]
	b.mustApply(b.nearestSource(target), target)
	return true
}

// ReplenishStep makes an intermediate drink out of the smallest unused
// sweetness and fizziness values, which later targets can build on cheaply.
// If that drink already exists the two values are discarded instead.
func (b *Blender) ReplenishStep() bool {
	if b.IsComplete() || len(b.sweet) == 0 || len(b.fizz) == 0 {
		return false
	}
	d := Drink{Sweetness: b.sweet[0], Fizziness: b.fizz[0]}
	if b.isProduced(d) {
		b.sweet = b.sweet[1:]
		b.fizz = b.fizz[1:]
		return false
	}
	b.mustApply(b.nearestSource(d), d)
	return true
}

// snapshot copies the state for the lookahead search. The copy does not
// record operations.
func (b *Blender) snapshot() *Blender {
	return &Blender{
		produced:  slices.Clone(b.produced),
		pending:   slices.Clone(b.pending),
		sweet:     slices.Clone(b.sweet),
		fizz:      slices.Clone(b.fizz),
		totalCost: b.totalCost,
		noLog:     true,
	}
}

func removeOne(s []int64, v int64) []int64 {
	if i, ok := slices.BinarySearch(s, v); ok {
		return slices.Delete(s, i, i+1)
	}
	return s
}
