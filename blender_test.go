package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s, f int64) Drink { return Drink{Sweetness: s, Fizziness: f} }

func TestCost(t *testing.T) {
	assert.Equal(t, int64(8), Cost(Origin, d(3, 5)))
	assert.Equal(t, int64(0), Cost(d(2, 2), d(2, 2)))
	assert.Equal(t, InfCost, Cost(d(3, 1), d(2, 5)))
	assert.Equal(t, InfCost, Cost(d(1, 3), d(2, 2)))
	assert.Equal(t, 2*MaxCoordinate, Cost(Origin, d(MaxCoordinate, MaxCoordinate)))
	assert.Equal(t, InfCost-1, Cost(Origin, d(math.MaxInt64, 1)))
}

func TestApplyOperation_LargestCoordinate(t *testing.T) {
	b := NewBlender([]Drink{d(MaxCoordinate, MaxCoordinate)})

	require.NoError(t, b.ApplyOperation(Origin, d(MaxCoordinate, MaxCoordinate)))
	assert.True(t, b.IsComplete())
	assert.Equal(t, 2*MaxCoordinate, b.TotalCost())
}

func TestApplyOperation_CostOverflow(t *testing.T) {
	b := NewBlender([]Drink{d(math.MaxInt64, 0)})

	// a finite cost of MaxInt64-1 is still a legal blend
	require.NoError(t, b.ApplyOperation(Origin, d(math.MaxInt64-1, 0)))
	err := b.ApplyOperation(d(math.MaxInt64-1, 0), d(math.MaxInt64, 0))
	require.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, InfCost-1, b.TotalCost())
	assert.Equal(t, []Drink{d(math.MaxInt64, 0)}, b.Pending())
}

func TestDrinkCompare(t *testing.T) {
	assert.Negative(t, d(1, 9).Compare(d(2, 0)))
	assert.Negative(t, d(2, 0).Compare(d(2, 1)))
	assert.Zero(t, d(2, 1).Compare(d(2, 1)))
	assert.Positive(t, d(3, 0).Compare(d(2, 7)))
}

func TestNewBlender_DedupAndDropOrigin(t *testing.T) {
	b := NewBlender([]Drink{d(4, 1), d(1, 1), d(0, 0), d(1, 1), d(1, 0)})

	require.Equal(t, []Drink{d(1, 0), d(1, 1), d(4, 1)}, b.Pending())
	require.Equal(t, []Drink{Origin}, b.Produced())
	assert.Equal(t, []int64{1, 1, 4}, b.sweet)
	assert.Equal(t, []int64{0, 1, 1}, b.fizz)
	assert.False(t, b.IsComplete())
}

func TestNewBlender_OnlyOrigin(t *testing.T) {
	b := NewBlender([]Drink{Origin, Origin})
	assert.True(t, b.IsComplete())
	assert.False(t, b.GreedyStep())
	assert.False(t, b.ReplenishStep())
	assert.Empty(t, b.Operations())
}

func TestApplyOperation(t *testing.T) {
	b := NewBlender([]Drink{d(3, 5), d(4, 6)})

	require.NoError(t, b.ApplyOperation(Origin, d(3, 5)))
	assert.Equal(t, int64(8), b.TotalCost())
	assert.Equal(t, []Drink{d(4, 6)}, b.Pending())
	assert.Equal(t, []Drink{Origin, d(3, 5)}, b.Produced())
	assert.Equal(t, []int64{4}, b.sweet)
	assert.Equal(t, []int64{6}, b.fizz)

	require.NoError(t, b.ApplyOperation(d(3, 5), d(4, 6)))
	assert.Equal(t, int64(10), b.TotalCost())
	assert.True(t, b.IsComplete())
	assert.Equal(t, []Operation{
		{Source: Origin, Result: d(3, 5)},
		{Source: d(3, 5), Result: d(4, 6)},
	}, b.Operations())
}

func TestApplyOperation_Invalid(t *testing.T) {
	b := NewBlender([]Drink{d(3, 5)})

	err := b.ApplyOperation(d(1, 1), d(3, 5))
	require.ErrorIs(t, err, ErrInvalidOperation)
	assert.Contains(t, err.Error(), "(1,1)")

	require.NoError(t, b.ApplyOperation(Origin, d(3, 5)))
	err = b.ApplyOperation(d(3, 5), d(2, 9))
	require.ErrorIs(t, err, ErrInvalidOperation)

	// failed operations leave no trace
	assert.Equal(t, int64(8), b.TotalCost())
	assert.Len(t, b.Operations(), 1)
}

func TestApplyOperation_NonTargetStillConsumesValues(t *testing.T) {
	b := NewBlender([]Drink{d(1, 5), d(4, 2)})

	require.NoError(t, b.ApplyOperation(Origin, d(1, 2)))
	assert.Len(t, b.Pending(), 2)
	assert.Equal(t, []int64{4}, b.sweet)
	assert.Equal(t, []int64{5}, b.fizz)
}

func TestGreedyStep_NearestSource(t *testing.T) {
	b := NewBlender([]Drink{d(3, 5), d(2, 2)})

	require.True(t, b.GreedyStep())
	require.True(t, b.GreedyStep())
	assert.False(t, b.GreedyStep())

	assert.Equal(t, []Operation{
		{Source: Origin, Result: d(2, 2)},
		{Source: d(2, 2), Result: d(3, 5)},
	}, b.Operations())
	assert.Equal(t, int64(8), b.TotalCost())
}

func TestGreedyStep_TieKeepsEarlierSource(t *testing.T) {
	b := NewBlender([]Drink{d(5, 5)})
	require.NoError(t, b.ApplyOperation(Origin, d(4, 0)))
	require.NoError(t, b.ApplyOperation(Origin, d(0, 4)))

	require.True(t, b.GreedyStep())
	ops := b.Operations()
	assert.Equal(t, Operation{Source: d(4, 0), Result: d(5, 5)}, ops[len(ops)-1])
}

func TestReplenishStep(t *testing.T) {
	b := NewBlender([]Drink{d(1, 5), d(4, 2)})

	require.True(t, b.ReplenishStep())
	require.True(t, b.ReplenishStep())
	assert.False(t, b.ReplenishStep(), "value pools are exhausted")

	assert.Equal(t, []Operation{
		{Source: Origin, Result: d(1, 2)},
		{Source: d(1, 2), Result: d(4, 5)},
	}, b.Operations())
	assert.Len(t, b.Pending(), 2)
	assert.Equal(t, int64(9), b.TotalCost())
}

func TestReplenishStep_SkipsProducedDrink(t *testing.T) {
	b := NewBlender([]Drink{d(2, 3), d(2, 5), d(4, 3)})

	require.True(t, b.GreedyStep()) // (2,3)
	assert.False(t, b.ReplenishStep())
	assert.Len(t, b.Operations(), 1)
	assert.Equal(t, []int64{4}, b.sweet)
	assert.Equal(t, []int64{5}, b.fizz)
}

func TestSnapshot_Independent(t *testing.T) {
	b := NewBlender([]Drink{d(1, 1), d(2, 2)})
	s := b.snapshot()

	require.True(t, s.GreedyStep())
	assert.Len(t, b.Pending(), 2)
	assert.Equal(t, []Drink{Origin}, b.Produced())
	assert.Empty(t, b.Operations())
	assert.Empty(t, s.Operations(), "snapshots do not log")
	assert.Equal(t, int64(2), s.TotalCost())
}
