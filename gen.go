package main

import "math/rand/v2"

// Instance generation defaults, matching the contest's input sizes.
const (
	DefaultTargets  = 1000
	DefaultMaxCoord = 1_000_000_000
)

// GenerateInstance draws n targets uniformly from [0, maxCoord]^2. The same
// seed always yields the same instance. maxCoord must lie in
// [0, MaxCoordinate].
func GenerateInstance(seed uint64, n int, maxCoord int64) *Instance {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	inst := &Instance{Targets: make([]Drink, n)}
	for i := range inst.Targets {
		inst.Targets[i] = Drink{
			Sweetness: rng.Int64N(maxCoord + 1),
			Fizziness: rng.Int64N(maxCoord + 1),
		}
	}
	return inst
}
