package dataset

import (
	"math/rand/v2"
	"slices"
)

// MaxValue is the inclusive upper bound of generated elements.
const MaxValue = 100_000

// Generator produces random integer datasets. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed, so runs can be reproduced.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Random returns n integers drawn uniformly from [0, MaxValue].
func (g *Generator) Random(n int) []int {
	if n <= 0 {
		return []int{}
	}
	data := make([]int, n)
	for i := range data {
		data[i] = g.rng.IntN(MaxValue + 1)
	}
	return data
}

// Clone returns an independent copy, never nil.
func Clone(data []int) []int {
	if data == nil {
		return []int{}
	}
	return slices.Clone(data)
}
