// Package random provides the uniform integer source used by the captcha renderers.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Generator draws uniform integers from a half-open range.
// It is not a cryptographic source.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator with a fixed seed. Two generators with the
// same seed produce the same sequence.
func New(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator seeded from the current time.
func NewDefault() *Generator {
	return New(time.Now().UnixNano())
}

// Range returns a uniform integer in [min, max).
// An empty range returns min.
func (g *Generator) Range(min, max int) int {
	if max <= min {
		return min
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return min + g.rng.Intn(max-min)
}

// Intn returns a uniform integer in [0, n).
func (g *Generator) Intn(n int) int {
	return g.Range(0, n)
}

// Bool returns true with probability 1/2.
func (g *Generator) Bool() bool {
	return g.Intn(2) == 0
}
