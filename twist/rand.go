// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twist

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the randomness source used by Apply
type Rand interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

// lockedRand guards a *rand.Rand, which is not safe for concurrent use
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// NewRand returns a deterministic source for the given seed
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// DefaultRand returns a source seeded from the clock
func DefaultRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}
