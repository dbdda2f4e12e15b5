// Package humanize decides when to act and what to do: randomized intervals,
// rare long breaks, and a probabilistic choice of key, repeat and mouse jitter,
// with every timing drawn independently so no two actions look alike.
package humanize

import (
	"math/rand"
	"time"

	"github.com/stigoleg/noafk/internal/config"
)

// Rand is the subset of *rand.Rand the humanizer draws from.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed is replaced by the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Uniform draws from [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Between draws a duration from the range.
func Between(r Rand, rg config.Range) time.Duration {
	lo, hi := rg.MinDuration(), rg.MaxDuration()
	return lo + time.Duration(r.Float64()*float64(hi-lo))
}

// Chance reports whether an event with probability p happens.
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// Pick returns a uniformly chosen element of items, which must not be empty.
func Pick(r Rand, items []string) string {
	return items[r.Intn(len(items))]
}
