package engine

import "math/rand"

// Rand is the randomness source for combat resolution. Every random draw
// (accuracy roll, critical check, damage variance) goes through this
// interface so a fixed seed reproduces identical outcomes.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded source. *rand.Rand satisfies Rand directly.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
