package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic
// Monte-Carlo work. Ambient global random state is never used; every
// consumer receives an explicitly derived stream so results are reproducible
// under a fixed seed and independent of goroutine scheduling.
type RNGPort interface {
	// SeededStream creates a deterministic generator for a named operation.
	SeededStream(name string, seed int64) *rand.Rand

	// TrialStream derives a deterministic generator for one simulation trial
	// of one cycle. Streams for distinct (cycle, trial) pairs are
	// statistically independent and stable across runs with the same seed.
	TrialStream(seed int64, cycle, trial int) *rand.Rand
}
