package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Adapter implements ports.RNGPort with sub-seeds derived by hashing the
// stream identity together with the base seed. Derivation is pure, so the
// same (seed, cycle, trial) triple always yields the same stream no matter
// which goroutine asks first.
type Adapter struct{}

// New creates a deterministic RNG adapter.
func New() *Adapter {
	return &Adapter{}
}

// SeededStream creates a generator for a named operation.
func (a *Adapter) SeededStream(name string, seed int64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(name, seed)))
}

// TrialStream derives an independent generator for one (cycle, trial) pair.
func (a *Adapter) TrialStream(seed int64, cycle, trial int) *rand.Rand {
	return a.SeededStream(fmt.Sprintf("cycle/%d/trial/%d", cycle, trial), seed)
}

// deriveSeed hashes the stream name with the base seed into a sub-seed.
func deriveSeed(name string, seed int64) int64 {
	h := sha256.New()
	h.Write([]byte(name))

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	h.Write(buf[:])

	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
