// Package randx holds the injectable random source used by every simulation
// so that tests can replay deterministic sequences.
package randx

import (
	"math/rand/v2"
	"sync"
	"time"
)

type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
}

// New returns a PCG backed source. Zero seed means time based.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)) //nolint:gosec // simulation data
}

// Between returns an integer in [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + src.IntN(hi-lo+1)
}

// Chance reports true with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

func Pick[T any](src Source, items []T) T {
	var zero T

	if len(items) == 0 {
		return zero
	}

	return items[src.IntN(len(items))]
}

// Duration returns a duration uniformly drawn from [lo, hi].
func Duration(src Source, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}

	return lo + time.Duration(src.Float64()*float64(hi-lo))
}

// Locked serializes access to a source shared between goroutines.
func Locked(src Source) Source {
	return &lockedSource{src: src}
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.src.Float64()
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.src.IntN(n)
}
