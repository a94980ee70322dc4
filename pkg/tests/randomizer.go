package tests

import (
	"math/rand/v2"
	"time"
)

// Randomizer is a scripted random source. Scripted values are returned first,
// after that it falls back to a seeded generator.
type Randomizer struct {
	floats []float64
	ints   []int
	fixed  *float64
	random *rand.Rand
}

func NewRandomizer() *Randomizer {
	seed := uint64(time.Now().UnixNano()) //nolint:gosec // for tests

	return &Randomizer{
		random: rand.New(rand.NewPCG(seed, seed)), //nolint:gosec // for tests
	}
}

// WithFloats queues values returned by Float64.
func (r *Randomizer) WithFloats(values ...float64) *Randomizer {
	r.floats = append(r.floats, values...)
	return r
}

// WithInts queues values returned by IntN. Each value is reduced modulo n.
func (r *Randomizer) WithInts(values ...int) *Randomizer {
	r.ints = append(r.ints, values...)
	return r
}

func (r *Randomizer) Float64() float64 {
	if len(r.floats) > 0 {
		v := r.floats[0]
		r.floats = r.floats[1:]

		return v
	}

	if r.fixed != nil {
		return *r.fixed
	}

	return r.random.Float64()
}

func (r *Randomizer) IntN(n int) int {
	if len(r.ints) > 0 {
		v := r.ints[0]
		r.ints = r.ints[1:]

		return v % n
	}

	return r.random.IntN(n)
}

// Always returns a source whose Float64 is fixed, useful to force or suppress
// probabilistic branches. IntN stays seeded.
func Always(f float64) *Randomizer {
	r := NewRandomizer()
	r.fixed = &f

	return r
}
