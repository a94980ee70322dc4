package randx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gb_market/pkg/randx"
)

func TestNewIsDeterministicForSeed(t *testing.T) {
	rq := require.New(t)

	a := randx.New(42)
	b := randx.New(42)

	for range 20 {
		rq.Equal(a.IntN(1000), b.IntN(1000))
		rq.Equal(a.Float64(), b.Float64())
	}
}

func TestBetween(t *testing.T) {
	rq := require.New(t)
	src := randx.New(7)

	seen := map[int]bool{}

	for range 2000 {
		v := randx.Between(src, 5, 25)
		rq.GreaterOrEqual(v, 5)
		rq.LessOrEqual(v, 25)

		seen[v] = true
	}

	rq.Len(seen, 21)
	rq.Equal(3, randx.Between(src, 3, 3))
}

func TestDuration(t *testing.T) {
	rq := require.New(t)
	src := randx.New(9)

	for range 500 {
		d := randx.Duration(src, 3*time.Second, 7*time.Second)
		rq.GreaterOrEqual(d, 3*time.Second)
		rq.LessOrEqual(d, 7*time.Second)
	}
}

func TestPick(t *testing.T) {
	rq := require.New(t)
	src := randx.New(1)

	rq.Equal("", randx.Pick[string](src, nil))
	rq.Contains([]string{"a", "b"}, randx.Pick(src, []string{"a", "b"}))
}
