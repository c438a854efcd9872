package nsga

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockSched/internal/dock"
)

func randomPerm(n int, rng *rand.Rand) []int {
	p := dock.Identity(n)
	shufflePermutation(p, rng)
	return p
}

func TestCutPointsRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 1; n <= 6; n++ {
		for i := 0; i < 500; i++ {
			a, b := cutPoints(n, rng)
			require.GreaterOrEqual(t, a, 0)
			require.Less(t, a, b)
			require.LessOrEqual(t, b, n)
		}
	}
}

func TestPMXSegmentMapping(t *testing.T) {
	p1 := []int{0, 1, 2, 3, 4}
	p2 := []int{3, 4, 0, 1, 2}
	c1 := make([]int, 5)
	c2 := make([]int, 5)
	m1 := make([]int, 5)
	m2 := make([]int, 5)

	pmxSegment(p1, p2, c1, c2, 1, 3, m1, m2)

	assert.Equal(t, []int{2, 4, 0, 3, 1}, c1)
	assert.Equal(t, []int{3, 1, 2, 4, 0}, c2)
}

func TestPMXClosure(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, n := range []int{0, 1, 2, 3, 7, 20, 51} {
			p1 := randomPerm(n, rng)
			p2 := randomPerm(n, rng)
			c1 := make([]int, n)
			c2 := make([]int, n)
			m1 := make([]int, n)
			m2 := make([]int, n)

			pmxCrossover(p1, p2, c1, c2, rng, m1, m2)

			require.NoError(t, dock.ValidatePermutation(c1, n), "seed %d n %d", seed, n)
			require.NoError(t, dock.ValidatePermutation(c2, n), "seed %d n %d", seed, n)
			// Родители не изменяются
			require.NoError(t, dock.ValidatePermutation(p1, n))
			require.NoError(t, dock.ValidatePermutation(p2, n))
		}
	}
}

func TestPMXIdenticalParents(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := randomPerm(12, rng)
	c1 := make([]int, 12)
	c2 := make([]int, 12)
	pmxCrossover(p, slices.Clone(p), c1, c2, rng, make([]int, 12), make([]int, 12))
	assert.Equal(t, p, c1)
	assert.Equal(t, p, c2)
}

func TestInversionMutation(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, n := range []int{0, 1, 2, 9, 30} {
			orig := randomPerm(n, rng)
			p := slices.Clone(orig)
			inversionMutation(p, rng)
			require.NoError(t, dock.ValidatePermutation(p, n))

			// Результат отличается от исходного ровно одним развёрнутым отрезком
			lo, hi := 0, n
			for lo < n && p[lo] == orig[lo] {
				lo++
			}
			for hi > lo && p[hi-1] == orig[hi-1] {
				hi--
			}
			rev := slices.Clone(orig[lo:hi])
			slices.Reverse(rev)
			assert.Equal(t, rev, p[lo:hi])
		}
	}
}
