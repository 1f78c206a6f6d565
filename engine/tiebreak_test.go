package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededTieBreakerDeterministic(t *testing.T) {
	tb := NewSeededTieBreaker(42)

	first := tb.Order([]int{10, 20, 30, 40})
	second := tb.Order([]int{10, 20, 30, 40})
	assert.Equal(t, first, second)
}

func TestSeededTieBreakerInputOrderIndependent(t *testing.T) {
	tb := NewSeededTieBreaker(7)

	a := tb.Order([]int{3, 1, 2})
	b := tb.Order([]int{2, 3, 1})
	assert.Equal(t, a, b, "the draw depends on the set of teams, not on input order")
}

func TestSeededTieBreakerPermutes(t *testing.T) {
	tb := NewSeededTieBreaker(99)
	in := []int{5, 6, 7, 8, 9}

	out := tb.Order(in)
	require.Len(t, out, len(in))
	assert.ElementsMatch(t, in, out)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, in, "input slice must not be mutated")
}

func TestSeededTieBreakerSeedsDiffer(t *testing.T) {
	ids := []int{1, 2, 3, 4, 5, 6, 7, 8}

	distinct := false
	base := NewSeededTieBreaker(0).Order(ids)
	for seed := int64(1); seed <= 8; seed++ {
		if !assert.ObjectsAreEqual(base, NewSeededTieBreaker(seed).Order(ids)) {
			distinct = true
			break
		}
	}
	assert.True(t, distinct, "different seeds should produce different draws")
}
