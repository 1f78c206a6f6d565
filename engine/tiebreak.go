package engine

import (
	"math/rand/v2"
	"sort"
)

// TieBreaker decides a total order for teams that are still tied after
// every statistical criterion has been exhausted. Implementations must
// be deterministic for a given configuration so that recomputing
// standings reproduces the same outcome.
type TieBreaker interface {
	// Order returns the given team IDs ranked best first.
	Order(teamIDs []int) []int
}

type seededTieBreaker struct {
	seed int64
}

// NewSeededTieBreaker returns the default last-resort tie break: a
// shuffle driven by a fixed seed. The IDs are sorted before shuffling
// so the outcome does not depend on the caller's input order.
func NewSeededTieBreaker(seed int64) TieBreaker {
	return &seededTieBreaker{seed: seed}
}

func (t *seededTieBreaker) Order(teamIDs []int) []int {
	ordered := make([]int, len(teamIDs))
	copy(ordered, teamIDs)
	sort.Ints(ordered)

	rng := rand.New(rand.NewPCG(uint64(t.seed), uint64(len(ordered))))
	rng.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})
	return ordered
}
