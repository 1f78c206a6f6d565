package engine

import (
	"fmt"
	"sort"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
)

// TemplateLibrary is a pure registry of round-robin templates keyed by
// pool size. It performs no I/O; collaborators register templates at
// startup and the schedule generator resolves against it.
type TemplateLibrary struct {
	templates map[int]models.RoundTemplate
}

func NewTemplateLibrary() *TemplateLibrary {
	return &TemplateLibrary{templates: make(map[int]models.RoundTemplate)}
}

// Register validates the template and stores it, replacing any existing
// template for the same pool size.
func (l *TemplateLibrary) Register(t models.RoundTemplate) error {
	if err := ValidateTemplate(t); err != nil {
		return err
	}
	l.templates[t.PoolSize] = t
	return nil
}

// Resolve returns the template for a pool of the given size.
func (l *TemplateLibrary) Resolve(poolSize int) (models.RoundTemplate, error) {
	t, ok := l.templates[poolSize]
	if !ok {
		return models.RoundTemplate{}, fmt.Errorf("%w: %d", ErrTemplateMissing, poolSize)
	}
	return t, nil
}

// Sizes lists the registered pool sizes in ascending order.
func (l *TemplateLibrary) Sizes() []int {
	sizes := make([]int, 0, len(l.templates))
	for size := range l.templates {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// ValidateTemplate enforces the template invariants: slots stay within
// 1..size, nobody plays themselves, nobody referees their own match,
// and every seed position referees exactly once across the rounds.
func ValidateTemplate(t models.RoundTemplate) error {
	if t.PoolSize < 2 {
		return fmt.Errorf("%w: pool size %d is too small", ErrTemplateInvalid, t.PoolSize)
	}
	if len(t.Rounds) == 0 {
		return fmt.Errorf("%w: template for size %d has no rounds", ErrTemplateInvalid, t.PoolSize)
	}

	refSeen := make(map[int]bool, t.PoolSize)
	for i, round := range t.Rounds {
		for _, slot := range []int{round.Slot1, round.Slot2, round.RefSlot} {
			if slot < 1 || slot > t.PoolSize {
				return fmt.Errorf("%w: round %d references slot %d outside 1..%d", ErrTemplateInvalid, i+1, slot, t.PoolSize)
			}
		}
		if round.Slot1 == round.Slot2 {
			return fmt.Errorf("%w: round %d pairs slot %d with itself", ErrTemplateInvalid, i+1, round.Slot1)
		}
		if round.RefSlot == round.Slot1 || round.RefSlot == round.Slot2 {
			return fmt.Errorf("%w: round %d has slot %d refereeing its own match", ErrTemplateInvalid, i+1, round.RefSlot)
		}
		if refSeen[round.RefSlot] {
			return fmt.Errorf("%w: slot %d referees more than once", ErrTemplateInvalid, round.RefSlot)
		}
		refSeen[round.RefSlot] = true
	}
	for slot := 1; slot <= t.PoolSize; slot++ {
		if !refSeen[slot] {
			return fmt.Errorf("%w: slot %d never referees", ErrTemplateInvalid, slot)
		}
	}
	return nil
}

// DefaultTemplateLibrary ships the layouts used on a single court:
// each round is one played match with one refereeing team, every team
// plays twice and referees exactly once. Size 3 is a full round robin;
// sizes 4 through 6 are the partial cycles grab-bag pools run.
func DefaultTemplateLibrary() *TemplateLibrary {
	lib := NewTemplateLibrary()
	defaults := []models.RoundTemplate{
		{PoolSize: 3, Rounds: []models.RoundDefinition{
			{Slot1: 1, Slot2: 2, RefSlot: 3},
			{Slot1: 2, Slot2: 3, RefSlot: 1},
			{Slot1: 1, Slot2: 3, RefSlot: 2},
		}},
		{PoolSize: 4, Rounds: []models.RoundDefinition{
			{Slot1: 1, Slot2: 2, RefSlot: 3},
			{Slot1: 3, Slot2: 4, RefSlot: 1},
			{Slot1: 2, Slot2: 3, RefSlot: 4},
			{Slot1: 1, Slot2: 4, RefSlot: 2},
		}},
		{PoolSize: 5, Rounds: []models.RoundDefinition{
			{Slot1: 1, Slot2: 2, RefSlot: 3},
			{Slot1: 3, Slot2: 4, RefSlot: 5},
			{Slot1: 5, Slot2: 1, RefSlot: 2},
			{Slot1: 2, Slot2: 3, RefSlot: 4},
			{Slot1: 4, Slot2: 5, RefSlot: 1},
		}},
		{PoolSize: 6, Rounds: []models.RoundDefinition{
			{Slot1: 1, Slot2: 2, RefSlot: 5},
			{Slot1: 4, Slot2: 6, RefSlot: 3},
			{Slot1: 3, Slot2: 5, RefSlot: 6},
			{Slot1: 2, Slot2: 4, RefSlot: 1},
			{Slot1: 5, Slot2: 6, RefSlot: 2},
			{Slot1: 1, Slot2: 3, RefSlot: 4},
		}},
	}
	for _, t := range defaults {
		if err := lib.Register(t); err != nil {
			panic(fmt.Sprintf("default template for size %d: %v", t.PoolSize, err))
		}
	}
	return lib
}
