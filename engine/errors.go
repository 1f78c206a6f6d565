package engine

import (
	"errors"
	"fmt"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
)

// Every failure in this package is a rejected operation with a retry
// path: fix the data and call again. None abort the process.
var (
	// Template registry
	ErrTemplateMissing = errors.New("no round template registered for pool size")
	ErrTemplateInvalid = errors.New("round template is invalid")

	// Schedule generation
	ErrDuplicateSchedule     = errors.New("pool schedule already exists")
	ErrPrerequisitesNotMet   = errors.New("schedule prerequisites not met")
	ErrInvalidSeedAssignment = errors.New("invalid pool seed assignment")

	// Advancement and bracket construction
	ErrStandingsIncomplete = errors.New("pool standings do not cover the advancer count")
	ErrNotEnoughAdvancers  = errors.New("not enough advancers to build a bracket")

	// Lifecycle guard
	ErrRebuildBlocked = errors.New("bracket play has started, rebuild is blocked")
)

// PrerequisitesError wraps ErrPrerequisitesNotMet and carries the
// structured report so callers can display every missing item instead
// of a bare message.
type PrerequisitesError struct {
	Report models.PrerequisiteReport
}

func (e *PrerequisitesError) Error() string {
	return fmt.Sprintf("%v: %d missing item(s)", ErrPrerequisitesNotMet, len(e.Report.Items))
}

func (e *PrerequisitesError) Unwrap() error {
	return ErrPrerequisitesNotMet
}
