package services

import "errors"

// Shared service errors. Engine errors pass through wrapped, so callers
// can match either layer with errors.Is.
var (
	// Lookup failures
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPoolNotFound       = errors.New("pool not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Result recording
	ErrScoreInvalid         = errors.New("scores must be non-negative and cannot be drawn")
	ErrMatchAlreadyDecided  = errors.New("match already has a final result")
	ErrMatchTeamsIncomplete = errors.New("match does not have both teams assigned yet")
	ErrMatchTypeMismatch    = errors.New("operation does not apply to this match type")
	ErrByeMatchImmutable    = errors.New("bye matches carry no playable result")
	ErrPoolPlayClosed       = errors.New("pool results are no longer accepted")

	// Phase control
	ErrInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrBracketExists           = errors.New("bracket already generated for this tournament")
	ErrPoolPlayIncomplete      = errors.New("pool play is not complete")

	// Export
	ErrExportNoMatches = errors.New("tournament has no matches to export")
	ErrExportFailed    = errors.New("failed to generate export workbook")
)
