package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTournamentStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to TournamentStatus
		want     bool
	}{
		{StatusDraft, StatusSetup, true},
		{StatusSetup, StatusPoolPlay, true},
		{StatusPoolPlay, StatusBracket, true},
		{StatusBracket, StatusCompleted, true},
		{StatusDraft, StatusPoolPlay, false},
		{StatusSetup, StatusBracket, false},
		{StatusBracket, StatusPoolPlay, false},
		{StatusCompleted, StatusDraft, false},
		{StatusPoolPlay, StatusPoolPlay, true},
	}
	for _, tc := range cases {
		tour := Tournament{Status: tc.from}
		assert.Equal(t, tc.want, tour.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTournamentStatusValid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, TournamentStatus("archived").Valid())
}

func TestTeamDisplayName(t *testing.T) {
	named := Team{Name: "Beach Bums", Player1: "Ana", Player2: "Kim"}
	assert.Equal(t, "Beach Bums", named.DisplayName())

	drawn := Team{Player1: "Ana", Player2: "Kim"}
	assert.Equal(t, "Ana / Kim", drawn.DisplayName())

	empty := Team{}
	assert.Equal(t, "TBD", empty.DisplayName())
}

func TestTeamRosterComplete(t *testing.T) {
	full := Team{Player1: "Ana", Player2: "Kim"}
	assert.True(t, full.RosterComplete())

	waiting := Team{Player1: "Ana"}
	assert.False(t, waiting.RosterComplete())

	empty := Team{}
	assert.False(t, empty.RosterComplete())
}
