package game

import (
	"testing"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/stretchr/testify/suite"
)

type MachineTestSuite struct {
	suite.Suite
}

func TestMachineTestSuite(t *testing.T) {
	suite.Run(t, new(MachineTestSuite))
}

func (s *MachineTestSuite) TestTransitionTable() {
	testCases := []struct {
		name  string
		mode  models.GameMode
		from  models.Phase
		event Event
		want  Transition
	}{
		{"host ready from hide phones", models.GameModeSimple, models.PhaseHidePhones, EventHostReady, Transition{To: models.PhaseWaitingForPlayers}},
		{"host ready from role reveal", models.GameModeAdvanced, models.PhaseRoleReveal, EventHostReady, Transition{To: models.PhaseWaitingForPlayers}},
		{"simple all ready goes to voting", models.GameModeSimple, models.PhaseWaitingForPlayers, EventAllReady, Transition{To: models.PhaseVoting, NewGate: true}},
		{"advanced all ready goes to night intro", models.GameModeAdvanced, models.PhaseWaitingForPlayers, EventAllReady, Transition{To: models.PhaseNightIntro, NewGate: true}},
		{"intro done", models.GameModeAdvanced, models.PhaseNightIntro, EventIntroDone, Transition{To: models.PhaseNight}},
		{"night resolved", models.GameModeAdvanced, models.PhaseNight, EventNightResolved, Transition{To: models.PhaseDay}},
		{"start voting", models.GameModeAdvanced, models.PhaseDay, EventStartVoting, Transition{To: models.PhaseVoting, NewGate: true}},
		{"simple next round", models.GameModeSimple, models.PhaseVoting, EventVoteResolved, Transition{To: models.PhaseVoting, NewGate: true, NextRound: true}},
		{"advanced next round", models.GameModeAdvanced, models.PhaseVoting, EventVoteResolved, Transition{To: models.PhaseNightIntro, NewGate: true, NextRound: true}},
		{"win at night", models.GameModeAdvanced, models.PhaseNight, EventWin, Transition{To: models.PhaseComplete}},
		{"win at vote", models.GameModeSimple, models.PhaseVoting, EventWin, Transition{To: models.PhaseComplete}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, ok := Next(tc.mode, tc.from, tc.event)
			s.Require().True(ok)
			s.Equal(tc.want, got)
		})
	}
}

func (s *MachineTestSuite) TestUndefinedTransitions() {
	undefined := []struct {
		mode  models.GameMode
		from  models.Phase
		event Event
	}{
		{models.GameModeSimple, models.PhaseNightIntro, EventIntroDone},
		{models.GameModeSimple, models.PhaseNight, EventNightResolved},
		{models.GameModeSimple, models.PhaseDay, EventStartVoting},
		{models.GameModeAdvanced, models.PhaseWaitingForPlayers, EventHostReady},
		{models.GameModeAdvanced, models.PhaseDay, EventWin},
		{models.GameModeAdvanced, models.PhaseComplete, EventAllReady},
		{models.GameModeSimple, models.PhaseComplete, EventVoteResolved},
	}

	for _, tc := range undefined {
		_, ok := Next(tc.mode, tc.from, tc.event)
		s.False(ok, "%s %s %s", tc.mode, tc.from, tc.event)
	}
}

func (s *MachineTestSuite) TestApplyBumpsGateAndRound() {
	state := &models.GameState{
		Phase:        models.PhaseVoting,
		RoundNumber:  2,
		Gate:         4,
		PlayersReady: []string{"slot-a"},
		Votes:        map[string]string{"slot-a": "Bob"},
	}

	next, err := Apply(models.GameModeSimple, state, EventVoteResolved)
	s.Require().NoError(err)
	s.Equal(models.PhaseVoting, next.Phase)
	s.Equal(3, next.RoundNumber)
	s.Equal(5, next.Gate)
	s.Nil(next.PlayersReady)
	s.Nil(next.Votes)

	// The input is untouched
	s.Equal(4, state.Gate)
	s.Equal([]string{"slot-a"}, state.PlayersReady)
}

func (s *MachineTestSuite) TestApplyKeepsGateWithoutNewGate() {
	state := &models.GameState{Phase: models.PhaseRoleReveal, RoundNumber: 1, Gate: 1}

	next, err := Apply(models.GameModeAdvanced, state, EventHostReady)
	s.Require().NoError(err)
	s.Equal(models.PhaseWaitingForPlayers, next.Phase)
	s.Equal(1, next.Gate)
	s.Equal(1, next.RoundNumber)
}

func (s *MachineTestSuite) TestApplyRejectsUndefinedTransition() {
	_, err := Apply(models.GameModeSimple, &models.GameState{Phase: models.PhaseComplete, RoundNumber: 1, Gate: 1}, EventWin)
	s.ErrorIs(err, ErrInvalidTransition)
}

func (s *MachineTestSuite) TestCheckWinner() {
	slot := func(role models.Role, alive bool) *models.PlayerSlot {
		return &models.PlayerSlot{Role: role, IsAlive: alive}
	}

	testCases := []struct {
		name  string
		slots []*models.PlayerSlot
		want  models.Team
	}{
		{
			name:  "no mafia alive",
			slots: []*models.PlayerSlot{slot(models.RoleMafia, false), slot(models.RoleCivilian, true), slot(models.RoleCivilian, true)},
			want:  models.TeamTown,
		},
		{
			name:  "mafia equal to town",
			slots: []*models.PlayerSlot{slot(models.RoleGodfather, true), slot(models.RoleDoctor, true), slot(models.RoleCivilian, false)},
			want:  models.TeamMafia,
		},
		{
			name:  "mafia outnumber town",
			slots: []*models.PlayerSlot{slot(models.RoleGodfather, true), slot(models.RoleMafioso, true), slot(models.RoleDetective, true)},
			want:  models.TeamMafia,
		},
		{
			name:  "game continues",
			slots: []*models.PlayerSlot{slot(models.RoleMafia, true), slot(models.RoleCivilian, true), slot(models.RoleCivilian, true)},
			want:  "",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, CheckWinner(tc.slots))
		})
	}
}

func (s *MachineTestSuite) TestReadiness() {
	slots := []*models.PlayerSlot{
		{ID: "a", IsAlive: true},
		{ID: "b", IsAlive: true},
		{ID: "c", IsAlive: false},
	}

	reveal := &models.GameState{Phase: models.PhaseWaitingForPlayers, PlayersReady: []string{"a", "c"}}
	count, target := Readiness(reveal, slots)
	s.Equal(2, count)
	s.Equal(3, target)

	voting := &models.GameState{Phase: models.PhaseVoting, PlayersReady: []string{"a", "c"}}
	count, target = Readiness(voting, slots)
	s.Equal(1, count, "eliminated players do not count")
	s.Equal(2, target)

	day := &models.GameState{Phase: models.PhaseDay, PlayersReady: []string{"a"}}
	count, target = Readiness(day, slots)
	s.Zero(count)
	s.Zero(target)
}
