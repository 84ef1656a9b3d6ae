package game

import (
	"github.com/KirkDiggler/secretmafia/internal/models"
)

// Event is something the host observed that moves the shared phase
type Event string

const (
	// EventHostReady is the host having seen their own role
	EventHostReady Event = "host-ready"

	// EventAllReady is every player having seen their role
	EventAllReady Event = "all-ready"

	// EventIntroDone is the end of the night intro
	EventIntroDone Event = "intro-done"

	// EventNightResolved is a night resolved without a winner
	EventNightResolved Event = "night-resolved"

	// EventStartVoting ends the day discussion
	EventStartVoting Event = "start-voting"

	// EventVoteResolved is a vote resolved without a winner
	EventVoteResolved Event = "vote-resolved"

	// EventWin is an elimination that decided the game
	EventWin Event = "win"
)

// Transition is the effect of an event on the shared state
type Transition struct {
	To models.Phase

	// NewGate starts a fresh readiness and ballot gate
	NewGate bool

	// NextRound increments the round number
	NextRound bool
}

type transitionKey struct {
	mode  models.GameMode
	from  models.Phase
	event Event
}

var transitions = buildTransitions()

func buildTransitions() map[transitionKey]Transition {
	table := make(map[transitionKey]Transition)
	add := func(modes []models.GameMode, froms []models.Phase, event Event, t Transition) {
		for _, mode := range modes {
			for _, from := range froms {
				table[transitionKey{mode, from, event}] = t
			}
		}
	}

	both := []models.GameMode{models.GameModeSimple, models.GameModeAdvanced}
	simple := []models.GameMode{models.GameModeSimple}
	advanced := []models.GameMode{models.GameModeAdvanced}
	reveal := []models.Phase{models.PhaseHidePhones, models.PhaseRoleReveal, models.PhaseWaitingForPlayers}

	add(both, []models.Phase{models.PhaseHidePhones, models.PhaseRoleReveal}, EventHostReady,
		Transition{To: models.PhaseWaitingForPlayers})
	add(simple, reveal, EventAllReady,
		Transition{To: models.PhaseVoting, NewGate: true})
	add(advanced, reveal, EventAllReady,
		Transition{To: models.PhaseNightIntro, NewGate: true})
	add(advanced, []models.Phase{models.PhaseNightIntro}, EventIntroDone,
		Transition{To: models.PhaseNight})
	add(advanced, []models.Phase{models.PhaseNight}, EventNightResolved,
		Transition{To: models.PhaseDay})
	add(advanced, []models.Phase{models.PhaseDay}, EventStartVoting,
		Transition{To: models.PhaseVoting, NewGate: true})
	add(simple, []models.Phase{models.PhaseVoting}, EventVoteResolved,
		Transition{To: models.PhaseVoting, NewGate: true, NextRound: true})
	add(advanced, []models.Phase{models.PhaseVoting}, EventVoteResolved,
		Transition{To: models.PhaseNightIntro, NewGate: true, NextRound: true})
	add(both, []models.Phase{models.PhaseNight, models.PhaseVoting}, EventWin,
		Transition{To: models.PhaseComplete})

	return table
}

// Next looks up the transition for an event in a phase
func Next(mode models.GameMode, from models.Phase, event Event) (Transition, bool) {
	t, ok := transitions[transitionKey{mode, from, event}]
	return t, ok
}

// Apply returns the document that follows state after the event; state is not modified
func Apply(mode models.GameMode, state *models.GameState, event Event) (*models.GameState, error) {
	t, ok := Next(mode, state.Phase, event)
	if !ok {
		return nil, ErrInvalidTransition
	}

	next := state.Document()
	next.Phase = t.To
	if t.NewGate {
		next.Gate++
	}
	if t.NextRound {
		next.RoundNumber++
	}

	return next, nil
}

// CheckWinner decides the game from the alive players, or returns "" to continue
func CheckWinner(slots []*models.PlayerSlot) models.Team {
	aliveMafia, aliveTown := 0, 0
	for _, slot := range slots {
		if !slot.IsAlive || !slot.HasRole() {
			continue
		}
		if models.IsMafiaRole(slot.Role) {
			aliveMafia++
		} else {
			aliveTown++
		}
	}

	switch {
	case aliveMafia == 0:
		return models.TeamTown
	case aliveMafia >= aliveTown:
		return models.TeamMafia
	default:
		return ""
	}
}

// Readiness counts the marks of the current gate against the players that
// must pass it: every player while roles are revealed, alive players in a vote.
// Phases without a gate yield zero for both.
func Readiness(state *models.GameState, slots []*models.PlayerSlot) (count, target int) {
	switch {
	case state.Phase.IsRevealStage():
		for _, slot := range slots {
			if state.IsReady(slot.ID) {
				count++
			}
		}
		return count, len(slots)
	case state.Phase == models.PhaseVoting:
		for _, slot := range slots {
			if !slot.IsAlive {
				continue
			}
			target++
			if state.IsReady(slot.ID) {
				count++
			}
		}
		return count, target
	default:
		return 0, 0
	}
}
