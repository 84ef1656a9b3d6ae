package device

import "github.com/KirkDiggler/secretmafia/internal/models"

// Screen is what a device shows. During play it is one of the phases; the
// lobby and closed screens frame the game.
type Screen string

const (
	ScreenLobby  Screen = "lobby"
	ScreenClosed Screen = "closed"
)

// ScreenForPhase returns the screen that shows a phase
func ScreenForPhase(phase models.Phase) Screen {
	return Screen(phase)
}

// stage is the device's own progress through the reveal, never shared
type stage int

const (
	stageHidePhones stage = iota
	stageRoleReveal
)

// deriveScreen combines the local stage with the shared phase. The shared
// phase wins once it has left the reveal steps; until then each device
// walks through its own countdown and reveal, and waits once it is ready.
func deriveScreen(room *models.Room, state *models.GameState, local stage, selfReady bool) Screen {
	if room == nil {
		return ScreenClosed
	}
	if !room.Status.IsPlaying() {
		return ScreenLobby
	}
	if !state.Phase.IsRevealStage() {
		return ScreenForPhase(state.Phase)
	}

	switch {
	case selfReady:
		return ScreenForPhase(models.PhaseWaitingForPlayers)
	case local == stageRoleReveal:
		return ScreenForPhase(models.PhaseRoleReveal)
	default:
		return ScreenForPhase(models.PhaseHidePhones)
	}
}
