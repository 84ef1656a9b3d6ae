package room

import "github.com/KirkDiggler/secretmafia/internal/models"

type CreateRoomInput struct {
	Room *models.Room
}

type GetRoomInput struct {
	RoomID string
}

type GetWaitingRoomByCodeInput struct {
	Code string
}

// UpdateSettingsInput writes only the fields that are set
type UpdateSettingsInput struct {
	RoomID       string
	MafiaCount   *int
	TimerMinutes *int
	GameMode     *models.GameMode
}

type StartRoomInput struct {
	RoomID string
	State  *models.GameState

	// SlotIDs is the roster the roles were dealt to
	SlotIDs []string
}

type SaveGameStateInput struct {
	RoomID        string
	ExpectedPhase models.Phase
	ExpectedGate  int
	State         *models.GameState

	// Eliminate lists slots marked dead together with the state
	Eliminate []string
}

type DeleteRoomInput struct {
	RoomID string
}
