package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrRoomNotFound       GameError = "room not found"
	ErrNotInRoom          GameError = "device is not in this room"
	ErrNotHost            GameError = "only the host can do this"
	ErrGameAlreadyStarted GameError = "game has already started"
	ErrGameNotStarted     GameError = "game has not started"
	ErrInvalidPhase       GameError = "not allowed in the current phase"
	ErrInvalidTransition  GameError = "invalid phase transition"
	ErrAlreadyAdvanced    GameError = "game state was already advanced"
	ErrPlayerEliminated   GameError = "eliminated players cannot vote"
	ErrInvalidTarget      GameError = "target must be another alive player"
	ErrAlreadyVoted       GameError = "vote already cast this round"
	ErrVotingIncomplete   GameError = "not every alive player has voted"
	ErrRosterChanged      GameError = "players kept joining or leaving while the game was starting"
	ErrNilConfig          GameError = "config cannot be nil"
	ErrNilRoomRepo        GameError = "room repository cannot be nil"
	ErrNilSlotRepo        GameError = "slot repository cannot be nil"
	ErrNilGateRepo        GameError = "gate repository cannot be nil"
	ErrNilRoleService     GameError = "role service cannot be nil"
)
