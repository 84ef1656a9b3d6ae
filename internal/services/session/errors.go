package session

// SessionError is a custom error type for session errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Validation errors are returned before any store call
const (
	ErrInvalidDeviceID   SessionError = "device ID cannot be empty"
	ErrInvalidPlayerName SessionError = "player name must be between 1 and 20 characters"
	ErrInvalidAvatar     SessionError = "unknown avatar"
	ErrInvalidGameMode   SessionError = "invalid game mode"
	ErrInvalidCode       SessionError = "room code must be 6 characters"
	ErrInvalidMafiaCount SessionError = "mafia count must be between 1 and 3"
	ErrInvalidTimer      SessionError = "timer must be between 1 and 10 minutes"
)

// Define errors
const (
	ErrRoomNotFound     SessionError = "game room not found or already started"
	ErrNameTaken        SessionError = "player name already taken in this room"
	ErrCodeUnavailable  SessionError = "could not reserve a room code"
	ErrNotInRoom        SessionError = "device is not in this room"
	ErrRoomNotWaiting   SessionError = "game has already started"
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilRoomRepo      SessionError = "room repository cannot be nil"
	ErrNilSlotRepo      SessionError = "slot repository cannot be nil"
	ErrNilGateRepo      SessionError = "gate repository cannot be nil"
	ErrNilRandom        SessionError = "random source cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
)
