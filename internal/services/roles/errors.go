package roles

// RoleError is a custom error type for role assignment errors
type RoleError string

// Error implements the error interface
func (e RoleError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidGameMode   RoleError = "invalid game mode"
	ErrNotEnoughPlayers  RoleError = "not enough players for this game mode"
	ErrInvalidMafiaCount RoleError = "mafia count does not fit the number of players"
	ErrNilConfig         RoleError = "config cannot be nil"
	ErrNilRandom         RoleError = "random source cannot be nil"
)
