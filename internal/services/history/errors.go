package history

// HistoryError is a custom error type for history errors
type HistoryError string

// Error implements the error interface
func (e HistoryError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidDeviceID  HistoryError = "device ID cannot be empty"
	ErrGameNotComplete  HistoryError = "game is not complete"
	ErrNilConfig        HistoryError = "config cannot be nil"
	ErrNilHistoryRepo   HistoryError = "history repository cannot be nil"
	ErrNilClock         HistoryError = "clock cannot be nil"
	ErrNilUUIDGenerator HistoryError = "UUID generator cannot be nil"
)
