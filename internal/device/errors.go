package device

// DeviceError is a custom error type for device errors
type DeviceError string

// Error implements the error interface
func (e DeviceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig       DeviceError = "config cannot be nil"
	ErrInvalidRoomID   DeviceError = "room ID cannot be empty"
	ErrInvalidDeviceID DeviceError = "device ID cannot be empty"
	ErrNilSubscriber   DeviceError = "subscriber cannot be nil"
	ErrNilGameService  DeviceError = "game service cannot be nil"
	ErrFeedClosed      DeviceError = "change feed closed"
	ErrAlreadyRunning  DeviceError = "device is already running"
)
