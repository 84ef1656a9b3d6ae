package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/secretmafia/internal/services/session Service

import "context"

// Service defines the interface for room lifecycle operations
type Service interface {
	// CreateRoom opens a waiting room with the caller as host
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom adds the caller to a waiting room, or returns their existing slot
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// LeaveRoom removes the caller; a leaving host closes the room for everyone
	LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error)

	// UpdateRoomSettings changes host settings while the room is waiting
	UpdateRoomSettings(ctx context.Context, input *UpdateRoomSettingsInput) (*UpdateRoomSettingsOutput, error)

	// GetRoom returns the room and its players
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)
}
