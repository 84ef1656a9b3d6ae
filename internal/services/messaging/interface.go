package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/secretmafia/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJoinRoomMessage returns a message for when a player joins or rejoins a room
	GetJoinRoomMessage(ctx context.Context, input *GetJoinRoomMessageInput) (*GetJoinRoomMessageOutput, error)

	// GetPhaseMessage returns the announcement for the phase a room entered
	GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error)

	// GetVoteResultMessage returns the announcement of a resolved vote
	GetVoteResultMessage(ctx context.Context, input *GetVoteResultMessageInput) (*GetVoteResultMessageOutput, error)

	// GetRoomClosedMessage returns the notice shown when the host ends the game
	GetRoomClosedMessage(ctx context.Context) (*GetRoomClosedMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
