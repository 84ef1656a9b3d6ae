package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/secretmafia/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/secretmafia/internal/models"
)

// Repository defines the interface for room persistence
type Repository interface {
	// CreateRoom reserves the room's join code and stores the room
	CreateRoom(ctx context.Context, input *CreateRoomInput) error

	// GetRoom retrieves a room by ID
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// GetWaitingRoomByCode retrieves a room that is still waiting for players
	GetWaitingRoomByCode(ctx context.Context, input *GetWaitingRoomByCodeInput) (*models.Room, error)

	// UpdateSettings writes host settings while the room is waiting
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*models.Room, error)

	// StartRoom moves a waiting room to playing, provided its slots still match the dealt roster
	StartRoom(ctx context.Context, input *StartRoomInput) (*models.Room, error)

	// SaveGameState replaces the game state if it still matches the expected phase and gate,
	// eliminating the listed slots in the same write
	SaveGameState(ctx context.Context, input *SaveGameStateInput) (*models.Room, error)

	// DeleteRoom removes a room
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error
}
