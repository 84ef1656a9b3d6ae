package slot

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/secretmafia/internal/repositories/slot Repository

import (
	"context"

	"github.com/KirkDiggler/secretmafia/internal/models"
)

// Repository defines the interface for player slot persistence
type Repository interface {
	// CreateSlot inserts a slot, or returns the device's existing slot in the room
	CreateSlot(ctx context.Context, input *CreateSlotInput) (*CreateSlotOutput, error)

	// GetSlot retrieves a slot by ID
	GetSlot(ctx context.Context, input *GetSlotInput) (*models.PlayerSlot, error)

	// GetSlotByDevice retrieves the slot a device owns in a room
	GetSlotByDevice(ctx context.Context, input *GetSlotByDeviceInput) (*models.PlayerSlot, error)

	// ListSlots retrieves every slot of a room in join order
	ListSlots(ctx context.Context, input *ListSlotsInput) ([]*models.PlayerSlot, error)

	// AssignRoles writes a role to every listed slot and marks them alive
	AssignRoles(ctx context.Context, input *AssignRolesInput) ([]*models.PlayerSlot, error)

	// DeleteSlot removes a single slot
	DeleteSlot(ctx context.Context, input *DeleteSlotInput) error

	// DeleteSlotsInRoom removes every slot of a room
	DeleteSlotsInRoom(ctx context.Context, input *DeleteSlotsInRoomInput) error
}
