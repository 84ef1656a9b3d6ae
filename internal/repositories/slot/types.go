package slot

import (
	"github.com/KirkDiggler/secretmafia/internal/models"
)

// CreateSlotInput defines the input for CreateSlot
type CreateSlotInput struct {
	Slot *models.PlayerSlot
}

// CreateSlotOutput defines the output for CreateSlot
type CreateSlotOutput struct {
	Slot *models.PlayerSlot

	// Existing is true when the device already owned a slot in the room
	Existing bool
}

// GetSlotInput defines the input for GetSlot
type GetSlotInput struct {
	SlotID string
}

// GetSlotByDeviceInput defines the input for GetSlotByDevice
type GetSlotByDeviceInput struct {
	RoomID   string
	DeviceID string
}

// ListSlotsInput defines the input for ListSlots
type ListSlotsInput struct {
	RoomID string
}

// AssignRolesInput defines the input for AssignRoles
type AssignRolesInput struct {
	RoomID string

	// Roles maps slot IDs to their role
	Roles map[string]models.Role
}

// DeleteSlotInput defines the input for DeleteSlot
type DeleteSlotInput struct {
	SlotID string
}

// DeleteSlotsInRoomInput defines the input for DeleteSlotsInRoom
type DeleteSlotsInRoomInput struct {
	RoomID string
}
