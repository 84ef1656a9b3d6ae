package session

import (
	"github.com/KirkDiggler/secretmafia/internal/common/clock"
	"github.com/KirkDiggler/secretmafia/internal/common/uuid"
	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/random"
	gateRepo "github.com/KirkDiggler/secretmafia/internal/repositories/gate"
	roomRepo "github.com/KirkDiggler/secretmafia/internal/repositories/room"
	slotRepo "github.com/KirkDiggler/secretmafia/internal/repositories/slot"
	"go.uber.org/zap"
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	RoomRepo roomRepo.Repository
	SlotRepo slotRepo.Repository
	GateRepo gateRepo.Repository

	// Service dependencies
	Random        random.Source
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger is optional
	Logger *zap.Logger
}

// CreateRoomInput contains parameters for creating a room
type CreateRoomInput struct {
	// DeviceID identifies the creating device, which becomes the host
	DeviceID string

	// PlayerName is the host's display name
	PlayerName string

	// Avatar is optional and defaults to models.DefaultAvatar
	Avatar string

	// GameMode is optional and defaults to simple
	GameMode models.GameMode
}

// CreateRoomOutput contains the result of creating a room
type CreateRoomOutput struct {
	Room *models.Room
	Slot *models.PlayerSlot
}

// JoinRoomInput contains parameters for joining a room
type JoinRoomInput struct {
	// Code is matched case-insensitively
	Code string

	DeviceID   string
	PlayerName string
	Avatar     string
}

// JoinRoomOutput contains the result of joining a room
type JoinRoomOutput struct {
	Room *models.Room

	// Slot is the caller's slot
	Slot *models.PlayerSlot

	// Slots is every player of the room, the caller included
	Slots []*models.PlayerSlot

	// Rejoined is true when the device already had a slot in the room
	Rejoined bool
}

// LeaveRoomInput contains parameters for leaving a room
type LeaveRoomInput struct {
	RoomID   string
	DeviceID string
}

// LeaveRoomOutput contains the result of leaving a room
type LeaveRoomOutput struct {
	// RoomClosed is true when the host left and the room was deleted
	RoomClosed bool
}

// UpdateRoomSettingsInput contains the settings to change; nil fields are kept
type UpdateRoomSettingsInput struct {
	RoomID   string
	DeviceID string

	MafiaCount   *int
	TimerMinutes *int
	GameMode     *models.GameMode
}

// UpdateRoomSettingsOutput contains the result of a settings change
type UpdateRoomSettingsOutput struct {
	Room *models.Room

	// Updated is false when the caller is not the host and nothing was written
	Updated bool
}

// GetRoomInput contains parameters for reading a room
type GetRoomInput struct {
	RoomID string

	// DeviceID is optional and selects Self
	DeviceID string
}

// GetRoomOutput contains a room snapshot
type GetRoomOutput struct {
	Room  *models.Room
	Slots []*models.PlayerSlot

	// Self is the caller's slot, nil when the device is not in the room
	Self *models.PlayerSlot
}
