package models

import (
	"time"
)

// Avatars is the fixed set of symbols a player can pick from
var Avatars = []string{
	"👤", "🎭", "🦊", "🐺", "🦁", "🐻", "🐼", "🐨",
	"🐵", "🦅", "🦉", "🐝", "🦋", "🐢", "🐙", "🦈",
}

// DefaultAvatar is used when a player does not pick one
const DefaultAvatar = "👤"

// MaxPlayerNameLength is the longest display name accepted, in characters
const MaxPlayerNameLength = 20

// IsValidAvatar returns true if the symbol is one of the fixed avatars
func IsValidAvatar(avatar string) bool {
	for _, a := range Avatars {
		if a == avatar {
			return true
		}
	}
	return false
}

// PlayerSlot represents one participant of a room
type PlayerSlot struct {
	// ID is the unique identifier for the slot
	ID string `json:"id"`

	// RoomID is the room that owns the slot
	RoomID string `json:"room_id"`

	// PlayerName is the display name, also used to address votes and night targets
	PlayerName string `json:"player_name"`

	// Avatar is one of Avatars
	Avatar string `json:"avatar"`

	// DeviceID ties the slot to the device that joined with it
	DeviceID string `json:"device_id"`

	// IsHost is true for the slot of the room creator
	IsHost bool `json:"is_host"`

	// Role is empty until roles are assigned
	Role Role `json:"role,omitempty"`

	// IsAlive becomes false once the player is eliminated and never flips back
	IsAlive bool `json:"is_alive"`

	// JoinedAt is when the slot was created
	JoinedAt time.Time `json:"joined_at"`
}

// HasRole returns true once a role has been assigned
func (p *PlayerSlot) HasRole() bool {
	return p != nil && p.Role != ""
}
