package models

import (
	"time"
)

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	// RoomStatusWaiting indicates the room is open for players to join
	RoomStatusWaiting RoomStatus = "waiting"

	// RoomStatusPlaying indicates a game is in progress; a room never returns to waiting
	RoomStatusPlaying RoomStatus = "playing"
)

// IsWaiting returns true if the room still accepts new players
func (s RoomStatus) IsWaiting() bool {
	return s == RoomStatusWaiting
}

// IsPlaying returns true if the game has started
func (s RoomStatus) IsPlaying() bool {
	return s == RoomStatusPlaying
}

// GameMode selects the role catalog and the phase graph
type GameMode string

const (
	// GameModeSimple uses mafia and civilians only, with no night phase
	GameModeSimple GameMode = "simple"

	// GameModeAdvanced adds the godfather, doctor and detective and a night phase
	GameModeAdvanced GameMode = "advanced"
)

// Valid returns true for a known game mode
func (m GameMode) Valid() bool {
	return m == GameModeSimple || m == GameModeAdvanced
}

// MinPlayers returns the smallest table the mode can be played with
func (m GameMode) MinPlayers() int {
	if m == GameModeAdvanced {
		return 5
	}
	return 3
}

const (
	// DefaultMafiaCount is the mafia count of a freshly created room
	DefaultMafiaCount = 1

	// DefaultTimerMinutes is the discussion timer of a freshly created room
	DefaultTimerMinutes = 3

	// MaxMafiaCount is the largest mafia count a host can select
	MaxMafiaCount = 3

	// MaxTimerMinutes is the longest discussion timer a host can select
	MaxTimerMinutes = 10
)

// Room represents one game session shared by several devices
type Room struct {
	// ID is the unique identifier for the room
	ID string `json:"id"`

	// Code is the 6 character join code shared between players
	Code string `json:"code"`

	// HostDeviceID is the device that created the room and commits phase transitions
	HostDeviceID string `json:"host_device_id"`

	// GameMode is fixed at creation while the room is waiting
	GameMode GameMode `json:"game_mode"`

	// MafiaCount is the configured number of mafia-aligned players
	MafiaCount int `json:"mafia_count"`

	// TimerMinutes is the length of the day discussion
	TimerMinutes int `json:"timer_minutes"`

	// Status is the lifecycle state of the room
	Status RoomStatus `json:"status"`

	// GameState is the shared coordination document once play starts
	GameState *GameState `json:"game_state,omitempty"`

	// CreatedAt is when the room was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the room was last written
	UpdatedAt time.Time `json:"updated_at"`
}

// IsHost returns true if the device owns the room
func (r *Room) IsHost(deviceID string) bool {
	return r != nil && deviceID != "" && r.HostDeviceID == deviceID
}

// State returns the normalized game state; a room without one yields the initial state
func (r *Room) State() *GameState {
	if r == nil || r.GameState == nil {
		return NewGameState()
	}
	state := r.GameState.Clone()
	state.Normalize()
	return state
}
