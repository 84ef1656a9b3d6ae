package models

// EventType is the kind of change a notification describes
type EventType string

const (
	EventTypeInsert EventType = "insert"
	EventTypeUpdate EventType = "update"
	EventTypeDelete EventType = "delete"
)

// Collection names the record kind an event refers to
type Collection string

const (
	CollectionRooms       Collection = "rooms"
	CollectionPlayerSlots Collection = "player_slots"

	// CollectionGameState carries readiness and vote records
	CollectionGameState Collection = "game_state"
)

// ChangeEvent is delivered to every subscriber of a room, the writer included
type ChangeEvent struct {
	Type       EventType  `json:"type"`
	Collection Collection `json:"collection"`
	RoomID     string     `json:"room_id"`

	// Room is set for rooms insert and update events
	Room *Room `json:"room,omitempty"`

	// Slot is set for player_slots insert and update events
	Slot *PlayerSlot `json:"slot,omitempty"`

	// SlotID is set for player_slots delete events and game_state events
	SlotID string `json:"slot_id,omitempty"`

	// Gate is the readiness gate a game_state event belongs to
	Gate int `json:"gate,omitempty"`

	// Vote is the target of a ballot, nil for a plain readiness mark or a skip
	Vote *string `json:"vote,omitempty"`
}
