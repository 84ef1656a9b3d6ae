package messaging

import (
	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/random"
	"github.com/KirkDiggler/secretmafia/internal/vote"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral always picks the plain wording
	ToneNeutral MessageTone = "neutral"

	// ToneDramatic picks one of several narrator lines
	ToneDramatic MessageTone = "dramatic"
)

// GetJoinRoomMessageInput contains parameters for getting a join message
type GetJoinRoomMessageInput struct {
	PlayerName string

	// Code is the join code of the room
	Code string

	// Rejoined is true when the device already had a slot in the room
	Rejoined bool

	PreferredTone MessageTone
}

// GetJoinRoomMessageOutput contains the result of getting a join message
type GetJoinRoomMessageOutput struct {
	Title   string
	Message string
}

// GetPhaseMessageInput contains the state a room moved into
type GetPhaseMessageInput struct {
	Phase       models.Phase
	GameMode    models.GameMode
	RoundNumber int

	// NightResult is read when announcing the day
	NightResult *models.NightResult

	// Winner is read when announcing the end of the game
	Winner models.Team

	PreferredTone MessageTone
}

// GetPhaseMessageOutput contains the announcement
type GetPhaseMessageOutput struct {
	Title   string
	Message string
}

// GetVoteResultMessageInput contains a tally and the player it removed
type GetVoteResultMessageInput struct {
	Result *vote.Result

	// Eliminated is nil when nobody was voted out
	Eliminated *models.PlayerSlot

	PreferredTone MessageTone
}

// GetVoteResultMessageOutput contains the announcement
type GetVoteResultMessageOutput struct {
	Title   string
	Message string
}

// GetRoomClosedMessageOutput contains the notice
type GetRoomClosedMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Err is any error returned by the session or game services
	Err error
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string

	// UserError is false for store failures and other unexpected errors
	UserError bool
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Random picks among message variants; a time-seeded source is used when nil
	Random random.Source
}
