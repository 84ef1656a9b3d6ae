package game

import (
	"github.com/KirkDiggler/secretmafia/internal/models"
	gateRepo "github.com/KirkDiggler/secretmafia/internal/repositories/gate"
	roomRepo "github.com/KirkDiggler/secretmafia/internal/repositories/room"
	slotRepo "github.com/KirkDiggler/secretmafia/internal/repositories/slot"
	"github.com/KirkDiggler/secretmafia/internal/services/roles"
	"github.com/KirkDiggler/secretmafia/internal/vote"
	"go.uber.org/zap"
)

// Config holds configuration for the game service
type Config struct {
	// Repository dependencies
	RoomRepo roomRepo.Repository
	SlotRepo slotRepo.Repository
	GateRepo gateRepo.Repository

	// Service dependencies
	RoleService roles.Service

	// Logger is optional
	Logger *zap.Logger
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	RoomID   string
	DeviceID string
}

// StartGameOutput contains the started room and the dealt slots
type StartGameOutput struct {
	Room  *models.Room
	Slots []*models.PlayerSlot
}

// GetGameInput contains parameters for reading a game
type GetGameInput struct {
	RoomID   string
	DeviceID string
}

// GetGameOutput is a device's view of the game
type GetGameOutput struct {
	Room  *models.Room
	Slots []*models.PlayerSlot

	// State has the ready set and ballots of the current gate filled in
	State *models.GameState

	// Self is the caller's slot
	Self *models.PlayerSlot

	// ReadyCount is how many players passed the current gate
	ReadyCount int

	// ReadyTarget is how many must pass; zero when the phase has no gate
	ReadyTarget int

	// AllReady is true once ReadyCount reaches a non-zero ReadyTarget
	AllReady bool
}

// MarkReadyInput contains parameters for a readiness mark
type MarkReadyInput struct {
	RoomID   string
	DeviceID string
}

// MarkReadyOutput contains the shared phase after the mark
type MarkReadyOutput struct {
	Phase models.Phase

	// Advanced is true when the mark let the host commit a transition
	Advanced bool
}

// CastVoteInput contains parameters for a ballot
type CastVoteInput struct {
	RoomID   string
	DeviceID string

	// Target is the name voted for; empty skips
	Target string
}

// CastVoteOutput contains the recorded ballot
type CastVoteOutput struct {
	// Target is the canonical name voted for, empty on a skip
	Target  string
	Skipped bool
}

// ReconcileInput contains parameters for a reconcile pass
type ReconcileInput struct {
	RoomID   string
	DeviceID string
}

// ReconcileOutput contains the result of a reconcile pass
type ReconcileOutput struct {
	Phase models.Phase

	// Advanced is true when a transition was committed
	Advanced bool

	// AllVoted is true during voting once every alive player cast a ballot
	AllVoted bool
}

// CompleteNightIntroInput contains parameters for ending the night intro
type CompleteNightIntroInput struct {
	RoomID   string
	DeviceID string
}

// CompleteNightIntroOutput contains the updated room
type CompleteNightIntroOutput struct {
	Room *models.Room
}

// ResolveNightInput contains the night selections by player name; empty means none
type ResolveNightInput struct {
	RoomID   string
	DeviceID string

	MafiaTarget     string
	DoctorTarget    string
	DetectiveTarget string
}

// Investigation is what the detective learns, shown only to the detective
type Investigation struct {
	Name    string
	IsMafia bool
}

// ResolveNightOutput contains the outcome of the night
type ResolveNightOutput struct {
	Room        *models.Room
	NightResult models.NightResult

	// Investigation is nil when the detective chose nobody
	Investigation *Investigation

	// Winner is set when the night decided the game
	Winner models.Team
}

// StartVotingInput contains parameters for ending the day
type StartVotingInput struct {
	RoomID   string
	DeviceID string
}

// StartVotingOutput contains the updated room
type StartVotingOutput struct {
	Room *models.Room
}

// ResolveVotesInput contains parameters for resolving a vote
type ResolveVotesInput struct {
	RoomID   string
	DeviceID string
}

// ResolveVotesOutput contains the outcome of the vote
type ResolveVotesOutput struct {
	Room   *models.Room
	Result *vote.Result

	// Eliminated is nil when nobody was voted out
	Eliminated *models.PlayerSlot

	// Winner is set when the vote decided the game
	Winner models.Team
}
