package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/secretmafia/internal/services/game Service

import "context"

// Service drives the shared phase of a started room.
// Participants signal readiness and ballots; only the host commits phase changes.
type Service interface {
	// StartGame deals roles and moves the room to playing
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// GetGame returns the room, players and the assembled game state
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// MarkReady records that the caller has seen their role
	MarkReady(ctx context.Context, input *MarkReadyInput) (*MarkReadyOutput, error)

	// CastVote records the caller's ballot or skip for the current vote
	CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error)

	// Reconcile commits the transition a satisfied readiness gate calls for
	Reconcile(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error)

	// CompleteNightIntro moves from the night intro to the night
	CompleteNightIntro(ctx context.Context, input *CompleteNightIntroInput) (*CompleteNightIntroOutput, error)

	// ResolveNight applies the night actions and checks for a winner
	ResolveNight(ctx context.Context, input *ResolveNightInput) (*ResolveNightOutput, error)

	// StartVoting ends the day discussion
	StartVoting(ctx context.Context, input *StartVotingInput) (*StartVotingOutput, error)

	// ResolveVotes tallies the ballots, eliminates and checks for a winner
	ResolveVotes(ctx context.Context, input *ResolveVotesInput) (*ResolveVotesOutput, error)
}
