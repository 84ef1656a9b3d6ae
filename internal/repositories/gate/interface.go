package gate

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/secretmafia/internal/repositories/gate Repository

import (
	"context"
)

// Repository stores per-player readiness marks and ballots, grouped by gate.
// A gate is the epoch of one gated phase; a new gate starts with empty sets.
type Repository interface {
	// MarkReady records that a slot is ready in a gate
	MarkReady(ctx context.Context, input *MarkReadyInput) error

	// CastVote records a slot's single ballot in a gate, which also marks it ready
	CastVote(ctx context.Context, input *CastVoteInput) error

	// GetMarks returns the readiness marks and ballots of a gate
	GetMarks(ctx context.Context, input *GetMarksInput) (*GetMarksOutput, error)

	// ClearMarks removes the marks of every gate of a room
	ClearMarks(ctx context.Context, input *ClearMarksInput) error
}
