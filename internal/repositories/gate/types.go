package gate

// MarkReadyInput defines the input for MarkReady
type MarkReadyInput struct {
	RoomID string
	Gate   int
	SlotID string
}

// CastVoteInput defines the input for CastVote
type CastVoteInput struct {
	RoomID  string
	Gate    int
	VoterID string

	// Target is the name voted for; empty records a skip
	Target string
}

// GetMarksInput defines the input for GetMarks
type GetMarksInput struct {
	RoomID string
	Gate   int
}

// GetMarksOutput defines the output for GetMarks
type GetMarksOutput struct {
	// Ready holds the slot IDs marked in the gate, sorted
	Ready []string

	// Votes maps voter slot IDs to target names; skips are absent
	Votes map[string]string
}

// ClearMarksInput defines the input for ClearMarks
type ClearMarksInput struct {
	RoomID string
}
