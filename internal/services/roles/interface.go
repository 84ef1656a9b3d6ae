package roles

// Service assigns roles to the players of a room
type Service interface {
	// Assign deals a shuffled role set to the given slots
	Assign(input *AssignInput) (*AssignOutput, error)
}
