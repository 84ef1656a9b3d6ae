package roles

import (
	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/random"
)

// Config holds configuration for the role service
type Config struct {
	// Random drives the shuffle
	Random random.Source
}

// AssignInput defines the input for Assign
type AssignInput struct {
	GameMode   models.GameMode
	MafiaCount int

	// SlotIDs are the players to deal to
	SlotIDs []string
}

// AssignOutput defines the output for Assign
type AssignOutput struct {
	// Roles maps every slot ID to its role
	Roles map[string]models.Role
}
