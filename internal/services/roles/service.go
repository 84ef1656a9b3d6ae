package roles

import (
	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/random"
)

// service implements the Service interface
type service struct {
	random random.Source
}

// New creates a new role service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	return &service{
		random: cfg.Random,
	}, nil
}

// ValidateSetup checks that a table of n players with m mafia can be dealt for the mode
func ValidateSetup(mode models.GameMode, n, m int) error {
	if !mode.Valid() {
		return ErrInvalidGameMode
	}
	if n < mode.MinPlayers() {
		return ErrNotEnoughPlayers
	}
	// Town must outnumber the mafia when the game starts
	if m < 1 || m >= n-m {
		return ErrInvalidMafiaCount
	}
	if mode == models.GameModeAdvanced && m+2 > n {
		return ErrInvalidMafiaCount
	}
	return nil
}

// BuildRoleSet returns the exact role multiset for the table, unshuffled.
// It assumes ValidateSetup accepted the same arguments.
func BuildRoleSet(mode models.GameMode, n, m int) []models.Role {
	set := make([]models.Role, 0, n)

	if mode == models.GameModeAdvanced {
		set = append(set, models.RoleGodfather)
		for i := 1; i < m; i++ {
			set = append(set, models.RoleMafioso)
		}
		set = append(set, models.RoleDoctor, models.RoleDetective)
	} else {
		for i := 0; i < m; i++ {
			set = append(set, models.RoleMafia)
		}
	}

	for len(set) < n {
		set = append(set, models.RoleCivilian)
	}

	return set
}

// Assign shuffles the role set and deals it positionally
func (s *service) Assign(input *AssignInput) (*AssignOutput, error) {
	if input == nil {
		return nil, ErrNotEnoughPlayers
	}

	n := len(input.SlotIDs)
	if err := ValidateSetup(input.GameMode, n, input.MafiaCount); err != nil {
		return nil, err
	}

	set := BuildRoleSet(input.GameMode, n, input.MafiaCount)
	random.Shuffle(s.random, len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})

	assigned := make(map[string]models.Role, n)
	for i, slotID := range input.SlotIDs {
		assigned[slotID] = set[i]
	}

	return &AssignOutput{
		Roles: assigned,
	}, nil
}
