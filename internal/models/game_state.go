package models

// Phase is the step of the game a device is showing
type Phase string

const (
	// PhaseHidePhones is the local countdown before roles are shown
	PhaseHidePhones Phase = "hide-phones"

	// PhaseRoleReveal shows each player their own role
	PhaseRoleReveal Phase = "role-reveal"

	// PhaseWaitingForPlayers waits until every player has seen their role
	PhaseWaitingForPlayers Phase = "waiting-for-players"

	// PhaseNightIntro is the advanced mode transition into night
	PhaseNightIntro Phase = "night-intro"

	// PhaseNight collects the mafia, doctor and detective targets
	PhaseNight Phase = "night"

	// PhaseDay announces the night result and runs the discussion timer
	PhaseDay Phase = "day"

	// PhaseVoting collects one ballot from every alive player
	PhaseVoting Phase = "voting"

	// PhaseComplete is terminal and carries the winner
	PhaseComplete Phase = "complete"
)

// Phases lists every phase
var Phases = []Phase{
	PhaseHidePhones,
	PhaseRoleReveal,
	PhaseWaitingForPlayers,
	PhaseNightIntro,
	PhaseNight,
	PhaseDay,
	PhaseVoting,
	PhaseComplete,
}

// Valid returns true for a known phase
func (p Phase) Valid() bool {
	for _, phase := range Phases {
		if phase == p {
			return true
		}
	}
	return false
}

// IsRevealStage returns true for the phases gated on every player having seen their role
func (p Phase) IsRevealStage() bool {
	return p == PhaseHidePhones || p == PhaseRoleReveal || p == PhaseWaitingForPlayers
}

// NightResult is the outcome of the most recent night
type NightResult struct {
	// Eliminated is the name of the player killed, empty when nobody died
	Eliminated string `json:"eliminated,omitempty"`

	// Saved is true when the doctor protected the mafia's target
	Saved bool `json:"saved"`
}

// GameState is the shared coordination document stored on the room.
// PlayersReady and Votes are never persisted with the document; they are
// assembled from the per-player records of the current Gate on read.
type GameState struct {
	Phase       Phase        `json:"phase"`
	RoundNumber int          `json:"round_number"`
	Gate        int          `json:"gate"`
	NightResult *NightResult `json:"night_result,omitempty"`
	Winner      Team         `json:"winner,omitempty"`

	PlayersReady []string          `json:"players_ready,omitempty"`
	Votes        map[string]string `json:"votes,omitempty"`
}

// NewGameState returns the state every game starts from
func NewGameState() *GameState {
	return &GameState{
		Phase:        PhaseHidePhones,
		RoundNumber:  1,
		Gate:         1,
		PlayersReady: []string{},
		Votes:        map[string]string{},
	}
}

// Normalize replaces missing or malformed fields with their defaults
func (s *GameState) Normalize() {
	if !s.Phase.Valid() {
		s.Phase = PhaseHidePhones
	}
	if s.RoundNumber < 1 {
		s.RoundNumber = 1
	}
	if s.Gate < 1 {
		s.Gate = 1
	}
	if s.PlayersReady == nil {
		s.PlayersReady = []string{}
	}
	if s.Votes == nil {
		s.Votes = map[string]string{}
	}
	if s.Winner != "" && s.Winner != TeamTown && s.Winner != TeamMafia {
		s.Winner = ""
	}
}

// Clone returns a deep copy
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	clone := *s
	if s.NightResult != nil {
		result := *s.NightResult
		clone.NightResult = &result
	}
	if s.PlayersReady != nil {
		clone.PlayersReady = append([]string(nil), s.PlayersReady...)
	}
	if s.Votes != nil {
		clone.Votes = make(map[string]string, len(s.Votes))
		for voter, target := range s.Votes {
			clone.Votes[voter] = target
		}
	}
	return &clone
}

// Document returns a copy suitable for persisting, without the assembled sets
func (s *GameState) Document() *GameState {
	doc := s.Clone()
	doc.PlayersReady = nil
	doc.Votes = nil
	return doc
}

// IsReady returns true if the slot has a mark in the current gate
func (s *GameState) IsReady(slotID string) bool {
	for _, id := range s.PlayersReady {
		if id == slotID {
			return true
		}
	}
	return false
}
