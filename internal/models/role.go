package models

// Role is the secret identity dealt to a player
type Role string

const (
	RoleCivilian  Role = "civilian"
	RoleMafia     Role = "mafia"
	RoleGodfather Role = "godfather"
	RoleMafioso   Role = "mafioso"
	RoleDoctor    Role = "doctor"
	RoleDetective Role = "detective"
)

// Roles lists every role
var Roles = []Role{RoleCivilian, RoleMafia, RoleGodfather, RoleMafioso, RoleDoctor, RoleDetective}

// Team is the side a role wins with
type Team string

const (
	TeamTown  Team = "town"
	TeamMafia Team = "mafia"
)

// RoleInfo describes a role for display
type RoleInfo struct {
	Title       string
	Description string
	Team        Team
}

// RoleCatalog holds the display information of every role
var RoleCatalog = map[Role]RoleInfo{
	RoleMafia: {
		Title:       "Mafia",
		Description: "Eliminate civilians to win",
		Team:        TeamMafia,
	},
	RoleCivilian: {
		Title:       "Civilian",
		Description: "Find and vote out the mafia",
		Team:        TeamTown,
	},
	RoleGodfather: {
		Title:       "Godfather",
		Description: "Lead the mafia. Appears innocent to Detective.",
		Team:        TeamMafia,
	},
	RoleMafioso: {
		Title:       "Mafioso",
		Description: "Follow the Godfather's orders",
		Team:        TeamMafia,
	},
	RoleDoctor: {
		Title:       "Doctor",
		Description: "Save one player each night from elimination",
		Team:        TeamTown,
	},
	RoleDetective: {
		Title:       "Detective",
		Description: "Investigate one player each night to learn their alignment",
		Team:        TeamTown,
	},
}

// IsMafiaRole returns true for every mafia-aligned role
func IsMafiaRole(role Role) bool {
	return role == RoleMafia || role == RoleGodfather || role == RoleMafioso
}

// Team returns the side the role wins with; unknown roles count as town
func (r Role) Team() Team {
	if IsMafiaRole(r) {
		return TeamMafia
	}
	return TeamTown
}

// Valid returns true for a known role
func (r Role) Valid() bool {
	_, ok := RoleCatalog[r]
	return ok
}

// AppearsAsMafia is what a detective learns when investigating the role.
// The godfather is mafia-aligned but reads as innocent.
func (r Role) AppearsAsMafia() bool {
	return IsMafiaRole(r) && r != RoleGodfather
}
