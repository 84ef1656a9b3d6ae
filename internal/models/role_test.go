package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RoleTestSuite struct {
	suite.Suite
}

func TestRoleTestSuite(t *testing.T) {
	suite.Run(t, new(RoleTestSuite))
}

func (s *RoleTestSuite) TestClassificationCoversEveryRole() {
	testCases := map[Role]struct {
		mafia          bool
		appearsAsMafia bool
	}{
		RoleCivilian:  {mafia: false, appearsAsMafia: false},
		RoleMafia:     {mafia: true, appearsAsMafia: true},
		RoleGodfather: {mafia: true, appearsAsMafia: false},
		RoleMafioso:   {mafia: true, appearsAsMafia: true},
		RoleDoctor:    {mafia: false, appearsAsMafia: false},
		RoleDetective: {mafia: false, appearsAsMafia: false},
	}
	s.Require().Len(testCases, len(Roles))

	for _, role := range Roles {
		tc, ok := testCases[role]
		s.Require().True(ok, "no expectation for %s", role)

		s.Run(string(role), func() {
			s.Equal(tc.mafia, IsMafiaRole(role))
			s.Equal(tc.appearsAsMafia, role.AppearsAsMafia())
			s.True(role.Valid())

			expectedTeam := TeamTown
			if tc.mafia {
				expectedTeam = TeamMafia
			}
			s.Equal(expectedTeam, role.Team())
			s.Equal(expectedTeam, RoleCatalog[role].Team)
		})
	}
}

func (s *RoleTestSuite) TestUnknownRole() {
	unknown := Role("jester")
	s.False(IsMafiaRole(unknown))
	s.False(unknown.AppearsAsMafia())
	s.False(unknown.Valid())
	s.Equal(TeamTown, unknown.Team())

	var unassigned Role
	s.False(IsMafiaRole(unassigned))
	s.False(unassigned.Valid())
}
