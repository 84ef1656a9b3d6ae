package roles

import (
	"testing"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/random"
	randomMocks "github.com/KirkDiggler/secretmafia/internal/random/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoleServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRandom *randomMocks.MockSource
	service    Service
}

func (s *RoleServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRandom = randomMocks.NewMockSource(s.mockCtrl)

	svc, err := New(&Config{Random: s.mockRandom})
	s.Require().NoError(err)
	s.service = svc
}

func (s *RoleServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoleServiceTestSuite))
}

func countRoles(roles []models.Role) map[models.Role]int {
	counts := make(map[models.Role]int)
	for _, role := range roles {
		counts[role]++
	}
	return counts
}

func (s *RoleServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilRandom)
}

func (s *RoleServiceTestSuite) TestBuildRoleSetSimple() {
	set := BuildRoleSet(models.GameModeSimple, 7, 2)
	s.Len(set, 7)
	s.Equal(map[models.Role]int{
		models.RoleMafia:    2,
		models.RoleCivilian: 5,
	}, countRoles(set))
}

func (s *RoleServiceTestSuite) TestBuildRoleSetAdvanced() {
	set := BuildRoleSet(models.GameModeAdvanced, 8, 3)
	s.Len(set, 8)
	s.Equal(map[models.Role]int{
		models.RoleGodfather: 1,
		models.RoleMafioso:   2,
		models.RoleDoctor:    1,
		models.RoleDetective: 1,
		models.RoleCivilian:  3,
	}, countRoles(set))

	minimal := BuildRoleSet(models.GameModeAdvanced, 5, 1)
	s.Equal(map[models.Role]int{
		models.RoleGodfather: 1,
		models.RoleDoctor:    1,
		models.RoleDetective: 1,
		models.RoleCivilian:  2,
	}, countRoles(minimal))
}

func (s *RoleServiceTestSuite) TestValidateSetup() {
	testCases := []struct {
		name string
		mode models.GameMode
		n    int
		m    int
		err  error
	}{
		{"simple minimum", models.GameModeSimple, 3, 1, nil},
		{"simple too few players", models.GameModeSimple, 2, 1, ErrNotEnoughPlayers},
		{"simple mafia not outnumbered", models.GameModeSimple, 4, 2, ErrInvalidMafiaCount},
		{"simple two mafia", models.GameModeSimple, 5, 2, nil},
		{"simple half mafia on six", models.GameModeSimple, 6, 3, ErrInvalidMafiaCount},
		{"simple two mafia on six", models.GameModeSimple, 6, 2, nil},
		{"advanced minimum", models.GameModeAdvanced, 5, 1, nil},
		{"advanced too few players", models.GameModeAdvanced, 4, 1, ErrNotEnoughPlayers},
		{"advanced two mafia", models.GameModeAdvanced, 5, 2, nil},
		{"advanced three mafia on five", models.GameModeAdvanced, 5, 3, ErrInvalidMafiaCount},
		{"zero mafia", models.GameModeSimple, 5, 0, ErrInvalidMafiaCount},
		{"unknown mode", models.GameMode("chaos"), 5, 1, ErrInvalidGameMode},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := ValidateSetup(tc.mode, tc.n, tc.m)
			if tc.err == nil {
				s.NoError(err)
			} else {
				s.ErrorIs(err, tc.err)
			}
		})
	}
}

func (s *RoleServiceTestSuite) TestAssignShufflesWithSource() {
	// Fisher-Yates draws from shrinking ranges; always picking 0 rotates the set
	gomock.InOrder(
		s.mockRandom.EXPECT().Intn(3).Return(0),
		s.mockRandom.EXPECT().Intn(2).Return(0),
	)

	output, err := s.service.Assign(&AssignInput{
		GameMode:   models.GameModeSimple,
		MafiaCount: 1,
		SlotIDs:    []string{"slot-a", "slot-b", "slot-c"},
	})
	s.Require().NoError(err)

	// [mafia, civ, civ] -> swap(2,0) -> [civ, civ, mafia] -> swap(1,0) -> [civ, civ, mafia]
	s.Equal(map[string]models.Role{
		"slot-a": models.RoleCivilian,
		"slot-b": models.RoleCivilian,
		"slot-c": models.RoleMafia,
	}, output.Roles)
}

func (s *RoleServiceTestSuite) TestAssignRejectsInvalidSetup() {
	_, err := s.service.Assign(&AssignInput{
		GameMode:   models.GameModeAdvanced,
		MafiaCount: 1,
		SlotIDs:    []string{"slot-a", "slot-b", "slot-c"},
	})
	s.ErrorIs(err, ErrNotEnoughPlayers)
}

func (s *RoleServiceTestSuite) TestAssignIsExactAndRoughlyUniform() {
	svc, err := New(&Config{Random: random.New(&random.Config{Seed: 42})})
	s.Require().NoError(err)

	slotIDs := []string{"slot-a", "slot-b", "slot-c"}
	mafiaSeats := make(map[string]int)
	const trials = 6000

	for i := 0; i < trials; i++ {
		output, err := svc.Assign(&AssignInput{
			GameMode:   models.GameModeSimple,
			MafiaCount: 1,
			SlotIDs:    slotIDs,
		})
		s.Require().NoError(err)
		s.Require().Len(output.Roles, len(slotIDs))

		dealt := make([]models.Role, 0, len(slotIDs))
		for _, slotID := range slotIDs {
			role := output.Roles[slotID]
			dealt = append(dealt, role)
			if role == models.RoleMafia {
				mafiaSeats[slotID]++
			}
		}
		s.Require().Equal(map[models.Role]int{models.RoleMafia: 1, models.RoleCivilian: 2}, countRoles(dealt))
	}

	for _, slotID := range slotIDs {
		s.InDelta(trials/3, mafiaSeats[slotID], trials/10, "slot %s", slotID)
	}
}
