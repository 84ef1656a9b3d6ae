package vote

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type TabulateTestSuite struct {
	suite.Suite
}

func TestTabulateTestSuite(t *testing.T) {
	suite.Run(t, new(TabulateTestSuite))
}

func (s *TabulateTestSuite) TestThreshold() {
	s.Equal(2, Threshold(2))
	s.Equal(2, Threshold(3))
	s.Equal(3, Threshold(4))
	s.Equal(3, Threshold(5))
	s.Equal(4, Threshold(7))
}

func (s *TabulateTestSuite) TestPluralityBelowThreshold() {
	result := Tabulate(map[string]string{"A": "B", "C": "B", "D": "E"}, 4)

	s.False(result.HasElimination())
	s.Equal(ReasonNoMajority, result.Reason)
	s.Equal(3, result.Threshold)
	s.Equal(2, result.MaxVotes)
	s.Equal(map[string]int{"B": 2, "E": 1}, result.Counts)
}

func (s *TabulateTestSuite) TestExactMajorityWithSkip() {
	// D skipped, so only three ballots were cast
	result := Tabulate(map[string]string{"A": "B", "C": "B", "E": "B"}, 4)

	s.True(result.HasElimination())
	s.Equal("B", result.Eliminated)
	s.Equal(ReasonNone, result.Reason)
}

func (s *TabulateTestSuite) TestTieTakesPrecedenceOverNoMajority() {
	result := Tabulate(map[string]string{"A": "B", "C": "D"}, 4)

	s.False(result.HasElimination())
	s.Equal(ReasonTie, result.Reason)
	s.Equal(1, result.MaxVotes)
}

func (s *TabulateTestSuite) TestTieAboveThreshold() {
	votes := map[string]string{
		"v1": "X", "v2": "X", "v3": "X",
		"v4": "Y", "v5": "Y", "v6": "Y",
	}
	result := Tabulate(votes, 4)

	s.Equal(ReasonTie, result.Reason)
	s.Empty(result.Eliminated)
}

func (s *TabulateTestSuite) TestNoBallots() {
	result := Tabulate(map[string]string{}, 5)

	s.False(result.HasElimination())
	s.Equal(ReasonNoMajority, result.Reason)
	s.Empty(result.Counts)
}

func (s *TabulateTestSuite) TestEmptyTargetIsIgnored() {
	result := Tabulate(map[string]string{"A": "", "B": "C", "D": "C"}, 3)

	s.Equal("C", result.Eliminated)
	s.Equal(map[string]int{"C": 2}, result.Counts)
}

func (s *TabulateTestSuite) TestDeterministic() {
	votes := map[string]string{"A": "B", "C": "B", "D": "B", "E": "A", "F": "A"}
	first := Tabulate(votes, 6)
	for i := 0; i < 50; i++ {
		again := Tabulate(votes, 6)
		s.Equal(first.Eliminated, again.Eliminated)
		s.Equal(first.Reason, again.Reason)
	}
	s.Equal(ReasonNoMajority, first.Reason)
}

func (s *TabulateTestSuite) TestRanked() {
	result := Tabulate(map[string]string{"1": "Zed", "2": "Amy", "3": "Amy", "4": "Bob"}, 4)
	s.Equal([]string{"Amy", "Bob", "Zed"}, result.Ranked())
}
