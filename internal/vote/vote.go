// Package vote decides eliminations from a snapshot of ballots. The result
// depends only on its inputs, so every device inspecting the same votes
// derives the same outcome.
package vote

import "sort"

// Reason explains why a tally did or did not eliminate anyone
type Reason string

const (
	// ReasonNone means a single target reached the majority and is eliminated
	ReasonNone Reason = ""

	// ReasonTie means two or more targets share the highest count
	ReasonTie Reason = "tie"

	// ReasonNoMajority means the highest count is below the majority threshold
	ReasonNoMajority Reason = "no_majority"
)

// Result is the outcome of a tally
type Result struct {
	// Eliminated is the target name, empty when nobody is eliminated
	Eliminated string

	// Counts maps each target name to the ballots it received
	Counts map[string]int

	// MaxVotes is the highest count any target received
	MaxVotes int

	// Threshold is the smallest count that eliminates
	Threshold int

	// Reason is set when Eliminated is empty
	Reason Reason
}

// HasElimination returns true when a player is eliminated
func (r *Result) HasElimination() bool {
	return r.Eliminated != ""
}

// Threshold returns the majority of the alive players
func Threshold(aliveCount int) int {
	return aliveCount/2 + 1
}

// Tabulate tallies ballots keyed by voter. Skips are absent from the map.
// A shared maximum is always reported as a tie, even when it is also below
// the threshold.
func Tabulate(votes map[string]string, aliveCount int) *Result {
	counts := make(map[string]int)
	for _, target := range votes {
		if target == "" {
			continue
		}
		counts[target]++
	}

	result := &Result{
		Counts:    counts,
		Threshold: Threshold(aliveCount),
	}

	var leaders []string
	for target, count := range counts {
		switch {
		case count > result.MaxVotes:
			result.MaxVotes = count
			leaders = []string{target}
		case count == result.MaxVotes:
			leaders = append(leaders, target)
		}
	}

	switch {
	case len(leaders) > 1:
		result.Reason = ReasonTie
	case result.MaxVotes < result.Threshold:
		result.Reason = ReasonNoMajority
	default:
		result.Eliminated = leaders[0]
	}

	return result
}

// Ranked returns the targets ordered by count, highest first, then by name
func (r *Result) Ranked() []string {
	targets := make([]string, 0, len(r.Counts))
	for target := range r.Counts {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(i, j int) bool {
		if r.Counts[targets[i]] != r.Counts[targets[j]] {
			return r.Counts[targets[i]] > r.Counts[targets[j]]
		}
		return targets[i] < targets[j]
	})
	return targets
}
