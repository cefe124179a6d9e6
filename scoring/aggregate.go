// scoring/aggregate.go - per-team score aggregation and tier partitioning
package scoring

import "cipherboard/models"

// Team is the projection of an account the aggregator needs.
type Team struct {
	Username    string
	IsAdmin     bool
	MemberTiers []models.Tier // tiers of the populated member slots, in slot order
}

// PostScore is the projection of a published post the aggregator needs.
// Science carries the post's category, decided by models.Post.IsScience.
type PostScore struct {
	Username string
	Science  bool
	Score    int
}

// Totals holds one team's summed scores. Every post is either science
// (forums 1-5) or media (forums 6-10), so Total == Science + Media.
type Totals struct {
	Username string `json:"username"`
	Total    int    `json:"total"`
	Science  int    `json:"science"`
	Media    int    `json:"media"`
}

// Exceptions configures the scoreboard's identity-based special cases:
// usernames dropped from ranking entirely and usernames pinned to the upper
// tier regardless of their members' stated tiers.
type Exceptions struct {
	exclude    map[string]bool
	forceUpper map[string]bool
}

func NewExceptions(exclude, forceUpper []string) Exceptions {
	e := Exceptions{
		exclude:    make(map[string]bool, len(exclude)),
		forceUpper: make(map[string]bool, len(forceUpper)),
	}
	for _, u := range exclude {
		if u != "" {
			e.exclude[u] = true
		}
	}
	for _, u := range forceUpper {
		if u != "" {
			e.forceUpper[u] = true
		}
	}
	return e
}

// UpperTier reports whether the team competes in the upper (ALevel) division:
// either pinned there by exception, or every populated member states the
// upper tier. Teams with no populated members compete in the lower division.
func (e Exceptions) UpperTier(t Team) bool {
	if e.forceUpper[t.Username] {
		return true
	}
	if len(t.MemberTiers) == 0 {
		return false
	}
	for _, tier := range t.MemberTiers {
		if tier != models.TierUpper {
			return false
		}
	}
	return true
}

// TotalsFor sums the scores of every post owned by team, split by category.
// Pure function of its inputs.
func TotalsFor(team Team, posts []PostScore) Totals {
	t := Totals{Username: team.Username}
	for _, p := range posts {
		if p.Username != team.Username {
			continue
		}
		t.Total += p.Score
		if p.Science {
			t.Science += p.Score
		} else {
			t.Media += p.Score
		}
	}
	return t
}

// Aggregate computes per-team totals for every rankable team, partitioned
// into the lower and upper divisions. Admin accounts and excluded usernames
// never appear. Teams keep their input order within each division, which is
// what makes the downstream ranking's tie-breaking stable.
func Aggregate(teams []Team, posts []PostScore, exc Exceptions) (lower, upper []Totals) {
	for _, team := range teams {
		if team.IsAdmin || exc.exclude[team.Username] {
			continue
		}
		t := TotalsFor(team, posts)
		if exc.UpperTier(team) {
			upper = append(upper, t)
		} else {
			lower = append(lower, t)
		}
	}
	return lower, upper
}

// AggregateAll is Aggregate without the division split, used by the archived
// scoreboards of past competition years.
func AggregateAll(teams []Team, posts []PostScore, exc Exceptions) []Totals {
	var all []Totals
	for _, team := range teams {
		if team.IsAdmin || exc.exclude[team.Username] {
			continue
		}
		all = append(all, TotalsFor(team, posts))
	}
	return all
}
