package scoring

import (
	"testing"

	"cipherboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalsFor(t *testing.T) {
	t.Parallel()

	team := Team{Username: "teamA"}
	posts := []PostScore{
		{Username: "teamA", Science: true, Score: 5},
		{Username: "teamA", Science: false, Score: 3},
		{Username: "teamB", Science: true, Score: 100},
	}

	got := TotalsFor(team, posts)
	assert.Equal(t, Totals{Username: "teamA", Total: 8, Science: 5, Media: 3}, got)
	assert.Equal(t, got.Total, got.Science+got.Media)
}

func TestTotalsForNoPosts(t *testing.T) {
	t.Parallel()

	got := TotalsFor(Team{Username: "quiet"}, nil)
	assert.Equal(t, Totals{Username: "quiet"}, got)
}

func TestTotalsForPenalty(t *testing.T) {
	t.Parallel()

	posts := []PostScore{
		{Username: "teamA", Science: true, Score: 4},
		{Username: "teamA", Science: true, Score: models.PunishScore},
	}
	got := TotalsFor(Team{Username: "teamA"}, posts)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 3, got.Science)
	assert.Equal(t, 0, got.Media)
}

func TestUpperTier(t *testing.T) {
	t.Parallel()

	exc := NewExceptions(nil, []string{"pinned"})

	tests := []struct {
		name string
		team Team
		want bool
	}{
		{
			name: "all upper",
			team: Team{Username: "a", MemberTiers: []models.Tier{models.TierUpper, models.TierUpper}},
			want: true,
		},
		{
			name: "mixed tiers stay lower",
			team: Team{Username: "b", MemberTiers: []models.Tier{models.TierUpper, models.TierLower}},
			want: false,
		},
		{
			name: "all lower",
			team: Team{Username: "c", MemberTiers: []models.Tier{models.TierLower}},
			want: false,
		},
		{
			name: "no members stay lower",
			team: Team{Username: "d"},
			want: false,
		},
		{
			name: "forced upper overrides members",
			team: Team{Username: "pinned", MemberTiers: []models.Tier{models.TierLower}},
			want: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exc.UpperTier(tt.team))
		})
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	teams := []Team{
		{Username: "gcse", MemberTiers: []models.Tier{models.TierLower, models.TierLower}},
		{Username: "alevel", MemberTiers: []models.Tier{models.TierUpper}},
		{Username: "staff", IsAdmin: true},
		{Username: "hidden"},
		{Username: "mixed", MemberTiers: []models.Tier{models.TierUpper, models.TierLower}},
	}
	posts := []PostScore{
		{Username: "gcse", Science: true, Score: 2},
		{Username: "alevel", Science: false, Score: 4},
		{Username: "staff", Science: true, Score: 99},
		{Username: "hidden", Science: true, Score: 50},
	}
	exc := NewExceptions([]string{"hidden"}, nil)

	lower, upper := Aggregate(teams, posts, exc)

	require.Len(t, lower, 2)
	assert.Equal(t, "gcse", lower[0].Username)
	assert.Equal(t, 2, lower[0].Total)
	assert.Equal(t, "mixed", lower[1].Username)

	require.Len(t, upper, 1)
	assert.Equal(t, "alevel", upper[0].Username)
	assert.Equal(t, 4, upper[0].Media)
}

func TestAggregateAll(t *testing.T) {
	t.Parallel()

	teams := []Team{
		{Username: "one", MemberTiers: []models.Tier{models.TierUpper}},
		{Username: "two", MemberTiers: []models.Tier{models.TierLower}},
		{Username: "staff", IsAdmin: true},
	}
	posts := []PostScore{
		{Username: "one", Science: true, Score: 1},
		{Username: "two", Science: false, Score: 2},
	}

	all := AggregateAll(teams, posts, NewExceptions(nil, nil))

	require.Len(t, all, 2)
	assert.Equal(t, "one", all[0].Username)
	assert.Equal(t, "two", all[1].Username)
	assert.Equal(t, 1, all[0].Science)
	assert.Equal(t, 2, all[1].Media)
}
