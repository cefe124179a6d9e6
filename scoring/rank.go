// scoring/rank.go - stable ascending ranking of scoreboard entries
package scoring

// Entry is one (team, score) pair on a single leaderboard.
type Entry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Rank orders entries ascending by score with an insertion sort: each entry
// is placed immediately before the first already-ranked entry whose score is
// strictly greater, or appended if none is. Because only a strictly greater
// score triggers insertion, entries with equal scores keep their arrival
// order. The input slice is not modified.
func Rank(entries []Entry) []Entry {
	ranked := make([]Entry, 0, len(entries))
	for _, e := range entries {
		inserted := false
		for i := range ranked {
			if e.Score < ranked[i].Score {
				ranked = append(ranked, Entry{})
				copy(ranked[i+1:], ranked[i:])
				ranked[i] = e
				inserted = true
				break
			}
		}
		if !inserted {
			ranked = append(ranked, e)
		}
	}
	return ranked
}

// Reversed returns a new slice with the entries in the opposite order; the
// scoreboard ranks ascending and displays highest first.
func Reversed(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// Board is one division's three ranked leaderboards in display order
// (highest score first).
type Board struct {
	Total   []Entry `json:"total"`
	Science []Entry `json:"science"`
	Media   []Entry `json:"media"`
}

// BuildBoard ranks a division's totals into its three category leaderboards.
func BuildBoard(totals []Totals) Board {
	total := make([]Entry, len(totals))
	science := make([]Entry, len(totals))
	media := make([]Entry, len(totals))
	for i, t := range totals {
		total[i] = Entry{Username: t.Username, Score: t.Total}
		science[i] = Entry{Username: t.Username, Score: t.Science}
		media[i] = Entry{Username: t.Username, Score: t.Media}
	}
	return Board{
		Total:   Reversed(Rank(total)),
		Science: Reversed(Rank(science)),
		Media:   Reversed(Rank(media)),
	}
}
