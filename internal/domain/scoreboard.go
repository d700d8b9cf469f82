package domain

import "sort"

// Standings returns the leaderboard's groups sorted by descending score.
// The sort is stable over insertion order, so tied groups keep the order in
// which they were created.
func Standings(board *Leaderboard) []*ScoredGroup {
	groups := make([]*ScoredGroup, 0, len(board.Groups))
	for _, g := range board.Groups {
		groups = append(groups, g)
	}

	// Map iteration order is random; restore insertion order first
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Seq < groups[j].Seq
	})
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Score > groups[j].Score
	})

	return groups
}
