package service

import (
	"sort"

	"icpcboard/internal/contest/model"
)

// better reports whether a ranks strictly ahead of b.
// Both aggregates must come from the same snapshot: equal solved counts imply
// equal solve-time list lengths.
func better(a, b *model.Team) bool {
	x, y := &a.Aggregate, &b.Aggregate
	if x.Solved != y.Solved {
		return x.Solved > y.Solved
	}
	if x.Penalty != y.Penalty {
		return x.Penalty < y.Penalty
	}
	for i := range x.SolveTimes {
		if x.SolveTimes[i] != y.SolveTimes[i] {
			return x.SolveTimes[i] < y.SolveTimes[i]
		}
	}
	return a.Name < b.Name
}

// rankTeams returns teams ordered best first.
func rankTeams(teams []*model.Team) []*model.Team {
	order := make([]*model.Team, len(teams))
	copy(order, teams)
	sort.Slice(order, func(i, j int) bool { return better(order[i], order[j]) })
	return order
}

// byName returns teams in lexicographic name order, the board before the first flush.
func byName(teams []*model.Team) []*model.Team {
	order := make([]*model.Team, len(teams))
	copy(order, teams)
	sort.Slice(order, func(i, j int) bool { return order[i].Name < order[j].Name })
	return order
}
