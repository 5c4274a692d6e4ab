package service

import (
	"context"

	"icpcboard/internal/contest/model"
	appErr "icpcboard/pkg/errors"
	"icpcboard/pkg/utils/logger"

	"go.uber.org/zap"
)

// RankChange reports one team overtaking others during a scroll.
type RankChange struct {
	Team     string
	Passed   string // last opponent overtaken
	Solved   int
	Penalty  int
	FromRank int
	ToRank   int
}

// ScrollResult is the outcome of a scroll: the board before unveiling, every
// rank change in the order it happened, and the final board.
type ScrollResult struct {
	Before  []model.Standing
	Changes []RankChange
	After   []model.Standing
	Reveals int
}

// liveOrder is the working ranking of a scroll, kept apart from the committed snapshot.
type liveOrder struct {
	teams []*model.Team
	slot  map[*model.Team]int
}

func newLiveOrder(order []*model.Team) *liveOrder {
	o := &liveOrder{
		teams: order,
		slot:  make(map[*model.Team]int, len(order)),
	}
	for i, t := range order {
		o.slot[t] = i
	}
	return o
}

// lastConcealed returns the lowest position at or above from holding a team with
// concealed problems, or -1. Positions below from must hold none.
func (o *liveOrder) lastConcealed(from int) int {
	for i := from; i >= 0; i-- {
		if o.teams[i].HasConcealed() {
			return i
		}
	}
	return -1
}

// promote moves t up by adjacent swaps while it ranks strictly ahead of its
// predecessor. It returns the last team passed, or nil if t did not move.
func (o *liveOrder) promote(t *model.Team) *model.Team {
	var passed *model.Team
	for i := o.slot[t]; i > 0; i-- {
		prev := o.teams[i-1]
		if !better(t, prev) {
			break
		}
		o.teams[i-1], o.teams[i] = t, prev
		o.slot[t], o.slot[prev] = i-1, i
		passed = prev
	}
	return passed
}

// Scroll unveils every concealed problem one at a time. Each step takes the
// lowest ranked team that still has concealed problems, reveals its smallest
// concealed problem and re-ranks that team. The final order becomes the new
// committed snapshot and the contest returns to running mode.
func (s *ContestService) Scroll(ctx context.Context) (*ScrollResult, error) {
	if err := s.ensureActive(); err != nil {
		return nil, err
	}
	if !s.frozen {
		logger.Warn(ctx, "scroll rejected: scoreboard not frozen")
		return nil, appErr.New(appErr.ScoreboardNotFrozen)
	}

	for _, t := range s.roster {
		t.Recompute()
	}
	live := newLiveOrder(rankTeams(s.roster))
	result := &ScrollResult{Before: render(live.teams, true)}

	// Teams below cursor never hold concealed problems: a reveal only moves the
	// revealed team up and shifts the teams it passes down by one, all of them
	// staying at or above the cursor.
	cursor := len(live.teams) - 1
	for {
		cursor = live.lastConcealed(cursor)
		if cursor < 0 {
			break
		}
		team := live.teams[cursor]
		problem := team.FirstConcealed()
		unveil(team, problem)
		team.Recompute()
		result.Reveals++

		passed := live.promote(team)
		if passed == nil {
			continue
		}
		change := RankChange{
			Team:     team.Name,
			Passed:   passed.Name,
			Solved:   team.Aggregate.Solved,
			Penalty:  team.Aggregate.Penalty,
			FromRank: cursor + 1,
			ToRank:   live.slot[team] + 1,
		}
		result.Changes = append(result.Changes, change)
		logger.Debug(ctx, "rank changed during scroll",
			zap.String("team", change.Team),
			zap.String("passed", change.Passed),
			zap.Int("from", change.FromRank),
			zap.Int("to", change.ToRank),
			zap.String("problem", model.ProblemLabel(problem)))
	}

	s.frozen = false
	for _, t := range s.roster {
		for i := range t.Problems {
			if t.ReleaseConcealment(i) != nil {
				logger.Error(ctx, "concealment left after scroll",
					zap.String("team", t.Name), zap.String("problem", model.ProblemLabel(i)))
			}
		}
	}

	result.After = render(live.teams, false)
	s.commit(ctx, live.teams)
	logger.Info(ctx, "scoreboard scrolled",
		zap.Int("reveals", result.Reveals), zap.Int("rank_changes", len(result.Changes)))
	return result, nil
}

func render(order []*model.Team, frozen bool) []model.Standing {
	rows := make([]model.Standing, len(order))
	for i, t := range order {
		rows[i] = model.NewStanding(i+1, t, frozen)
	}
	return rows
}
