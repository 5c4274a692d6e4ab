package service

import "icpcboard/internal/contest/model"

// apply routes one submission through the scoring rules of the current mode.
// The submission is always logged; scoring only touches unsolved problems.
func (s *ContestService) apply(team *model.Team, problem int, status model.Status, at int) {
	team.Log(model.SubmissionRecord{Problem: problem, Status: status, Time: at})

	p := &team.Problems[problem]
	if p.Solved {
		return
	}
	if s.frozen {
		team.Conceal(problem, model.PendingEvent{Status: status, Time: at})
		return
	}
	if judge(p, status, at) {
		team.RecordSolve(p)
	}
}

// judge applies a verdict to p with running semantics and reports whether it solved p.
func judge(p *model.ProblemState, status model.Status, at int) bool {
	if p.Solved {
		return false
	}
	if status.Accepted() {
		p.Solved = true
		p.SolvedTime = at
		return true
	}
	p.WrongBeforeAC++
	return false
}

// unveil replays the concealed events of one problem in submission order and
// drops its record. The team aggregate is left for the caller to rebuild.
func unveil(team *model.Team, problem int) {
	rec := team.ReleaseConcealment(problem)
	if rec == nil {
		return
	}
	p := &team.Problems[problem]
	for _, ev := range rec.Events {
		if judge(p, ev.Status, ev.Time) {
			return
		}
	}
}
