package model

import "sort"

// PenaltyPerWrong is charged for every rejected attempt preceding the accepted one.
const PenaltyPerWrong = 20

// PendingEvent is a submission received while its problem was concealed.
type PendingEvent struct {
	Status Status
	Time   int
}

// ConcealmentRecord buffers frozen submissions of one unsolved problem.
type ConcealmentRecord struct {
	PreConcealWrong int
	Count           int
	Events          []PendingEvent
}

// ProblemState is the applied scoring state of one problem for one team.
// Concealed is nil while the problem is open.
type ProblemState struct {
	WrongBeforeAC int
	Solved        bool
	SolvedTime    int
	Concealed     *ConcealmentRecord
}

// IsConcealed reports whether the problem has unapplied frozen submissions.
func (p *ProblemState) IsConcealed() bool {
	return p.Concealed != nil
}

// Penalty is the contribution of a solved problem to the team penalty.
func (p *ProblemState) Penalty() int {
	if !p.Solved {
		return 0
	}
	return PenaltyPerWrong*p.WrongBeforeAC + p.SolvedTime
}

// SubmissionRecord is one entry of a team's submission log.
type SubmissionRecord struct {
	Problem int
	Status  Status
	Time    int
}

// Aggregate is the ranking key of a team.
type Aggregate struct {
	Solved     int
	Penalty    int
	SolveTimes []int // descending
}

// Team holds the full scoring state of one registered team.
type Team struct {
	Name        string
	Problems    []ProblemState
	Submissions []SubmissionRecord
	Aggregate   Aggregate

	concealed int
}

// NewTeam creates a team with no problems; Reset sizes the problem array at contest start.
func NewTeam(name string) *Team {
	return &Team{Name: name}
}

// Reset sizes the problem array and clears the aggregate.
func (t *Team) Reset(problemCount int) {
	t.Problems = make([]ProblemState, problemCount)
	t.Aggregate = Aggregate{}
	t.concealed = 0
}

// Log appends a submission to the team's log.
func (t *Team) Log(rec SubmissionRecord) {
	t.Submissions = append(t.Submissions, rec)
}

// RecordSolve adds a newly solved problem to the aggregate, keeping SolveTimes descending.
func (t *Team) RecordSolve(p *ProblemState) {
	t.Aggregate.Solved++
	t.Aggregate.Penalty += p.Penalty()
	times := t.Aggregate.SolveTimes
	i := sort.Search(len(times), func(i int) bool { return times[i] <= p.SolvedTime })
	times = append(times, 0)
	copy(times[i+1:], times[i:])
	times[i] = p.SolvedTime
	t.Aggregate.SolveTimes = times
}

// Recompute rebuilds the aggregate from the applied problem states.
func (t *Team) Recompute() {
	agg := Aggregate{SolveTimes: make([]int, 0, len(t.Problems))}
	for i := range t.Problems {
		p := &t.Problems[i]
		if !p.Solved {
			continue
		}
		agg.Solved++
		agg.Penalty += p.Penalty()
		agg.SolveTimes = append(agg.SolveTimes, p.SolvedTime)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(agg.SolveTimes)))
	t.Aggregate = agg
}

// Conceal buffers a frozen submission, opening a record on first use.
func (t *Team) Conceal(problem int, ev PendingEvent) {
	p := &t.Problems[problem]
	if p.Concealed == nil {
		p.Concealed = &ConcealmentRecord{PreConcealWrong: p.WrongBeforeAC}
		t.concealed++
	}
	p.Concealed.Events = append(p.Concealed.Events, ev)
	p.Concealed.Count++
}

// ReleaseConcealment drops the record of a problem without applying it.
func (t *Team) ReleaseConcealment(problem int) *ConcealmentRecord {
	p := &t.Problems[problem]
	rec := p.Concealed
	if rec != nil {
		p.Concealed = nil
		t.concealed--
	}
	return rec
}

// HasConcealed reports whether any problem of the team is concealed.
func (t *Team) HasConcealed() bool {
	return t.concealed > 0
}

// FirstConcealed returns the smallest concealed problem id, or -1.
func (t *Team) FirstConcealed() int {
	if t.concealed == 0 {
		return -1
	}
	for i := range t.Problems {
		if t.Problems[i].Concealed != nil {
			return i
		}
	}
	return -1
}

// Cells captures the display state of every problem.
func (t *Team) Cells(frozen bool) []Cell {
	cells := make([]Cell, len(t.Problems))
	for i := range t.Problems {
		cells[i] = NewCell(&t.Problems[i], frozen)
	}
	return cells
}
