package model

import "strconv"

// Cell is the displayed state of one problem.
type Cell struct {
	Solved    bool
	Wrong     int
	Concealed bool
	Pending   int
}

// String renders the cell the way the board prints it:
// "+" or "+n" when solved, "0/y" or "-x/y" while concealed, "." or "-n" otherwise.
func (c Cell) String() string {
	switch {
	case c.Concealed:
		if c.Wrong == 0 {
			return "0/" + strconv.Itoa(c.Pending)
		}
		return "-" + strconv.Itoa(c.Wrong) + "/" + strconv.Itoa(c.Pending)
	case c.Solved:
		if c.Wrong == 0 {
			return "+"
		}
		return "+" + strconv.Itoa(c.Wrong)
	case c.Wrong == 0:
		return "."
	}
	return "-" + strconv.Itoa(c.Wrong)
}

// NewCell derives the display state of p. Concealment is only shown while frozen.
func NewCell(p *ProblemState, frozen bool) Cell {
	if frozen && p.Concealed != nil {
		return Cell{
			Concealed: true,
			Wrong:     p.Concealed.PreConcealWrong,
			Pending:   p.Concealed.Count,
		}
	}
	return Cell{Solved: p.Solved, Wrong: p.WrongBeforeAC}
}

// Standing is one row of a rendered scoreboard.
type Standing struct {
	Rank    int
	Team    string
	Solved  int
	Penalty int
	Cells   []Cell
}

// NewStanding renders team t at rank.
func NewStanding(rank int, t *Team, frozen bool) Standing {
	return Standing{
		Rank:    rank,
		Team:    t.Name,
		Solved:  t.Aggregate.Solved,
		Penalty: t.Aggregate.Penalty,
		Cells:   t.Cells(frozen),
	}
}

// Snapshot is a committed scoreboard. Ranking queries only read snapshots.
type Snapshot struct {
	Seq       int64
	Frozen    bool
	Standings []Standing
	ranks     map[string]int
}

// NewSnapshot renders order as a committed board.
func NewSnapshot(seq int64, order []*Team, frozen bool) *Snapshot {
	s := &Snapshot{
		Seq:       seq,
		Frozen:    frozen,
		Standings: make([]Standing, len(order)),
		ranks:     make(map[string]int, len(order)),
	}
	for i, t := range order {
		s.Standings[i] = NewStanding(i+1, t, frozen)
		s.ranks[t.Name] = i + 1
	}
	return s
}

// Rank returns the committed rank of a team.
func (s *Snapshot) Rank(name string) (int, bool) {
	if s == nil {
		return 0, false
	}
	rank, ok := s.ranks[name]
	return rank, ok
}

// Order returns the committed team names from first to last.
func (s *Snapshot) Order() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.Standings))
	for i, st := range s.Standings {
		names[i] = st.Team
	}
	return names
}
