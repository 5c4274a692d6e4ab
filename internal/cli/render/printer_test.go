package render

import (
	"bytes"
	"errors"
	"testing"

	"icpcboard/internal/contest/model"
	"icpcboard/internal/contest/service"
	appErr "icpcboard/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeLines(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{"add ok", func(p *Printer) { p.AddTeam(nil) }, "[Info]Add successfully.\n"},
		{"add started", func(p *Printer) { p.AddTeam(appErr.New(appErr.ContestAlreadyStarted)) },
			"[Error]Add failed: competition has started.\n"},
		{"add duplicated", func(p *Printer) { p.AddTeam(appErr.New(appErr.TeamNameDuplicated)) },
			"[Error]Add failed: duplicated team name.\n"},
		{"start ok", func(p *Printer) { p.Start(nil) }, "[Info]Competition starts.\n"},
		{"start twice", func(p *Printer) { p.Start(appErr.New(appErr.ContestAlreadyStarted)) },
			"[Error]Start failed: competition has started.\n"},
		{"flush", func(p *Printer) { p.Flush(nil) }, "[Info]Flush scoreboard.\n"},
		{"freeze ok", func(p *Printer) { p.Freeze(nil) }, "[Info]Freeze scoreboard.\n"},
		{"freeze twice", func(p *Printer) { p.Freeze(appErr.New(appErr.ScoreboardAlreadyFrozen)) },
			"[Error]Freeze failed: scoreboard has been frozen.\n"},
		{"scroll unfrozen", func(p *Printer) { p.Scroll(nil, appErr.New(appErr.ScoreboardNotFrozen)) },
			"[Error]Scroll failed: scoreboard has not been frozen.\n"},
		{"end", func(p *Printer) { p.End(nil) }, "[Info]Competition ends.\n"},
		{"ranking unknown", func(p *Printer) { p.Ranking(nil, appErr.TeamNotFoundError("x")) },
			"[Error]Query ranking failed: cannot find the team.\n"},
		{"submission unknown", func(p *Printer) { p.Submission(nil, appErr.TeamNotFoundError("x")) },
			"[Error]Query submission failed: cannot find the team.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewPrinter(&buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRanking(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Ranking(&service.RankingResult{Team: "lakers", Rank: 2}, nil)
	p.Ranking(&service.RankingResult{Team: "lakers", Rank: 2, Stale: true}, nil)
	assert.Equal(t, "[Info]Complete query ranking.\n"+
		"lakers NOW AT RANKING 2\n"+
		"[Info]Complete query ranking.\n"+
		"[Warning]Scoreboard is frozen. The ranking may be inaccurate until it were scrolled.\n"+
		"lakers NOW AT RANKING 2\n", buf.String())
}

func TestSubmission(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Submission(&service.SubmissionResult{Team: "lakers", Found: true,
		Record: model.SubmissionRecord{Problem: 2, Status: model.StatusRuntimeError, Time: 77}}, nil)
	p.Submission(&service.SubmissionResult{Team: "lakers"}, nil)
	assert.Equal(t, "[Info]Complete query submission.\n"+
		"lakers C Runtime_Error 77\n"+
		"[Info]Complete query submission.\n"+
		"Cannot find any submission.\n", buf.String())
}

func TestScrollAndBoard(t *testing.T) {
	before := []model.Standing{
		{Rank: 1, Team: "a", Solved: 1, Penalty: 10, Cells: []model.Cell{{Solved: true}, {Concealed: true, Wrong: 1, Pending: 2}}},
		{Rank: 2, Team: "b", Cells: []model.Cell{{Concealed: true, Pending: 1}, {}}},
	}
	after := []model.Standing{
		{Rank: 1, Team: "b", Solved: 1, Penalty: 5, Cells: []model.Cell{{Solved: true}, {}}},
		{Rank: 2, Team: "a", Solved: 1, Penalty: 10, Cells: []model.Cell{{Solved: true}, {Wrong: 3}}},
	}
	res := &service.ScrollResult{
		Before:  before,
		Changes: []service.RankChange{{Team: "b", Passed: "a", Solved: 1, Penalty: 5, FromRank: 2, ToRank: 1}},
		After:   after,
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Scroll(res, nil)
	assert.Equal(t, "[Info]Scroll scoreboard.\n"+
		"a 1 1 10 + -1/2\n"+
		"b 2 0 0 0/1 .\n"+
		"b a 1 5\n"+
		"b 1 1 5 + .\n"+
		"a 2 1 10 + -3\n", buf.String())
}

func TestReasonForForeignError(t *testing.T) {
	assert.Equal(t, "internal server error", Reason(errors.New("boom")))
}
