// Package render prints session command results in the scoreboard text protocol.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"icpcboard/internal/contest/model"
	"icpcboard/internal/contest/service"
	appErr "icpcboard/pkg/errors"
)

// Printer formats command outcomes onto w.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) AddTeam(err error) {
	p.outcome("Add", "Add successfully", err)
}

func (p *Printer) Start(err error) {
	p.outcome("Start", "Competition starts", err)
}

func (p *Printer) Flush(err error) {
	p.outcome("Flush", "Flush scoreboard", err)
}

func (p *Printer) Freeze(err error) {
	p.outcome("Freeze", "Freeze scoreboard", err)
}

func (p *Printer) End(err error) {
	p.outcome("End", "Competition ends", err)
}

// Scroll prints the board before reveals, one line per rank change, then the final board.
func (p *Printer) Scroll(res *service.ScrollResult, err error) {
	if err != nil {
		p.failure("Scroll", err)
		return
	}
	p.line("[Info]Scroll scoreboard.")
	p.Board(res.Before)
	for _, c := range res.Changes {
		p.line("%s %s %d %d", c.Team, c.Passed, c.Solved, c.Penalty)
	}
	p.Board(res.After)
}

func (p *Printer) Ranking(res *service.RankingResult, err error) {
	if err != nil {
		p.failure("Query ranking", err)
		return
	}
	p.line("[Info]Complete query ranking.")
	if res.Stale {
		p.line("[Warning]Scoreboard is frozen. The ranking may be inaccurate until it were scrolled.")
	}
	p.line("%s NOW AT RANKING %d", res.Team, res.Rank)
}

func (p *Printer) Submission(res *service.SubmissionResult, err error) {
	if err != nil {
		p.failure("Query submission", err)
		return
	}
	p.line("[Info]Complete query submission.")
	if !res.Found {
		p.line("Cannot find any submission.")
		return
	}
	rec := res.Record
	p.line("%s %s %s %d", res.Team, model.ProblemLabel(rec.Problem), rec.Status, rec.Time)
}

// Board prints one line per standing: team, rank, solved, penalty, then every cell.
func (p *Printer) Board(rows []model.Standing) {
	var b strings.Builder
	for _, st := range rows {
		b.Reset()
		fmt.Fprintf(&b, "%s %d %d %d", st.Team, st.Rank, st.Solved, st.Penalty)
		for _, c := range st.Cells {
			b.WriteByte(' ')
			b.WriteString(c.String())
		}
		p.line("%s", b.String())
	}
}

func (p *Printer) outcome(op, done string, err error) {
	if err != nil {
		p.failure(op, err)
		return
	}
	p.line("[Info]%s.", done)
}

func (p *Printer) failure(op string, err error) {
	p.line("[Error]%s failed: %s.", op, Reason(err))
}

// Reason renders the error code of err as a lower-case sentence fragment.
func Reason(err error) string {
	msg := appErr.GetCode(err).Message()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToLower(r)) + msg[size:]
}

func (p *Printer) line(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}
