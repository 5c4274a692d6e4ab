package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"icpcboard/internal/cli/command"
	"icpcboard/internal/cli/render"
	"icpcboard/internal/contest/service"
	"icpcboard/pkg/utils/contextkey"
	"icpcboard/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session feeds command lines to a contest and prints the results.
type Session struct {
	id          string
	svc         *service.ContestService
	commands    map[string]command.Command
	out         *bufio.Writer
	printer     *render.Printer
	interactive bool
}

// New creates a session writing results to out. Interactive sessions flush
// after every command and accept help and exit.
func New(svc *service.ContestService, commands map[string]command.Command, out io.Writer, interactive bool) *Session {
	w := bufio.NewWriter(out)
	return &Session{
		id:          uuid.NewString(),
		svc:         svc,
		commands:    commands,
		out:         w,
		printer:     render.NewPrinter(w),
		interactive: interactive,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Run processes lines until END, EOF or a read failure.
func (s *Session) Run(ctx context.Context, in LineReader) error {
	ctx = context.WithValue(ctx, contextkey.SessionID, s.id)
	defer s.out.Flush()

	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			logger.Info(ctx, "input exhausted", zap.Int("lines", lineNo))
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input failed: %w", err)
		}
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s.interactive && s.handleSystemCommand(line) {
			if line == "exit" || line == "quit" {
				return nil
			}
			continue
		}

		req, err := s.parse(line)
		if err != nil {
			logger.Warn(context.WithValue(ctx, contextkey.Line, lineNo), "skip malformed command",
				zap.String("input", line), zap.Error(err))
			if s.interactive {
				s.printLine("%v", err)
			}
			continue
		}

		cmdCtx := context.WithValue(context.WithValue(ctx, contextkey.Line, lineNo), contextkey.Command, req.Name)
		s.dispatch(cmdCtx, req)
		if s.interactive {
			_ = s.out.Flush()
		}
		if req.Name == command.End {
			logger.Info(ctx, "session closed", zap.Int("lines", lineNo), zap.Bool("contest_ended", s.svc.Ended()))
			return nil
		}
	}
}

// parse reads batch lines literally; interactive lines may quote names.
func (s *Session) parse(line string) (command.Request, error) {
	if s.interactive {
		return command.ParseQuoted(s.commands, line)
	}
	return command.Parse(s.commands, line)
}

func (s *Session) dispatch(ctx context.Context, req command.Request) {
	params := req.Params
	switch req.Name {
	case command.AddTeam:
		s.printer.AddTeam(s.svc.RegisterTeam(ctx, params.Get("team")))
	case command.Start:
		s.printer.Start(s.svc.StartContest(ctx, params.Int("duration"), params.Int("count")))
	case command.Submit:
		err := s.svc.Submit(ctx, service.SubmitRequest{
			Problem: params.Problem("problem"),
			Team:    params.Get("team"),
			Status:  params.Status("status"),
			Time:    params.Int("time"),
		})
		if err != nil {
			logger.Warn(ctx, "submission rejected", zap.Error(err))
		}
	case command.Flush:
		s.printer.Flush(s.svc.Flush(ctx))
	case command.Freeze:
		s.printer.Freeze(s.svc.Freeze(ctx))
	case command.Scroll:
		s.printer.Scroll(s.svc.Scroll(ctx))
	case command.QueryRanking:
		s.printer.Ranking(s.svc.QueryRanking(ctx, params.Get("team")))
	case command.QuerySubmission:
		s.printer.Submission(s.svc.QuerySubmission(ctx, params.Get("team"), service.SubmissionFilter{
			Problem: params.Problem("problem"),
			Status:  params.Status("status"),
		}))
	case command.End:
		s.printer.End(s.svc.End(ctx))
	default:
		logger.Error(ctx, "command registered without handler")
	}
}

func (s *Session) handleSystemCommand(line string) bool {
	switch line {
	case "exit", "quit":
		s.printLine("bye")
		return true
	case "help":
		for _, usage := range command.Help(s.commands) {
			s.printLine("  %s", usage)
		}
		s.printLine("system: help | exit")
		return true
	}
	return false
}

func (s *Session) printLine(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
	_ = s.out.Flush()
}
