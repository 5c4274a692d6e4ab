package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"icpcboard/internal/cli/command"
	"icpcboard/internal/contest/service"
	"icpcboard/pkg/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sessionInput = `ADDTEAM alpha
ADDTEAM bravo
ADDTEAM charlie
ADDTEAM alpha
START DURATION 300 PROBLEM 3
ADDTEAM delta
START DURATION 300 PROBLEM 3
SUBMIT A BY alpha WITH Accepted AT 10
SUBMIT A BY bravo WITH Wrong_Answer AT 5
SUBMIT A BY bravo WITH Accepted AT 20
FLUSH
QUERY_RANKING bravo
FREEZE
FREEZE
SUBMIT A BY charlie WITH Accepted AT 30
SUBMIT B BY charlie WITH Accepted AT 35
SUBMIT B BY bravo WITH Wrong_Answer AT 40
SUBMIT B BY bravo WITH Accepted AT 45
SUBMIT A BY alpha WITH Wrong_Answer AT 50
QUERY_RANKING charlie
QUERY_SUBMISSION bravo WHERE PROBLEM=B AND STATUS=ALL

SCROLL
SCROLL
QUERY_RANKING charlie
QUERY_SUBMISSION alpha WHERE PROBLEM=C AND STATUS=ALL
QUERY_RANKING nobody
BOGUS line
END
FLUSH
`

const sessionOutput = `[Info]Add successfully.
[Info]Add successfully.
[Info]Add successfully.
[Error]Add failed: duplicated team name.
[Info]Competition starts.
[Error]Add failed: competition has started.
[Error]Start failed: competition has started.
[Info]Flush scoreboard.
[Info]Complete query ranking.
bravo NOW AT RANKING 2
[Info]Freeze scoreboard.
[Error]Freeze failed: scoreboard has been frozen.
[Info]Complete query ranking.
[Warning]Scoreboard is frozen. The ranking may be inaccurate until it were scrolled.
charlie NOW AT RANKING 3
[Info]Complete query submission.
bravo B Accepted 45
[Info]Scroll scoreboard.
alpha 1 1 10 + . .
bravo 2 1 40 +1 0/2 .
charlie 3 0 0 0/1 0/1 .
charlie bravo 1 30
bravo alpha 2 105
charlie bravo 2 65
charlie 1 2 65 + + .
bravo 2 2 105 +1 +1 .
alpha 3 1 10 + . .
[Error]Scroll failed: scoreboard has not been frozen.
[Info]Complete query ranking.
charlie NOW AT RANKING 1
[Info]Complete query submission.
Cannot find any submission.
[Error]Query ranking failed: cannot find the team.
[Info]Competition ends.
`

func TestSessionTranscript(t *testing.T) {
	svc := service.NewContestService(service.Config{})
	var out bytes.Buffer
	session := New(svc, command.Registry(), &out, false)

	require.NoError(t, session.Run(context.Background(), NewScannerReader(strings.NewReader(sessionInput))))
	assert.Equal(t, sessionOutput, out.String())
	assert.True(t, svc.Ended())
}

func TestBatchTeamNamesAreLiteral(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger.SetGlobal(logger.NewWithZap(zap.New(core)))
	t.Cleanup(func() { logger.SetGlobal(nil) })

	svc := service.NewContestService(service.Config{})
	var out bytes.Buffer
	session := New(svc, command.Registry(), &out, false)

	input := `ADDTEAM O'Neil
ADDTEAM #hash
ADDTEAM back\slash
ADDTEAM normal
START DURATION 300 PROBLEM 2
SUBMIT A BY O'Neil WITH Accepted AT 5
SUBMIT B BY back\slash WITH Wrong_Answer AT 7
FLUSH
QUERY_RANKING O'Neil
QUERY_RANKING #hash
QUERY_SUBMISSION back\slash WHERE PROBLEM=ALL AND STATUS=ALL
QUERY_RANKING backslash
END
`
	require.NoError(t, session.Run(context.Background(), NewScannerReader(strings.NewReader(input))))
	assert.Equal(t, `[Info]Add successfully.
[Info]Add successfully.
[Info]Add successfully.
[Info]Add successfully.
[Info]Competition starts.
[Info]Flush scoreboard.
[Info]Complete query ranking.
O'Neil NOW AT RANKING 1
[Info]Complete query ranking.
#hash NOW AT RANKING 2
[Info]Complete query submission.
back\slash B Wrong_Answer 7
[Error]Query ranking failed: cannot find the team.
[Info]Competition ends.
`, out.String())

	closed := logs.FilterMessage("session closed").All()
	require.Len(t, closed, 1)
	assert.Equal(t, true, closed[0].ContextMap()["contest_ended"])
}

func TestSessionStopsAtEOFWithoutEnd(t *testing.T) {
	svc := service.NewContestService(service.Config{})
	var out bytes.Buffer
	session := New(svc, command.Registry(), &out, false)

	require.NoError(t, session.Run(context.Background(), NewScannerReader(strings.NewReader("ADDTEAM a\nFLUSH"))))
	assert.Equal(t, "[Info]Add successfully.\n[Info]Flush scoreboard.\n", out.String())
	assert.False(t, svc.Ended())
}

func TestMalformedLinesAreLoggedWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.SetGlobal(logger.NewWithZap(zap.New(core)))
	t.Cleanup(func() { logger.SetGlobal(nil) })

	svc := service.NewContestService(service.Config{})
	var out bytes.Buffer
	session := New(svc, command.Registry(), &out, false)
	input := "ADDTEAM a\nSTART DURATION ten PROBLEM 2\nSUBMIT A BY ghost WITH Accepted AT 1\n"
	require.NoError(t, session.Run(context.Background(), NewScannerReader(strings.NewReader(input))))

	assert.Equal(t, "[Info]Add successfully.\n", out.String())
	entries := logs.FilterMessage("skip malformed command").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, session.ID(), fields["session_id"])
	assert.EqualValues(t, 2, fields["line"])
	assert.Equal(t, "START DURATION ten PROBLEM 2", fields["input"])
}

func TestInteractiveHelpAndExit(t *testing.T) {
	svc := service.NewContestService(service.Config{})
	var out bytes.Buffer
	session := New(svc, command.Registry(), &out, true)

	input := "help\nADDTEAM a\nNOPE\nexit\nADDTEAM b\n"
	require.NoError(t, session.Run(context.Background(), NewScannerReader(strings.NewReader(input))))

	text := out.String()
	assert.Contains(t, text, "  SUBMIT <problem> BY <team> WITH <status> AT <time>\n")
	assert.Contains(t, text, "[Info]Add successfully.\n")
	assert.Contains(t, text, "unknown command: NOPE\n")
	assert.True(t, strings.HasSuffix(text, "bye\n"))
	rank, err := svc.QueryRanking(context.Background(), "b")
	assert.Nil(t, rank)
	assert.Error(t, err)
}

type failingReader struct{}

func (failingReader) ReadLine() (string, error) { return "", errors.New("broken pipe") }
func (failingReader) Close() error              { return nil }

func TestReadFailure(t *testing.T) {
	session := New(service.NewContestService(service.Config{}), command.Registry(), &bytes.Buffer{}, false)
	err := session.Run(context.Background(), failingReader{})
	assert.ErrorContains(t, err, "broken pipe")
}
