package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/shlex"
)

const (
	AddTeam         = "ADDTEAM"
	Start           = "START"
	Submit          = "SUBMIT"
	Flush           = "FLUSH"
	Freeze          = "FREEZE"
	Scroll          = "SCROLL"
	QueryRanking    = "QUERY_RANKING"
	QuerySubmission = "QUERY_SUBMISSION"
	End             = "END"
)

// Registry returns all session commands keyed by their leading keyword.
func Registry() map[string]Command {
	commands := []Command{
		{
			Name:  AddTeam,
			Usage: "ADDTEAM <team>",
			Grammar: []Token{
				Arg(Field{Name: "team", Type: FieldString}),
			},
		},
		{
			Name:  Start,
			Usage: "START DURATION <duration> PROBLEM <count>",
			Grammar: []Token{
				Keyword("DURATION"),
				Arg(Field{Name: "duration", Type: FieldInt}),
				Keyword("PROBLEM"),
				Arg(Field{Name: "count", Type: FieldInt}),
			},
		},
		{
			Name:  Submit,
			Usage: "SUBMIT <problem> BY <team> WITH <status> AT <time>",
			Grammar: []Token{
				Arg(Field{Name: "problem", Type: FieldProblem}),
				Keyword("BY"),
				Arg(Field{Name: "team", Type: FieldString}),
				Keyword("WITH"),
				Arg(Field{Name: "status", Type: FieldStatus}),
				Keyword("AT"),
				Arg(Field{Name: "time", Type: FieldInt}),
			},
		},
		{Name: Flush, Usage: "FLUSH"},
		{Name: Freeze, Usage: "FREEZE"},
		{Name: Scroll, Usage: "SCROLL"},
		{
			Name:  QueryRanking,
			Usage: "QUERY_RANKING <team>",
			Grammar: []Token{
				Arg(Field{Name: "team", Type: FieldString}),
			},
		},
		{
			Name:  QuerySubmission,
			Usage: "QUERY_SUBMISSION <team> WHERE PROBLEM=<problem|ALL> AND STATUS=<status|ALL>",
			Grammar: []Token{
				Arg(Field{Name: "team", Type: FieldString}),
				Keyword("WHERE"),
				Arg(Field{Name: "problem", Prefix: "PROBLEM=", Type: FieldProblem, AllowAll: true}),
				Keyword("AND"),
				Arg(Field{Name: "status", Prefix: "STATUS=", Type: FieldStatus, AllowAll: true}),
			},
		},
		{Name: End, Usage: "END"},
	}

	registry := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		registry[cmd.Name] = cmd
	}
	return registry
}

// Parse splits line on whitespace, the batch input format: every
// non-space run is taken literally, quotes and backslashes included.
func Parse(registry map[string]Command, line string) (Request, error) {
	return parseTokens(registry, strings.Fields(line))
}

// ParseQuoted splits line with shell quoting rules, so interactive users can
// type team names containing spaces.
func ParseQuoted(registry map[string]Command, line string) (Request, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return Request{}, fmt.Errorf("parse command failed: %w", err)
	}
	return parseTokens(registry, tokens)
}

func parseTokens(registry map[string]Command, tokens []string) (Request, error) {
	if len(tokens) == 0 {
		return Request{}, fmt.Errorf("empty command")
	}
	cmd, ok := registry[tokens[0]]
	if !ok {
		return Request{}, fmt.Errorf("unknown command: %s", tokens[0])
	}
	return cmd.Bind(tokens[1:])
}

// Bind matches args against the command grammar.
func (c Command) Bind(args []string) (Request, error) {
	if len(args) != len(c.Grammar) {
		return Request{}, fmt.Errorf("usage: %s", c.Usage)
	}
	params := Params{}
	for i, tok := range c.Grammar {
		if tok.Field == nil {
			if args[i] != tok.Literal {
				return Request{}, fmt.Errorf("expected %s, got %q; usage: %s", tok.Literal, args[i], c.Usage)
			}
			continue
		}
		value, err := tok.Field.parse(args[i])
		if err != nil {
			return Request{}, fmt.Errorf("%s: %w", c.Name, err)
		}
		params.Set(tok.Field.Name, value)
	}
	return Request{Name: c.Name, Params: params}, nil
}

// Help lists the usage of every command in registry.
func Help(registry map[string]Command) []string {
	lines := make([]string, 0, len(registry))
	for _, cmd := range registry {
		lines = append(lines, cmd.Usage)
	}
	sort.Strings(lines)
	return lines
}
