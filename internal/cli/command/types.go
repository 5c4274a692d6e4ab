package command

import (
	"fmt"
	"strconv"
	"strings"

	"icpcboard/internal/contest/model"
	"icpcboard/internal/contest/service"
)

// Wildcard matches every problem or every status in a submission query.
const Wildcard = "ALL"

// FieldType describes how an argument token is validated.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
	FieldProblem
	FieldStatus
)

// Field is a named argument of a command line.
// Prefix is stripped from the token before validation, e.g. "PROBLEM=".
type Field struct {
	Name     string
	Prefix   string
	Type     FieldType
	AllowAll bool
}

// Token is one position of a command grammar: a literal keyword or a field.
type Token struct {
	Literal string
	Field   *Field
}

// Keyword matches a literal token.
func Keyword(word string) Token {
	return Token{Literal: word}
}

// Arg matches a field token.
func Arg(field Field) Token {
	return Token{Field: &field}
}

// Command binds a leading keyword to the grammar of the rest of the line.
type Command struct {
	Name    string
	Usage   string
	Grammar []Token
}

// Request is a parsed command line.
type Request struct {
	Name   string
	Params Params
}

// Params holds parsed argument values keyed by field name.
type Params map[string]string

func (p Params) Get(key string) string {
	return p[strings.ToLower(key)]
}

func (p Params) Set(key, value string) {
	p[strings.ToLower(key)] = value
}

func (p Params) Has(key string) bool {
	_, ok := p[strings.ToLower(key)]
	return ok
}

// Int returns a field validated as FieldInt.
func (p Params) Int(key string) int {
	n, _ := ParseInt(p.Get(key))
	return n
}

// Problem returns a field validated as FieldProblem; Wildcard maps to service.AnyProblem.
func (p Params) Problem(key string) int {
	value := p.Get(key)
	if value == Wildcard {
		return service.AnyProblem
	}
	id, _ := model.ParseProblemLabel(value)
	return id
}

// Status returns a field validated as FieldStatus; Wildcard maps to "".
func (p Params) Status(key string) model.Status {
	value := p.Get(key)
	if value == Wildcard {
		return ""
	}
	return model.Status(value)
}

func ParseInt(value string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
	return int(n), err
}

func (f Field) parse(token string) (string, error) {
	if f.Prefix != "" {
		if !strings.HasPrefix(token, f.Prefix) {
			return "", fmt.Errorf("expected %s<%s>, got %q", f.Prefix, f.Name, token)
		}
		token = strings.TrimPrefix(token, f.Prefix)
	}
	if f.AllowAll && token == Wildcard {
		return token, nil
	}
	switch f.Type {
	case FieldInt:
		if _, err := ParseInt(token); err != nil {
			return "", fmt.Errorf("invalid %s %q: %w", f.Name, token, err)
		}
	case FieldProblem:
		if _, err := model.ParseProblemLabel(token); err != nil {
			return "", err
		}
	case FieldStatus:
		if _, err := model.ParseStatus(token); err != nil {
			return "", err
		}
	default:
		if token == "" {
			return "", fmt.Errorf("%s is required", f.Name)
		}
	}
	return token, nil
}
