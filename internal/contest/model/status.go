// Package model defines contest teams, per-problem scoring state and scoreboard snapshots.
package model

import "fmt"

// Status is the terminal verdict of a submission.
type Status string

const (
	StatusAccepted        Status = "Accepted"
	StatusWrongAnswer     Status = "Wrong_Answer"
	StatusRuntimeError    Status = "Runtime_Error"
	StatusTimeLimitExceed Status = "Time_Limit_Exceed"
)

// MaxProblems bounds the problem count; problems are labelled A..Z.
const MaxProblems = 26

// ParseStatus maps a verdict name to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAccepted, StatusWrongAnswer, StatusRuntimeError, StatusTimeLimitExceed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown submission status %q", s)
}

// Accepted reports whether the verdict solves the problem.
func (s Status) Accepted() bool {
	return s == StatusAccepted
}

// ProblemLabel renders a 0-based problem id as its letter.
func ProblemLabel(id int) string {
	return string(rune('A' + id))
}

// ParseProblemLabel maps a letter label back to its 0-based id.
func ParseProblemLabel(label string) (int, error) {
	if len(label) != 1 || label[0] < 'A' || label[0] > 'Z' {
		return 0, fmt.Errorf("invalid problem label %q", label)
	}
	return int(label[0] - 'A'), nil
}
