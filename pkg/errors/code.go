package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 14000-14099: Contest lifecycle errors
// 14100-14199: Team registration errors
// 14200-14299: Scoreboard & ranking errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalServerError ErrorCode = 10001
	InvalidParams       ErrorCode = 10002

	// Cache errors (10200-10299)
	CacheError ErrorCode = 10200

	// ========== Contest Errors (14000-14999) ==========

	// Contest lifecycle (14000-14099)
	ContestNotStarted     ErrorCode = 14001
	ContestEnded          ErrorCode = 14002
	ContestAlreadyStarted ErrorCode = 14006
	ProblemOutOfRange     ErrorCode = 14007
	ExportFailed          ErrorCode = 14008

	// Registration (14100-14199)
	TeamNameDuplicated ErrorCode = 14105
	TeamNotFound       ErrorCode = 14106

	// Ranking (14200-14299)
	ScoreboardAlreadyFrozen ErrorCode = 14202
	ScoreboardNotFrozen     ErrorCode = 14203
	MirrorPublishFailed     ErrorCode = 14204
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",

	// Cache
	CacheError: "Cache operation failed",

	// Contest
	ContestNotStarted:     "Contest has not started yet",
	ContestEnded:          "Contest has ended",
	ContestAlreadyStarted: "Competition has started",
	ProblemOutOfRange:     "Problem is out of range",
	ExportFailed:          "Failed to export scoreboard",

	// Registration
	TeamNameDuplicated: "Duplicated team name",
	TeamNotFound:       "Cannot find the team",

	// Ranking
	ScoreboardAlreadyFrozen: "Scoreboard has been frozen",
	ScoreboardNotFrozen:     "Scoreboard has not been frozen",
	MirrorPublishFailed:     "Failed to publish scoreboard mirror",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// IsPrecondition reports whether the code rejects a command because the
// contest is in the wrong state or the command references something unknown.
func (c ErrorCode) IsPrecondition() bool {
	switch {
	case c == InvalidParams:
		return true
	case c >= 14000 && c < 14200:
		return c != ExportFailed
	case c == ScoreboardAlreadyFrozen, c == ScoreboardNotFrozen:
		return true
	default:
		return false
	}
}
