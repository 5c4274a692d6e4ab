package contextkey

// key is a private type to avoid context key collisions across packages.
type key string

const (
	SessionID key = "session_id"
	Command   key = "command"
	Line      key = "line"
)
