package models

// SessionState is the view state of one analysis session.
type SessionState string

const (
	StateIdle           SessionState = "idle"
	StateAwaitingKey    SessionState = "awaiting_key"
	StateLoading        SessionState = "loading"
	StateShowingResults SessionState = "showing_results"
	StateShowingDetail  SessionState = "showing_detail"
	StateError          SessionState = "error"
)

// SessionEvent drives a transition between states.
type SessionEvent string

const (
	EventKeyRequired SessionEvent = "key_required"
	EventKeySaved    SessionEvent = "key_saved"
	EventSubmit      SessionEvent = "submit"
	EventSucceeded   SessionEvent = "succeeded"
	EventFailed      SessionEvent = "failed"
	EventOpenDetail  SessionEvent = "open_detail"
	EventCloseDetail SessionEvent = "close_detail"
	EventOpenHistory SessionEvent = "open_history"
	EventReset       SessionEvent = "reset"
)
