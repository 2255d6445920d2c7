package poll

// PollError is a custom error type for poll-session errors
type PollError string

// Error implements the error interface
func (e PollError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound       PollError = "session not found"
	ErrPollNotFound          PollError = "poll not found"
	ErrInvalidPollDefinition PollError = "invalid poll definition"
	ErrInvalidVote           PollError = "invalid vote"
	ErrNilConfig             PollError = "config cannot be nil"
	ErrNilRegistry           PollError = "session registry cannot be nil"
	ErrNilBroadcaster        PollError = "broadcaster cannot be nil"
	ErrNilClock              PollError = "clock cannot be nil"
	ErrNilUUIDGenerator      PollError = "UUID generator cannot be nil"
)
