package session

//go:generate mockgen -package=mocks -destination=mocks/mock_registry.go github.com/livetally/livetally/internal/repositories/session Registry

import (
	"context"
)

// Registry defines the interface for session storage and lookup. It is the
// only cross-cutting shared resource in the service: the code-to-session
// table. State belonging to different sessions may be mutated in parallel;
// state belonging to one session is only ever touched inside UpdateSession.
type Registry interface {
	// CreateSession generates a unique code and stores a new empty session
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession returns a snapshot of the session with the given code
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// UpdateSession runs input.Apply on the session under its serialization
	// lock; every mutation of session state goes through here
	UpdateSession(ctx context.Context, input *UpdateSessionInput) error

	// ListSessions returns snapshots of all live sessions
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
}
