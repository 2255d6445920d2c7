package poll

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/livetally/livetally/internal/services/poll Service

import "context"

// Service defines the interface for poll-session operations
type Service interface {
	// CreateSession creates a new empty session with a unique code
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession adds a participant to a session's participant set
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// LeaveSessions removes a participant from every session it belongs to
	LeaveSessions(ctx context.Context, input *LeaveSessionsInput) (*LeaveSessionsOutput, error)

	// CreatePoll adds a draft poll to a session
	CreatePoll(ctx context.Context, input *CreatePollInput) (*CreatePollOutput, error)

	// UpdatePoll rewrites a poll's question, options and time limit
	UpdatePoll(ctx context.Context, input *UpdatePollInput) (*UpdatePollOutput, error)

	// DeletePoll removes a poll from a session
	DeletePoll(ctx context.Context, input *DeletePollInput) (*DeletePollOutput, error)

	// StartPoll activates a poll, ending any other active poll in the session
	StartPoll(ctx context.Context, input *StartPollInput) (*StartPollOutput, error)

	// EndPoll closes a poll and freezes its tally
	EndPoll(ctx context.Context, input *EndPollInput) (*EndPollOutput, error)

	// CastVote records a participant's vote on an active poll
	CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error)

	// ListSessions returns snapshots of all live sessions
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
}
