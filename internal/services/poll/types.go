package poll

import (
	"time"

	"github.com/livetally/livetally/internal/common/clock"
	"github.com/livetally/livetally/internal/common/uuid"
	"github.com/livetally/livetally/internal/models"
	sessionRepo "github.com/livetally/livetally/internal/repositories/session"
	"github.com/livetally/livetally/internal/services/broadcast"
)

// Config holds configuration for the poll service
type Config struct {
	// DefaultTimeLimit is applied to polls created or updated without one
	DefaultTimeLimit time.Duration

	// Repository dependencies
	Registry sessionRepo.Registry

	// Service dependencies
	Broadcaster   broadcast.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	// Code is the generated session code participants join with
	Code string

	// Session is a snapshot of the new empty session
	Session *models.SessionSnapshot
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	// Code is the session code to join
	Code string

	// ParticipantID is the opaque identifier of the joining connection
	ParticipantID string
}

// JoinSessionOutput contains the result of joining a session
type JoinSessionOutput struct {
	// Session is a snapshot of the session after the join
	Session *models.SessionSnapshot
}

// LeaveSessionsInput contains parameters for removing a participant everywhere
type LeaveSessionsInput struct {
	// ParticipantID is the opaque identifier of the disconnected connection
	ParticipantID string
}

// LeaveSessionsOutput contains the result of removing a participant
type LeaveSessionsOutput struct {
	// Codes are the sessions the participant was removed from
	Codes []string
}

// CreatePollInput contains parameters for creating a poll
type CreatePollInput struct {
	// Code is the session the poll belongs to
	Code string

	// Question is the poll's question text
	Question string

	// Options are the poll's choices, in display order
	Options []string

	// TimeLimit is how long the poll accepts votes once started; the
	// service default is applied when zero
	TimeLimit time.Duration
}

// CreatePollOutput contains the result of creating a poll
type CreatePollOutput struct {
	// PollID is the unique identifier of the new poll
	PollID string

	// Session is a snapshot of the session after the creation
	Session *models.SessionSnapshot
}

// UpdatePollInput contains parameters for updating a poll
type UpdatePollInput struct {
	// Code is the session the poll belongs to
	Code string

	// PollID identifies the poll to update
	PollID string

	// Question replaces the poll's question text
	Question string

	// Options replace the poll's choices
	Options []string

	// TimeLimit replaces the poll's time limit; the service default is
	// applied when zero
	TimeLimit time.Duration
}

// UpdatePollOutput contains the result of updating a poll
type UpdatePollOutput struct {
	// Session is a snapshot of the session after the update
	Session *models.SessionSnapshot
}

// DeletePollInput contains parameters for deleting a poll
type DeletePollInput struct {
	// Code is the session the poll belongs to
	Code string

	// PollID identifies the poll to delete
	PollID string
}

// DeletePollOutput contains the result of deleting a poll
type DeletePollOutput struct {
	// Session is a snapshot of the session after the deletion
	Session *models.SessionSnapshot
}

// StartPollInput contains parameters for starting a poll
type StartPollInput struct {
	// Code is the session the poll belongs to
	Code string

	// PollID identifies the poll to start
	PollID string
}

// StartPollOutput contains the result of starting a poll
type StartPollOutput struct {
	// Session is a snapshot of the session after the start
	Session *models.SessionSnapshot
}

// EndPollInput contains parameters for ending a poll
type EndPollInput struct {
	// Code is the session the poll belongs to
	Code string

	// PollID identifies the poll to end
	PollID string
}

// EndPollOutput contains the result of ending a poll
type EndPollOutput struct {
	// Session is a snapshot of the session after the end
	Session *models.SessionSnapshot
}

// CastVoteInput contains parameters for casting a vote
type CastVoteInput struct {
	// Code is the session the poll belongs to
	Code string

	// PollID identifies the poll being voted on
	PollID string

	// ParticipantID is the opaque identifier of the voting connection
	ParticipantID string

	// Option is the choice being voted for
	Option string
}

// CastVoteOutput contains the result of casting a vote
type CastVoteOutput struct {
	// Session is a snapshot of the session after the vote
	Session *models.SessionSnapshot
}

// ListSessionsInput contains parameters for listing all sessions
type ListSessionsInput struct {
}

// ListSessionsOutput contains snapshots of all live sessions
type ListSessionsOutput struct {
	Sessions []*models.SessionSnapshot
}
