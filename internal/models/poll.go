package models

import (
	"time"
)

// PollState represents the lifecycle state of a poll
type PollState string

const (
	// PollStateDraft indicates a poll has been created but not yet shown to participants
	PollStateDraft PollState = "draft"

	// PollStateActive indicates a poll is accepting votes
	PollStateActive PollState = "active"

	// PollStateEnded indicates a poll is closed and its tally is frozen
	PollStateEnded PollState = "ended"
)

// Poll represents a single question with fixed multiple-choice options
type Poll struct {
	// ID is the unique identifier for the poll within its session
	ID string

	// Question is the text shown to participants
	Question string

	// Options are the choices participants can vote for, in display order
	Options []string

	// Votes maps option text to the number of votes it has received
	Votes map[string]int

	// TotalVotes is the total number of votes cast on this poll
	TotalVotes int

	// Voters contains the participant IDs that have voted on this poll
	Voters map[string]struct{}

	// State is the current lifecycle state of the poll
	State PollState

	// TimeLimit is how long the poll accepts votes once started
	TimeLimit time.Duration

	// StartGeneration increments every time the poll is started; expiry
	// timers carry the generation they were armed with so a stale timer
	// cannot end a later activation of the same poll
	StartGeneration uint64

	// CreatedAt is when the poll was created
	CreatedAt time.Time

	// UpdatedAt is when the poll was last modified
	UpdatedAt time.Time
}

// HasOption reports whether option is one of the poll's defined choices.
func (p *Poll) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}

// HasVoter reports whether the participant has already voted on this poll.
func (p *Poll) HasVoter(participantID string) bool {
	_, ok := p.Voters[participantID]
	return ok
}
