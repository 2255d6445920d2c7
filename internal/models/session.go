package models

import (
	"time"
)

// NoCurrentPoll is the CurrentPollIndex value meaning no poll has been started.
const NoCurrentPoll = -1

// Session represents an isolated group of polls identified by a short code
type Session struct {
	// Code is the short human-typeable identifier participants join with
	Code string

	// Polls are the session's polls in creation order
	Polls []*Poll

	// Participants contains the opaque IDs of currently connected participants
	Participants map[string]struct{}

	// CurrentPollIndex is the index of the most recently started poll,
	// or NoCurrentPoll if none has been started
	CurrentPollIndex int

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last mutated
	UpdatedAt time.Time
}

// FindPoll returns the poll with the given ID and its index, or nil and
// NoCurrentPoll if the session has no such poll.
func (s *Session) FindPoll(pollID string) (*Poll, int) {
	for i, p := range s.Polls {
		if p.ID == pollID {
			return p, i
		}
	}
	return nil, NoCurrentPoll
}
