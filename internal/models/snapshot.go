package models

// PollSnapshot is an immutable wire-ready copy of a poll's public state.
// Voter identities stay inside the service; only counts leave it.
type PollSnapshot struct {
	ID               string         `json:"id"`
	Question         string         `json:"question"`
	Options          []string       `json:"options"`
	Votes            map[string]int `json:"votes"`
	TotalVotes       int            `json:"totalVotes"`
	State            PollState      `json:"state"`
	TimeLimitSeconds int            `json:"timeLimit"`
}

// SessionSnapshot is the full public state of a session, broadcast to every
// subscriber after each mutation.
type SessionSnapshot struct {
	Code             string          `json:"code"`
	Polls            []*PollSnapshot `json:"polls"`
	CurrentPollIndex int             `json:"currentPollIndex"`
	ParticipantCount int             `json:"participantCount"`
}

// Snapshot builds a PollSnapshot from the poll's current state.
func (p *Poll) Snapshot() *PollSnapshot {
	options := make([]string, len(p.Options))
	copy(options, p.Options)

	votes := make(map[string]int, len(p.Votes))
	for option, count := range p.Votes {
		votes[option] = count
	}

	return &PollSnapshot{
		ID:               p.ID,
		Question:         p.Question,
		Options:          options,
		Votes:            votes,
		TotalVotes:       p.TotalVotes,
		State:            p.State,
		TimeLimitSeconds: int(p.TimeLimit.Seconds()),
	}
}

// Snapshot builds a SessionSnapshot from the session's current state. The
// caller must hold the session's serialization lock while calling it.
func (s *Session) Snapshot() *SessionSnapshot {
	polls := make([]*PollSnapshot, len(s.Polls))
	for i, p := range s.Polls {
		polls[i] = p.Snapshot()
	}

	return &SessionSnapshot{
		Code:             s.Code,
		Polls:            polls,
		CurrentPollIndex: s.CurrentPollIndex,
		ParticipantCount: len(s.Participants),
	}
}
