package poll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/livetally/livetally/internal/common/clock"
	"github.com/livetally/livetally/internal/common/uuid"
	"github.com/livetally/livetally/internal/models"
	sessionRepo "github.com/livetally/livetally/internal/repositories/session"
	"github.com/livetally/livetally/internal/services/broadcast"
)

// DefaultTimeLimit is applied to polls whose definition omits a time limit
const DefaultTimeLimit = 30 * time.Second

// errNotParticipant aborts a session mutation without broadcasting; used
// when a disconnect sweep visits a session the participant never joined
var errNotParticipant = errors.New("participant not in session")

// service implements the Service interface
type service struct {
	defaultTimeLimit time.Duration

	registry    sessionRepo.Registry
	broadcaster broadcast.Service
	clock       clock.Clock
	uuidGen     uuid.UUID

	// timerMu guards timers; never held while acquiring a session lock
	timerMu sync.Mutex
	timers  map[timerKey]*time.Timer
}

// New creates a new poll service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}

	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	defaultTimeLimit := cfg.DefaultTimeLimit
	if defaultTimeLimit <= 0 {
		defaultTimeLimit = DefaultTimeLimit
	}

	return &service{
		defaultTimeLimit: defaultTimeLimit,
		registry:         cfg.Registry,
		broadcaster:      cfg.Broadcaster,
		clock:            cfg.Clock,
		uuidGen:          cfg.UUIDGenerator,
		timers:           make(map[timerKey]*time.Timer),
	}, nil
}

// CreateSession creates a new empty session with a unique code
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	out, err := s.registry.CreateSession(ctx, &sessionRepo.CreateSessionInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &CreateSessionOutput{
		Code:    out.Session.Code,
		Session: out.Session,
	}, nil
}

// JoinSession adds a participant to a session's participant set
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	snapshot, err := s.mutateSession(ctx, input.Code, func(sess *models.Session) error {
		sess.Participants[input.ParticipantID] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &JoinSessionOutput{
		Session: snapshot,
	}, nil
}

// LeaveSessions removes a participant from every session it belongs to.
// Cast votes are intentionally left untouched: a vote persists after its
// voter disconnects.
func (s *service) LeaveSessions(ctx context.Context, input *LeaveSessionsInput) (*LeaveSessionsOutput, error) {
	listed, err := s.registry.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var codes []string
	for _, snapshot := range listed.Sessions {
		_, err := s.mutateSession(ctx, snapshot.Code, func(sess *models.Session) error {
			if _, ok := sess.Participants[input.ParticipantID]; !ok {
				return errNotParticipant
			}
			delete(sess.Participants, input.ParticipantID)
			return nil
		})
		if errors.Is(err, errNotParticipant) || errors.Is(err, ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		codes = append(codes, snapshot.Code)
	}

	return &LeaveSessionsOutput{
		Codes: codes,
	}, nil
}

// CreatePoll adds a draft poll to a session
func (s *service) CreatePoll(ctx context.Context, input *CreatePollInput) (*CreatePollOutput, error) {
	question, options, timeLimit, err := s.validateDefinition(input.Question, input.Options, input.TimeLimit)
	if err != nil {
		return nil, err
	}

	pollID := s.uuidGen.NewUUID()
	now := s.clock.Now()

	snapshot, err := s.mutateSession(ctx, input.Code, func(sess *models.Session) error {
		sess.Polls = append(sess.Polls, &models.Poll{
			ID:        pollID,
			Question:  question,
			Options:   options,
			Votes:     make(map[string]int),
			Voters:    make(map[string]struct{}),
			State:     models.PollStateDraft,
			TimeLimit: timeLimit,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreatePollOutput{
		PollID:  pollID,
		Session: snapshot,
	}, nil
}

// UpdatePoll rewrites a poll's question, options and time limit. The tally,
// voters and state are left as they are, even while the poll is active.
func (s *service) UpdatePoll(ctx context.Context, input *UpdatePollInput) (*UpdatePollOutput, error) {
	question, options, timeLimit, err := s.validateDefinition(input.Question, input.Options, input.TimeLimit)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.mutateSession(ctx, input.Code, func(sess *models.Session) error {
		poll, _ := sess.FindPoll(input.PollID)
		if poll == nil {
			return ErrPollNotFound
		}

		poll.Question = question
		poll.Options = options
		poll.TimeLimit = timeLimit
		poll.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdatePollOutput{
		Session: snapshot,
	}, nil
}

// DeletePoll removes a poll from a session, adjusting the current poll
// index so it keeps referring to the most recently started poll
func (s *service) DeletePoll(ctx context.Context, input *DeletePollInput) (*DeletePollOutput, error) {
	snapshot, err := s.mutateSession(ctx, input.Code, func(sess *models.Session) error {
		poll, index := sess.FindPoll(input.PollID)
		if poll == nil {
			return ErrPollNotFound
		}

		s.cancelTimer(input.Code, input.PollID)

		sess.Polls = append(sess.Polls[:index], sess.Polls[index+1:]...)

		if index < sess.CurrentPollIndex {
			sess.CurrentPollIndex--
		}
		if sess.CurrentPollIndex >= len(sess.Polls) {
			sess.CurrentPollIndex = len(sess.Polls) - 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeletePollOutput{
		Session: snapshot,
	}, nil
}

// StartPoll activates a poll and arms its expiry timer. Any other active
// poll in the session is forced to ended first, so at most one poll per
// session accepts votes at any instant.
func (s *service) StartPoll(ctx context.Context, input *StartPollInput) (*StartPollOutput, error) {
	snapshot, err := s.mutateSession(ctx, input.Code, func(sess *models.Session) error {
		target, index := sess.FindPoll(input.PollID)
		if target == nil {
			return ErrPollNotFound
		}

		for _, p := range sess.Polls {
			if p != target && p.State == models.PollStateActive {
				p.State = models.PollStateEnded
				s.cancelTimer(input.Code, p.ID)
			}
		}

		target.State = models.PollStateActive
		target.StartGeneration++
		sess.CurrentPollIndex = index

		if target.TimeLimit > 0 {
			s.armTimer(input.Code, target.ID, target.StartGeneration, target.TimeLimit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &StartPollOutput{
		Session: snapshot,
	}, nil
}

// EndPoll closes a poll and freezes its tally. Ending an already-ended
// poll leaves the tally untouched.
func (s *service) EndPoll(ctx context.Context, input *EndPollInput) (*EndPollOutput, error) {
	snapshot, err := s.mutateSession(ctx, input.Code, func(sess *models.Session) error {
		poll, _ := sess.FindPoll(input.PollID)
		if poll == nil {
			return ErrPollNotFound
		}

		poll.State = models.PollStateEnded
		s.cancelTimer(input.Code, input.PollID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &EndPollOutput{
		Session: snapshot,
	}, nil
}

// CastVote records a participant's vote on an active poll. The session lock
// makes the per-participant-once check and the tally increment atomic, so
// concurrent votes can neither be lost nor double-counted.
func (s *service) CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	snapshot, err := s.mutateSession(ctx, input.Code, func(sess *models.Session) error {
		poll, _ := sess.FindPoll(input.PollID)
		if poll == nil {
			return ErrPollNotFound
		}

		if poll.State != models.PollStateActive {
			return fmt.Errorf("%w: poll is not active", ErrInvalidVote)
		}

		if !poll.HasOption(input.Option) {
			return fmt.Errorf("%w: option %q is not defined", ErrInvalidVote, input.Option)
		}

		if poll.HasVoter(input.ParticipantID) {
			return fmt.Errorf("%w: participant has already voted", ErrInvalidVote)
		}

		poll.Votes[input.Option]++
		poll.TotalVotes++
		poll.Voters[input.ParticipantID] = struct{}{}
		poll.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CastVoteOutput{
		Session: snapshot,
	}, nil
}

// ListSessions returns snapshots of all live sessions
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	out, err := s.registry.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &ListSessionsOutput{
		Sessions: out.Sessions,
	}, nil
}

// mutateSession applies fn to the session under its serialization lock and,
// if fn succeeds, snapshots the result and publishes it while the lock is
// still held. Publishing under the lock is what keeps per-session broadcast
// order equal to mutation order.
func (s *service) mutateSession(ctx context.Context, code string, fn func(sess *models.Session) error) (*models.SessionSnapshot, error) {
	var snapshot *models.SessionSnapshot

	err := s.registry.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Code: code,
		Apply: func(sess *models.Session) error {
			if err := fn(sess); err != nil {
				return err
			}

			sess.UpdatedAt = s.clock.Now()
			snapshot = sess.Snapshot()

			return s.broadcaster.Publish(ctx, &broadcast.PublishInput{
				Code:     code,
				Snapshot: snapshot,
			})
		},
	})
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// validateDefinition checks a poll definition and normalizes its fields
func (s *service) validateDefinition(question string, options []string, timeLimit time.Duration) (string, []string, time.Duration, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", nil, 0, fmt.Errorf("%w: question is required", ErrInvalidPollDefinition)
	}

	if len(options) == 0 {
		return "", nil, 0, fmt.Errorf("%w: at least one option is required", ErrInvalidPollDefinition)
	}

	normalized := make([]string, 0, len(options))
	for _, option := range options {
		option = strings.TrimSpace(option)
		if option == "" {
			return "", nil, 0, fmt.Errorf("%w: options cannot be empty", ErrInvalidPollDefinition)
		}
		normalized = append(normalized, option)
	}

	if timeLimit <= 0 {
		timeLimit = s.defaultTimeLimit
	}

	return question, normalized, timeLimit, nil
}
