package session

import (
	"context"
	"errors"
	"sync"

	"github.com/livetally/livetally/internal/common/clock"
	"github.com/livetally/livetally/internal/common/code"
	"github.com/livetally/livetally/internal/models"
)

// ErrSessionNotFound is returned when no session exists for a code
var ErrSessionNotFound = errors.New("session not found")

// ErrCodeSpaceExhausted is returned when code generation keeps colliding
// with live sessions
var ErrCodeSpaceExhausted = errors.New("could not generate a unique session code")

const defaultMaxCodeAttempts = 10

// Config holds configuration for the in-memory session registry
type Config struct {
	// CodeGenerator produces candidate session codes
	CodeGenerator code.Generator

	// Clock provides timestamps
	Clock clock.Clock

	// MaxCodeAttempts bounds the generate-and-check retry loop
	MaxCodeAttempts int
}

// record pairs a session with its serialization lock. The lock is the single
// point of serialization for everything belonging to one session.
type record struct {
	mu      sync.Mutex
	session *models.Session
}

// memoryRegistry implements the Registry interface with a process-lifetime map
type memoryRegistry struct {
	cfg *Config

	mu       sync.RWMutex
	sessions map[string]*record
}

// NewMemory creates a new in-memory session registry
func NewMemory(cfg *Config) (*memoryRegistry, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.CodeGenerator == nil {
		return nil, errors.New("code generator cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.MaxCodeAttempts <= 0 {
		cfg.MaxCodeAttempts = defaultMaxCodeAttempts
	}

	return &memoryRegistry{
		cfg:      cfg,
		sessions: make(map[string]*record),
	}, nil
}

// CreateSession generates a code, retrying on collision with live sessions,
// and stores a new empty session under it.
func (r *memoryRegistry) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	now := r.cfg.Clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for attempt := 0; attempt < r.cfg.MaxCodeAttempts; attempt++ {
		candidate := r.cfg.CodeGenerator.NewCode()
		if _, exists := r.sessions[candidate]; exists {
			continue
		}

		session := &models.Session{
			Code:             candidate,
			Polls:            []*models.Poll{},
			Participants:     make(map[string]struct{}),
			CurrentPollIndex: models.NoCurrentPoll,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		r.sessions[candidate] = &record{session: session}

		return &CreateSessionOutput{
			Session: session.Snapshot(),
		}, nil
	}

	return nil, ErrCodeSpaceExhausted
}

// GetSession returns a point-in-time snapshot of a session
func (r *memoryRegistry) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	rec, err := r.lookup(input.Code)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	return &GetSessionOutput{
		Session: rec.session.Snapshot(),
	}, nil
}

// UpdateSession runs Apply on the session while holding its lock
func (r *memoryRegistry) UpdateSession(ctx context.Context, input *UpdateSessionInput) error {
	if input == nil || input.Apply == nil {
		return errors.New("input and apply function cannot be nil")
	}

	rec, err := r.lookup(input.Code)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	return input.Apply(rec.session)
}

// ListSessions returns snapshots of every live session
func (r *memoryRegistry) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	r.mu.RLock()
	records := make([]*record, 0, len(r.sessions))
	for _, rec := range r.sessions {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	snapshots := make([]*models.SessionSnapshot, 0, len(records))
	for _, rec := range records {
		rec.mu.Lock()
		snapshots = append(snapshots, rec.session.Snapshot())
		rec.mu.Unlock()
	}

	return &ListSessionsOutput{
		Sessions: snapshots,
	}, nil
}

func (r *memoryRegistry) lookup(code string) (*record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.sessions[code]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return rec, nil
}
