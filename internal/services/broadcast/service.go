package broadcast

import (
	"context"
	"errors"
	"sync"

	"github.com/livetally/livetally/internal/models"
)

// ErrNotSubscribed is returned when unsubscribing a connection that is not
// in the group
var ErrNotSubscribed = errors.New("subscriber not in broadcast group")

const defaultBufferSize = 16

// service implements the Service interface with per-session subscriber maps
type service struct {
	cfg *Config

	mu     sync.RWMutex
	groups map[string]map[string]chan *models.SessionSnapshot
}

// New creates a new broadcast service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}

	return &service{
		cfg:    cfg,
		groups: make(map[string]map[string]chan *models.SessionSnapshot),
	}, nil
}

// Subscribe adds a subscriber channel to the session's group, creating the
// group if this is its first subscriber.
func (s *service) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	ch := make(chan *models.SessionSnapshot, s.cfg.BufferSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[input.Code]
	if !ok {
		group = make(map[string]chan *models.SessionSnapshot)
		s.groups[input.Code] = group
	}

	// A re-subscribe under the same ID replaces the old channel
	if old, ok := group[input.SubscriberID]; ok {
		close(old)
	}
	group[input.SubscriberID] = ch

	return &SubscribeOutput{
		Updates: ch,
	}, nil
}

// Unsubscribe removes the subscriber and closes its channel. Empty groups
// are dropped.
func (s *service) Unsubscribe(ctx context.Context, input *UnsubscribeInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[input.Code]
	if !ok {
		return ErrNotSubscribed
	}

	ch, ok := group[input.SubscriberID]
	if !ok {
		return ErrNotSubscribed
	}

	delete(group, input.SubscriberID)
	if len(group) == 0 {
		delete(s.groups, input.Code)
	}
	close(ch)

	return nil
}

// Publish hands the snapshot to every subscriber of the session's group.
// Sends are non-blocking: a subscriber whose buffer is full misses this
// snapshot rather than stalling the mutation that produced it. Callers
// publish while still holding the session's serialization lock, which is
// what makes per-session delivery order match mutation order.
func (s *service) Publish(ctx context.Context, input *PublishInput) error {
	if input == nil || input.Snapshot == nil {
		return errors.New("input and snapshot cannot be nil")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.groups[input.Code] {
		select {
		case ch <- input.Snapshot:
		default:
		}
	}

	return nil
}
