package poll

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/livetally/livetally/internal/models"
	sessionRepo "github.com/livetally/livetally/internal/repositories/session"
	"github.com/livetally/livetally/internal/services/broadcast"
)

// timerKey identifies the at-most-one outstanding expiry timer per poll
type timerKey struct {
	code   string
	pollID string
}

// errStaleTimer aborts an expiry that raced with a manual end, a delete,
// or a restart of the same poll
var errStaleTimer = errors.New("stale expiry timer")

// armTimer schedules the poll's expiry, replacing any timer already
// outstanding for the same poll.
func (s *service) armTimer(code, pollID string, generation uint64, limit time.Duration) {
	key := timerKey{code: code, pollID: pollID}

	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(limit, func() {
		s.expirePoll(code, pollID, generation)
	})
}

// cancelTimer stops and forgets the poll's expiry timer, if any. Stopping
// is best effort; a callback that already fired is caught by the
// generation check in expirePoll.
func (s *service) cancelTimer(code, pollID string) {
	key := timerKey{code: code, pollID: pollID}

	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// expirePoll is the expiry callback. It re-enters through the session's
// serialization lock and only takes effect if the poll still exists, is
// still active, and is still the same activation the timer was armed for.
func (s *service) expirePoll(code, pollID string, generation uint64) {
	key := timerKey{code: code, pollID: pollID}

	s.timerMu.Lock()
	delete(s.timers, key)
	s.timerMu.Unlock()

	ctx := context.Background()

	err := s.registry.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Code: code,
		Apply: func(sess *models.Session) error {
			poll, _ := sess.FindPoll(pollID)
			if poll == nil || poll.State != models.PollStateActive || poll.StartGeneration != generation {
				return errStaleTimer
			}

			poll.State = models.PollStateEnded
			sess.UpdatedAt = s.clock.Now()

			return s.broadcaster.Publish(ctx, &broadcast.PublishInput{
				Code:     code,
				Snapshot: sess.Snapshot(),
			})
		},
	})
	if err != nil && !errors.Is(err, errStaleTimer) && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		log.Printf("poll expiry for %s/%s failed: %v", code, pollID, err)
	}
}
