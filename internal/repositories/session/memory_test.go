package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/livetally/livetally/internal/common/clock/mocks"
	codeMocks "github.com/livetally/livetally/internal/common/code/mocks"
	"github.com/livetally/livetally/internal/models"
)

type MemoryRegistryTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockCodeGen *codeMocks.MockGenerator
	mockClock   *clockMocks.MockClock
	registry    Registry
	ctx         context.Context
	testTime    time.Time
}

func (s *MemoryRegistryTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCodeGen = codeMocks.NewMockGenerator(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	registry, err := NewMemory(&Config{
		CodeGenerator: s.mockCodeGen,
		Clock:         s.mockClock,
	})
	s.Require().NoError(err)
	s.registry = registry
}

func (s *MemoryRegistryTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMemoryRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRegistryTestSuite))
}

func (s *MemoryRegistryTestSuite) TestCreateSession() {
	s.mockCodeGen.EXPECT().NewCode().Return("AB12CD")

	out, err := s.registry.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)
	s.Require().NotNil(out.Session)

	s.Equal("AB12CD", out.Session.Code)
	s.Empty(out.Session.Polls)
	s.Equal(models.NoCurrentPoll, out.Session.CurrentPollIndex)
	s.Equal(0, out.Session.ParticipantCount)
}

func (s *MemoryRegistryTestSuite) TestCreateSessionRetriesOnCollision() {
	// The second session's first two candidates collide with the first
	// session's code; the registry must keep generating, never overwrite
	gomock.InOrder(
		s.mockCodeGen.EXPECT().NewCode().Return("SAME01"),
		s.mockCodeGen.EXPECT().NewCode().Return("SAME01"),
		s.mockCodeGen.EXPECT().NewCode().Return("SAME01"),
		s.mockCodeGen.EXPECT().NewCode().Return("FRESH2"),
	)

	first, err := s.registry.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)
	s.Equal("SAME01", first.Session.Code)

	second, err := s.registry.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)
	s.Equal("FRESH2", second.Session.Code)

	// The original session is untouched
	got, err := s.registry.GetSession(s.ctx, &GetSessionInput{Code: "SAME01"})
	s.Require().NoError(err)
	s.Equal("SAME01", got.Session.Code)
}

func (s *MemoryRegistryTestSuite) TestCreateSessionExhaustsAttempts() {
	s.mockCodeGen.EXPECT().NewCode().Return("SAME01").Times(defaultMaxCodeAttempts + 1)

	_, err := s.registry.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)

	_, err = s.registry.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().ErrorIs(err, ErrCodeSpaceExhausted)
}

func (s *MemoryRegistryTestSuite) TestGetSessionNotFound() {
	_, err := s.registry.GetSession(s.ctx, &GetSessionInput{Code: "NOPE99"})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRegistryTestSuite) TestUpdateSessionNotFound() {
	err := s.registry.UpdateSession(s.ctx, &UpdateSessionInput{
		Code:  "NOPE99",
		Apply: func(session *models.Session) error { return nil },
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRegistryTestSuite) TestUpdateSessionSerializesMutations() {
	s.mockCodeGen.EXPECT().NewCode().Return("AB12CD")

	_, err := s.registry.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)

	// Concurrent updates each read-modify-write the participant set; the
	// per-session lock must make every one of them land
	const workers = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.registry.UpdateSession(s.ctx, &UpdateSessionInput{
				Code: "AB12CD",
				Apply: func(session *models.Session) error {
					session.Participants[string(rune('a'+n%26))+string(rune('0'+n/26))] = struct{}{}
					return nil
				},
			})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	got, err := s.registry.GetSession(s.ctx, &GetSessionInput{Code: "AB12CD"})
	s.Require().NoError(err)
	s.Equal(workers, got.Session.ParticipantCount)
}

func (s *MemoryRegistryTestSuite) TestListSessions() {
	gomock.InOrder(
		s.mockCodeGen.EXPECT().NewCode().Return("AB12CD"),
		s.mockCodeGen.EXPECT().NewCode().Return("EF34GH"),
	)

	_, err := s.registry.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)
	_, err = s.registry.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)

	out, err := s.registry.ListSessions(s.ctx, &ListSessionsInput{})
	s.Require().NoError(err)
	s.Len(out.Sessions, 2)

	codes := map[string]bool{}
	for _, snapshot := range out.Sessions {
		codes[snapshot.Code] = true
	}
	s.True(codes["AB12CD"])
	s.True(codes["EF34GH"])
}
