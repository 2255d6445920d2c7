package ws

import (
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/livetally/livetally/internal/common/clock"
	"github.com/livetally/livetally/internal/common/code"
	"github.com/livetally/livetally/internal/common/uuid"
	"github.com/livetally/livetally/internal/models"
	sessionRepo "github.com/livetally/livetally/internal/repositories/session"
	"github.com/livetally/livetally/internal/services/broadcast"
	"github.com/livetally/livetally/internal/services/poll"
)

// newTestServer wires the full real stack behind an httptest server
func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	systemClock := &clock.DefaultClock{}

	registry, err := sessionRepo.NewMemory(&sessionRepo.Config{
		CodeGenerator: code.New(),
		Clock:         systemClock,
	})
	require.NoError(t, err)

	broadcaster, err := broadcast.New(&broadcast.Config{})
	require.NoError(t, err)

	pollSvc, err := poll.New(&poll.Config{
		Registry:      registry,
		Broadcaster:   broadcaster,
		Clock:         systemClock,
		UUIDGenerator: uuid.New(),
	})
	require.NoError(t, err)

	handler, err := New(&Config{
		PollService:   pollSvc,
		Broadcaster:   broadcaster,
		UUIDGenerator: uuid.New(),
	})
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	return server, wsURL
}

// testClient wraps a websocket client connection with event helpers
type testClient struct {
	t    *testing.T
	sock *websocket.Conn
}

func dialClient(t *testing.T, wsURL string) *testClient {
	t.Helper()

	sock, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { sock.Close() })

	return &testClient{t: t, sock: sock}
}

func (c *testClient) send(event string, data any) {
	c.t.Helper()

	frame := map[string]any{"event": event}
	if data != nil {
		frame["data"] = data
	}
	require.NoError(c.t, c.sock.WriteJSON(frame))
}

// next reads the next event frame, failing the test after the deadline
func (c *testClient) next(deadline time.Duration) (string, json.RawMessage) {
	c.t.Helper()

	require.NoError(c.t, c.sock.SetReadDeadline(time.Now().Add(deadline)))

	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(c.t, c.sock.ReadJSON(&env))
	return env.Event, env.Data
}

// waitFor reads frames until one matches the wanted event
func (c *testClient) waitFor(event string, deadline time.Duration) json.RawMessage {
	c.t.Helper()

	end := time.Now().Add(deadline)
	for {
		remaining := time.Until(end)
		require.Greater(c.t, remaining, time.Duration(0), "timed out waiting for %s", event)

		got, data := c.next(remaining)
		if got == event {
			return data
		}
	}
}

// waitForUpdate reads frames until a session snapshot satisfying accept
// arrives; intermediate snapshots are allowed to pass by
func (c *testClient) waitForUpdate(accept func(s *models.SessionSnapshot) bool, deadline time.Duration) *models.SessionSnapshot {
	c.t.Helper()

	end := time.Now().Add(deadline)
	for {
		data := c.waitFor(eventPollSessionUpdate, time.Until(end))

		var snapshot models.SessionSnapshot
		require.NoError(c.t, json.Unmarshal(data, &snapshot))
		if accept(&snapshot) {
			return &snapshot
		}
	}
}

func (c *testClient) createSession() string {
	c.t.Helper()

	c.send(eventCreatePollSession, nil)
	data := c.waitFor(eventPollSessionCreated, 2*time.Second)

	var payload sessionCreatedPayload
	require.NoError(c.t, json.Unmarshal(data, &payload))
	require.NotEmpty(c.t, payload.Code)
	return payload.Code
}

func (c *testClient) join(sessionCode string) *models.SessionSnapshot {
	c.t.Helper()

	c.send(eventJoinPollSession, joinSessionPayload{Code: sessionCode})
	data := c.waitFor(eventPollSessionJoined, 2*time.Second)

	var payload sessionJoinedPayload
	require.NoError(c.t, json.Unmarshal(data, &payload))
	require.NotNil(c.t, payload.Session)
	return payload.Session
}

func TestCreateSessionReturnsWellFormedCode(t *testing.T) {
	_, wsURL := newTestServer(t)
	coordinator := dialClient(t, wsURL)

	sessionCode := coordinator.createSession()
	require.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), sessionCode)
}

func TestJoinUnknownSessionReturnsError(t *testing.T) {
	_, wsURL := newTestServer(t)
	client := dialClient(t, wsURL)

	client.send(eventJoinPollSession, joinSessionPayload{Code: "NOPE99"})
	data := client.waitFor(eventError, 2*time.Second)

	var payload errorPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Contains(t, payload.Message, "session not found")
}

func TestMalformedPayloadReturnsError(t *testing.T) {
	_, wsURL := newTestServer(t)
	client := dialClient(t, wsURL)

	client.send(eventJoinPollSession, nil)
	client.waitFor(eventError, 2*time.Second)

	require.NoError(t, client.sock.WriteMessage(websocket.TextMessage, []byte(`{"event":"vote","data":"not-an-object"}`)))
	client.waitFor(eventError, 2*time.Second)
}

func TestPollLifecycleBroadcastsToAllParticipants(t *testing.T) {
	_, wsURL := newTestServer(t)

	coordinator := dialClient(t, wsURL)
	sessionCode := coordinator.createSession()
	coordinator.join(sessionCode)

	voter := dialClient(t, wsURL)
	voter.join(sessionCode)

	// Both sides observe the voter's join
	coordinator.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return s.ParticipantCount == 2
	}, 2*time.Second)

	// Coordinator publishes a poll
	coordinator.send(eventCreatePoll, createPollPayload{
		Code:      sessionCode,
		Question:  "Coffee or tea?",
		Options:   []string{"Coffee", "Tea"},
		TimeLimit: 30,
	})

	created := voter.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return len(s.Polls) == 1
	}, 2*time.Second)
	require.Equal(t, models.PollStateDraft, created.Polls[0].State)
	require.Equal(t, 30, created.Polls[0].TimeLimitSeconds)
	pollID := created.Polls[0].ID

	// Coordinator starts the poll
	coordinator.send(eventStartPoll, pollRefPayload{Code: sessionCode, PollID: pollID})
	started := voter.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return len(s.Polls) == 1 && s.Polls[0].State == models.PollStateActive
	}, 2*time.Second)
	require.Equal(t, 0, started.CurrentPollIndex)

	// Voter casts a vote; every participant sees the tally move
	voter.send(eventVote, votePayload{Code: sessionCode, PollID: pollID, Option: "Coffee"})
	tallied := coordinator.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return s.Polls[0].TotalVotes == 1
	}, 2*time.Second)
	require.Equal(t, map[string]int{"Coffee": 1}, tallied.Polls[0].Votes)

	// A second vote from the same participant is rejected
	voter.send(eventVote, votePayload{Code: sessionCode, PollID: pollID, Option: "Tea"})
	data := voter.waitFor(eventError, 2*time.Second)

	var rejection errorPayload
	require.NoError(t, json.Unmarshal(data, &rejection))
	require.Contains(t, rejection.Message, "invalid vote")

	// Coordinator ends the poll; the frozen tally is unchanged
	coordinator.send(eventEndPoll, pollRefPayload{Code: sessionCode, PollID: pollID})
	ended := voter.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return s.Polls[0].State == models.PollStateEnded
	}, 2*time.Second)
	require.Equal(t, 1, ended.Polls[0].TotalVotes)
	require.Equal(t, map[string]int{"Coffee": 1}, ended.Polls[0].Votes)
}

func TestPollExpiresWithoutClientAction(t *testing.T) {
	_, wsURL := newTestServer(t)

	coordinator := dialClient(t, wsURL)
	sessionCode := coordinator.createSession()
	coordinator.join(sessionCode)

	coordinator.send(eventCreatePoll, createPollPayload{
		Code:      sessionCode,
		Question:  "Coffee or tea?",
		Options:   []string{"Coffee", "Tea"},
		TimeLimit: 1,
	})
	created := coordinator.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return len(s.Polls) == 1
	}, 2*time.Second)

	coordinator.send(eventStartPoll, pollRefPayload{Code: sessionCode, PollID: created.Polls[0].ID})

	// The expiry timer ends the poll with no further client action
	coordinator.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return s.Polls[0].State == models.PollStateEnded
	}, 5*time.Second)
}

func TestDisconnectRemovesParticipantButKeepsVotes(t *testing.T) {
	_, wsURL := newTestServer(t)

	coordinator := dialClient(t, wsURL)
	sessionCode := coordinator.createSession()
	coordinator.join(sessionCode)

	voter := dialClient(t, wsURL)
	voter.join(sessionCode)

	coordinator.send(eventCreatePoll, createPollPayload{
		Code:     sessionCode,
		Question: "Coffee or tea?",
		Options:  []string{"Coffee", "Tea"},
	})
	created := voter.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return len(s.Polls) == 1
	}, 2*time.Second)
	pollID := created.Polls[0].ID

	coordinator.send(eventStartPoll, pollRefPayload{Code: sessionCode, PollID: pollID})
	voter.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return s.Polls[0].State == models.PollStateActive
	}, 2*time.Second)

	voter.send(eventVote, votePayload{Code: sessionCode, PollID: pollID, Option: "Tea"})
	coordinator.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return len(s.Polls) == 1 && s.Polls[0].TotalVotes == 1
	}, 2*time.Second)

	// Voter drops; the participant set shrinks but the cast vote stays
	require.NoError(t, voter.sock.Close())

	after := coordinator.waitForUpdate(func(s *models.SessionSnapshot) bool {
		return s.ParticipantCount == 1
	}, 2*time.Second)
	require.Equal(t, 1, after.Polls[0].TotalVotes)
	require.Equal(t, map[string]int{"Tea": 1}, after.Polls[0].Votes)
}

func TestGetPollSessionsListsLiveSessions(t *testing.T) {
	_, wsURL := newTestServer(t)

	coordinator := dialClient(t, wsURL)
	first := coordinator.createSession()
	second := coordinator.createSession()

	coordinator.send(eventGetPollSessions, nil)
	data := coordinator.waitFor(eventPollSessionsList, 2*time.Second)

	var sessions []*models.SessionSnapshot
	require.NoError(t, json.Unmarshal(data, &sessions))
	require.Len(t, sessions, 2)

	codes := map[string]bool{}
	for _, s := range sessions {
		codes[s.Code] = true
	}
	require.True(t, codes[first])
	require.True(t, codes[second])
}

func TestUnknownEventReturnsError(t *testing.T) {
	_, wsURL := newTestServer(t)
	client := dialClient(t, wsURL)

	client.send("teleport", nil)
	data := client.waitFor(eventError, 2*time.Second)

	var payload errorPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Contains(t, payload.Message, "unknown event")
}
