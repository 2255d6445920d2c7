package ws

import (
	"encoding/json"

	"github.com/livetally/livetally/internal/models"
)

// Inbound event names
const (
	eventCreatePollSession = "createPollSession"
	eventJoinPollSession   = "joinPollSession"
	eventCreatePoll        = "createPoll"
	eventUpdatePoll        = "updatePoll"
	eventDeletePoll        = "deletePoll"
	eventStartPoll         = "startPoll"
	eventEndPoll           = "endPoll"
	eventVote              = "vote"
	eventGetPollSessions   = "getPollSessions"
)

// Outbound event names
const (
	eventPollSessionCreated = "pollSessionCreated"
	eventPollSessionJoined  = "pollSessionJoined"
	eventPollSessionUpdate  = "pollSessionUpdate"
	eventPollSessionsList   = "pollSessionsList"
	eventError              = "error"
)

// envelope is the wire frame every message travels in, multiplexing the
// connection by event name
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outbound is the server-to-client counterpart of envelope
type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Inbound payloads. Each is validated before it reaches the service.

type joinSessionPayload struct {
	Code string `json:"code"`
}

type createPollPayload struct {
	Code     string   `json:"code"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	// TimeLimit is in seconds; the service default applies when omitted
	TimeLimit int `json:"timeLimit,omitempty"`
}

type updatePollPayload struct {
	Code      string   `json:"code"`
	PollID    string   `json:"pollId"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"timeLimit,omitempty"`
}

type pollRefPayload struct {
	Code   string `json:"code"`
	PollID string `json:"pollId"`
}

type votePayload struct {
	Code   string `json:"code"`
	PollID string `json:"pollId"`
	Option string `json:"option"`
}

// Outbound payloads

type sessionCreatedPayload struct {
	Code string `json:"code"`
}

type sessionJoinedPayload struct {
	Session *models.SessionSnapshot `json:"session"`
}

type errorPayload struct {
	Message string `json:"message"`
}
