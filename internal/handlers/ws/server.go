package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/livetally/livetally/internal/common/uuid"
	"github.com/livetally/livetally/internal/services/broadcast"
	"github.com/livetally/livetally/internal/services/poll"
)

const defaultSendBuffer = 32

// Handler upgrades HTTP requests to websocket connections and bridges the
// event protocol to the poll service. It is the connection manager: each
// connection gets an opaque participant identity for its lifetime, and
// disconnects sweep that identity out of every session it joined.
type Handler struct {
	pollService poll.Service
	broadcaster broadcast.Service
	uuidGen     uuid.UUID
	upgrader    websocket.Upgrader
	sendBuffer  int
}

// Config holds the configuration for the websocket handler
type Config struct {
	// PollService applies all session and poll operations
	PollService poll.Service

	// Broadcaster delivers session snapshots to subscribed connections
	Broadcaster broadcast.Service

	// UUIDGenerator mints participant identifiers
	UUIDGenerator uuid.UUID

	// SendBuffer is the per-connection outbound queue length
	SendBuffer int

	// CheckOrigin overrides the upgrader's origin policy; nil allows all
	// origins (identity and eligibility live upstream of this core)
	CheckOrigin func(r *http.Request) bool
}

// New creates a new websocket handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.PollService == nil {
		return nil, errors.New("poll service cannot be nil")
	}

	if cfg.Broadcaster == nil {
		return nil, errors.New("broadcaster cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	sendBuffer := cfg.SendBuffer
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}

	checkOrigin := cfg.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}

	return &Handler{
		pollService: cfg.PollService,
		broadcaster: cfg.Broadcaster,
		uuidGen:     cfg.UUIDGenerator,
		sendBuffer:  sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}, nil
}

// ServeHTTP upgrades the request and runs the connection's pumps
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &connection{
		id:      h.uuidGen.NewUUID(),
		sock:    sock,
		handler: h,
		send:    make(chan []byte, h.sendBuffer),
		done:    make(chan struct{}),
		joined:  make(map[string]bool),
	}

	log.Printf("client connected: %s", c.id)

	go c.writePump()
	c.readPump()
}

// dispatch routes one decoded event frame to the matching service operation
func (h *Handler) dispatch(c *connection, env *envelope) {
	ctx := context.Background()

	switch env.Event {
	case eventCreatePollSession:
		out, err := h.pollService.CreateSession(ctx, &poll.CreateSessionInput{})
		if err != nil {
			log.Printf("failed to create poll session: %v", err)
			c.sendError("failed to create poll session")
			return
		}
		c.sendEvent(eventPollSessionCreated, sessionCreatedPayload{Code: out.Code})

	case eventJoinPollSession:
		var p joinSessionPayload
		if !h.decode(c, env, &p) {
			return
		}

		out, err := h.pollService.JoinSession(ctx, &poll.JoinSessionInput{
			Code:          p.Code,
			ParticipantID: c.id,
		})
		if err != nil {
			c.sendServiceError(err)
			return
		}

		if c.markJoined(p.Code) {
			h.subscribe(c, p.Code)
		}
		c.sendEvent(eventPollSessionJoined, sessionJoinedPayload{Session: out.Session})

	case eventCreatePoll:
		var p createPollPayload
		if !h.decode(c, env, &p) {
			return
		}

		_, err := h.pollService.CreatePoll(ctx, &poll.CreatePollInput{
			Code:      p.Code,
			Question:  p.Question,
			Options:   p.Options,
			TimeLimit: time.Duration(p.TimeLimit) * time.Second,
		})
		if err != nil {
			c.sendServiceError(err)
		}

	case eventUpdatePoll:
		var p updatePollPayload
		if !h.decode(c, env, &p) {
			return
		}

		_, err := h.pollService.UpdatePoll(ctx, &poll.UpdatePollInput{
			Code:      p.Code,
			PollID:    p.PollID,
			Question:  p.Question,
			Options:   p.Options,
			TimeLimit: time.Duration(p.TimeLimit) * time.Second,
		})
		if err != nil {
			c.sendServiceError(err)
		}

	case eventDeletePoll:
		var p pollRefPayload
		if !h.decode(c, env, &p) {
			return
		}

		_, err := h.pollService.DeletePoll(ctx, &poll.DeletePollInput{
			Code:   p.Code,
			PollID: p.PollID,
		})
		if err != nil {
			c.sendServiceError(err)
		}

	case eventStartPoll:
		var p pollRefPayload
		if !h.decode(c, env, &p) {
			return
		}

		_, err := h.pollService.StartPoll(ctx, &poll.StartPollInput{
			Code:   p.Code,
			PollID: p.PollID,
		})
		if err != nil {
			c.sendServiceError(err)
		}

	case eventEndPoll:
		var p pollRefPayload
		if !h.decode(c, env, &p) {
			return
		}

		_, err := h.pollService.EndPoll(ctx, &poll.EndPollInput{
			Code:   p.Code,
			PollID: p.PollID,
		})
		if err != nil {
			c.sendServiceError(err)
		}

	case eventVote:
		var p votePayload
		if !h.decode(c, env, &p) {
			return
		}

		_, err := h.pollService.CastVote(ctx, &poll.CastVoteInput{
			Code:          p.Code,
			PollID:        p.PollID,
			ParticipantID: c.id,
			Option:        p.Option,
		})
		if err != nil {
			c.sendServiceError(err)
		}

	case eventGetPollSessions:
		out, err := h.pollService.ListSessions(ctx, &poll.ListSessionsInput{})
		if err != nil {
			log.Printf("failed to list sessions: %v", err)
			c.sendError("failed to list poll sessions")
			return
		}
		c.sendEvent(eventPollSessionsList, out.Sessions)

	default:
		c.sendError("unknown event: " + env.Event)
	}
}

// subscribe attaches the connection to a session's broadcast group and
// forwards its snapshots until the group channel closes
func (h *Handler) subscribe(c *connection, code string) {
	out, err := h.broadcaster.Subscribe(context.Background(), &broadcast.SubscribeInput{
		Code:         code,
		SubscriberID: c.id,
	})
	if err != nil {
		log.Printf("failed to subscribe %s to %s: %v", c.id, code, err)
		c.sendError("failed to subscribe to session updates")
		return
	}

	go func() {
		for snapshot := range out.Updates {
			c.sendEvent(eventPollSessionUpdate, snapshot)
		}
	}()
}

// disconnect sweeps the connection's participant identity out of every
// session it joined and tears down its broadcast subscriptions. Votes the
// participant has cast are left in place.
func (h *Handler) disconnect(c *connection) {
	ctx := context.Background()

	if _, err := h.pollService.LeaveSessions(ctx, &poll.LeaveSessionsInput{
		ParticipantID: c.id,
	}); err != nil {
		log.Printf("failed to remove participant %s from sessions: %v", c.id, err)
	}

	for _, code := range c.joinedCodes() {
		if err := h.broadcaster.Unsubscribe(ctx, &broadcast.UnsubscribeInput{
			Code:         code,
			SubscriberID: c.id,
		}); err != nil && !errors.Is(err, broadcast.ErrNotSubscribed) {
			log.Printf("failed to unsubscribe %s from %s: %v", c.id, code, err)
		}
	}

	close(c.done)
	log.Printf("client disconnected: %s", c.id)
}

// decode unmarshals an event payload, rejecting malformed frames before
// they reach the service
func (h *Handler) decode(c *connection, env *envelope, v any) bool {
	if len(env.Data) == 0 {
		c.sendError("missing payload for event: " + env.Event)
		return false
	}

	if err := json.Unmarshal(env.Data, v); err != nil {
		c.sendError("malformed payload for event: " + env.Event)
		return false
	}

	return true
}

// sendServiceError maps a service error to an error event for the
// originating connection. Every service error is recoverable.
func (c *connection) sendServiceError(err error) {
	switch {
	case errors.Is(err, poll.ErrSessionNotFound),
		errors.Is(err, poll.ErrPollNotFound),
		errors.Is(err, poll.ErrInvalidPollDefinition),
		errors.Is(err, poll.ErrInvalidVote):
		c.sendError(err.Error())
	default:
		log.Printf("unexpected service error for %s: %v", c.id, err)
		c.sendError("internal error")
	}
}
