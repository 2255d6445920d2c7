package broadcast

import "github.com/livetally/livetally/internal/models"

// Config holds configuration for the broadcast service
type Config struct {
	// BufferSize is the per-subscriber channel capacity. A subscriber that
	// falls more than BufferSize snapshots behind misses the intermediate
	// ones; every snapshot carries the full session state, so the latest
	// delivered snapshot always supersedes anything dropped.
	BufferSize int
}

// SubscribeInput contains parameters for joining a broadcast group
type SubscribeInput struct {
	// Code is the session code identifying the broadcast group
	Code string

	// SubscriberID is the opaque identifier of the subscribing connection
	SubscriberID string
}

// SubscribeOutput contains the result of joining a broadcast group
type SubscribeOutput struct {
	// Updates receives session snapshots in publish order. It is closed
	// when the subscriber is unsubscribed.
	Updates <-chan *models.SessionSnapshot
}

// UnsubscribeInput contains parameters for leaving a broadcast group
type UnsubscribeInput struct {
	Code string

	SubscriberID string
}

// PublishInput contains parameters for broadcasting a snapshot
type PublishInput struct {
	// Code is the session code identifying the broadcast group
	Code string

	// Snapshot is the full session state resulting from a mutation
	Snapshot *models.SessionSnapshot
}
