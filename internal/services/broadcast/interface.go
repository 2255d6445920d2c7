package broadcast

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/livetally/livetally/internal/services/broadcast Service

import (
	"context"
)

// Service is the interface for fanning session snapshots out to subscribers.
// Snapshots published for one session are delivered to every subscriber in
// publish order; Publish itself never blocks on a slow subscriber.
type Service interface {
	// Subscribe adds a subscriber to a session's broadcast group and returns
	// the channel its snapshots arrive on
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)

	// Unsubscribe removes a subscriber from a session's broadcast group and
	// closes its channel
	Unsubscribe(ctx context.Context, input *UnsubscribeInput) error

	// Publish delivers a snapshot to every subscriber of the session's group
	Publish(ctx context.Context, input *PublishInput) error
}
