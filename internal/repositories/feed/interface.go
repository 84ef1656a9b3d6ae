package feed

import (
	"context"

	"github.com/KirkDiggler/secretmafia/internal/models"
)

// Subscriber opens change feeds scoped to a room
type Subscriber interface {
	// Subscribe starts delivering every change to the room's records
	Subscribe(ctx context.Context, input *SubscribeInput) (Subscription, error)
}

// Subscription is an open feed; it must be closed when the device leaves the room
type Subscription interface {
	// Events delivers changes in publish order and is closed with the subscription
	Events() <-chan *models.ChangeEvent

	// Close stops delivery
	Close() error
}

type SubscribeInput struct {
	RoomID string
}
