package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	channelPrefix = "room_events:"

	// eventBuffer bounds how far a slow subscriber may fall behind
	eventBuffer = 64
)

// Channel returns the Pub/Sub channel for a room
func Channel(roomID string) string {
	return channelPrefix + roomID
}

// Encode serializes an event for publishing
func Encode(event *models.ChangeEvent) (string, error) {
	if event == nil {
		return "", errors.New("event cannot be nil")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal event: %w", err)
	}
	return string(data), nil
}

// Decode parses a published event
func Decode(payload string) (*models.ChangeEvent, error) {
	var event models.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

// Publish queues an event on a pipeline so it is sent with the write it describes
func Publish(ctx context.Context, pipe redis.Pipeliner, event *models.ChangeEvent) error {
	payload, err := Encode(event)
	if err != nil {
		return err
	}
	pipe.Publish(ctx, Channel(event.RoomID), payload)
	return nil
}

// Config holds configuration for the Redis feed
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Logger for dropped or malformed events
	Logger *zap.Logger
}

// redisSubscriber implements the Subscriber interface using Redis Pub/Sub
type redisSubscriber struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedis creates a new Redis-backed change feed
func NewRedis(cfg *Config) (*redisSubscriber, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &redisSubscriber{
		client: cfg.RedisClient,
		logger: logger,
	}, nil
}

// Subscribe opens a feed for the room and returns once Redis confirmed it
func (r *redisSubscriber) Subscribe(ctx context.Context, input *SubscribeInput) (Subscription, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	pubsub := r.client.Subscribe(ctx, Channel(input.RoomID))

	// Wait for the confirmation so no event published after this call is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room %s: %w", input.RoomID, err)
	}

	sub := &subscription{
		pubsub: pubsub,
		events: make(chan *models.ChangeEvent, eventBuffer),
		done:   make(chan struct{}),
		logger: r.logger.With(zap.String("room_id", input.RoomID)),
	}
	go sub.forward(pubsub.Channel())

	return sub, nil
}

type subscription struct {
	pubsub *redis.PubSub
	events chan *models.ChangeEvent
	done   chan struct{}
	logger *zap.Logger
	once   sync.Once
}

func (s *subscription) forward(messages <-chan *redis.Message) {
	defer close(s.events)
	for msg := range messages {
		event, err := Decode(msg.Payload)
		if err != nil {
			s.logger.Warn("Dropping malformed event", zap.Error(err))
			continue
		}
		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}

// Events delivers changes in publish order
func (s *subscription) Events() <-chan *models.ChangeEvent {
	return s.events
}

// Close stops delivery; calling it twice is safe
func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}
