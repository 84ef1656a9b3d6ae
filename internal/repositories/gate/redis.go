package gate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/repositories/feed"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	readyKeyPrefix     = "ready:"
	votesKeyPrefix     = "votes:"
	roomGatesKeyPrefix = "room_gates:"

	// DefaultTTL matches the lifetime of the room
	DefaultTTL = 24 * time.Hour

	maxUpdateAttempts = 5
)

var (
	// ErrAlreadyVoted is returned when a voter casts a second ballot in a gate
	ErrAlreadyVoted = errors.New("ballot already cast")

	// ErrTooMuchContention is returned when optimistic updates keep conflicting
	ErrTooMuchContention = errors.New("ballots are being cast concurrently")
)

// Config holds configuration for the Redis gate repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL applied on every write; zero uses DefaultTTL
	TTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed gate repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    ttl,
	}, nil
}

func readyKey(roomID string, gate int) string {
	return fmt.Sprintf("%s%s:%d", readyKeyPrefix, roomID, gate)
}

func votesKey(roomID string, gate int) string {
	return fmt.Sprintf("%s%s:%d", votesKeyPrefix, roomID, gate)
}

func roomGatesKey(roomID string) string {
	return roomGatesKeyPrefix + roomID
}

// MarkReady adds the slot to the gate; marking twice is harmless
func (r *redisRepository) MarkReady(ctx context.Context, input *MarkReadyInput) error {
	if input == nil || input.RoomID == "" || input.SlotID == "" {
		return errors.New("input, room ID and slot ID cannot be empty")
	}
	if input.Gate < 1 {
		return errors.New("gate must be positive")
	}

	pipe := r.client.TxPipeline()
	r.index(ctx, pipe, input.RoomID, input.Gate)
	pipe.SAdd(ctx, readyKey(input.RoomID, input.Gate), input.SlotID)
	pipe.Expire(ctx, readyKey(input.RoomID, input.Gate), r.ttl)
	if err := feed.Publish(ctx, pipe, &models.ChangeEvent{
		Type:       models.EventTypeInsert,
		Collection: models.CollectionGameState,
		RoomID:     input.RoomID,
		SlotID:     input.SlotID,
		Gate:       input.Gate,
	}); err != nil {
		return err
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark ready: %w", err)
	}

	return nil
}

// CastVote records the ballot and the readiness mark together.
// The ready set doubles as the record of who has voted in the gate.
func (r *redisRepository) CastVote(ctx context.Context, input *CastVoteInput) error {
	if input == nil || input.RoomID == "" || input.VoterID == "" {
		return errors.New("input, room ID and voter ID cannot be empty")
	}
	if input.Gate < 1 {
		return errors.New("gate must be positive")
	}

	ready := readyKey(input.RoomID, input.Gate)
	votes := votesKey(input.RoomID, input.Gate)

	event := &models.ChangeEvent{
		Type:       models.EventTypeInsert,
		Collection: models.CollectionGameState,
		RoomID:     input.RoomID,
		SlotID:     input.VoterID,
		Gate:       input.Gate,
	}
	if input.Target != "" {
		target := input.Target
		event.Vote = &target
	}

	txf := func(tx *redis.Tx) error {
		voted, err := tx.SIsMember(ctx, ready, input.VoterID).Result()
		if err != nil {
			return fmt.Errorf("failed to check ballot: %w", err)
		}
		if voted {
			return ErrAlreadyVoted
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.index(ctx, pipe, input.RoomID, input.Gate)
			if input.Target != "" {
				pipe.HSet(ctx, votes, input.VoterID, input.Target)
				pipe.Expire(ctx, votes, r.ttl)
			}
			pipe.SAdd(ctx, ready, input.VoterID)
			pipe.Expire(ctx, ready, r.ttl)
			return feed.Publish(ctx, pipe, event)
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, ready)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return ErrTooMuchContention
}

// GetMarks reads the ready set and ballots of a gate
func (r *redisRepository) GetMarks(ctx context.Context, input *GetMarksInput) (*GetMarksOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	readyCmd := pipe.SMembers(ctx, readyKey(input.RoomID, input.Gate))
	votesCmd := pipe.HGetAll(ctx, votesKey(input.RoomID, input.Gate))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get marks: %w", err)
	}

	ready := readyCmd.Val()
	sort.Strings(ready)

	votes := votesCmd.Val()
	if votes == nil {
		votes = map[string]string{}
	}

	return &GetMarksOutput{
		Ready: ready,
		Votes: votes,
	}, nil
}

// ClearMarks removes every gate recorded for the room
func (r *redisRepository) ClearMarks(ctx context.Context, input *ClearMarksInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	gates, err := r.client.SMembers(ctx, roomGatesKey(input.RoomID)).Result()
	if err != nil {
		return fmt.Errorf("failed to get room gates: %w", err)
	}

	keys := []string{roomGatesKey(input.RoomID)}
	for _, g := range gates {
		gate, err := strconv.Atoi(g)
		if err != nil {
			continue
		}
		keys = append(keys, readyKey(input.RoomID, gate), votesKey(input.RoomID, gate))
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear marks: %w", err)
	}

	return nil
}

// index remembers the gate so ClearMarks can find its keys
func (r *redisRepository) index(ctx context.Context, pipe redis.Pipeliner, roomID string, gate int) {
	pipe.SAdd(ctx, roomGatesKey(roomID), strconv.Itoa(gate))
	pipe.Expire(ctx, roomGatesKey(roomID), r.ttl)
}
