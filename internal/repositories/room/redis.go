package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/repositories/feed"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	roomKeyPrefix = "room:"
	codeKeyPrefix = "room_code:"

	// Written by the slot repository; read here to guard transitions
	slotKeyPrefix      = "slot:"
	roomSlotsKeyPrefix = "room_slots:"

	// DefaultTTL expires abandoned rooms
	DefaultTTL = 24 * time.Hour

	maxUpdateAttempts = 5
)

var (
	// ErrRoomNotFound is returned when a room is not found
	ErrRoomNotFound = errors.New("room not found")

	// ErrCodeTaken is returned when another waiting room holds the join code
	ErrCodeTaken = errors.New("room code already in use")

	// ErrRoomNotWaiting is returned when a lobby-only write hits a started room
	ErrRoomNotWaiting = errors.New("room is not waiting for players")

	// ErrRoomNotPlaying is returned when a game state write hits a room that has not started
	ErrRoomNotPlaying = errors.New("room is not playing")

	// ErrStaleGameState is returned when the game state moved on since it was read
	ErrStaleGameState = errors.New("game state has changed")

	// ErrRosterChanged is returned when players joined or left after roles were dealt
	ErrRosterChanged = errors.New("room players changed since roles were dealt")

	// ErrSlotNotFound is returned when a slot to eliminate does not exist
	ErrSlotNotFound = errors.New("player slot not found")

	// ErrTooMuchContention is returned when optimistic updates keep conflicting
	ErrTooMuchContention = errors.New("room is being updated concurrently")
)

// Config holds configuration for the Redis room repository
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

// NewRedis creates a new Redis-backed room repository
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

func roomKey(roomID string) string {
	return roomKeyPrefix + roomID
}

func codeKey(code string) string {
	return codeKeyPrefix + code
}

func slotKey(slotID string) string {
	return slotKeyPrefix + slotID
}

func roomSlotsKey(roomID string) string {
	return roomSlotsKeyPrefix + roomID
}

// CreateRoom reserves the join code and stores the room.
// A code already held by a waiting room yields ErrCodeTaken.
func (r *redisRepository) CreateRoom(ctx context.Context, input *CreateRoomInput) error {
	if input == nil || input.Room == nil {
		return errors.New("input and room cannot be nil")
	}

	room := input.Room
	if room.ID == "" || room.Code == "" {
		return errors.New("room ID and code cannot be empty")
	}

	reserved, err := r.client.SetNX(ctx, codeKey(room.Code), room.ID, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve room code: %w", err)
	}
	if !reserved {
		return ErrCodeTaken
	}

	roomJSON, err := json.Marshal(room)
	if err != nil {
		r.client.Del(ctx, codeKey(room.Code))
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, roomKey(room.ID), roomJSON, r.ttl)
	if err := feed.Publish(ctx, pipe, &models.ChangeEvent{
		Type:       models.EventTypeInsert,
		Collection: models.CollectionRooms,
		RoomID:     room.ID,
		Room:       room,
	}); err != nil {
		r.client.Del(ctx, codeKey(room.Code))
		return err
	}

	if _, err := pipe.Exec(ctx); err != nil {
		// Release the code so the caller can retry
		r.client.Del(ctx, codeKey(room.Code))
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by ID from Redis
func (r *redisRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	roomJSON, err := r.client.Get(ctx, roomKey(input.RoomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return decodeRoom(roomJSON)
}

// GetWaitingRoomByCode resolves a join code to a waiting room
func (r *redisRepository) GetWaitingRoomByCode(ctx context.Context, input *GetWaitingRoomByCodeInput) (*models.Room, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	roomID, err := r.client.Get(ctx, codeKey(input.Code)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room ID for code: %w", err)
	}

	room, err := r.GetRoom(ctx, &GetRoomInput{RoomID: roomID})
	if err != nil {
		return nil, err
	}

	if !room.Status.IsWaiting() {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

// UpdateSettings writes the set fields while the room is waiting
func (r *redisRepository) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	return r.update(ctx, input.RoomID, func(_ *redis.Tx, room *models.Room) error {
		if !room.Status.IsWaiting() {
			return ErrRoomNotWaiting
		}
		if input.MafiaCount != nil {
			room.MafiaCount = *input.MafiaCount
		}
		if input.TimerMinutes != nil {
			room.TimerMinutes = *input.TimerMinutes
		}
		if input.GameMode != nil {
			room.GameMode = *input.GameMode
		}
		return nil
	}, nil)
}

// StartRoom moves the room to playing and releases its join code. The room's
// slot set must still be exactly the roster the roles were dealt to.
func (r *redisRepository) StartRoom(ctx context.Context, input *StartRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" || input.State == nil {
		return nil, errors.New("input, room ID and state cannot be empty")
	}

	rosterKey := roomSlotsKey(input.RoomID)

	return r.update(ctx, input.RoomID, func(tx *redis.Tx, room *models.Room) error {
		if !room.Status.IsWaiting() {
			return ErrRoomNotWaiting
		}

		members, err := tx.SMembers(ctx, rosterKey).Result()
		if err != nil {
			return fmt.Errorf("failed to get room slots: %w", err)
		}
		// Expired slots drop out of listings, so they do not count here either
		current := make([]string, 0, len(members))
		for _, slotID := range members {
			exists, err := tx.Exists(ctx, slotKey(slotID)).Result()
			if err != nil {
				return fmt.Errorf("failed to check slot: %w", err)
			}
			if exists > 0 {
				current = append(current, slotID)
			}
		}
		if !sameMembers(current, input.SlotIDs) {
			return ErrRosterChanged
		}

		room.Status = models.RoomStatusPlaying
		room.GameState = input.State.Document()
		return nil
	}, func(ctx context.Context, pipe redis.Pipeliner, room *models.Room) error {
		pipe.Del(ctx, codeKey(room.Code))
		return nil
	}, rosterKey)
}

// SaveGameState is a compare-and-swap on the (phase, gate) of the stored state.
// Slots listed in Eliminate are marked dead in the same transaction.
func (r *redisRepository) SaveGameState(ctx context.Context, input *SaveGameStateInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" || input.State == nil {
		return nil, errors.New("input, room ID and state cannot be empty")
	}

	watched := make([]string, 0, len(input.Eliminate))
	for _, slotID := range input.Eliminate {
		watched = append(watched, slotKey(slotID))
	}

	var eliminated []*models.PlayerSlot

	return r.update(ctx, input.RoomID, func(tx *redis.Tx, room *models.Room) error {
		if !room.Status.IsPlaying() {
			return ErrRoomNotPlaying
		}
		current := room.State()
		if current.Phase != input.ExpectedPhase || current.Gate != input.ExpectedGate {
			return ErrStaleGameState
		}

		eliminated = eliminated[:0]
		for _, slotID := range input.Eliminate {
			slot, err := getSlot(ctx, tx, slotID)
			if err != nil {
				return err
			}
			if slot.RoomID != room.ID {
				return fmt.Errorf("slot %s does not belong to room %s", slotID, room.ID)
			}
			if !slot.IsAlive {
				continue
			}
			slot.IsAlive = false
			eliminated = append(eliminated, slot)
		}

		room.GameState = input.State.Document()
		return nil
	}, func(ctx context.Context, pipe redis.Pipeliner, room *models.Room) error {
		for _, slot := range eliminated {
			slotJSON, err := json.Marshal(slot)
			if err != nil {
				return fmt.Errorf("failed to marshal slot: %w", err)
			}
			pipe.Set(ctx, slotKey(slot.ID), slotJSON, r.ttl)
			if err := feed.Publish(ctx, pipe, &models.ChangeEvent{
				Type:       models.EventTypeUpdate,
				Collection: models.CollectionPlayerSlots,
				RoomID:     slot.RoomID,
				Slot:       slot,
			}); err != nil {
				return err
			}
		}
		return nil
	}, watched...)
}

// DeleteRoom removes a room and, while it is still waiting, its join code
func (r *redisRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	room, err := r.GetRoom(ctx, &GetRoomInput{RoomID: input.RoomID})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, roomKey(room.ID))
	if room.Status.IsWaiting() {
		pipe.Del(ctx, codeKey(room.Code))
	}
	if err := feed.Publish(ctx, pipe, &models.ChangeEvent{
		Type:       models.EventTypeDelete,
		Collection: models.CollectionRooms,
		RoomID:     room.ID,
	}); err != nil {
		return err
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

// update runs a read-modify-write of the room under WATCH, retrying on conflicts.
// Extra keys are watched alongside the room so mutate can read them.
func (r *redisRepository) update(ctx context.Context, roomID string, mutate func(tx *redis.Tx, room *models.Room) error, extra func(ctx context.Context, pipe redis.Pipeliner, room *models.Room) error, watch ...string) (*models.Room, error) {
	key := roomKey(roomID)
	var updated *models.Room

	txf := func(tx *redis.Tx) error {
		roomJSON, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to get room: %w", err)
		}

		room, err := decodeRoom(roomJSON)
		if err != nil {
			return err
		}

		if err := mutate(tx, room); err != nil {
			return err
		}
		room.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(room)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			if extra != nil {
				if err := extra(ctx, pipe, room); err != nil {
					return err
				}
			}
			return feed.Publish(ctx, pipe, &models.ChangeEvent{
				Type:       models.EventTypeUpdate,
				Collection: models.CollectionRooms,
				RoomID:     room.ID,
				Room:       room,
			})
		})
		if err != nil {
			return err
		}

		updated = room
		return nil
	}

	keys := append([]string{key}, watch...)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, keys...)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, ErrTooMuchContention
}

func decodeRoom(roomJSON string) (*models.Room, error) {
	var room models.Room
	if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	return &room, nil
}

func getSlot(ctx context.Context, tx *redis.Tx, slotID string) (*models.PlayerSlot, error) {
	slotJSON, err := tx.Get(ctx, slotKey(slotID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	var slot models.PlayerSlot
	if err := json.Unmarshal([]byte(slotJSON), &slot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot: %w", err)
	}
	return &slot, nil
}

// sameMembers compares two ID lists as sets
func sameMembers(current, expected []string) bool {
	if len(current) != len(expected) {
		return false
	}
	seen := make(map[string]bool, len(expected))
	for _, id := range expected {
		seen[id] = true
	}
	for _, id := range current {
		if !seen[id] {
			return false
		}
	}
	return len(seen) == len(current)
}
