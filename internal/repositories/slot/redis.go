package slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/repositories/feed"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	slotKeyPrefix        = "slot:"
	roomSlotsKeyPrefix   = "room_slots:"
	roomDevicesKeyPrefix = "room_devices:"

	// Written by the room repository; read here so joins only land in waiting rooms
	roomKeyPrefix = "room:"

	// DefaultTTL matches the lifetime of the room
	DefaultTTL = 24 * time.Hour

	maxUpdateAttempts = 5
)

var (
	// ErrSlotNotFound is returned when a slot is not found
	ErrSlotNotFound = errors.New("player slot not found")

	// ErrRoomNotWaiting is returned when a new slot targets a missing or started room
	ErrRoomNotWaiting = errors.New("room is not waiting for players")

	// ErrNameTaken is returned when another slot in the room uses the same display name
	ErrNameTaken = errors.New("player name already taken in room")

	// ErrTooMuchContention is returned when optimistic updates keep conflicting
	ErrTooMuchContention = errors.New("room slots are being updated concurrently")
)

// Config holds configuration for the Redis slot repository
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

// NewRedis creates a new Redis-backed slot repository
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

func slotKey(slotID string) string {
	return slotKeyPrefix + slotID
}

func roomSlotsKey(roomID string) string {
	return roomSlotsKeyPrefix + roomID
}

func roomDevicesKey(roomID string) string {
	return roomDevicesKeyPrefix + roomID
}

func roomKey(roomID string) string {
	return roomKeyPrefix + roomID
}

// CreateSlot claims the device for the room and inserts the slot.
// The device map is watched so two joins from one device cannot both insert,
// and the room is watched so no slot lands after the game started.
func (r *redisRepository) CreateSlot(ctx context.Context, input *CreateSlotInput) (*CreateSlotOutput, error) {
	if input == nil || input.Slot == nil {
		return nil, errors.New("input and slot cannot be nil")
	}

	slot := input.Slot
	if slot.ID == "" || slot.RoomID == "" || slot.DeviceID == "" {
		return nil, errors.New("slot ID, room ID and device ID cannot be empty")
	}
	if slot.PlayerName == "" {
		return nil, errors.New("player name cannot be empty")
	}

	devicesKey := roomDevicesKey(slot.RoomID)
	var output *CreateSlotOutput

	txf := func(tx *redis.Tx) error {
		existingID, err := tx.HGet(ctx, devicesKey, slot.DeviceID).Result()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("failed to get device slot: %w", err)
		}
		if existingID != "" {
			existing, err := getSlot(ctx, tx, existingID)
			if err == nil {
				output = &CreateSlotOutput{Slot: existing, Existing: true}
				return nil
			}
			if !errors.Is(err, ErrSlotNotFound) {
				return err
			}
			// The mapping outlived its slot; claim it again below
		}

		if err := checkWaiting(ctx, tx, slot.RoomID); err != nil {
			return err
		}

		slots, err := listSlots(ctx, tx, slot.RoomID)
		if err != nil {
			return err
		}
		for _, other := range slots {
			if strings.EqualFold(other.PlayerName, slot.PlayerName) {
				return ErrNameTaken
			}
		}

		slotJSON, err := json.Marshal(slot)
		if err != nil {
			return fmt.Errorf("failed to marshal slot: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, slotKey(slot.ID), slotJSON, r.ttl)
			pipe.SAdd(ctx, roomSlotsKey(slot.RoomID), slot.ID)
			pipe.Expire(ctx, roomSlotsKey(slot.RoomID), r.ttl)
			pipe.HSet(ctx, devicesKey, slot.DeviceID, slot.ID)
			pipe.Expire(ctx, devicesKey, r.ttl)
			return feed.Publish(ctx, pipe, &models.ChangeEvent{
				Type:       models.EventTypeInsert,
				Collection: models.CollectionPlayerSlots,
				RoomID:     slot.RoomID,
				Slot:       slot,
			})
		})
		if err != nil {
			return err
		}

		output = &CreateSlotOutput{Slot: slot}
		return nil
	}

	if err := r.watch(ctx, txf, devicesKey, roomKey(slot.RoomID)); err != nil {
		return nil, err
	}

	return output, nil
}

// GetSlot retrieves a slot by ID from Redis
func (r *redisRepository) GetSlot(ctx context.Context, input *GetSlotInput) (*models.PlayerSlot, error) {
	if input == nil || input.SlotID == "" {
		return nil, errors.New("input and slot ID cannot be empty")
	}

	return getSlot(ctx, r.client, input.SlotID)
}

// GetSlotByDevice retrieves the slot a device owns in a room
func (r *redisRepository) GetSlotByDevice(ctx context.Context, input *GetSlotByDeviceInput) (*models.PlayerSlot, error) {
	if input == nil || input.RoomID == "" || input.DeviceID == "" {
		return nil, errors.New("input, room ID and device ID cannot be empty")
	}

	slotID, err := r.client.HGet(ctx, roomDevicesKey(input.RoomID), input.DeviceID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get device slot: %w", err)
	}

	return getSlot(ctx, r.client, slotID)
}

// ListSlots retrieves every slot of a room ordered by join time
func (r *redisRepository) ListSlots(ctx context.Context, input *ListSlotsInput) ([]*models.PlayerSlot, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	return listSlots(ctx, r.client, input.RoomID)
}

// AssignRoles writes every role in one transaction and revives the slots
func (r *redisRepository) AssignRoles(ctx context.Context, input *AssignRolesInput) ([]*models.PlayerSlot, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}
	if len(input.Roles) == 0 {
		return nil, errors.New("roles cannot be empty")
	}

	keys := make([]string, 0, len(input.Roles))
	for slotID := range input.Roles {
		keys = append(keys, slotKey(slotID))
	}

	var assigned []*models.PlayerSlot
	txf := func(tx *redis.Tx) error {
		assigned = assigned[:0]
		for slotID, role := range input.Roles {
			slot, err := getSlot(ctx, tx, slotID)
			if err != nil {
				return err
			}
			if slot.RoomID != input.RoomID {
				return fmt.Errorf("slot %s does not belong to room %s", slotID, input.RoomID)
			}
			slot.Role = role
			slot.IsAlive = true
			assigned = append(assigned, slot)
		}
		sortSlots(assigned)

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, slot := range assigned {
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
		})
		return err
	}

	if err := r.watch(ctx, txf, keys...); err != nil {
		return nil, err
	}

	return assigned, nil
}

// DeleteSlot removes a slot and its device mapping
func (r *redisRepository) DeleteSlot(ctx context.Context, input *DeleteSlotInput) error {
	if input == nil || input.SlotID == "" {
		return errors.New("input and slot ID cannot be empty")
	}

	slot, err := getSlot(ctx, r.client, input.SlotID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	deleteSlot(ctx, pipe, slot)
	if err := feed.Publish(ctx, pipe, &models.ChangeEvent{
		Type:       models.EventTypeDelete,
		Collection: models.CollectionPlayerSlots,
		RoomID:     slot.RoomID,
		SlotID:     slot.ID,
	}); err != nil {
		return err
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	return nil
}

// DeleteSlotsInRoom removes every slot of a room, publishing one delete per slot
func (r *redisRepository) DeleteSlotsInRoom(ctx context.Context, input *DeleteSlotsInRoomInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	slots, err := listSlots(ctx, r.client, input.RoomID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	for _, slot := range slots {
		deleteSlot(ctx, pipe, slot)
		if err := feed.Publish(ctx, pipe, &models.ChangeEvent{
			Type:       models.EventTypeDelete,
			Collection: models.CollectionPlayerSlots,
			RoomID:     slot.RoomID,
			SlotID:     slot.ID,
		}); err != nil {
			return err
		}
	}
	pipe.Del(ctx, roomSlotsKey(input.RoomID), roomDevicesKey(input.RoomID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete room slots: %w", err)
	}

	return nil
}

// reader is the read surface shared by the client and a watched transaction
type reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

func (r *redisRepository) watch(ctx context.Context, txf func(tx *redis.Tx) error, keys ...string) error {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, keys...)
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

func deleteSlot(ctx context.Context, pipe redis.Pipeliner, slot *models.PlayerSlot) {
	pipe.Del(ctx, slotKey(slot.ID))
	pipe.SRem(ctx, roomSlotsKey(slot.RoomID), slot.ID)
	pipe.HDel(ctx, roomDevicesKey(slot.RoomID), slot.DeviceID)
}

// checkWaiting reads the room record and fails unless it still accepts players
func checkWaiting(ctx context.Context, cmd reader, roomID string) error {
	roomJSON, err := cmd.Get(ctx, roomKey(roomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrRoomNotWaiting
		}
		return fmt.Errorf("failed to get room: %w", err)
	}

	var room models.Room
	if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
		return fmt.Errorf("failed to unmarshal room: %w", err)
	}
	if !room.Status.IsWaiting() {
		return ErrRoomNotWaiting
	}
	return nil
}

func getSlot(ctx context.Context, cmd reader, slotID string) (*models.PlayerSlot, error) {
	slotJSON, err := cmd.Get(ctx, slotKey(slotID)).Result()
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

func listSlots(ctx context.Context, cmd reader, roomID string) ([]*models.PlayerSlot, error) {
	slotIDs, err := cmd.SMembers(ctx, roomSlotsKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get room slots: %w", err)
	}

	slots := make([]*models.PlayerSlot, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		slot, err := getSlot(ctx, cmd, slotID)
		if err != nil {
			if errors.Is(err, ErrSlotNotFound) {
				// Expired or half-deleted slot
				continue
			}
			return nil, err
		}
		slots = append(slots, slot)
	}
	sortSlots(slots)

	return slots, nil
}

func sortSlots(slots []*models.PlayerSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].JoinedAt.Equal(slots[j].JoinedAt) {
			return slots[i].JoinedAt.Before(slots[j].JoinedAt)
		}
		return slots[i].ID < slots[j].ID
	})
}
