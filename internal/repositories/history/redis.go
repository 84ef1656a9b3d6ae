package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	historyKeyPrefix = "history:"

	// MaxRecords is how many games a device keeps
	MaxRecords = 50
)

// Config holds configuration for the Redis history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed history repository
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func historyKey(deviceID string) string {
	return historyKeyPrefix + deviceID
}

// AddRecord pushes the record to the front of the list and trims the tail
func (r *redisRepository) AddRecord(ctx context.Context, input *AddRecordInput) error {
	if input == nil || input.DeviceID == "" || input.Record == nil {
		return errors.New("input, device ID and record cannot be empty")
	}

	recordJSON, err := json.Marshal(input.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	key := historyKey(input.DeviceID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, recordJSON)
	pipe.LTrim(ctx, key, 0, MaxRecords-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game record: %w", err)
	}

	return nil
}

// ListRecords returns the stored games; unreadable entries are skipped
func (r *redisRepository) ListRecords(ctx context.Context, input *ListRecordsInput) ([]*models.GameRecord, error) {
	if input == nil || input.DeviceID == "" {
		return nil, errors.New("input and device ID cannot be empty")
	}

	entries, err := r.client.LRange(ctx, historyKey(input.DeviceID), 0, MaxRecords-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game records: %w", err)
	}

	records := make([]*models.GameRecord, 0, len(entries))
	for _, entry := range entries {
		var record models.GameRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	return records, nil
}

// ClearRecords deletes the device's history
func (r *redisRepository) ClearRecords(ctx context.Context, input *ClearRecordsInput) error {
	if input == nil || input.DeviceID == "" {
		return errors.New("input and device ID cannot be empty")
	}

	if err := r.client.Del(ctx, historyKey(input.DeviceID)).Err(); err != nil {
		return fmt.Errorf("failed to clear game records: %w", err)
	}

	return nil
}
