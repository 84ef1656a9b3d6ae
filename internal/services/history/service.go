package history

import (
	"context"
	"sort"
	"strings"

	"github.com/KirkDiggler/secretmafia/internal/common/clock"
	"github.com/KirkDiggler/secretmafia/internal/common/uuid"
	"github.com/KirkDiggler/secretmafia/internal/models"
	historyRepo "github.com/KirkDiggler/secretmafia/internal/repositories/history"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	historyRepo   historyRepo.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *zap.Logger
}

// New creates a new history service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.HistoryRepo == nil {
		return nil, ErrNilHistoryRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		historyRepo:   cfg.HistoryRepo,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger.Named("history"),
	}, nil
}

// RecordGame builds a record from a completed room and prepends it
func (s *service) RecordGame(ctx context.Context, input *RecordGameInput) (*models.GameRecord, error) {
	if input == nil || input.DeviceID == "" {
		return nil, ErrInvalidDeviceID
	}
	if input.Room == nil {
		return nil, ErrGameNotComplete
	}
	state := input.Room.State()
	if state.Phase != models.PhaseComplete {
		return nil, ErrGameNotComplete
	}

	record := &models.GameRecord{
		ID:       s.uuidGenerator.NewUUID(),
		Date:     s.clock.Now(),
		GameMode: input.Room.GameMode,
		Winner:   state.Winner,
		Players:  make([]models.HistoryPlayer, 0, len(input.Slots)),
	}
	for _, slot := range input.Slots {
		record.Players = append(record.Players, models.HistoryPlayer{
			Name: slot.PlayerName,
			Role: slot.Role,
		})
		if models.IsMafiaRole(slot.Role) {
			record.MafiaCount++
		} else {
			record.CivilianCount++
		}
	}

	if err := s.historyRepo.AddRecord(ctx, &historyRepo.AddRecordInput{
		DeviceID: input.DeviceID,
		Record:   record,
	}); err != nil {
		s.logger.Error("Failed to record game",
			zap.String("device_id", input.DeviceID),
			zap.String("room_id", input.Room.ID),
			zap.Error(err))
		return nil, err
	}

	return record, nil
}

// GetHistory returns the device's games, newest first
func (s *service) GetHistory(ctx context.Context, input *GetHistoryInput) ([]*models.GameRecord, error) {
	if input == nil || input.DeviceID == "" {
		return nil, ErrInvalidDeviceID
	}

	return s.historyRepo.ListRecords(ctx, &historyRepo.ListRecordsInput{DeviceID: input.DeviceID})
}

// GetPlayerStats counts games per case-folded name. The first spelling seen,
// which is the newest, is the one reported.
func (s *service) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) ([]*models.PlayerStats, error) {
	if input == nil || input.DeviceID == "" {
		return nil, ErrInvalidDeviceID
	}

	records, err := s.historyRepo.ListRecords(ctx, &historyRepo.ListRecordsInput{DeviceID: input.DeviceID})
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*models.PlayerStats)
	for _, record := range records {
		for _, player := range record.Players {
			key := strings.ToLower(player.Name)
			stats, ok := byName[key]
			if !ok {
				stats = &models.PlayerStats{Name: player.Name}
				byName[key] = stats
			}
			stats.GamesPlayed++
			if models.IsMafiaRole(player.Role) {
				stats.TimesMafia++
			} else {
				stats.TimesTown++
			}
		}
	}

	stats := make([]*models.PlayerStats, 0, len(byName))
	for _, entry := range byName {
		stats = append(stats, entry)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].GamesPlayed != stats[j].GamesPlayed {
			return stats[i].GamesPlayed > stats[j].GamesPlayed
		}
		return strings.ToLower(stats[i].Name) < strings.ToLower(stats[j].Name)
	})

	return stats, nil
}

// ClearHistory forgets every game of the device
func (s *service) ClearHistory(ctx context.Context, input *ClearHistoryInput) error {
	if input == nil || input.DeviceID == "" {
		return ErrInvalidDeviceID
	}

	if err := s.historyRepo.ClearRecords(ctx, &historyRepo.ClearRecordsInput{DeviceID: input.DeviceID}); err != nil {
		s.logger.Error("Failed to clear history", zap.String("device_id", input.DeviceID), zap.Error(err))
		return err
	}

	return nil
}
