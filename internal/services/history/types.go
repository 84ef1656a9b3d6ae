package history

import (
	"github.com/KirkDiggler/secretmafia/internal/common/clock"
	"github.com/KirkDiggler/secretmafia/internal/common/uuid"
	"github.com/KirkDiggler/secretmafia/internal/models"
	historyRepo "github.com/KirkDiggler/secretmafia/internal/repositories/history"
	"go.uber.org/zap"
)

// Config holds configuration for the history service
type Config struct {
	HistoryRepo   historyRepo.Repository
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger is optional
	Logger *zap.Logger
}

// RecordGameInput contains a finished room and its players
type RecordGameInput struct {
	DeviceID string
	Room     *models.Room
	Slots    []*models.PlayerSlot
}

// GetHistoryInput contains parameters for reading a history
type GetHistoryInput struct {
	DeviceID string
}

// GetPlayerStatsInput contains parameters for aggregating a history
type GetPlayerStatsInput struct {
	DeviceID string
}

// ClearHistoryInput contains parameters for clearing a history
type ClearHistoryInput struct {
	DeviceID string
}
