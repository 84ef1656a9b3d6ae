package history

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/secretmafia/internal/services/history Service

import (
	"context"

	"github.com/KirkDiggler/secretmafia/internal/models"
)

// Service defines the interface for a device's game history
type Service interface {
	// RecordGame stores a finished game in the device's history
	RecordGame(ctx context.Context, input *RecordGameInput) (*models.GameRecord, error)

	// GetHistory returns the device's games, newest first
	GetHistory(ctx context.Context, input *GetHistoryInput) ([]*models.GameRecord, error)

	// GetPlayerStats aggregates the device's games per player name
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) ([]*models.PlayerStats, error)

	// ClearHistory forgets every game of the device
	ClearHistory(ctx context.Context, input *ClearHistoryInput) error
}
