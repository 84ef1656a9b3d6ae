package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/secretmafia/internal/repositories/history Repository

import (
	"context"

	"github.com/KirkDiggler/secretmafia/internal/models"
)

// Repository defines the interface for per-device game history
type Repository interface {
	// AddRecord prepends a finished game, keeping only the newest records
	AddRecord(ctx context.Context, input *AddRecordInput) error

	// ListRecords returns the device's games, newest first
	ListRecords(ctx context.Context, input *ListRecordsInput) ([]*models.GameRecord, error)

	// ClearRecords forgets every game of the device
	ClearRecords(ctx context.Context, input *ClearRecordsInput) error
}
