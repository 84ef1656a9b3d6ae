package history

import (
	"github.com/KirkDiggler/secretmafia/internal/models"
)

// AddRecordInput defines the input for AddRecord
type AddRecordInput struct {
	DeviceID string
	Record   *models.GameRecord
}

// ListRecordsInput defines the input for ListRecords
type ListRecordsInput struct {
	DeviceID string
}

// ClearRecordsInput defines the input for ClearRecords
type ClearRecordsInput struct {
	DeviceID string
}
