package show

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot identifies one import of raw rows into the record store
type Snapshot struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Source     string    `json:"source" db:"source"`
	RowCount   int       `json:"row_count" db:"row_count"`
	ImportedAt time.Time `json:"imported_at" db:"imported_at"`
}

// NewSnapshot creates a snapshot descriptor with a fresh ID
func NewSnapshot(source string, rowCount int) Snapshot {
	return Snapshot{
		ID:         uuid.New(),
		Source:     source,
		RowCount:   rowCount,
		ImportedAt: time.Now().UTC(),
	}
}
