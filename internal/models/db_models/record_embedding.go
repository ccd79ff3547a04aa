package db_models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// RecordEmbedding holds one embedding vector per medical record, keyed by the
// record id, for semantic search over a user's history.
type RecordEmbedding struct {
	RecordID  string          `gorm:"primaryKey;column:record_id"`
	PatientID string          `gorm:"index"`
	UserID    string          `gorm:"index"`
	Summary   string
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}
