package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"healthkeeper/internal/models/db_models"
)

type RecordEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *db_models.RecordEmbedding) error
	DeleteByRecord(ctx context.Context, recordID string) error
	// SearchByVector runs a cosine-distance nearest-neighbour query scoped
	// to one user's records.
	SearchByVector(ctx context.Context, userID string, vector pgvector.Vector, limit int) ([]RecordSearchResult, error)
}

type RecordSearchResult struct {
	RecordID  string
	PatientID string
	Summary   string
	Distance  float64
}

type recordEmbeddingRepository struct {
	db *gorm.DB
}

func NewRecordEmbeddingRepository(db *gorm.DB) RecordEmbeddingRepository {
	return &recordEmbeddingRepository{db: db}
}

func (r *recordEmbeddingRepository) Upsert(ctx context.Context, embedding *db_models.RecordEmbedding) error {
	return r.db.WithContext(ctx).Save(embedding).Error
}

func (r *recordEmbeddingRepository) DeleteByRecord(ctx context.Context, recordID string) error {
	return r.db.WithContext(ctx).
		Delete(&db_models.RecordEmbedding{}, "record_id = ?", recordID).Error
}

func (r *recordEmbeddingRepository) SearchByVector(ctx context.Context, userID string, vector pgvector.Vector, limit int) ([]RecordSearchResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var results []RecordSearchResult
	query := `
        SELECT record_id, patient_id, summary, (embedding <=> $1) AS distance
        FROM record_embeddings
        WHERE user_id = $2
        ORDER BY embedding <=> $1
        LIMIT $3
    `
	err := r.db.WithContext(ctx).Raw(query, vector.String(), userID, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
