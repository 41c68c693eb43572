package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/pipeline"
)

const screeningCollection = "screening-records"

// ScreeningRepository persists and queries screening audit records
type ScreeningRepository struct {
	collection *mongo.Collection
}

// NewScreeningRepository returns a repository over the shared connection
func NewScreeningRepository() (*ScreeningRepository, error) {
	conn, err := GetConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	return &ScreeningRepository{collection: conn.GetCollection(screeningCollection)}, nil
}

// NewScreeningRepositoryWithCollection is for tests and custom wiring
func NewScreeningRepositoryWithCollection(collection *mongo.Collection) *ScreeningRepository {
	return &ScreeningRepository{collection: collection}
}

// EnsureIndexes creates the audit query indexes
func (r *ScreeningRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "admission_key", Value: 1},
				{Key: "screened_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "screened_at", Value: -1},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create screening record indexes: %w", err)
	}
	return nil
}

// Insert stores a screening record
func (r *ScreeningRepository) Insert(ctx context.Context, record *ScreeningRecord) error {
	record.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert screening record: %w", err)
	}
	return nil
}

// FindRecentByKey returns the most recent records for one admission key
func (r *ScreeningRepository) FindRecentByKey(ctx context.Context, key string, limit int64) ([]ScreeningRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "screened_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"admission_key": key}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query screening records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []ScreeningRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode screening records: %w", err)
	}
	return records, nil
}

// CountByStatus counts records per outcome status since a point in time
func (r *ScreeningRepository) CountByStatus(ctx context.Context, status string, since time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"status":      status,
		"screened_at": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count screening records: %w", err)
	}
	return count, nil
}

// Record implements pipeline.Auditor. Persistence failures are logged and
// swallowed; the audit trail must never fail a screening request.
func (r *ScreeningRepository) Record(ctx context.Context, entry pipeline.AuditEntry) {
	record := &ScreeningRecord{
		AdmissionKey: entry.Key,
		Status:       string(entry.Status),
		Reason:       entry.Reason,
		RiskScore:    entry.RiskScore,
		RiskLevel:    entry.RiskLevel,
		HadImage:     entry.HadImage,
		ScreenedAt:   entry.OccurredAt,
	}
	if requestID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		record.RequestID = requestID
	}

	if err := r.Insert(ctx, record); err != nil {
		logger.WarnCtx(ctx, "Failed to persist screening record",
			"admission_key", entry.Key,
			"status", entry.Status,
			"error", err)
	}
}
