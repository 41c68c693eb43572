package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements CounterStore on a MongoDB collection. One document
// exists per (key, tier, window start); FindOneAndUpdate with $inc and upsert
// gives the atomic read-modify-write the limiter requires, and a TTL index on
// reset_at ages out stale windows so keys never need explicit deletion.
type MongoStore struct {
	collection *mongo.Collection
}

// counterDocument is the stored shape of one counter window
type counterDocument struct {
	ID      string    `bson:"_id"`
	Key     string    `bson:"key"`
	Tier    string    `bson:"tier"`
	Count   int64     `bson:"count"`
	ResetAt time.Time `bson:"reset_at"`
}

// NewMongoStore creates a Mongo-backed counter store on the given collection
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

// EnsureIndexes creates the TTL index that expires counter windows once their
// reset time has passed. Expiry is eventual (the TTL monitor runs about once
// a minute), which is fine: the window id scheme already keeps expired
// windows from ever being read again.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "reset_at", Value: 1}},
		Options: options.Index().SetName("reset_at_ttl").SetExpireAfterSeconds(0),
	}

	keyIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}, {Key: "tier", Value: 1}},
		Options: options.Index().SetName("key_tier"),
	}

	if _, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{ttlIndex, keyIndex}); err != nil {
		return fmt.Errorf("failed to create rate-limit counter indexes: %w", err)
	}
	return nil
}

// Increment implements CounterStore. Windows are aligned to fixed boundaries
// (now truncated to the tier duration), so the document id identifies exactly
// one window and concurrent upserts for the same window converge on the same
// document.
func (s *MongoStore) Increment(ctx context.Context, key string, tier Tier, now time.Time) (TierCount, error) {
	window := tier.Duration()
	windowStart := now.Truncate(window)
	resetAt := windowStart.Add(window)
	docID := fmt.Sprintf("%s|%s|%d", key, tier, windowStart.Unix())

	filter := bson.M{"_id": docID}
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$setOnInsert": bson.M{
			"key":      key,
			"tier":     string(tier),
			"reset_at": resetAt,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDocument
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return TierCount{}, fmt.Errorf("failed to increment counter for %s/%s: %w", key, tier, err)
	}

	return TierCount{Count: doc.Count, ResetAt: doc.ResetAt}, nil
}
