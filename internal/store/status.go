package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Status is the Mongo-backed StatusRepository implementation, operating
// over the single-document market_data._status collection.
type Status struct {
	db *DB
}

// NewStatus builds a Status repository bound to db.
func NewStatus(db *DB) *Status {
	return &Status{db: db}
}

// CountDocuments reports how many documents exist in the status
// collection, used by the registry to decide whether to seed it.
func (s *Status) CountDocuments(ctx context.Context) (int64, error) {
	n, err := s.db.statusCollection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("store: status: count: %w", err)
	}
	return n, nil
}

// InsertInitialDocument seeds the status collection's single document.
func (s *Status) InsertInitialDocument(ctx context.Context, fields map[string]interface{}) error {
	if _, err := s.db.statusCollection().InsertOne(ctx, fields); err != nil {
		return fmt.Errorf("store: status: insert initial: %w", err)
	}
	return nil
}

// UpsertFields merges fields into the status document, creating it if
// absent.
func (s *Status) UpsertFields(ctx context.Context, fields map[string]interface{}) error {
	_, err := s.db.statusCollection().UpdateOne(ctx,
		bson.M{},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("store: status: upsert fields: %w", err)
	}
	return nil
}
