package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Tracking is the Mongo-backed TrackingRepository implementation, operating
// over market_services.candles_tracking.
type Tracking struct {
	db *DB
}

// NewTracking builds a Tracking repository bound to db.
func NewTracking(db *DB) *Tracking {
	return &Tracking{db: db}
}

func (t *Tracking) collection() *mongo.Collection {
	return t.db.MarketServices.Collection(CollCandlesTracking)
}

// EnabledGroupedByFigi groups enabled tracking documents by user_setting.figi,
// keeping the first document id seen for each figi.
func (t *Tracking) EnabledGroupedByFigi(ctx context.Context) ([]TrackingGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "user_setting.enabled", Value: true},
			{Key: "user_setting.figi", Value: bson.D{{Key: "$ne", Value: ""}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_setting.figi"},
			{Key: "original_id", Value: bson.D{{Key: "$first", Value: "$_id"}}},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "figi", Value: "$_id"},
			{Key: "_id", Value: "$original_id"},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "original_id", Value: 0}}}},
	}

	cursor, err := t.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("store: tracking: aggregate grouped: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID   primitive.ObjectID `bson:"_id"`
		FIGI string             `bson:"figi"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("store: tracking: decode grouped: %w", err)
	}

	groups := make([]TrackingGroup, len(rows))
	for i, r := range rows {
		groups[i] = TrackingGroup{ID: r.ID, FIGI: r.FIGI}
	}
	return groups, nil
}

// FindByID returns the raw tracking document, nil with no error if absent.
func (t *Tracking) FindByID(ctx context.Context, id primitive.ObjectID) (map[string]interface{}, error) {
	var out bson.M
	err := t.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: tracking: find %s: %w", id.Hex(), err)
	}
	return out, nil
}

// ReplaceByID overwrites the tracking document at id with doc.
func (t *Tracking) ReplaceByID(ctx context.Context, id primitive.ObjectID, doc map[string]interface{}) error {
	if _, err := t.collection().ReplaceOne(ctx, bson.M{"_id": id}, doc); err != nil {
		return fmt.Errorf("store: tracking: replace %s: %w", id.Hex(), err)
	}
	return nil
}
