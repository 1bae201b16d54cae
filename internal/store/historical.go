package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aristath/marketdata/internal/domain"
)

// Historical is the Mongo-backed HistoricalRepository implementation.
type Historical struct {
	db *DB
}

// NewHistorical builds a Historical repository bound to db.
func NewHistorical(db *DB) *Historical {
	return &Historical{db: db}
}

func (h *Historical) candles() *mongo.Collection {
	return h.db.MarketCandles.Collection(CollHistorical)
}

func (h *Historical) status() *mongo.Collection {
	return h.db.MarketCandles.Collection(CollHistoryStatus)
}

// EnsureIndexes creates the compound (figi, time.seconds) index on the
// historical collection and the unique figi index on the status
// collection.
func (h *Historical) EnsureIndexes(ctx context.Context) error {
	_, err := h.candles().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "figi", Value: 1}, {Key: "time.seconds", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("store: historical: ensure candle index: %w", err)
	}

	_, err = h.status().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "figi", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("store: historical: ensure status index: %w", err)
	}
	return nil
}

// InsertMany bulk-inserts a day's worth of candles.
func (h *Historical) InsertMany(ctx context.Context, candles []domain.HistoricalCandle) error {
	if len(candles) == 0 {
		return nil
	}
	docs := make([]interface{}, len(candles))
	for i, c := range candles {
		docs[i] = c
	}
	if _, err := h.candles().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("store: historical: insert many: %w", err)
	}
	return nil
}

// AggregateMinMaxCount recomputes min(time.seconds), max(time.seconds) and
// count over the historical collection filtered by figi.
func (h *Historical) AggregateMinMaxCount(ctx context.Context, figi string) (first, last, count int64, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "figi", Value: figi}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "first", Value: bson.D{{Key: "$min", Value: "$time.seconds"}}},
			{Key: "last", Value: bson.D{{Key: "$max", Value: "$time.seconds"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := h.candles().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("store: historical: aggregate minmax %s: %w", figi, err)
	}
	defer cursor.Close(ctx)

	var result struct {
		First int64 `bson:"first"`
		Last  int64 `bson:"last"`
		Count int64 `bson:"count"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, 0, fmt.Errorf("store: historical: decode aggregate %s: %w", figi, err)
		}
	}
	return result.First, result.Last, result.Count, nil
}

// LastStatus reads HistoryStatus[figi], returning nil with no error if
// absent.
func (h *Historical) LastStatus(ctx context.Context, figi string) (*domain.HistoryStatus, error) {
	var out domain.HistoryStatus
	err := h.status().FindOne(ctx, bson.M{"figi": figi}).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: historical: status %s: %w", figi, err)
	}
	return &out, nil
}

// UpsertStatus replaces HistoryStatus[figi].
func (h *Historical) UpsertStatus(ctx context.Context, status domain.HistoryStatus) error {
	_, err := h.status().ReplaceOne(ctx,
		bson.M{"figi": status.FIGI},
		status,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("store: historical: upsert status %s: %w", status.FIGI, err)
	}
	return nil
}
