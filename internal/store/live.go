package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aristath/marketdata/internal/domain"
)

// Live is the Mongo-backed LiveRepository implementation. Each subscribed
// FIGI gets its own collection in market_candles, named after the FIGI
// itself.
type Live struct {
	db *DB
}

// NewLive builds a Live repository bound to db.
func NewLive(db *DB) *Live {
	return &Live{db: db}
}

func (l *Live) collection(figi string) *mongo.Collection {
	return l.db.MarketCandles.Collection("tinkoff_1m_" + figi)
}

// EnsureFigiIndex creates the (time.seconds) index on a FIGI's live
// collection. Callers are responsible for calling this at most once per
// FIGI per process.
func (l *Live) EnsureFigiIndex(ctx context.Context, figi string) error {
	_, err := l.collection(figi).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time.seconds", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("store: live: ensure index %s: %w", figi, err)
	}
	return nil
}

// InsertCandle appends one streamed candle to a FIGI's live collection.
func (l *Live) InsertCandle(ctx context.Context, figi string, candle domain.LiveCandle) error {
	if _, err := l.collection(figi).InsertOne(ctx, candle); err != nil {
		return fmt.Errorf("store: live: insert %s: %w", figi, err)
	}
	return nil
}
