package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aristath/marketdata/internal/domain"
)

// Fx is the Mongo-backed FxRepository implementation, operating over the
// single-document market_reference.currency_rates collection.
type Fx struct {
	db *DB
}

// NewFx builds an Fx repository bound to db.
func NewFx(db *DB) *Fx {
	return &Fx{db: db}
}

func (f *Fx) collection() *mongo.Collection {
	return f.db.MarketReference.Collection(CollCurrencyRates)
}

// Replace implements FxRepository. An empty doc.Date means the upstream
// cbrf feed produced nothing usable for today; the existing document is
// left untouched in that case.
func (f *Fx) Replace(ctx context.Context, doc domain.FxRates) error {
	if doc.Date == "" {
		return nil
	}

	coll := f.collection()
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("store: fx: delete all: %w", err)
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("store: fx: insert: %w", err)
	}
	return nil
}
