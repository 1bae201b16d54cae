// Package store wraps the document store: one *mongo.Client plus per
// logical-database handles, and a set of narrow per-collection repository
// interfaces the ingestion pipelines depend on (never the client itself).
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Logical database names, grounded on original_source's mongo_db.rs
// DbNames constant table.
const (
	DBMarketData      = "market_data"
	DBMarketCandles   = "market_candles"
	DBMarketReference = "market_reference"
	DBMarketServices  = "market_services"
	DBUserConfig      = "user_config"
)

// Collection names.
const (
	CollShares          = "shares"
	CollBonds           = "bonds"
	CollEtfs            = "etfs"
	CollFutures         = "futures"
	CollStatus          = "_status"
	CollHistorical      = "tinkoff_1m_historical"
	CollHistoryStatus   = "_history_status"
	CollCurrencyRates   = "currency_rates"
	CollCandlesTracking = "candles_tracking"
	CollWatchlists      = "watchlists"
)

// CatalogCollections lists the four instrument-kind collections in the
// order the enrichment worker searches them.
var CatalogCollections = []string{CollShares, CollBonds, CollEtfs, CollFutures}

// DB owns the Mongo client and the logical-database handles every
// repository implementation is built from.
type DB struct {
	Client *mongo.Client

	MarketData      *mongo.Database
	MarketCandles   *mongo.Database
	MarketReference *mongo.Database
	MarketServices  *mongo.Database
	UserConfig      *mongo.Database
}

// Connect dials the document store, pings it, and wires up the five
// logical-database handles.
func Connect(ctx context.Context, url string) (*DB, error) {
	clientOpts := options.Client().
		ApplyURI(url).
		SetAppName("marketdata-ingest").
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &DB{
		Client:          client,
		MarketData:      client.Database(DBMarketData),
		MarketCandles:   client.Database(DBMarketCandles),
		MarketReference: client.Database(DBMarketReference),
		MarketServices:  client.Database(DBMarketServices),
		UserConfig:      client.Database(DBUserConfig),
	}, nil
}

// Ping is used by the /db-health HTTP handler.
func (db *DB) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	if err := db.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("store: disconnect: %w", err)
	}
	return nil
}

// statusCollection returns the single-document status collection handle
// used by the Status repository.
func (db *DB) statusCollection() *mongo.Collection {
	return db.MarketData.Collection(CollStatus)
}
