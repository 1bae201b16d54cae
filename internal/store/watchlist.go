package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Watchlist is the Mongo-backed WatchlistRepository implementation,
// operating over user_config.watchlists.
type Watchlist struct {
	db *DB
}

// NewWatchlist builds a Watchlist repository bound to db.
func NewWatchlist(db *DB) *Watchlist {
	return &Watchlist{db: db}
}

// EnabledFigis returns the figi of every enabled watchlist entry, the
// subscription set the live streamer starts from.
func (w *Watchlist) EnabledFigis(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"figi": 1})
	cursor, err := w.db.UserConfig.Collection(CollWatchlists).Find(ctx, bson.M{"enabled": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("store: watchlist: find enabled: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		FIGI string `bson:"figi"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("store: watchlist: decode enabled: %w", err)
	}

	figis := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.FIGI != "" {
			figis = append(figis, r.FIGI)
		}
	}
	return figis, nil
}
