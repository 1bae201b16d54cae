package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// WatchlistEntry is a user-maintained reference to an instrument the live
// streamer should subscribe to.
type WatchlistEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Ticker       string             `bson:"ticker"`
	Exchange     string             `bson:"exchange"`
	TradingMode  string             `bson:"trading_mode"`
	ISIN         string             `bson:"isin,omitempty"`
	FIGI         string             `bson:"figi"`
	Enabled      bool               `bson:"enabled"`
	Notes        string             `bson:"notes,omitempty"`
}
