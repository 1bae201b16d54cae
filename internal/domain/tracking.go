package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// TrackingUserSetting is the user-authored portion of a tracking document:
// the only part the enrichment worker reads, never writes.
type TrackingUserSetting struct {
	FIGI    string `bson:"figi"`
	Enabled bool   `bson:"enabled"`
}

// TrackingData is the denormalized instrument snapshot the enrichment
// worker materializes into a tracking document.
type TrackingData struct {
	FIGI               string `bson:"figi"`
	Ticker             string `bson:"ticker"`
	Name               string `bson:"name"`
	InstrumentType     string `bson:"instrument_type"`
	FirstAvailableDate string `bson:"first_available_date,omitempty"`
	Currency           string `bson:"currency"`
	Lot                int32  `bson:"lot"`
	LastUpdate         string `bson:"last_update"`
}

// TrackingDocument is a user-authored watch-set entry. FIGI is resolved out
// of UserSetting by the enrichment worker and Data is populated on success.
type TrackingDocument struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty"`
	UserSetting TrackingUserSetting   `bson:"user_setting"`
	Data        *TrackingData         `bson:"data,omitempty"`
}
