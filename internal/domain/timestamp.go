package domain

// Timestamp is a (seconds, nanos) pair plus its precomputed ISO-8601 UTC
// rendering. ISO is the literal string "Invalid date" when seconds/nanos
// fall outside the range the standard library can represent as a time.
type Timestamp struct {
	Seconds int64  `bson:"seconds"`
	Nanos   int32  `bson:"nanos"`
	ISO     string `bson:"iso"`
}
