package domain

// Money is a Quotation tagged with a currency code and a precomputed display
// string carrying the minimum precision needed to show Nano exactly.
type Money struct {
	Quotation `bson:",inline"`
	Currency  string `bson:"currency"`
	Formatted string `bson:"formatted"`
}
