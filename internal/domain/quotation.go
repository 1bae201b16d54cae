package domain

// Quotation is the brokerage's fixed-point price representation: an integer
// units component and a nanos component with the same sign.
type Quotation struct {
	Units int64 `bson:"units"`
	Nano  int32 `bson:"nano"`
}

// Value returns the quotation as a float64: units + nano*1e-9.
func (q Quotation) Value() float64 {
	return float64(q.Units) + float64(q.Nano)/1e9
}
