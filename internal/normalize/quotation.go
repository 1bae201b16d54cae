// Package normalize holds pure, total, side-effect-free mapping functions
// from the brokerage's wire types to internal/domain types. No function in
// this package performs I/O or can panic on a well-typed input.
package normalize

import (
	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/aristath/marketdata/internal/domain"
)

// FromQuotation converts a wire Quotation. A nil input normalizes to the
// zero value.
func FromQuotation(q *pb.Quotation) domain.Quotation {
	if q == nil {
		return domain.Quotation{}
	}
	return domain.Quotation{Units: q.GetUnits(), Nano: q.GetNano()}
}

// FromQuotationPtr converts an optional wire Quotation, returning nil when
// the input is nil.
func FromQuotationPtr(q *pb.Quotation) *domain.Quotation {
	if q == nil {
		return nil
	}
	out := FromQuotation(q)
	return &out
}

// FromTimestampPB converts an optional wire protobuf timestamp, returning
// nil when the input is nil. See timestamp.go for the non-pointer form.
func FromTimestampPB(ts *timestamppb.Timestamp) *domain.Timestamp {
	if ts == nil {
		return nil
	}
	out := FromTimestamp(ts.GetSeconds(), ts.GetNanos())
	return &out
}
