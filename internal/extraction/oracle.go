// Package extraction turns a message body into a candidate field set by
// way of an external, fallible oracle. The oracle is abstracted behind a
// narrow interface so the decision logic stays testable with canned
// fixtures.
package extraction

import "context"

// RawExtraction is one oracle attempt before normalization. String fields
// may be empty, TotalPassengers may arrive as a number or a string; the
// normalizer sorts it out.
type RawExtraction struct {
	BookingReference string      `json:"booking_reference"`
	Name             string      `json:"name"`
	PhoneNumber      string      `json:"phoneNumber"`
	TourDate         string      `json:"tourDate"`
	TourTime         string      `json:"tourTime"`
	TotalPassengers  interface{} `json:"totalPassengers"`
	Tour             string      `json:"tour"`
	VehicleType      string      `json:"vehicleType"`
	Address          string      `json:"address"`
	IsCancellation   bool        `json:"is_cancellation"`
	IsAmendment      bool        `json:"is_amendment"`
}

// Oracle extracts candidate fields from one message. A nil result with a
// nil error means the oracle produced nothing parseable; callers treat
// that like all fields absent, never as a fatal condition.
type Oracle interface {
	Extract(ctx context.Context, body, subject string, amendmentHint bool) (*RawExtraction, error)
}
