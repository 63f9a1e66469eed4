// internal/models/booking.go
package models

import "time"

const (
	// Platform tags every record with the source integration.
	Platform = "GYG"

	// DefaultVehicleType is the sentinel stored when no vehicle was extracted.
	DefaultVehicleType = "Unknown"

	// DefaultSpecialRequirements is never derived from extraction.
	DefaultSpecialRequirements = "No"
)

// BookingRecord is the durable booking document. The bson field names are
// the store's schema contract and must be preserved exactly.
type BookingRecord struct {
	BookingReference    string    `bson:"booking_reference" json:"booking_reference"`
	Name                string    `bson:"name" json:"name"`
	PhoneNumber         string    `bson:"phoneNumber" json:"phoneNumber"`
	VehicleType         string    `bson:"vehicleType" json:"vehicleType"`
	Address             string    `bson:"address" json:"address"`
	Tour                string    `bson:"tour" json:"tour"`
	TourDate            string    `bson:"tourDate" json:"tourDate"`
	TourTime            string    `bson:"tourTime" json:"tourTime"`
	TotalPassengers     int       `bson:"totalPassengers" json:"totalPassengers"`
	SpecialRequirements string    `bson:"specialRequirements" json:"specialRequirements"`
	Platform            string    `bson:"platform" json:"platform"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CandidateFields is the normalized output of one extraction attempt.
// Absent strings are "", an absent passenger count is 0; there is exactly
// one falsy representation per field. Constructed once per message,
// immutable after normalization.
type CandidateFields struct {
	BookingReference string
	Name             string
	PhoneNumber      string
	TourDate         string
	TourTime         string
	Tour             string
	VehicleType      string
	Address          string
	TotalPassengers  int
	IsCancellation   bool
	IsAmendment      bool // classifier verdict, not the oracle's opinion
}
