// Package resolver decides, once per message, what a candidate field set
// does to the store: create a record, merge into one, do nothing, or
// delete one. Each call is a fresh decision against the current store
// content; nothing persists between calls.
package resolver

import (
	"errors"
	"strings"
	"time"

	"booking-sync/internal/common/logger"
	"booking-sync/internal/models"
)

// ErrMissingReference marks a non-cancellation candidate that cannot be
// keyed into the store. The orchestrator counts these apart from
// extraction failures.
var ErrMissingReference = errors.New("MISSING_BOOKING_REFERENCE")

// Action is the kind of store mutation a decision asks for.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionNoOp   Action = "noop"
	ActionDelete Action = "delete"
)

// Decision is the transient outcome of one resolution. Consumed
// immediately by the orchestrator, never persisted.
type Decision struct {
	Action    Action
	Reference string

	// Changed lists the field names an update actually modifies, in
	// evaluation order. Empty except for ActionUpdate.
	Changed []string

	// Partial holds the changed fields plus the refreshed updatedAt,
	// ready for a field-level store update.
	Partial map[string]interface{}

	// Doc is the record to insert (ActionCreate) or the merged record
	// after an update (ActionUpdate).
	Doc *models.BookingRecord

	// Unmatched marks a cancellation that found no stored record.
	Unmatched bool
}

// Resolver applies the merge policy table.
type Resolver struct {
	policies map[string]FieldPolicy
	logger   logger.Logger
}

func New(log logger.Logger) *Resolver {
	return &Resolver{
		policies: DefaultPolicies(),
		logger:   log,
	}
}

// Resolve evaluates one candidate against the record looked up by its
// reference (nil when absent). greetingName is the salutation blacklist
// value ("" when none). Every combination of inputs maps to a defined
// branch; the only error is the missing-reference rejection.
func (r *Resolver) Resolve(existing *models.BookingRecord, cand models.CandidateFields, greetingName string, now time.Time) (Decision, error) {
	if cand.IsCancellation {
		if cand.BookingReference == "" || existing == nil {
			// Cancellations for already-absent bookings are expected
			// under retries and ordering skew.
			return Decision{Action: ActionNoOp, Reference: cand.BookingReference, Unmatched: true}, nil
		}
		return Decision{Action: ActionDelete, Reference: cand.BookingReference}, nil
	}

	if cand.BookingReference == "" {
		return Decision{}, ErrMissingReference
	}

	// Salutation leakage: a greeting-derived name never reaches the store.
	if greetingName != "" && cand.Name == greetingName {
		r.logger.Debug("rejected greeting name", map[string]interface{}{
			"reference": cand.BookingReference,
			"name":      greetingName,
		})
		cand.Name = ""
	}

	if existing == nil {
		doc := buildRecord(cand, now)
		return Decision{Action: ActionCreate, Reference: cand.BookingReference, Doc: &doc}, nil
	}

	// A record exists: always merge. The amendment hint and missing
	// protected fields never gate differently than this on any input.
	return r.merge(existing, cand, now), nil
}

func (r *Resolver) merge(existing *models.BookingRecord, cand models.CandidateFields, now time.Time) Decision {
	merged := *existing
	var changed []string
	partial := make(map[string]interface{})

	fields := []struct {
		name  string
		value string
		dst   *string
	}{
		{"name", cand.Name, &merged.Name},
		{"phoneNumber", cand.PhoneNumber, &merged.PhoneNumber},
		{"tour", cand.Tour, &merged.Tour},
		{"tourDate", cand.TourDate, &merged.TourDate},
		{"tourTime", cand.TourTime, &merged.TourTime},
		{"vehicleType", cand.VehicleType, &merged.VehicleType},
		{"address", cand.Address, &merged.Address},
	}

	for _, f := range fields {
		if f.value == "" || f.value == *f.dst {
			continue
		}
		if r.policies[f.name] == PolicyProtected && f.name == "name" && len(strings.Fields(f.value)) < 2 {
			// A single-token name is very likely a greeting leak that
			// slipped past the blacklist.
			r.logger.Debug("rejected single-token name", map[string]interface{}{
				"reference": cand.BookingReference,
				"name":      f.value,
			})
			continue
		}
		*f.dst = f.value
		changed = append(changed, f.name)
		partial[f.name] = f.value
	}

	if cand.TotalPassengers > 0 && cand.TotalPassengers != merged.TotalPassengers {
		merged.TotalPassengers = cand.TotalPassengers
		changed = append(changed, "totalPassengers")
		partial["totalPassengers"] = cand.TotalPassengers
	}

	if len(changed) == 0 {
		return Decision{Action: ActionNoOp, Reference: cand.BookingReference}
	}

	merged.UpdatedAt = now
	partial["updatedAt"] = now
	return Decision{
		Action:    ActionUpdate,
		Reference: cand.BookingReference,
		Changed:   changed,
		Partial:   partial,
		Doc:       &merged,
	}
}

// buildRecord creates a new record from a candidate. Missing optional
// fields persist as absent or defaulted; they never block the insert.
func buildRecord(cand models.CandidateFields, now time.Time) models.BookingRecord {
	vehicle := cand.VehicleType
	if vehicle == "" {
		vehicle = models.DefaultVehicleType
	}

	return models.BookingRecord{
		BookingReference:    cand.BookingReference,
		Name:                cand.Name,
		PhoneNumber:         cand.PhoneNumber,
		VehicleType:         vehicle,
		Address:             cand.Address,
		Tour:                cand.Tour,
		TourDate:            cand.TourDate,
		TourTime:            cand.TourTime,
		TotalPassengers:     cand.TotalPassengers,
		SpecialRequirements: models.DefaultSpecialRequirements,
		Platform:            models.Platform,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
