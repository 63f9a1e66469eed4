// internal/engine/resolver/resolver_test.go
package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-sync/internal/common/logger"
	"booking-sync/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestResolver(t *testing.T) *Resolver {
	return New(logger.NewTestLogger(t))
}

func createTestRecord() *models.BookingRecord {
	created := testNow.Add(-48 * time.Hour)
	return &models.BookingRecord{
		BookingReference:    "GYG1",
		Name:                "John Smith",
		PhoneNumber:         "+34600111222",
		VehicleType:         "Sedan",
		Address:             "Hotel Central",
		Tour:                "Desert Safari",
		TourDate:            "2026-03-10",
		TourTime:            "09:00",
		TotalPassengers:     2,
		SpecialRequirements: models.DefaultSpecialRequirements,
		Platform:            models.Platform,
		CreatedAt:           created,
		UpdatedAt:           created,
	}
}

func createTestCandidate() models.CandidateFields {
	return models.CandidateFields{
		BookingReference: "GYG1",
		Name:             "John Smith",
		PhoneNumber:      "+34600111222",
		Tour:             "Desert Safari",
		TourDate:         "2026-03-10",
		TourTime:         "09:00",
		VehicleType:      "Sedan",
		Address:          "Hotel Central",
		TotalPassengers:  2,
	}
}

// ==========================
// Create Path Tests
// ==========================

func TestResolve_CreateWhenNoRecordExists(t *testing.T) {
	r := newTestResolver(t)

	cand := createTestCandidate()
	d, err := r.Resolve(nil, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionCreate, d.Action)
	assert.Equal(t, "GYG1", d.Reference)
	require.NotNil(t, d.Doc)
	assert.Equal(t, "John Smith", d.Doc.Name)
	assert.Equal(t, models.Platform, d.Doc.Platform)
	assert.Equal(t, models.DefaultSpecialRequirements, d.Doc.SpecialRequirements)
	assert.Equal(t, testNow, d.Doc.CreatedAt)
	assert.Equal(t, testNow, d.Doc.UpdatedAt)
}

func TestResolve_CreateAppliesVehicleDefault(t *testing.T) {
	r := newTestResolver(t)

	cand := createTestCandidate()
	cand.VehicleType = ""
	d, err := r.Resolve(nil, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionCreate, d.Action)
	assert.Equal(t, models.DefaultVehicleType, d.Doc.VehicleType)
}

func TestResolve_CreateWithGreetingNameDiscardsIt(t *testing.T) {
	// A name matching the salutation must not seed a fresh record either.
	r := newTestResolver(t)

	cand := createTestCandidate()
	cand.Name = "John"
	d, err := r.Resolve(nil, cand, "John", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionCreate, d.Action)
	assert.Equal(t, "", d.Doc.Name)
	assert.Equal(t, "+34600111222", d.Doc.PhoneNumber)
}

func TestResolve_MissingReferenceRejected(t *testing.T) {
	r := newTestResolver(t)

	cand := createTestCandidate()
	cand.BookingReference = ""
	_, err := r.Resolve(nil, cand, "", testNow)

	assert.ErrorIs(t, err, ErrMissingReference)
}

// ==========================
// Merge Path Tests
// ==========================

func TestResolve_UpdateSingleFieldPreservesProtected(t *testing.T) {
	// An amendment carrying only the new date must not disturb the
	// stored name or phone number.
	r := newTestResolver(t)
	existing := createTestRecord()

	cand := models.CandidateFields{
		BookingReference: "GYG1",
		TourDate:         "2026-03-15",
		IsAmendment:      true,
	}
	d, err := r.Resolve(existing, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionUpdate, d.Action)
	assert.Equal(t, []string{"tourDate"}, d.Changed)
	assert.Equal(t, "2026-03-15", d.Doc.TourDate)
	assert.Equal(t, "John Smith", d.Doc.Name)
	assert.Equal(t, "+34600111222", d.Doc.PhoneNumber)
	assert.Equal(t, testNow, d.Doc.UpdatedAt)

	assert.Equal(t, "2026-03-15", d.Partial["tourDate"])
	assert.Equal(t, testNow, d.Partial["updatedAt"])
	assert.NotContains(t, d.Partial, "name")
	assert.NotContains(t, d.Partial, "phoneNumber")
}

func TestResolve_NoOpWhenNothingChanges(t *testing.T) {
	r := newTestResolver(t)
	existing := createTestRecord()

	d, err := r.Resolve(existing, createTestCandidate(), "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionNoOp, d.Action)
	assert.Empty(t, d.Changed)
	assert.False(t, d.Unmatched)
}

func TestResolve_Idempotent(t *testing.T) {
	// Applying a create decision and re-resolving the same candidate
	// against the resulting record must yield a no-op.
	r := newTestResolver(t)

	cand := createTestCandidate()
	first, err := r.Resolve(nil, cand, "", testNow)
	require.NoError(t, err)
	require.Equal(t, ActionCreate, first.Action)

	second, err := r.Resolve(first.Doc, cand, "", testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, ActionNoOp, second.Action)
}

func TestResolve_SingleTokenNameRejected(t *testing.T) {
	// "Bob" differs from the salutation name but is still a single
	// token, so it never overwrites the stored full name.
	r := newTestResolver(t)
	existing := createTestRecord()

	cand := models.CandidateFields{
		BookingReference: "GYG1",
		Name:             "Bob",
		TourTime:         "14:00",
	}
	d, err := r.Resolve(existing, cand, "Alice", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionUpdate, d.Action)
	assert.Equal(t, []string{"tourTime"}, d.Changed)
	assert.Equal(t, "John Smith", d.Doc.Name)
	assert.NotContains(t, d.Partial, "name")
}

func TestResolve_FullNameOverwritesProtected(t *testing.T) {
	r := newTestResolver(t)
	existing := createTestRecord()

	cand := models.CandidateFields{
		BookingReference: "GYG1",
		Name:             "Jonathan Smithers",
	}
	d, err := r.Resolve(existing, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionUpdate, d.Action)
	assert.Equal(t, "Jonathan Smithers", d.Doc.Name)
	assert.Equal(t, "Jonathan Smithers", d.Partial["name"])
}

func TestResolve_GreetingNameNeverReachesMerge(t *testing.T) {
	r := newTestResolver(t)
	existing := createTestRecord()
	existing.Name = ""

	cand := models.CandidateFields{
		BookingReference: "GYG1",
		Name:             "John",
	}
	d, err := r.Resolve(existing, cand, "John", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionNoOp, d.Action)
	assert.Equal(t, "", existing.Name)
}

func TestResolve_EmptyCandidateFieldsNeverClear(t *testing.T) {
	// Absent extraction values must not blank stored fields.
	r := newTestResolver(t)
	existing := createTestRecord()

	cand := models.CandidateFields{
		BookingReference: "GYG1",
		Tour:             "Mountain Hike",
	}
	d, err := r.Resolve(existing, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionUpdate, d.Action)
	assert.Equal(t, []string{"tour"}, d.Changed)
	assert.Equal(t, "2026-03-10", d.Doc.TourDate)
	assert.Equal(t, 2, d.Doc.TotalPassengers)
}

func TestResolve_PassengerCountUpdate(t *testing.T) {
	tests := []struct {
		name       string
		passengers int
		action     Action
	}{
		{"different count updates", 4, ActionUpdate},
		{"same count is noop", 2, ActionNoOp},
		{"zero is absent", 0, ActionNoOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t)
			existing := createTestRecord()

			cand := models.CandidateFields{
				BookingReference: "GYG1",
				TotalPassengers:  tt.passengers,
			}
			d, err := r.Resolve(existing, cand, "", testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.action, d.Action)
			if tt.action == ActionUpdate {
				assert.Equal(t, tt.passengers, d.Doc.TotalPassengers)
			}
		})
	}
}

func TestResolve_MergeDoesNotMutateExisting(t *testing.T) {
	r := newTestResolver(t)
	existing := createTestRecord()

	cand := models.CandidateFields{
		BookingReference: "GYG1",
		TourDate:         "2026-03-20",
	}
	_, err := r.Resolve(existing, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", existing.TourDate)
}

func TestResolve_MergeWithoutAmendmentHint(t *testing.T) {
	// A record plus differing fields always merges, amendment flag or not.
	r := newTestResolver(t)
	existing := createTestRecord()

	cand := models.CandidateFields{
		BookingReference: "GYG1",
		Address:          "Hotel Marina",
		IsAmendment:      false,
	}
	d, err := r.Resolve(existing, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionUpdate, d.Action)
	assert.Equal(t, "Hotel Marina", d.Doc.Address)
}

// ==========================
// Cancellation Tests
// ==========================

func TestResolve_CancellationDeletesMatchedRecord(t *testing.T) {
	r := newTestResolver(t)
	existing := createTestRecord()

	cand := models.CandidateFields{
		BookingReference: "GYG1",
		IsCancellation:   true,
	}
	d, err := r.Resolve(existing, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionDelete, d.Action)
	assert.Equal(t, "GYG1", d.Reference)
	assert.False(t, d.Unmatched)
}

func TestResolve_UnmatchedCancellationIsNoOp(t *testing.T) {
	r := newTestResolver(t)

	cand := models.CandidateFields{
		BookingReference: "GYG999",
		IsCancellation:   true,
	}
	d, err := r.Resolve(nil, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionNoOp, d.Action)
	assert.True(t, d.Unmatched)
}

func TestResolve_CancellationWithoutReferenceIsNoOp(t *testing.T) {
	r := newTestResolver(t)

	cand := models.CandidateFields{IsCancellation: true}
	d, err := r.Resolve(nil, cand, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, ActionNoOp, d.Action)
	assert.True(t, d.Unmatched)
}

// ==========================
// Policy Table Tests
// ==========================

func TestDefaultPolicies(t *testing.T) {
	policies := DefaultPolicies()

	assert.Equal(t, PolicyProtected, policies["name"])
	assert.Equal(t, PolicyProtected, policies["phoneNumber"])
	assert.Equal(t, PolicyNormal, policies["tourDate"])
	assert.Equal(t, PolicyNormal, policies["totalPassengers"])
	assert.Equal(t, PolicyBookkeeping, policies["booking_reference"])
	assert.Equal(t, PolicyBookkeeping, policies["platform"])
	assert.Equal(t, PolicyBookkeeping, policies["createdAt"])
}
