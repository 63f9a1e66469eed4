// Package store is the durable booking record store, keyed on
// booking_reference. The engine requires no secondary indexes.
package store

import (
	"context"

	"booking-sync/internal/models"
)

// BookingStore is the record store contract consumed by the orchestrator.
type BookingStore interface {
	// FindByReference returns the record for ref, or (nil, nil) when absent.
	FindByReference(ctx context.Context, ref string) (*models.BookingRecord, error)

	// Insert stores a new record.
	Insert(ctx context.Context, doc *models.BookingRecord) error

	// UpdateFields applies a partial document to the record for ref.
	UpdateFields(ctx context.Context, ref string, fields map[string]interface{}) error

	// DeleteByReference removes the record for ref, reporting whether one
	// existed.
	DeleteByReference(ctx context.Context, ref string) (bool, error)

	// Count returns the number of stored records, for the pass summary.
	Count(ctx context.Context) (int64, error)
}
