// internal/extraction/normalize.go
package extraction

import (
	"encoding/json"
	"strconv"
	"strings"

	"booking-sync/internal/models"
)

// Normalize coerces a raw oracle attempt into canonical candidate fields.
// Total function: malformed pieces map to absent fields, never to an
// error. A nil raw behaves like an attempt with every field absent.
// The amendment flag carries the classifier's verdict, not the oracle's.
func Normalize(raw *RawExtraction, amendmentHint bool) models.CandidateFields {
	if raw == nil {
		return models.CandidateFields{IsAmendment: amendmentHint}
	}

	return models.CandidateFields{
		// Upper-cased for key stability across inconsistent extractions.
		BookingReference: strings.ToUpper(strings.TrimSpace(raw.BookingReference)),
		Name:             strings.TrimSpace(raw.Name),
		PhoneNumber:      strings.TrimSpace(raw.PhoneNumber),
		TourDate:         strings.TrimSpace(raw.TourDate),
		TourTime:         strings.TrimSpace(raw.TourTime),
		Tour:             strings.TrimSpace(raw.Tour),
		VehicleType:      strings.TrimSpace(raw.VehicleType),
		Address:          strings.TrimSpace(raw.Address),
		TotalPassengers:  coercePassengers(raw.TotalPassengers),
		IsCancellation:   raw.IsCancellation,
		IsAmendment:      amendmentHint,
	}
}

// coercePassengers accepts whatever shape the oracle emitted. Coercion
// failure yields absent (0); a malformed count never blocks a merge.
func coercePassengers(v interface{}) int {
	var n int
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		n = int(val)
	case int:
		n = val
	case json.Number:
		parsed, err := val.Int64()
		if err != nil {
			return 0
		}
		n = int(parsed)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}

	if n < 0 {
		return 0
	}
	return n
}
