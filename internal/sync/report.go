// internal/sync/report.go
package sync

// Report accumulates one pass's counters. Explicit values returned by the
// orchestrator, not process-wide state, so the engine stays an
// independently testable unit.
type Report struct {
	Processed              int
	Created                int
	Updated                int
	Duplicates             int
	Cancelled              int
	UnmatchedCancellations int
	Skipped                int // classifier rejected
	MissingReference       int
	AlreadySeen            int
	Errors                 int
	TotalInStore           int64
}

// Fields renders the report for the summary log line.
func (r *Report) Fields() map[string]interface{} {
	return map[string]interface{}{
		"processed":              r.Processed,
		"created":                r.Created,
		"updated":                r.Updated,
		"duplicates":             r.Duplicates,
		"cancelled":              r.Cancelled,
		"unmatchedCancellations": r.UnmatchedCancellations,
		"skipped":                r.Skipped,
		"missingReference":       r.MissingReference,
		"alreadySeen":            r.AlreadySeen,
		"errors":                 r.Errors,
		"totalInStore":           r.TotalInStore,
	}
}
