// Package sync drives one pass over the mailbox: classify, extract,
// resolve, commit. It touches every external collaborator and carries no
// decision logic of its own.
package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	commonerrors "booking-sync/internal/common/errors"
	"booking-sync/internal/common/logger"
	"booking-sync/internal/common/metrics"
	"booking-sync/internal/engine/classifier"
	"booking-sync/internal/engine/resolver"
	"booking-sync/internal/engine/salutation"
	"booking-sync/internal/extraction"
	"booking-sync/internal/mailbox"
	"booking-sync/internal/models"
	"booking-sync/internal/store"
)

// Orchestrator wires the engine to its collaborators. Messages are
// processed to completion one at a time; there is no cross-message
// transaction.
type Orchestrator struct {
	source   mailbox.Source
	oracle   extraction.Oracle
	store    store.BookingStore
	resolver *resolver.Resolver
	dedupe   *Dedupe
	logger   logger.Logger

	batchSize int
	now       func() time.Time
}

func New(source mailbox.Source, oracle extraction.Oracle, st store.BookingStore, res *resolver.Resolver, dedupe *Dedupe, log logger.Logger, batchSize int) *Orchestrator {
	return &Orchestrator{
		source:    source,
		oracle:    oracle,
		store:     st,
		resolver:  res,
		dedupe:    dedupe,
		logger:    log,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Run executes one sync pass and returns its counters. Only a failed
// fetch is fatal; every per-message condition degrades to "skip this
// message, continue the batch".
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	runLog := o.logger.WithFields(map[string]interface{}{"runId": uuid.New().String()})

	msgs, err := o.source.Fetch(ctx, o.batchSize)
	if err != nil {
		return nil, err
	}
	runLog.Info("fetched batch", map[string]interface{}{"messages": len(msgs)})

	report := &Report{}
	for _, msg := range msgs {
		if ctx.Err() != nil {
			break
		}
		o.processMessage(ctx, runLog, msg, report)
	}

	if total, err := o.store.Count(ctx); err == nil {
		report.TotalInStore = total
	}

	runLog.Info("sync pass complete", report.Fields())
	return report, nil
}

func (o *Orchestrator) processMessage(ctx context.Context, runLog logger.Logger, msg mailbox.Message, report *Report) {
	mlog := runLog.WithFields(map[string]interface{}{
		"messageId": msg.MessageID,
		"subject":   truncate(msg.Subject, 60),
	})

	if o.dedupe.Seen(ctx, msg.MessageID) {
		report.AlreadySeen++
		metrics.MessagesSkipped.WithLabelValues(metrics.SkipReasonAlreadySeen).Inc()
		mlog.Debug("already reconciled, skipped", nil)
		return
	}

	cls := classifier.Classify(msg.Subject, msg.Body)
	if !cls.Allowed {
		report.Skipped++
		metrics.MessagesSkipped.WithLabelValues(metrics.SkipReasonFiltered).Inc()
		mlog.Debug("not booking-lifecycle mail, skipped", nil)
		return
	}

	greetingName := salutation.ExtractGreetingName(msg.Body)
	if cls.IsAmendment {
		mlog.Info("amendment detected", nil)
	}
	if greetingName != "" {
		mlog.Debug("greeting name detected", map[string]interface{}{"greetingName": greetingName})
	}

	start := time.Now()
	raw, err := o.oracle.Extract(ctx, msg.Body, msg.Subject, cls.IsAmendment)
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	if err != nil || raw == nil {
		report.Errors++
		metrics.ExtractionFailures.Inc()
		if err != nil {
			mlog.WithError(err).Warn("extraction produced nothing", nil)
		} else {
			mlog.Warn("extraction produced nothing", nil)
		}
		return
	}

	cand := extraction.Normalize(raw, cls.IsAmendment)

	var existing *models.BookingRecord
	if cand.BookingReference != "" {
		existing, err = o.store.FindByReference(ctx, cand.BookingReference)
		if err != nil {
			report.Errors++
			mlog.WithError(err).Error("store lookup failed", map[string]interface{}{
				"reference": cand.BookingReference,
			})
			return
		}
	}

	decision, err := o.resolver.Resolve(existing, cand, greetingName, o.now())
	if err != nil {
		if errors.Is(err, resolver.ErrMissingReference) {
			report.MissingReference++
			metrics.MessagesSkipped.WithLabelValues(metrics.SkipReasonMissingReference).Inc()
			mlog.WithError(commonerrors.NewMissingBookingReferenceError(msg.Subject)).
				Warn("no booking reference found, skipped", nil)
		} else {
			report.Errors++
			mlog.WithError(err).Error("resolution failed", nil)
		}
		return
	}

	if err := o.commit(ctx, mlog, decision, report); err != nil {
		report.Errors++
		mlog.WithError(err).Error("store mutation failed", map[string]interface{}{
			"reference": decision.Reference,
			"action":    string(decision.Action),
		})
		return
	}

	report.Processed++
	metrics.MessagesProcessed.Inc()
	o.dedupe.Mark(ctx, msg.MessageID)
}

func (o *Orchestrator) commit(ctx context.Context, mlog logger.Logger, d resolver.Decision, report *Report) error {
	switch d.Action {
	case resolver.ActionCreate:
		if err := o.store.Insert(ctx, d.Doc); err != nil {
			return err
		}
		report.Created++
		metrics.BookingsCreated.Inc()
		mlog.Info("saved new booking", map[string]interface{}{"reference": d.Reference})

	case resolver.ActionUpdate:
		if err := o.store.UpdateFields(ctx, d.Reference, d.Partial); err != nil {
			return err
		}
		report.Updated++
		metrics.BookingsUpdated.Inc()
		mlog.Info("amended booking", map[string]interface{}{
			"reference":     d.Reference,
			"updatedFields": d.Changed,
		})

	case resolver.ActionDelete:
		found, err := o.store.DeleteByReference(ctx, d.Reference)
		if err != nil {
			return err
		}
		if found {
			report.Cancelled++
			metrics.BookingsCancelled.Inc()
			mlog.Info("cancelled booking", map[string]interface{}{"reference": d.Reference})
		} else {
			// Resolver saw a record, the delete did not. Count it with
			// the unmatched cancellations; it is not an error.
			report.UnmatchedCancellations++
			metrics.UnmatchedCancellations.Inc()
			mlog.Warn("cancellation found no stored booking", map[string]interface{}{"reference": d.Reference})
		}

	case resolver.ActionNoOp:
		if d.Unmatched {
			report.UnmatchedCancellations++
			metrics.UnmatchedCancellations.Inc()
			mlog.Warn("cancellation found no stored booking", map[string]interface{}{"reference": d.Reference})
		} else {
			report.Duplicates++
			metrics.DuplicateMessages.Inc()
			mlog.Info("no changes detected, skipped", map[string]interface{}{"reference": d.Reference})
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
