// Package mailbox fetches booking mail over IMAP and reduces each message
// to a (subject, plain-text body) pair. The engine consumes it as an
// ordered, finite batch; mailbox order carries no ordering guarantee
// relative to booking lifecycle.
package mailbox

import "context"

// Message is one fetched mail, already decoded to plain text.
type Message struct {
	UID       uint32
	MessageID string
	Subject   string
	Body      string
}

// Source produces one batch of messages per Fetch call.
type Source interface {
	// Fetch returns up to limit of the latest matching messages.
	Fetch(ctx context.Context, limit int) ([]Message, error)
	Close() error
}
