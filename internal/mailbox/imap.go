// internal/mailbox/imap.go
package mailbox

import (
	"context"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"booking-sync/internal/common/config"
	commonerrors "booking-sync/internal/common/errors"
	"booking-sync/internal/common/logger"
)

// IMAPSource reads a mailbox over IMAP with TLS.
type IMAPSource struct {
	client *client.Client
	cfg    config.MailboxConfig
	logger logger.Logger
}

// Connect dials and authenticates against the configured mailbox.
func Connect(cfg config.MailboxConfig, log logger.Logger) (*IMAPSource, error) {
	c, err := client.DialTLS(cfg.Address, nil)
	if err != nil {
		return nil, commonerrors.NewMailboxConnectionFailedError(err)
	}

	if err := c.Login(cfg.Username, cfg.Password); err != nil {
		_ = c.Logout()
		return nil, commonerrors.NewMailboxConnectionFailedError(err)
	}

	return &IMAPSource{
		client: c,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"mailbox": cfg.Address, "folder": cfg.Folder}),
	}, nil
}

// Fetch selects the folder, searches by sender, and retrieves the latest
// limit messages. Unreadable messages are logged and dropped, never fatal
// to the batch.
func (s *IMAPSource) Fetch(_ context.Context, limit int) ([]Message, error) {
	if _, err := s.client.Select(s.cfg.Folder, true); err != nil {
		return nil, commonerrors.NewMailboxFetchFailedError(err)
	}

	criteria := imap.NewSearchCriteria()
	if s.cfg.SenderFilter != "" {
		criteria.Header.Add("From", s.cfg.SenderFilter)
	}

	ids, err := s.client.Search(criteria)
	if err != nil {
		return nil, commonerrors.NewMailboxFetchFailedError(err)
	}

	s.logger.Info("mailbox searched", map[string]interface{}{
		"matching": len(ids),
		"limit":    limit,
	})

	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}
	if len(ids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	ch := make(chan *imap.Message, len(ids))
	done := make(chan error, 1)
	go func() {
		done <- s.client.Fetch(seqset, items, ch)
	}()

	var out []Message
	for msg := range ch {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		m, err := readMessage(body)
		if err != nil {
			s.logger.Warn("unreadable message, dropped", map[string]interface{}{
				"uid":   msg.Uid,
				"error": err.Error(),
			})
			continue
		}
		m.UID = msg.Uid
		out = append(out, m)
	}

	if err := <-done; err != nil {
		return nil, commonerrors.NewMailboxFetchFailedError(err)
	}
	return out, nil
}

func (s *IMAPSource) Close() error {
	return s.client.Logout()
}
