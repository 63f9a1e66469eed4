// internal/mailbox/body.go
package mailbox

import (
	"io"
	"strings"

	"github.com/emersion/go-message/mail"
	"jaytaylor.com/html2text"
)

// readMessage parses one raw RFC 822 message into subject, Message-ID and
// a plain-text body.
func readMessage(r io.Reader) (Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return Message{}, err
	}

	var msg Message
	msg.Subject, _ = mr.Header.Subject()
	msg.MessageID, _ = mr.Header.MessageID()

	var plain, html strings.Builder
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Message{}, err
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := h.ContentType()
		if err != nil {
			continue
		}

		data, err := io.ReadAll(p.Body)
		if err != nil {
			continue
		}

		switch contentType {
		case "text/plain":
			plain.Write(data)
		case "text/html":
			html.Write(data)
		}
	}

	msg.Body = BodyText(plain.String(), html.String())
	return msg, nil
}

// BodyText reduces a message's text parts to one readable body. Booking
// mail is composed as HTML, so the HTML part wins when present; the
// text/plain part is the fallback when conversion fails or HTML is absent.
func BodyText(plain, html string) string {
	if strings.TrimSpace(html) == "" {
		return plain
	}

	text, err := html2text.FromString(html, html2text.Options{TextOnly: true})
	if err != nil {
		return plain
	}
	return text
}
