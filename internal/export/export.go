// Package export writes contacts and subscribers as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jon4hz/artfolio/pkg/artfolio"
)

// Contacts writes one header row and one row per contact message.
func Contacts(w io.Writer, contacts []artfolio.ContactMessage) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "name", "email", "message", "submitted_at"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range contacts {
		if err := writer.Write([]string{c.ID, c.Name, c.Email, c.Message, timestamp(c.SubmittedAt)}); err != nil {
			return fmt.Errorf("write contact %s: %w", c.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Subscribers writes one header row and one row per subscriber.
func Subscribers(w io.Writer, subscribers []artfolio.Subscriber) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "email", "name", "subscribed_at"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range subscribers {
		if err := writer.Write([]string{s.ID, s.Email, s.Name, timestamp(s.SubscribedAt)}); err != nil {
			return fmt.Errorf("write subscriber %s: %w", s.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
