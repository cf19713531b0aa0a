package filter

import (
	"context"
	"strings"

	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/samber/lo"
)

// ContactSearch keeps contact messages whose name, email or message contains
// the term, ignoring case.
type ContactSearch struct {
	term string
}

var _ Filterer[artfolio.ContactMessage] = (*ContactSearch)(nil)

// NewContactSearch creates a contact search filter.
func NewContactSearch(term string) *ContactSearch {
	return &ContactSearch{term: strings.ToLower(strings.TrimSpace(term))}
}

// String returns the name of the filter.
func (f *ContactSearch) String() string { return "Contact Search" }

// Apply filters contact messages by the search term.
func (f *ContactSearch) Apply(_ context.Context, contacts []artfolio.ContactMessage) ([]artfolio.ContactMessage, error) {
	if f.term == "" {
		return contacts, nil
	}
	return lo.Filter(contacts, func(c artfolio.ContactMessage, _ int) bool {
		return strings.Contains(strings.ToLower(c.Name), f.term) ||
			strings.Contains(strings.ToLower(c.Email), f.term) ||
			strings.Contains(strings.ToLower(c.Message), f.term)
	}), nil
}

// SubscriberSearch keeps subscribers whose email or name contains the term,
// ignoring case.
type SubscriberSearch struct {
	term string
}

var _ Filterer[artfolio.Subscriber] = (*SubscriberSearch)(nil)

// NewSubscriberSearch creates a subscriber search filter.
func NewSubscriberSearch(term string) *SubscriberSearch {
	return &SubscriberSearch{term: strings.ToLower(strings.TrimSpace(term))}
}

// String returns the name of the filter.
func (f *SubscriberSearch) String() string { return "Subscriber Search" }

// Apply filters subscribers by the search term.
func (f *SubscriberSearch) Apply(_ context.Context, subscribers []artfolio.Subscriber) ([]artfolio.Subscriber, error) {
	if f.term == "" {
		return subscribers, nil
	}
	return lo.Filter(subscribers, func(s artfolio.Subscriber, _ int) bool {
		return strings.Contains(strings.ToLower(s.Email), f.term) ||
			strings.Contains(strings.ToLower(s.Name), f.term)
	}), nil
}
