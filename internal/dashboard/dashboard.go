// Package dashboard aggregates the admin overview from several backend calls.
package dashboard

import (
	"context"
	"errors"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	// artworkLimit caps the artwork listing the counts are computed from.
	artworkLimit = 100
	// RecentContacts is how many contact messages the summary lists.
	RecentContacts = 5
)

// ArtworkLister lists artworks.
type ArtworkLister interface {
	GetArtworks(ctx context.Context, featuredOnly bool, limit int) ([]artfolio.Artwork, error)
}

// InboxReader reads the admin-only collections.
type InboxReader interface {
	GetContacts(ctx context.Context) ([]artfolio.ContactMessage, error)
	GetNewsletterSubscribers(ctx context.Context) ([]artfolio.Subscriber, error)
}

// Summary is the admin overview. A source that failed leaves its counts at
// zero and records its error.
type Summary struct {
	TotalArtworks    int
	FeaturedArtworks int
	TotalContacts    int
	TotalSubscribers int
	RecentContacts   []artfolio.ContactMessage

	ArtworksErr    error
	ContactsErr    error
	SubscribersErr error
}

// Err joins the per-source errors.
func (s *Summary) Err() error {
	return errors.Join(s.ArtworksErr, s.ContactsErr, s.SubscribersErr)
}

// Complete reports whether every source answered.
func (s *Summary) Complete() bool {
	return s.Err() == nil
}

// Load fetches artworks, contacts and subscribers concurrently. One failing
// source does not cancel the others.
func Load(ctx context.Context, artworks ArtworkLister, inbox InboxReader) *Summary {
	ctx = artfolio.WithRoute(ctx, artfolio.RouteAdminDashboard)
	summary := &Summary{RecentContacts: []artfolio.ContactMessage{}}

	var g errgroup.Group

	g.Go(func() error {
		list, err := artworks.GetArtworks(ctx, false, artworkLimit)
		if err != nil {
			log.Error("Failed to load artworks", "error", err)
			summary.ArtworksErr = err
			return nil
		}
		summary.TotalArtworks = len(list)
		summary.FeaturedArtworks = lo.CountBy(list, func(a artfolio.Artwork) bool { return a.Featured })
		return nil
	})

	g.Go(func() error {
		contacts, err := inbox.GetContacts(ctx)
		if err != nil {
			log.Error("Failed to load contacts", "error", err)
			summary.ContactsErr = err
			return nil
		}
		summary.TotalContacts = len(contacts)
		summary.RecentContacts = recent(contacts, RecentContacts)
		return nil
	})

	g.Go(func() error {
		subscribers, err := inbox.GetNewsletterSubscribers(ctx)
		if err != nil {
			log.Error("Failed to load subscribers", "error", err)
			summary.SubscribersErr = err
			return nil
		}
		summary.TotalSubscribers = len(subscribers)
		return nil
	})

	// goroutines never return an error; failures live on the summary
	_ = g.Wait()

	return summary
}

// recent returns the n newest contacts without modifying the input.
func recent(contacts []artfolio.ContactMessage, n int) []artfolio.ContactMessage {
	sorted := append([]artfolio.ContactMessage(nil), contacts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SubmittedAt.After(sorted[j].SubmittedAt) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		return []artfolio.ContactMessage{}
	}
	return sorted
}
