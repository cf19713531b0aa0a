// Package render prints backend data as terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/jon4hz/artfolio/internal/dashboard"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/mergestat/timediff"
	"github.com/samber/lo"
)

const messagePreview = 60

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

// Renderer writes tables to an output.
type Renderer struct {
	w   io.Writer
	now func() time.Time
}

// New returns a Renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w, now: time.Now}
}

func (r *Renderer) table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(r.w, t.Render())
	return err
}

func (r *Renderer) fields(pairs [][2]string) error {
	width := lo.Max(lo.Map(pairs, func(p [2]string, _ int) int { return len(p[0]) }))
	var b strings.Builder
	for _, p := range pairs {
		label := labelStyle.Render(fmt.Sprintf("%-*s", width, p[0]))
		fmt.Fprintf(&b, "%s  %s\n", label, p[1])
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Artworks prints an artwork listing.
func (r *Renderer) Artworks(artworks []artfolio.Artwork) error {
	if len(artworks) == 0 {
		return r.empty("No artworks found.")
	}
	rows := lo.Map(artworks, func(a artfolio.Artwork, _ int) []string {
		return []string{
			a.ID,
			a.Title,
			a.Category,
			FormatPrice(a.Price),
			lo.Ternary(a.Featured, "yes", ""),
			strings.Join(a.Tags, ", "),
			r.age(a.CreatedAt),
		}
	})
	return r.table([]string{"ID", "Title", "Category", "Price", "Featured", "Tags", "Added"}, rows)
}

// Artwork prints a single artwork.
func (r *Renderer) Artwork(a *artfolio.Artwork) error {
	return r.fields([][2]string{
		{"ID", a.ID},
		{"Title", a.Title},
		{"Description", a.Description},
		{"Category", a.Category},
		{"Price", FormatPrice(a.Price)},
		{"Tags", strings.Join(a.Tags, ", ")},
		{"Image", a.ImageURL},
		{"Etsy", a.EtsyURL},
		{"Gumroad", a.GumroadURL},
		{"Featured", fmt.Sprintf("%t", a.Featured)},
		{"Added", r.age(a.CreatedAt)},
	})
}

// Contacts prints contact submissions with a shortened message.
func (r *Renderer) Contacts(contacts []artfolio.ContactMessage) error {
	if len(contacts) == 0 {
		return r.empty("No contact messages.")
	}
	rows := lo.Map(contacts, func(c artfolio.ContactMessage, _ int) []string {
		return []string{c.Name, c.Email, preview(c.Message, messagePreview), r.age(&c.SubmittedAt)}
	})
	return r.table([]string{"Name", "Email", "Message", "Received"}, rows)
}

// Subscribers prints newsletter subscribers.
func (r *Renderer) Subscribers(subscribers []artfolio.Subscriber) error {
	if len(subscribers) == 0 {
		return r.empty("No subscribers.")
	}
	rows := lo.Map(subscribers, func(s artfolio.Subscriber, _ int) []string {
		return []string{s.Email, s.Name, r.age(&s.SubscribedAt)}
	})
	return r.table([]string{"Email", "Name", "Subscribed"}, rows)
}

// Settings prints the site settings.
func (r *Renderer) Settings(s *artfolio.SiteSettings) error {
	return r.fields([][2]string{
		{"Site title", s.SiteTitle},
		{"Artist", s.ArtistName},
		{"Bio", s.Bio},
		{"Hero title", s.HeroTitle},
		{"Hero subtitle", s.HeroSubtitle},
		{"Etsy shop", s.EtsyShopURL},
		{"Gumroad", s.GumroadURL},
		{"Contact email", s.ContactEmail},
	})
}

// Dashboard prints the admin overview. Failed sources are shown as
// unavailable instead of zero.
func (r *Renderer) Dashboard(s *dashboard.Summary) error {
	count := func(n int, err error) string {
		if err != nil {
			return warnStyle.Render("unavailable")
		}
		return humanize.Comma(int64(n))
	}
	if err := r.fields([][2]string{
		{"Artworks", count(s.TotalArtworks, s.ArtworksErr)},
		{"Featured", count(s.FeaturedArtworks, s.ArtworksErr)},
		{"Contacts", count(s.TotalContacts, s.ContactsErr)},
		{"Subscribers", count(s.TotalSubscribers, s.SubscribersErr)},
	}); err != nil {
		return err
	}
	if s.ContactsErr != nil {
		return nil
	}
	if _, err := fmt.Fprintln(r.w, labelStyle.Render("\nRecent contacts")); err != nil {
		return err
	}
	return r.Contacts(s.RecentContacts)
}

// Upload prints the outcome of an image upload.
func (r *Renderer) Upload(resp *artfolio.UploadResponse, size int, width, height int, resized bool) error {
	pairs := [][2]string{
		{"Image URL", resp.ImageURL},
		{"Filename", resp.Filename},
		{"Size", FormatBytes(size)},
	}
	if width > 0 && height > 0 {
		pairs = append(pairs, [2]string{"Dimensions", fmt.Sprintf("%dx%d%s", width, height, lo.Ternary(resized, " (resized)", ""))})
	}
	return r.fields(pairs)
}

// Message prints a backend message, with the id when one was assigned.
func (r *Renderer) Message(resp *artfolio.MessageResponse) error {
	line := resp.Message
	if resp.ID != "" {
		line += " " + mutedStyle.Render("(id "+resp.ID+")")
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

func (r *Renderer) empty(msg string) error {
	_, err := fmt.Fprintln(r.w, mutedStyle.Render(msg))
	return err
}

func (r *Renderer) age(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return timediff.TimeDiff(*t, timediff.WithStartTime(r.now()))
}

// FormatPrice renders a price with thousands separators. A missing price is
// shown as a dash.
func FormatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return "$" + humanize.FormatFloat("#,###.##", *p)
}

// FormatBytes renders a byte count for humans.
func FormatBytes(n int) string {
	u, err := safecast.Convert[uint64](n)
	if err != nil {
		return "0 B"
	}
	return humanize.Bytes(u)
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
