package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gallery = []artfolio.Artwork{
	{ID: "1", Title: "Blue Horizon", Description: "Calm sea at dusk", Category: "landscape", Tags: []string{"Sea", "blue"}, Featured: true},
	{ID: "2", Title: "Shapes", Description: "Blue triangles", Category: "geometric", Tags: []string{"shapes"}},
	{ID: "3", Title: "City Lights", Description: "Night skyline", Category: "urban", Tags: []string{}, Featured: true},
	{ID: "4", Title: "Fern", Description: "Macro study", Category: "Nature", Tags: nil},
}

func ids(artworks []artfolio.Artwork) []string {
	return lo.Map(artworks, func(a artfolio.Artwork, _ int) string { return a.ID })
}

func TestArtworks(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		tag      string
		featured bool
		want     []string
	}{
		{name: "no criteria keeps all", want: []string{"1", "2", "3", "4"}},
		{name: "category all keeps all", category: "all", want: []string{"1", "2", "3", "4"}},
		{name: "search matches title case-insensitively", search: "BLUE", want: []string{"1", "2"}},
		{name: "search matches description", search: "skyline", want: []string{"3"}},
		{name: "category exact", category: "urban", want: []string{"3"}},
		{name: "category ignores case", category: "nature", want: []string{"4"}},
		{name: "search and category combine", search: "blue", category: "geometric", want: []string{"2"}},
		{name: "featured only", featured: true, want: []string{"1", "3"}},
		{name: "tag ignores case", tag: "sea", want: []string{"1"}},
		{name: "no match", search: "portrait", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Artworks(tt.search, tt.category, tt.tag, tt.featured).ApplyAll(context.Background(), gallery)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestContactSearch(t *testing.T) {
	contacts := []artfolio.ContactMessage{
		{ID: "a", Name: "Ada Lovelace", Email: "ada@example.com", Message: "Commission inquiry"},
		{ID: "b", Name: "Bob", Email: "bob@studio.io", Message: "Is the print still available?"},
	}

	tests := map[string][]string{
		"":           {"a", "b"},
		"lovelace":   {"a"},
		"STUDIO.IO":  {"b"},
		"print":      {"b"},
		"commission": {"a"},
		"zzz":        {},
	}
	for term, want := range tests {
		got, err := New[artfolio.ContactMessage](NewContactSearch(term)).ApplyAll(context.Background(), contacts)
		require.NoError(t, err)
		assert.Equal(t, want, lo.Map(got, func(c artfolio.ContactMessage, _ int) string { return c.ID }), term)
	}
}

func TestSubscriberSearch(t *testing.T) {
	subs := []artfolio.Subscriber{{ID: "1", Email: "fan@example.com", Name: "Fan"}, {ID: "2", Email: "x@y.z"}}
	got, err := NewSubscriberSearch("fan").Apply(context.Background(), subs)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

type failing struct{}

func (failing) String() string { return "failing" }
func (failing) Apply(context.Context, []artfolio.Artwork) ([]artfolio.Artwork, error) {
	return nil, errors.New("boom")
}

func TestFilter_ApplyAllStopsOnError(t *testing.T) {
	f := New[artfolio.Artwork](Featured{}, failing{})
	_, err := f.ApplyAll(context.Background(), gallery)
	assert.EqualError(t, err, "boom")
}

func TestFilter_ApplyAllHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New[artfolio.Artwork](Featured{}).ApplyAll(ctx, gallery)
	assert.ErrorIs(t, err, context.Canceled)
}
