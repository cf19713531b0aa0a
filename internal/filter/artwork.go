package filter

import (
	"context"
	"slices"
	"strings"

	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/samber/lo"
)

// CategoryAll matches every artwork.
const CategoryAll = "all"

// ArtworkSearch keeps artworks whose title or description contains the term,
// ignoring case. An empty term keeps everything.
type ArtworkSearch struct {
	term string
}

var _ Filterer[artfolio.Artwork] = (*ArtworkSearch)(nil)

// NewArtworkSearch creates a search filter for term.
func NewArtworkSearch(term string) *ArtworkSearch {
	return &ArtworkSearch{term: strings.ToLower(strings.TrimSpace(term))}
}

// String returns the name of the filter.
func (f *ArtworkSearch) String() string { return "Artwork Search" }

// Apply filters artworks by the search term.
func (f *ArtworkSearch) Apply(_ context.Context, artworks []artfolio.Artwork) ([]artfolio.Artwork, error) {
	if f.term == "" {
		return artworks, nil
	}
	return lo.Filter(artworks, func(a artfolio.Artwork, _ int) bool {
		return strings.Contains(strings.ToLower(a.Title), f.term) ||
			strings.Contains(strings.ToLower(a.Description), f.term)
	}), nil
}

// Category keeps artworks of one category. "all" and the empty string keep
// everything.
type Category struct {
	category string
}

var _ Filterer[artfolio.Artwork] = (*Category)(nil)

// NewCategory creates a category filter.
func NewCategory(category string) *Category {
	return &Category{category: strings.ToLower(strings.TrimSpace(category))}
}

// String returns the name of the filter.
func (f *Category) String() string { return "Category Filter" }

// Apply filters artworks by category.
func (f *Category) Apply(_ context.Context, artworks []artfolio.Artwork) ([]artfolio.Artwork, error) {
	if f.category == "" || f.category == CategoryAll {
		return artworks, nil
	}
	return lo.Filter(artworks, func(a artfolio.Artwork, _ int) bool {
		return strings.EqualFold(a.Category, f.category)
	}), nil
}

// Featured keeps featured artworks only.
type Featured struct{}

var _ Filterer[artfolio.Artwork] = Featured{}

// String returns the name of the filter.
func (Featured) String() string { return "Featured Filter" }

// Apply drops artworks that are not featured.
func (Featured) Apply(_ context.Context, artworks []artfolio.Artwork) ([]artfolio.Artwork, error) {
	return lo.Filter(artworks, func(a artfolio.Artwork, _ int) bool { return a.Featured }), nil
}

// Tag keeps artworks carrying the tag, ignoring case.
type Tag struct {
	tag string
}

var _ Filterer[artfolio.Artwork] = (*Tag)(nil)

// NewTag creates a tag filter.
func NewTag(tag string) *Tag {
	return &Tag{tag: strings.TrimSpace(tag)}
}

// String returns the name of the filter.
func (f *Tag) String() string { return "Tag Filter" }

// Apply filters artworks by tag.
func (f *Tag) Apply(_ context.Context, artworks []artfolio.Artwork) ([]artfolio.Artwork, error) {
	if f.tag == "" {
		return artworks, nil
	}
	return lo.Filter(artworks, func(a artfolio.Artwork, _ int) bool {
		return slices.ContainsFunc(a.Tags, func(t string) bool { return strings.EqualFold(t, f.tag) })
	}), nil
}

// Artworks builds the artwork filter chain for the given criteria. Filters
// whose criterion is empty are left out.
func Artworks(search, category, tag string, featuredOnly bool) *Filter[artfolio.Artwork] {
	var filters []Filterer[artfolio.Artwork]
	if featuredOnly {
		filters = append(filters, Featured{})
	}
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, CategoryAll) {
		filters = append(filters, NewCategory(c))
	}
	if strings.TrimSpace(tag) != "" {
		filters = append(filters, NewTag(tag))
	}
	if strings.TrimSpace(search) != "" {
		filters = append(filters, NewArtworkSearch(search))
	}
	return New(filters...)
}
