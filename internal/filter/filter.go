package filter

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Filterer defines the interface for list filters.
type Filterer[T any] interface {
	fmt.Stringer
	// Apply filters items based on specific criteria and returns the filtered list.
	Apply(context.Context, []T) ([]T, error)
}

// Filter applies all provided filters sequentially.
type Filter[T any] struct {
	filters []Filterer[T]
}

// New creates a new Filter instance with the given filters.
func New[T any](filters ...Filterer[T]) *Filter[T] {
	return &Filter[T]{
		filters: filters,
	}
}

// ApplyAll applies all filters sequentially to the provided items.
func (f *Filter[T]) ApplyAll(ctx context.Context, items []T) ([]T, error) {
	var err error
	filtered := items

	for _, filter := range f.filters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		preFilterCount := len(filtered)
		log.Debug("Applying filter.", "filter", filter.String(), "initial_items", preFilterCount)
		filtered, err = filter.Apply(ctx, filtered)
		if err != nil {
			log.Error("Failed to apply filter.", "filter", filter.String(), "error", err)
			return nil, err
		}
		log.Debug("Filter applied successfully.", "filter", filter.String(), "remaining_items", len(filtered), "filtered_out", preFilterCount-len(filtered))
	}

	return filtered, nil
}
