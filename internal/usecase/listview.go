package usecase

import "strings"

// ListState describes what a list screen should render.
type ListState int

const (
	// ListStateLoading means the first load has not completed yet.
	ListStateLoading ListState = iota
	// ListStateEmpty means the collection loaded and has no rows.
	ListStateEmpty
	// ListStateReady means current data is on screen.
	ListStateReady
	// ListStateStale means the last reload failed and previous data is
	// still shown.
	ListStateStale
)

// ListView holds a fetched collection and its filter/loading state. Loads
// are split into Begin/Apply so the caller can run the fetch on its own
// goroutine or command loop: Begin hands out a generation token, Apply
// discards any result whose token is no longer current. That guard covers
// both out-of-order responses and responses landing after the screen moved
// on.
type ListView[T any] struct {
	items   []T
	loaded  bool
	loading bool
	stale   bool
	gen     uint64

	resource string
	fields   func(T) (name, description string)
}

// NewListView builds a view-model for the named resource. fields extracts
// the name and description used by Filter.
func NewListView[T any](resource string, fields func(T) (string, string)) *ListView[T] {
	return &ListView[T]{resource: resource, fields: fields}
}

// Begin marks a reload in flight and returns its generation token.
func (v *ListView[T]) Begin() uint64 {
	v.gen++
	v.loading = true
	return v.gen
}

// Apply settles the reload identified by gen. A nil error replaces the
// collection; a non-nil one keeps the previous items and reports a
// LoadError. Results from a superseded generation are dropped whole.
func (v *ListView[T]) Apply(gen uint64, items []T, err error) error {
	if gen != v.gen {
		return nil
	}
	v.loading = false
	if err != nil {
		v.stale = v.loaded
		return &LoadError{Resource: v.resource, Err: err}
	}
	v.items = items
	v.loaded = true
	v.stale = false
	return nil
}

// Patch replaces or appends a single item in place after a mutation, so a
// successful save does not force a full refetch. match identifies the row.
func (v *ListView[T]) Patch(item T, match func(T) bool) {
	for i, existing := range v.items {
		if match(existing) {
			v.items[i] = item
			return
		}
	}
	v.items = append(v.items, item)
}

// Remove drops the first item match accepts.
func (v *ListView[T]) Remove(match func(T) bool) {
	for i, existing := range v.items {
		if match(existing) {
			v.items = append(v.items[:i], v.items[i+1:]...)
			return
		}
	}
}

// Items returns the current collection unfiltered.
func (v *ListView[T]) Items() []T { return v.items }

// Filter returns the items whose name or description contains q,
// case-insensitively. An empty query returns everything. Pure: no state is
// touched and the backing slice is never reordered.
func (v *ListView[T]) Filter(q string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return v.items
	}
	out := make([]T, 0, len(v.items))
	for _, item := range v.items {
		name, description := v.fields(item)
		if strings.Contains(strings.ToLower(name), q) || strings.Contains(strings.ToLower(description), q) {
			out = append(out, item)
		}
	}
	return out
}

// State reports what the screen should render.
func (v *ListView[T]) State() ListState {
	switch {
	case !v.loaded && v.loading:
		return ListStateLoading
	case v.stale:
		return ListStateStale
	case v.loaded && len(v.items) == 0:
		return ListStateEmpty
	case v.loaded:
		return ListStateReady
	default:
		return ListStateLoading
	}
}

// Loading reports whether a reload is in flight.
func (v *ListView[T]) Loading() bool { return v.loading }
