package view

// Filtered is a live projection of a source collection. The installed
// predicate is re-applied to the current source on every read, so the view
// follows both source changes and predicate swaps.
type Filtered[T any] struct {
	source    func() []T
	predicate func(T) bool
}

// NewFiltered returns a view that shows every element of source.
func NewFiltered[T any](source func() []T) *Filtered[T] {
	return &Filtered[T]{source: source}
}

// SetPredicate replaces the current predicate. A nil predicate shows
// everything.
func (f *Filtered[T]) SetPredicate(predicate func(T) bool) {
	f.predicate = predicate
}

// Items returns the matching elements in source order.
func (f *Filtered[T]) Items() []T {
	items := f.source()
	if f.predicate == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.predicate(item) {
			out = append(out, item)
		}
	}
	return out
}

func (f *Filtered[T]) Len() int {
	return len(f.Items())
}
