package uniquelist

import (
	crerr "github.com/cockroachdb/errors"
)

var (
	ErrDuplicate = crerr.New("duplicate entity")
	ErrNotFound  = crerr.New("entity not found")
)

// List is an insertion-ordered collection that rejects elements sharing an
// identity with a stored element. Removal and replacement target elements by
// full equality so a stale value cannot clobber a newer one.
type List[T any] struct {
	items    []T
	sameAs   func(a, b T) bool
	equalsTo func(a, b T) bool
}

func New[T any](sameIdentity, equal func(a, b T) bool) *List[T] {
	return &List[T]{
		sameAs:   sameIdentity,
		equalsTo: equal,
	}
}

func (l *List[T]) Contains(candidate T) bool {
	return l.indexOfIdentity(candidate) >= 0
}

func (l *List[T]) Add(item T) error {
	if l.Contains(item) {
		return ErrDuplicate
	}
	l.items = append(l.items, item)
	return nil
}

// Replace swaps target for replacement in place. The replacement may share
// the target's identity but no other element's.
func (l *List[T]) Replace(target, replacement T) error {
	idx := l.indexOfEqual(target)
	if idx < 0 {
		return ErrNotFound
	}
	for i, item := range l.items {
		if i != idx && l.sameAs(item, replacement) {
			return ErrDuplicate
		}
	}
	l.items[idx] = replacement
	return nil
}

func (l *List[T]) Remove(target T) error {
	idx := l.indexOfEqual(target)
	if idx < 0 {
		return ErrNotFound
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return nil
}

// Find returns the first element matching fn in insertion order.
func (l *List[T]) Find(fn func(T) bool) (T, error) {
	for _, item := range l.items {
		if fn(item) {
			return item, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// SetItems replaces the whole content. Nothing changes when items carry a
// duplicate identity.
func (l *List[T]) SetItems(items []T) error {
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if l.sameAs(items[i], items[j]) {
				return ErrDuplicate
			}
		}
	}
	l.items = append(make([]T, 0, len(items)), items...)
	return nil
}

// Items returns a copy of the stored elements in insertion order.
func (l *List[T]) Items() []T {
	out := make([]T, 0, len(l.items))
	out = append(out, l.items...)
	return out
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) indexOfIdentity(candidate T) int {
	for i, item := range l.items {
		if l.sameAs(item, candidate) {
			return i
		}
	}
	return -1
}

func (l *List[T]) indexOfEqual(target T) int {
	for i, item := range l.items {
		if l.equalsTo(item, target) {
			return i
		}
	}
	return -1
}
