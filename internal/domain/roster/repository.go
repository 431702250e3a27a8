package roster

import "context"

// Repository persists whole-roster snapshots.
type Repository interface {
	// Load returns the stored snapshot. The bool is false when nothing has
	// been stored yet.
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, src ReadOnly) error
}
