package prefs

import "context"

// Repository describes user prefs persistence needs from use cases.
type Repository interface {
	Load(ctx context.Context) (UserPrefs, bool, error)
	Save(ctx context.Context, prefs UserPrefs) error
}
