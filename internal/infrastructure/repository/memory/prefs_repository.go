package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/club-roster/internal/domain/prefs"
)

type PrefsRepository struct {
	mu     sync.RWMutex
	prefs  prefs.UserPrefs
	stored bool
}

func NewPrefsRepository() *PrefsRepository {
	return &PrefsRepository{}
}

func (r *PrefsRepository) Load(_ context.Context) (prefs.UserPrefs, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs, r.stored, nil
}

func (r *PrefsRepository) Save(_ context.Context, userPrefs prefs.UserPrefs) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs = userPrefs
	r.stored = true
	return nil
}
