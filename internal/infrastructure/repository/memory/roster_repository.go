package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/club-roster/internal/domain/roster"
)

type RosterRepository struct {
	mu       sync.RWMutex
	snapshot roster.Snapshot
	stored   bool
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{}
}

// NewSeededRosterRepository starts with snapshot already stored.
func NewSeededRosterRepository(snapshot roster.Snapshot) *RosterRepository {
	return &RosterRepository{snapshot: copySnapshot(snapshot), stored: true}
}

func (r *RosterRepository) Load(_ context.Context) (roster.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.stored {
		return roster.Snapshot{}, false, nil
	}
	return copySnapshot(r.snapshot), true, nil
}

func (r *RosterRepository) Save(_ context.Context, src roster.ReadOnly) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot = roster.Snapshot{
		TeamList:     src.Teams(),
		PositionList: src.Positions(),
		PersonList:   src.Persons(),
	}
	r.stored = true
	return nil
}

func copySnapshot(s roster.Snapshot) roster.Snapshot {
	return roster.Snapshot{
		TeamList:     s.Teams(),
		PositionList: s.Positions(),
		PersonList:   s.Persons(),
	}
}
