package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/riskibarqy/club-roster/internal/domain/prefs"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// PersistenceService loads and stores roster snapshots and user prefs.
// Writes of each kind are serialised.
type PersistenceService struct {
	rosterMu sync.Mutex
	prefsMu  sync.Mutex

	rosterRepo roster.Repository
	prefsRepo  prefs.Repository
	fallback   roster.Snapshot
	logger     *logging.Logger
}

// NewPersistenceService wires the stores. fallback is served when no roster
// has been stored yet.
func NewPersistenceService(
	rosterRepo roster.Repository,
	prefsRepo prefs.Repository,
	fallback roster.Snapshot,
	logger *logging.Logger,
) *PersistenceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PersistenceService{
		rosterRepo: rosterRepo,
		prefsRepo:  prefsRepo,
		fallback:   fallback,
		logger:     logger,
	}
}

// LoadRoster returns the stored roster. A missing store yields the fallback
// sample. Stored content that breaks a roster invariant yields an empty
// roster.
func (s *PersistenceService) LoadRoster(ctx context.Context) (roster.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersistenceService.LoadRoster")
	defer span.End()

	snapshot, found, err := s.rosterRepo.Load(ctx)
	if err != nil {
		if errors.Is(err, roster.ErrInvalidSnapshot) {
			s.logger.WarnContext(ctx, "stored roster is invalid, starting empty", "error", err)
			return roster.Snapshot{}, nil
		}
		return roster.Snapshot{}, fmt.Errorf("%w: load roster: %w", ErrDependencyUnavailable, err)
	}
	if !found {
		s.logger.InfoContext(ctx, "no stored roster, starting with sample data")
		snapshot = s.fallback
	}

	if _, err := roster.FromSnapshot(snapshot); err != nil {
		s.logger.WarnContext(ctx, "stored roster is invalid, starting empty", "error", err)
		return roster.Snapshot{}, nil
	}
	return snapshot, nil
}

func (s *PersistenceService) SaveRoster(ctx context.Context, src roster.ReadOnly) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersistenceService.SaveRoster")
	defer span.End()

	s.rosterMu.Lock()
	defer s.rosterMu.Unlock()

	return s.saveRosterLocked(ctx, src)
}

// SaveCurrentRoster stores the snapshot returned by current. current runs
// while the write lock is held, so the store always ends with the state of
// the last caller to get the lock.
func (s *PersistenceService) SaveCurrentRoster(ctx context.Context, current func(context.Context) roster.Snapshot) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersistenceService.SaveCurrentRoster")
	defer span.End()

	s.rosterMu.Lock()
	defer s.rosterMu.Unlock()

	return s.saveRosterLocked(ctx, current(ctx))
}

func (s *PersistenceService) saveRosterLocked(ctx context.Context, src roster.ReadOnly) error {
	if err := s.rosterRepo.Save(ctx, src); err != nil {
		s.logger.ErrorContext(ctx, "save roster failed", "error", err)
		return fmt.Errorf("%w: save roster: %w", ErrDependencyUnavailable, err)
	}
	return nil
}

// LoadUserPrefs returns stored prefs, or the defaults when none are stored
// or the stored ones are unusable.
func (s *PersistenceService) LoadUserPrefs(ctx context.Context) (prefs.UserPrefs, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersistenceService.LoadUserPrefs")
	defer span.End()

	stored, found, err := s.prefsRepo.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load user prefs failed, using defaults", "error", err)
		return prefs.Default(), nil
	}
	if !found {
		return prefs.Default(), nil
	}
	if err := stored.Validate(); err != nil {
		s.logger.WarnContext(ctx, "stored user prefs are invalid, using defaults", "error", err)
		return prefs.Default(), nil
	}
	return stored, nil
}

func (s *PersistenceService) SaveUserPrefs(ctx context.Context, userPrefs prefs.UserPrefs) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersistenceService.SaveUserPrefs")
	defer span.End()

	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()

	return s.saveUserPrefsLocked(ctx, userPrefs)
}

// SaveCurrentUserPrefs stores the prefs returned by current, read while the
// write lock is held.
func (s *PersistenceService) SaveCurrentUserPrefs(ctx context.Context, current func(context.Context) prefs.UserPrefs) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersistenceService.SaveCurrentUserPrefs")
	defer span.End()

	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()

	return s.saveUserPrefsLocked(ctx, current(ctx))
}

func (s *PersistenceService) saveUserPrefsLocked(ctx context.Context, userPrefs prefs.UserPrefs) error {
	if err := userPrefs.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.prefsRepo.Save(ctx, userPrefs); err != nil {
		s.logger.ErrorContext(ctx, "save user prefs failed", "error", err)
		return fmt.Errorf("%w: save user prefs: %w", ErrDependencyUnavailable, err)
	}
	return nil
}

// Flush stores the roster and the prefs concurrently. Both writes are
// attempted even when one fails.
func (s *PersistenceService) Flush(ctx context.Context, src roster.ReadOnly, userPrefs prefs.UserPrefs) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersistenceService.Flush")
	defer span.End()

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		return s.SaveRoster(ctx, src)
	})
	p.Go(func(ctx context.Context) error {
		return s.SaveUserPrefs(ctx, userPrefs)
	})
	if err := p.Wait(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "roster and user prefs flushed", "persons", len(src.Persons()))
	return nil
}
