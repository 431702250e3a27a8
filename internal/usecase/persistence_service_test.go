package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/riskibarqy/club-roster/internal/domain/prefs"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/domain/team"
	"github.com/riskibarqy/club-roster/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/mock"
)

type mockRosterRepository struct {
	mock.Mock
}

func (m *mockRosterRepository) Load(ctx context.Context) (roster.Snapshot, bool, error) {
	args := m.Called(ctx)
	snapshot, _ := args.Get(0).(roster.Snapshot)
	return snapshot, args.Bool(1), args.Error(2)
}

func (m *mockRosterRepository) Save(ctx context.Context, src roster.ReadOnly) error {
	args := m.Called(ctx, src)
	return args.Error(0)
}

func TestPersistenceService_LoadRoster_FallbackWhenMissing(t *testing.T) {
	svc := NewPersistenceService(memory.NewRosterRepository(), memory.NewPrefsRepository(), memory.SeedSnapshot(), nil)

	snapshot, err := svc.LoadRoster(t.Context())
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if len(snapshot.PersonList) != len(memory.SeedPersons()) {
		t.Fatalf("expected sample roster, got %d persons", len(snapshot.PersonList))
	}
}

func TestPersistenceService_LoadRoster_InvalidStoredYieldsEmpty(t *testing.T) {
	bad := memory.SeedSnapshot()
	bad.TeamList = nil

	svc := NewPersistenceService(memory.NewSeededRosterRepository(bad), memory.NewPrefsRepository(), memory.SeedSnapshot(), nil)

	snapshot, err := svc.LoadRoster(t.Context())
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if !snapshot.IsEmpty() {
		t.Fatalf("expected empty roster for invalid content")
	}
}

func TestPersistenceService_LoadRoster_RepositoryErrors(t *testing.T) {
	tests := []struct {
		name      string
		loadErr   error
		targetErr error
		wantEmpty bool
	}{
		{name: "invalid snapshot", loadErr: roster.ErrInvalidSnapshot, wantEmpty: true},
		{name: "io failure", loadErr: errors.New("disk unplugged"), targetErr: ErrDependencyUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRosterRepository{}
			repo.On("Load", mock.Anything).Return(roster.Snapshot{}, false, tc.loadErr).Once()

			svc := NewPersistenceService(repo, memory.NewPrefsRepository(), memory.SeedSnapshot(), nil)
			snapshot, err := svc.LoadRoster(t.Context())

			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantEmpty && !snapshot.IsEmpty() {
				t.Fatalf("expected empty snapshot")
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPersistenceService_SaveRoster(t *testing.T) {
	repo := memory.NewRosterRepository()
	svc := NewPersistenceService(repo, memory.NewPrefsRepository(), roster.Snapshot{}, nil)

	rosterSvc := newSeededService(t)
	if err := svc.SaveRoster(t.Context(), rosterSvc.Snapshot(t.Context())); err != nil {
		t.Fatalf("save roster: %v", err)
	}

	loaded, err := svc.LoadRoster(t.Context())
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if len(loaded.PersonList) != 5 || len(loaded.TeamList) != 3 {
		t.Fatalf("unexpected saved roster: %+v", loaded)
	}

	failing := &mockRosterRepository{}
	failing.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only filesystem")).Once()
	svc = NewPersistenceService(failing, memory.NewPrefsRepository(), roster.Snapshot{}, nil)
	if err := svc.SaveRoster(t.Context(), loaded); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	failing.AssertExpectations(t)
}

func TestPersistenceService_UserPrefs(t *testing.T) {
	prefsRepo := memory.NewPrefsRepository()
	svc := NewPersistenceService(memory.NewRosterRepository(), prefsRepo, roster.Snapshot{}, nil)
	ctx := t.Context()

	got, err := svc.LoadUserPrefs(ctx)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if got.RosterFilePath != prefs.DefaultRosterFilePath {
		t.Fatalf("expected defaults, got %+v", got)
	}

	custom := prefs.Default()
	custom.RosterFilePath = "club/roster.json"
	if err := svc.SaveUserPrefs(ctx, custom); err != nil {
		t.Fatalf("save prefs: %v", err)
	}
	got, err = svc.LoadUserPrefs(ctx)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if got.RosterFilePath != "club/roster.json" {
		t.Fatalf("unexpected prefs: %+v", got)
	}

	if err := svc.SaveUserPrefs(ctx, prefs.UserPrefs{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if err := prefsRepo.Save(ctx, prefs.UserPrefs{}); err != nil {
		t.Fatalf("seed invalid prefs: %v", err)
	}
	got, err = svc.LoadUserPrefs(ctx)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if got.RosterFilePath != prefs.DefaultRosterFilePath {
		t.Fatalf("invalid stored prefs must fall back to defaults, got %+v", got)
	}
}

func TestPersistenceService_Flush(t *testing.T) {
	rosterRepo := memory.NewRosterRepository()
	prefsRepo := memory.NewPrefsRepository()
	svc := NewPersistenceService(rosterRepo, prefsRepo, roster.Snapshot{}, nil)
	ctx := t.Context()

	custom := prefs.Default()
	custom.RosterFilePath = "club/roster.json"
	if err := svc.Flush(ctx, memory.SeedSnapshot(), custom); err != nil {
		t.Fatalf("flush: %v", err)
	}

	saved, found, err := rosterRepo.Load(ctx)
	if err != nil || !found || len(saved.PersonList) != len(memory.SeedPersons()) {
		t.Fatalf("unexpected stored roster: found=%v err=%v persons=%d", found, err, len(saved.PersonList))
	}
	storedPrefs, found, err := prefsRepo.Load(ctx)
	if err != nil || !found || storedPrefs.RosterFilePath != "club/roster.json" {
		t.Fatalf("unexpected stored prefs: found=%v err=%v prefs=%+v", found, err, storedPrefs)
	}

	failing := &mockRosterRepository{}
	failing.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	svc = NewPersistenceService(failing, prefsRepo, roster.Snapshot{}, nil)
	if err := svc.Flush(ctx, memory.SeedSnapshot(), prefs.Default()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	storedPrefs, _, _ = prefsRepo.Load(ctx)
	if storedPrefs.RosterFilePath != prefs.DefaultRosterFilePath {
		t.Fatalf("prefs must still be written when the roster save fails, got %+v", storedPrefs)
	}
	failing.AssertExpectations(t)
}

func TestPersistenceService_SaveCurrentRoster_LastWriteHoldsLatestState(t *testing.T) {
	rosterSvc := newSeededService(t)
	repo := memory.NewRosterRepository()
	svc := NewPersistenceService(repo, memory.NewPrefsRepository(), roster.Snapshot{}, nil)
	ctx := t.Context()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rosterSvc.AddTeam(ctx, team.New(team.Name(fmt.Sprintf("Squad %d", i)))); err != nil {
				t.Errorf("add team: %v", err)
				return
			}
			if err := svc.SaveCurrentRoster(ctx, rosterSvc.Snapshot); err != nil {
				t.Errorf("save roster: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, found, err := repo.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load stored roster: found=%v err=%v", found, err)
	}
	want := rosterSvc.Snapshot(ctx)
	if len(stored.TeamList) != len(want.TeamList) {
		t.Fatalf("stored roster has %d teams, in-memory roster has %d", len(stored.TeamList), len(want.TeamList))
	}
	for i := range want.TeamList {
		if !stored.TeamList[i].Equal(want.TeamList[i]) {
			t.Fatalf("stored team %d = %s, want %s", i, stored.TeamList[i].Name, want.TeamList[i].Name)
		}
	}
}

func TestPersistenceService_SaveCurrentUserPrefs(t *testing.T) {
	prefsRepo := memory.NewPrefsRepository()
	svc := NewPersistenceService(memory.NewRosterRepository(), prefsRepo, roster.Snapshot{}, nil)
	ctx := t.Context()

	current := prefs.Default()
	current.RosterFilePath = "latest/roster.json"
	if err := svc.SaveCurrentUserPrefs(ctx, func(context.Context) prefs.UserPrefs { return current }); err != nil {
		t.Fatalf("save prefs: %v", err)
	}
	stored, found, err := prefsRepo.Load(ctx)
	if err != nil || !found || stored.RosterFilePath != "latest/roster.json" {
		t.Fatalf("unexpected stored prefs: found=%v err=%v prefs=%+v", found, err, stored)
	}
}
