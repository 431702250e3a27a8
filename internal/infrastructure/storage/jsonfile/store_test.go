package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/prefs"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/infrastructure/repository/memory"
)

func TestRosterStore_MissingFile(t *testing.T) {
	store := NewRosterStore(filepath.Join(t.TempDir(), "roster.json"))

	_, found, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("expected no stored roster")
	}
}

func TestRosterStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "roster.json")
	store := NewRosterStore(path)
	seed := memory.SeedSnapshot()

	if err := store.Save(t.Context(), seed); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("expected stored roster")
	}
	if len(loaded.TeamList) != len(seed.TeamList) || len(loaded.PositionList) != len(seed.PositionList) {
		t.Fatalf("unexpected teams/positions: %+v", loaded)
	}
	if len(loaded.PersonList) != len(seed.PersonList) {
		t.Fatalf("unexpected person count: %d", len(loaded.PersonList))
	}
	for i, want := range seed.PersonList {
		got := loaded.PersonList[i]
		if !got.Equal(want) {
			t.Fatalf("person %d differs after reload:\n got=%s\nwant=%s", i, got, want)
		}
	}

	if _, err := roster.FromSnapshot(loaded); err != nil {
		t.Fatalf("reloaded roster must satisfy invariants: %v", err)
	}
}

func TestRosterStore_InvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"teams": [`},
		{
			name: "fit mixed with injury",
			content: `{"teams":[{"name":"U16"}],"positions":[],"persons":[
				{"name":"Amy","phone":"123","email":"a@b.co","address":"x","team":"U16","position":"NONE","injuries":["FIT","ACL"],"tags":[],"captain":false}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "roster.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			_, _, err := NewRosterStore(path).Load(t.Context())
			if !errors.Is(err, roster.ErrInvalidSnapshot) {
				t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
			}
		})
	}
}

func TestRosterStore_PreservesInjuriesAndTags(t *testing.T) {
	injuries, _ := player.NewInjurySet("ACL", "Sprain")
	tags, _ := player.NewTagSet("owes", "Owes")
	src := roster.Snapshot{
		TeamList: memory.SeedTeams(),
		PersonList: []player.Person{{
			Name: "Amy Tan", Phone: "123", Email: "amy@example.com", Address: "1 Road",
			Team: memory.TeamU16, Position: "NONE", Injuries: injuries, Tags: tags,
		}},
	}

	store := NewRosterStore(filepath.Join(t.TempDir(), "roster.json"))
	if err := store.Save(t.Context(), src); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, _, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.PersonList[0]; !got.Injuries.Equal(injuries) || !got.Tags.Equal(tags) {
		t.Fatalf("unexpected injuries/tags: %s", got)
	}
}

func TestPrefsStore_SaveThenLoad(t *testing.T) {
	store := NewPrefsStore(filepath.Join(t.TempDir(), "prefs.json"))

	if _, found, err := store.Load(t.Context()); err != nil || found {
		t.Fatalf("expected nothing stored, found=%v err=%v", found, err)
	}

	x := 42
	want := prefs.UserPrefs{
		GUI:            prefs.GUISettings{WindowWidth: 1024, WindowHeight: 768, X: &x},
		RosterFilePath: "data/club.json",
	}
	if err := store.Save(t.Context(), want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := store.Load(t.Context())
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if !got.GUI.Equal(want.GUI) || got.RosterFilePath != want.RosterFilePath {
		t.Fatalf("unexpected prefs: %+v", got)
	}
	if got.GUI.Y != nil {
		t.Fatalf("unset coordinate must stay nil")
	}
}
