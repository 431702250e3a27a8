package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/club-roster/internal/domain/filter"
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/prefs"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/domain/team"
	"github.com/riskibarqy/club-roster/internal/infrastructure/repository/memory"
)

func newSeededService(t *testing.T) *RosterService {
	t.Helper()

	svc, err := NewRosterService(memory.SeedSnapshot(), prefs.Default(), nil)
	if err != nil {
		t.Fatalf("new roster service: %v", err)
	}
	return svc
}

func personNames(items []player.Person) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, string(item.Name))
	}
	return out
}

func TestRosterService_NewRejectsInvalidSnapshot(t *testing.T) {
	src := memory.SeedSnapshot()
	src.TeamList = src.TeamList[:1]

	_, err := NewRosterService(src, prefs.Default(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, roster.ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot in chain, got %v", err)
	}
}

func TestRosterService_AddPerson(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	newcomer := player.Person{
		Name:     "Roy Balakrishnan",
		Phone:    "92624417",
		Email:    "royb@example.com",
		Address:  "Blk 45 Aljunied Street 85, #11-31",
		Team:     "u16",
		Position: "st",
	}
	if err := svc.AddPerson(ctx, newcomer); err != nil {
		t.Fatalf("add person: %v", err)
	}

	stored, err := svc.FindPerson(ctx, "roy balakrishnan")
	if err != nil {
		t.Fatalf("find person: %v", err)
	}
	if stored.Team != memory.TeamU16 || stored.Position != "ST" {
		t.Fatalf("expected references normalised, got team=%s position=%s", stored.Team, stored.Position)
	}

	err = svc.AddPerson(ctx, newcomer)
	if !errors.Is(err, ErrConflict) || !errors.Is(err, roster.ErrDuplicatePerson) {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}

	orphan := newcomer
	orphan.Name = "Orphan Player"
	orphan.Team = "U99"
	if err := svc.AddPerson(ctx, orphan); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing team, got %v", err)
	}

	invalid := newcomer
	invalid.Name = "Bad*Name"
	if err := svc.AddPerson(ctx, invalid); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_EditPerson(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	newName := player.Name("Bernice Tan")
	newTeam := team.Name("U16")
	edited, err := svc.EditPerson(ctx, "Bernice Yu", EditPersonInput{Name: &newName, Team: &newTeam})
	if err != nil {
		t.Fatalf("edit person: %v", err)
	}
	if edited.Name != newName || edited.Team != memory.TeamU16 {
		t.Fatalf("unexpected edited person: %+v", edited)
	}
	if svc.HasPerson(ctx, "Bernice Yu") {
		t.Fatalf("old name must be gone")
	}

	t.Run("captain moved onto captained team loses captaincy", func(t *testing.T) {
		edited, err := svc.EditPerson(ctx, "Alex Yeoh", EditPersonInput{Team: &newTeam})
		if err != nil {
			t.Fatalf("edit person: %v", err)
		}
		if edited.Captain {
			t.Fatalf("expected captaincy dropped, U16 already has a captain")
		}
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		taken := player.Name("david li")
		_, err := svc.EditPerson(ctx, "Irfan Ibrahim", EditPersonInput{Name: &taken})
		if !errors.Is(err, roster.ErrDuplicatePerson) {
			t.Fatalf("expected ErrDuplicatePerson, got %v", err)
		}
	})

	t.Run("no fields", func(t *testing.T) {
		if _, err := svc.EditPerson(ctx, "Irfan Ibrahim", EditPersonInput{}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown person", func(t *testing.T) {
		if _, err := svc.EditPerson(ctx, "Nobody", EditPersonInput{Team: &newTeam}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRosterService_TeamAndPositionGuards(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	if err := svc.DeleteTeam(ctx, memory.TeamU12Red); !errors.Is(err, roster.ErrTeamNotEmpty) {
		t.Fatalf("expected ErrTeamNotEmpty, got %v", err)
	}
	if err := svc.DeletePosition(ctx, "GK"); !errors.Is(err, roster.ErrPositionAssigned) {
		t.Fatalf("expected ErrPositionAssigned, got %v", err)
	}
	if err := svc.DeletePosition(ctx, "CB"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.AddPosition(ctx, position.New("none")); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected NONE to be reserved, got %v", err)
	}

	if _, err := svc.DeletePerson(ctx, "Charlotte Oliveiro"); err != nil {
		t.Fatalf("delete person: %v", err)
	}
	if err := svc.DeleteTeam(ctx, "u12 red"); err != nil {
		t.Fatalf("delete emptied team: %v", err)
	}
	if svc.HasTeam(ctx, memory.TeamU12Red) {
		t.Fatalf("team must be gone")
	}

	if err := svc.AddTeam(ctx, team.New("U12 BLUE")); !errors.Is(err, roster.ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}
	members, err := svc.TeamMembers(ctx, memory.TeamU12Blue)
	if err != nil {
		t.Fatalf("team members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("unexpected member count: %d", len(members))
	}
}

func TestRosterService_CaptainProtocol(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	promoted, err := svc.AssignCaptain(ctx, "Bernice Yu")
	if err != nil {
		t.Fatalf("assign captain: %v", err)
	}
	if !promoted.Captain {
		t.Fatalf("expected promoted captain")
	}
	previous, err := svc.FindPerson(ctx, "Alex Yeoh")
	if err != nil {
		t.Fatalf("find previous captain: %v", err)
	}
	if previous.Captain {
		t.Fatalf("previous captain must be stripped")
	}

	if _, err := svc.AssignCaptain(ctx, "Bernice Yu"); !errors.Is(err, roster.ErrIllegalCaptainTransition) {
		t.Fatalf("expected ErrIllegalCaptainTransition, got %v", err)
	}
	if _, err := svc.StripCaptain(ctx, "Alex Yeoh"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict stripping non-captain, got %v", err)
	}
	stripped, err := svc.StripCaptain(ctx, "Bernice Yu")
	if err != nil {
		t.Fatalf("strip captain: %v", err)
	}
	if stripped.Captain {
		t.Fatalf("expected captaincy removed")
	}
}

func TestRosterService_InjuryProtocol(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	injured, err := svc.AssignInjury(ctx, "Irfan Ibrahim", "ACL")
	if err != nil {
		t.Fatalf("assign injury: %v", err)
	}
	if injured.Injuries.Contains(player.InjuryFit) {
		t.Fatalf("FIT must be replaced by the first injury")
	}

	if _, err := svc.AssignInjury(ctx, "Irfan Ibrahim", "acl"); !errors.Is(err, player.ErrDuplicateInjury) {
		t.Fatalf("expected ErrDuplicateInjury, got %v", err)
	}
	if _, err := svc.AssignInjury(ctx, "Irfan Ibrahim", "fit"); !errors.Is(err, player.ErrIllegalInjuryAssignment) {
		t.Fatalf("expected ErrIllegalInjuryAssignment, got %v", err)
	}
	if _, err := svc.AssignInjury(ctx, "Irfan Ibrahim", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank injury, got %v", err)
	}

	cleared, err := svc.ClearInjuries(ctx, "Irfan Ibrahim")
	if err != nil {
		t.Fatalf("clear injuries: %v", err)
	}
	if cleared.IsInjured() {
		t.Fatalf("expected FIT after clear")
	}
	if _, err := svc.ClearInjuries(ctx, "Irfan Ibrahim"); err != nil {
		t.Fatalf("clearing a fit player must succeed: %v", err)
	}
}

func TestRosterService_AssignPosition(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	moved, err := svc.AssignPosition(ctx, "Irfan Ibrahim", "lw")
	if err != nil {
		t.Fatalf("assign position: %v", err)
	}
	if moved.Position != "LW" {
		t.Fatalf("expected stored spelling, got %s", moved.Position)
	}
	if _, err := svc.AssignPosition(ctx, "Irfan Ibrahim", "CB"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	cleared, err := svc.AssignPosition(ctx, "Irfan Ibrahim", position.NameNone)
	if err != nil {
		t.Fatalf("assign NONE: %v", err)
	}
	if !cleared.PositionName().IsNone() {
		t.Fatalf("expected NONE, got %s", cleared.PositionName())
	}
}

func TestRosterService_FilteredViews(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	got, err := svc.FilterPersons(ctx,
		filter.Criterion{Kind: filter.KindTeam, Query: "blue"},
		filter.Criterion{Kind: filter.KindPosition, Query: "LW"},
	)
	if err != nil {
		t.Fatalf("filter persons: %v", err)
	}
	if names := personNames(got); len(names) != 1 || names[0] != "Bernice Yu" {
		t.Fatalf("unexpected filter result: %v", names)
	}

	again, err := svc.FilterPersons(ctx,
		filter.Criterion{Kind: filter.KindTeam, Query: "blue"},
		filter.Criterion{Kind: filter.KindPosition, Query: "LW"},
	)
	if err != nil {
		t.Fatalf("filter persons again: %v", err)
	}
	if len(again) != len(got) {
		t.Fatalf("filtering twice must be idempotent")
	}

	if _, err := svc.FilterPersons(ctx); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty criteria, got %v", err)
	}

	captains := personNames(svc.ListCaptains(ctx))
	if len(captains) != 2 {
		t.Fatalf("unexpected captains: %v", captains)
	}
	injured := personNames(svc.ListInjured(ctx))
	if len(injured) != 1 || injured[0] != "Charlotte Oliveiro" {
		t.Fatalf("unexpected injured: %v", injured)
	}

	found, err := svc.FindPersons(ctx, []string{"li", "yeoh"})
	if err != nil {
		t.Fatalf("find persons: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("unexpected keyword matches: %v", personNames(found))
	}

	t.Run("view follows roster changes", func(t *testing.T) {
		svc.ListInjured(ctx)
		if _, err := svc.AssignInjury(ctx, "David Li", "Sprain"); err != nil {
			t.Fatalf("assign injury: %v", err)
		}
		if got := svc.FilteredPersons(ctx); len(got) != 2 {
			t.Fatalf("expected view to pick up the new injury, got %v", personNames(got))
		}
	})

	t.Run("add person resets predicate", func(t *testing.T) {
		svc.ListCaptains(ctx)
		if err := svc.AddPerson(ctx, player.Person{
			Name: "Esther Ng", Phone: "98765432", Email: "esther@example.com",
			Address: "Blk 2 Clementi Ave 3", Team: memory.TeamU16,
		}); err != nil {
			t.Fatalf("add person: %v", err)
		}
		if got := svc.FilteredPersons(ctx); len(got) != 6 {
			t.Fatalf("expected every player visible, got %d", len(got))
		}
	})

	svc.UpdateFilteredTeams(ctx, filter.TeamNameContainsKeywords([]string{"u12"}))
	if got := svc.FilteredTeams(ctx); len(got) != 2 {
		t.Fatalf("unexpected team view: %v", got)
	}
	svc.UpdateFilteredPositions(ctx, filter.PositionNameContainsKeywords([]string{"gk"}))
	if got := svc.FilteredPositions(ctx); len(got) != 1 {
		t.Fatalf("unexpected position view: %v", got)
	}
	svc.ShowAll(ctx)
	if len(svc.FilteredTeams(ctx)) != 3 || len(svc.FilteredPositions(ctx)) != 3 {
		t.Fatalf("ShowAll must clear every predicate")
	}
}

func TestRosterService_ResetAndClear(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	bad := memory.SeedSnapshot()
	bad.PositionList = nil
	if err := svc.ResetRoster(ctx, bad); !errors.Is(err, roster.ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	if got := len(svc.Snapshot(ctx).PersonList); got != 5 {
		t.Fatalf("roster must be untouched after a rejected reset, got %d persons", got)
	}

	if err := svc.ClearRoster(ctx); err != nil {
		t.Fatalf("clear roster: %v", err)
	}
	if !svc.Snapshot(ctx).IsEmpty() {
		t.Fatalf("expected empty roster")
	}
}

func TestRosterService_UserPrefs(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	x, y := 10, 20
	if err := svc.SetGUISettings(ctx, prefs.GUISettings{WindowWidth: 800, WindowHeight: 640, X: &x, Y: &y}); err != nil {
		t.Fatalf("set gui settings: %v", err)
	}
	if got := svc.GUISettings(ctx); got.WindowWidth != 800 || *got.X != 10 {
		t.Fatalf("unexpected gui settings: %+v", got)
	}
	if err := svc.SetRosterFilePath(ctx, "other/roster.json"); err != nil {
		t.Fatalf("set roster file path: %v", err)
	}
	if got := svc.RosterFilePath(ctx); got != "other/roster.json" {
		t.Fatalf("unexpected roster path: %s", got)
	}
	if err := svc.SetRosterFilePath(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_ConcurrentListingsMatchTheirPredicate(t *testing.T) {
	svc := newSeededService(t)
	ctx := t.Context()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for _, p := range svc.ListCaptains(ctx) {
				if !p.Captain {
					t.Errorf("captains listing returned non-captain %s", p.Name)
				}
			}
		}()
		go func() {
			defer wg.Done()
			for _, p := range svc.ListInjured(ctx) {
				if !p.IsInjured() {
					t.Errorf("injured listing returned fit player %s", p.Name)
				}
			}
		}()
	}
	wg.Wait()

	if got := svc.ListAll(ctx); len(got) != 5 {
		t.Fatalf("expected every player after ListAll, got %v", personNames(got))
	}
	if got := svc.FilterTeams(ctx, filter.TeamNameContainsKeywords([]string{"u12"})); len(got) != 2 {
		t.Fatalf("unexpected team filter result: %v", got)
	}
	if got := svc.FilterPositions(ctx, filter.PositionNameContainsKeywords([]string{"gk"})); len(got) != 1 {
		t.Fatalf("unexpected position filter result: %v", got)
	}
}
