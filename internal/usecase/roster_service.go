package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/club-roster/internal/domain/filter"
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/prefs"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/domain/team"
	"github.com/riskibarqy/club-roster/internal/platform/logging"
	"github.com/riskibarqy/club-roster/internal/platform/view"
)

// EditPersonInput carries the fields to change on a player. Nil fields keep
// their current value.
type EditPersonInput struct {
	Name    *player.Name
	Phone   *player.Phone
	Email   *player.Email
	Address *player.Address
	Team    *team.Name
	Tags    *[]player.Tag
}

func (in EditPersonInput) IsEmpty() bool {
	return in.Name == nil && in.Phone == nil && in.Email == nil &&
		in.Address == nil && in.Team == nil && in.Tags == nil
}

// RosterService is the single entry point for reading and changing the
// roster. It owns the aggregate, one filtered view per entity kind and the
// user prefs. A single mutex serialises every call.
type RosterService struct {
	mu        sync.Mutex
	roster    *roster.Roster
	persons   *view.Filtered[player.Person]
	teams     *view.Filtered[team.Team]
	positions *view.Filtered[position.Position]
	prefs     prefs.UserPrefs
	logger    *logging.Logger
}

func NewRosterService(initial roster.ReadOnly, userPrefs prefs.UserPrefs, logger *logging.Logger) (*RosterService, error) {
	if logger == nil {
		logger = logging.Default()
	}

	r := roster.New()
	if initial != nil {
		if err := r.ResetData(initial); err != nil {
			return nil, classify(err)
		}
	}
	if err := userPrefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s := &RosterService{
		roster: r,
		prefs:  userPrefs,
		logger: logger,
	}
	s.persons = view.NewFiltered(s.roster.Persons)
	s.teams = view.NewFiltered(s.roster.Teams)
	s.positions = view.NewFiltered(s.roster.Positions)

	return s, nil
}

// Snapshot returns a detached copy of the whole roster.
func (s *RosterService) Snapshot(ctx context.Context) roster.Snapshot {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.Snapshot")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.roster.Snapshot()
}

// ResetRoster replaces the roster with src after validating it.
func (s *RosterService) ResetRoster(ctx context.Context, src roster.ReadOnly) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ResetRoster")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.ResetData(src); err != nil {
		s.logger.WarnContext(ctx, "reset roster rejected", "error", err)
		return classify(err)
	}
	s.showAllLocked()
	s.logger.InfoContext(ctx, "roster reset",
		"persons", len(src.Persons()),
		"teams", len(src.Teams()),
		"positions", len(src.Positions()),
	)
	return nil
}

func (s *RosterService) ClearRoster(ctx context.Context) error {
	return s.ResetRoster(ctx, roster.Snapshot{})
}

func (s *RosterService) AddPerson(ctx context.Context, p player.Person) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPerson")
	defer span.End()

	if err := p.Validate(); err != nil {
		return classify(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.AddPerson(p); err != nil {
		s.logger.WarnContext(ctx, "add person rejected", "person", p.Name, "error", err)
		return classify(err)
	}
	s.persons.SetPredicate(nil)
	s.logger.InfoContext(ctx, "person added", "person", p.Name, "team", p.Team)
	return nil
}

// SetPerson replaces target with edited.
func (s *RosterService) SetPerson(ctx context.Context, target, edited player.Person) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetPerson")
	defer span.End()

	if err := edited.Validate(); err != nil {
		return classify(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.SetPerson(target, edited); err != nil {
		s.logger.WarnContext(ctx, "set person rejected", "person", target.Name, "error", err)
		return classify(err)
	}
	return nil
}

// EditPerson applies in to the named player and returns the stored result.
func (s *RosterService) EditPerson(ctx context.Context, name player.Name, in EditPersonInput) (player.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.EditPerson")
	defer span.End()

	if in.IsEmpty() {
		return player.Person{}, fmt.Errorf("%w: at least one field to edit must be provided", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.roster.FindPersonByName(name)
	if err != nil {
		return player.Person{}, classify(err)
	}

	edited, err := applyEdit(target, in)
	if err != nil {
		return player.Person{}, classify(err)
	}
	if err := edited.Validate(); err != nil {
		return player.Person{}, classify(err)
	}
	if err := s.roster.SetPerson(target, edited); err != nil {
		s.logger.WarnContext(ctx, "edit person rejected", "person", name, "error", err)
		return player.Person{}, classify(err)
	}
	s.persons.SetPredicate(nil)

	stored, err := s.roster.FindPersonByName(edited.Name)
	if err != nil {
		return player.Person{}, classify(err)
	}
	s.logger.InfoContext(ctx, "person edited", "person", name, "edited", stored.Name)
	return stored, nil
}

func (s *RosterService) DeletePerson(ctx context.Context, name player.Name) (player.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeletePerson")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.roster.FindPersonByName(name)
	if err != nil {
		return player.Person{}, classify(err)
	}
	if err := s.roster.RemovePerson(target); err != nil {
		return player.Person{}, classify(err)
	}
	s.logger.InfoContext(ctx, "person deleted", "person", target.Name)
	return target, nil
}

func (s *RosterService) HasPerson(ctx context.Context, name player.Name) bool {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.HasPerson")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.roster.HasPerson(name)
}

func (s *RosterService) FindPerson(ctx context.Context, name player.Name) (player.Person, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.FindPerson")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.roster.FindPersonByName(name)
	if err != nil {
		return player.Person{}, classify(err)
	}
	return p, nil
}

func (s *RosterService) AddTeam(ctx context.Context, t team.Team) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddTeam")
	defer span.End()

	if err := t.Validate(); err != nil {
		return classify(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.AddTeam(t); err != nil {
		s.logger.WarnContext(ctx, "add team rejected", "team", t.Name, "error", err)
		return classify(err)
	}
	s.teams.SetPredicate(nil)
	s.logger.InfoContext(ctx, "team added", "team", t.Name)
	return nil
}

// DeleteTeam removes an empty team.
func (s *RosterService) DeleteTeam(ctx context.Context, name team.Name) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeleteTeam")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.DeleteTeam(name); err != nil {
		s.logger.WarnContext(ctx, "delete team rejected", "team", name, "error", err)
		return classify(err)
	}
	s.logger.InfoContext(ctx, "team deleted", "team", name)
	return nil
}

func (s *RosterService) HasTeam(ctx context.Context, name team.Name) bool {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.HasTeam")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.roster.HasTeam(name)
}

// TeamMembers lists the players of a stored team.
func (s *RosterService) TeamMembers(ctx context.Context, name team.Name) ([]player.Person, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.TeamMembers")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.roster.FindTeamByName(name); err != nil {
		return nil, classify(err)
	}
	return s.roster.TeamMembers(name), nil
}

func (s *RosterService) AddPosition(ctx context.Context, ps position.Position) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPosition")
	defer span.End()

	if err := ps.Validate(); err != nil {
		return classify(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.AddPosition(ps); err != nil {
		s.logger.WarnContext(ctx, "add position rejected", "position", ps.Name, "error", err)
		return classify(err)
	}
	s.positions.SetPredicate(nil)
	s.logger.InfoContext(ctx, "position added", "position", ps.Name)
	return nil
}

// DeletePosition removes a position no player holds.
func (s *RosterService) DeletePosition(ctx context.Context, name position.Name) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeletePosition")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.DeletePosition(name); err != nil {
		s.logger.WarnContext(ctx, "delete position rejected", "position", name, "error", err)
		return classify(err)
	}
	s.logger.InfoContext(ctx, "position deleted", "position", name)
	return nil
}

func (s *RosterService) HasPosition(ctx context.Context, name position.Name) bool {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.HasPosition")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.roster.HasPosition(name)
}

// AssignCaptain makes the named player captain, demoting the team's
// previous captain in the same step.
func (s *RosterService) AssignCaptain(ctx context.Context, name player.Name) (player.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AssignCaptain")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var previous player.Name
	if target, err := s.roster.FindPersonByName(name); err == nil {
		if current, ok := s.roster.CaptainOf(target.Team); ok {
			previous = current.Name
		}
	}

	p, err := s.roster.AssignCaptain(name)
	if err != nil {
		s.logger.WarnContext(ctx, "assign captain rejected", "person", name, "error", err)
		return player.Person{}, classify(err)
	}
	s.logger.InfoContext(ctx, "captain assigned", "person", p.Name, "team", p.Team, "previous", previous)
	return p, nil
}

func (s *RosterService) StripCaptain(ctx context.Context, name player.Name) (player.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.StripCaptain")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.roster.StripCaptain(name)
	if err != nil {
		s.logger.WarnContext(ctx, "strip captain rejected", "person", name, "error", err)
		return player.Person{}, classify(err)
	}
	s.logger.InfoContext(ctx, "captain stripped", "person", p.Name, "team", p.Team)
	return p, nil
}

// AssignInjury records injury on the named player. FIT is rejected here; use
// ClearInjuries to mark a player fit again.
func (s *RosterService) AssignInjury(ctx context.Context, name player.Name, injury player.Injury) (player.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AssignInjury")
	defer span.End()

	if !injury.IsFit() {
		if _, err := player.NewInjury(string(injury)); err != nil {
			return player.Person{}, classify(err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.roster.AssignInjury(name, injury)
	if err != nil {
		s.logger.WarnContext(ctx, "assign injury rejected", "person", name, "injury", injury, "error", err)
		return player.Person{}, classify(err)
	}
	s.logger.InfoContext(ctx, "injury assigned", "person", p.Name, "injury", injury)
	return p, nil
}

func (s *RosterService) ClearInjuries(ctx context.Context, name player.Name) (player.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ClearInjuries")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.roster.ClearInjuries(name)
	if err != nil {
		return player.Person{}, classify(err)
	}
	s.logger.InfoContext(ctx, "injuries cleared", "person", p.Name)
	return p, nil
}

func (s *RosterService) AssignPosition(ctx context.Context, name player.Name, pos position.Name) (player.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AssignPosition")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.roster.AssignPosition(name, pos)
	if err != nil {
		s.logger.WarnContext(ctx, "assign position rejected", "person", name, "position", pos, "error", err)
		return player.Person{}, classify(err)
	}
	s.logger.InfoContext(ctx, "position assigned", "person", p.Name, "position", p.PositionName())
	return p, nil
}

// UpdateFilteredPersons installs pred on the player view, replacing the
// previous predicate. A nil pred shows every player.
func (s *RosterService) UpdateFilteredPersons(ctx context.Context, pred filter.Predicate[player.Person]) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateFilteredPersons")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.persons.SetPredicate(pred)
}

func (s *RosterService) UpdateFilteredTeams(ctx context.Context, pred filter.Predicate[team.Team]) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateFilteredTeams")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams.SetPredicate(pred)
}

func (s *RosterService) UpdateFilteredPositions(ctx context.Context, pred filter.Predicate[position.Position]) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateFilteredPositions")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions.SetPredicate(pred)
}

func (s *RosterService) FilteredPersons(ctx context.Context) []player.Person {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.FilteredPersons")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persons.Items()
}

func (s *RosterService) FilteredTeams(ctx context.Context) []team.Team {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.FilteredTeams")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.teams.Items()
}

func (s *RosterService) FilteredPositions(ctx context.Context) []position.Position {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.FilteredPositions")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.positions.Items()
}

// FilterPersons narrows the player view to the conjunction of criteria and
// returns the result.
func (s *RosterService) FilterPersons(ctx context.Context, criteria ...filter.Criterion) ([]player.Person, error) {
	combined, err := filter.NewCombined(criteria...)
	if err != nil {
		return nil, classify(err)
	}
	return s.applyPersonFilter(ctx, "usecase.RosterService.FilterPersons", combined.Predicate()), nil
}

// FindPersons narrows the player view to names holding any keyword.
func (s *RosterService) FindPersons(ctx context.Context, keywords []string) ([]player.Person, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: at least one keyword is required", ErrInvalidInput)
	}
	return s.applyPersonFilter(ctx, "usecase.RosterService.FindPersons", filter.NameContainsKeywords(keywords)), nil
}

func (s *RosterService) ListCaptains(ctx context.Context) []player.Person {
	return s.applyPersonFilter(ctx, "usecase.RosterService.ListCaptains", filter.IsCaptain())
}

func (s *RosterService) ListInjured(ctx context.Context) []player.Person {
	return s.applyPersonFilter(ctx, "usecase.RosterService.ListInjured", filter.IsInjured())
}

// ListAll clears the predicate of every view and returns every player.
func (s *RosterService) ListAll(ctx context.Context) []player.Person {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.ListAll")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.showAllLocked()
	return s.persons.Items()
}

// FilterTeams installs pred on the team view and returns the result.
func (s *RosterService) FilterTeams(ctx context.Context, pred filter.Predicate[team.Team]) []team.Team {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.FilterTeams")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams.SetPredicate(pred)
	return s.teams.Items()
}

// FilterPositions installs pred on the position view and returns the result.
func (s *RosterService) FilterPositions(ctx context.Context, pred filter.Predicate[position.Position]) []position.Position {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.FilterPositions")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions.SetPredicate(pred)
	return s.positions.Items()
}

// applyPersonFilter installs pred and reads the view under one lock, so the
// result always reflects pred even with concurrent callers.
func (s *RosterService) applyPersonFilter(ctx context.Context, spanName string, pred filter.Predicate[player.Person]) []player.Person {
	_, span := startUsecaseSpan(ctx, spanName)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.persons.SetPredicate(pred)
	return s.persons.Items()
}

// ShowAll clears the predicate of every view.
func (s *RosterService) ShowAll(ctx context.Context) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.ShowAll")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.showAllLocked()
}

func (s *RosterService) UserPrefs(ctx context.Context) prefs.UserPrefs {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.UserPrefs")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.prefs
}

func (s *RosterService) SetUserPrefs(ctx context.Context, userPrefs prefs.UserPrefs) error {
	return s.updateUserPrefs(ctx, "usecase.RosterService.SetUserPrefs", func(prefs.UserPrefs) prefs.UserPrefs {
		return userPrefs
	})
}

func (s *RosterService) GUISettings(ctx context.Context) prefs.GUISettings {
	return s.UserPrefs(ctx).GUI
}

func (s *RosterService) SetGUISettings(ctx context.Context, settings prefs.GUISettings) error {
	return s.updateUserPrefs(ctx, "usecase.RosterService.SetGUISettings", func(current prefs.UserPrefs) prefs.UserPrefs {
		current.GUI = settings
		return current
	})
}

func (s *RosterService) RosterFilePath(ctx context.Context) string {
	return s.UserPrefs(ctx).RosterFilePath
}

func (s *RosterService) SetRosterFilePath(ctx context.Context, path string) error {
	return s.updateUserPrefs(ctx, "usecase.RosterService.SetRosterFilePath", func(current prefs.UserPrefs) prefs.UserPrefs {
		current.RosterFilePath = path
		return current
	})
}

func (s *RosterService) updateUserPrefs(ctx context.Context, spanName string, update func(prefs.UserPrefs) prefs.UserPrefs) error {
	_, span := startUsecaseSpan(ctx, spanName)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := update(s.prefs)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.prefs = next
	return nil
}

func (s *RosterService) showAllLocked() {
	s.persons.SetPredicate(nil)
	s.teams.SetPredicate(nil)
	s.positions.SetPredicate(nil)
}

func applyEdit(p player.Person, in EditPersonInput) (player.Person, error) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Team != nil {
		p = p.WithTeam(*in.Team)
	}
	if in.Tags != nil {
		tags, err := player.NewTagSet(*in.Tags...)
		if err != nil {
			return player.Person{}, err
		}
		p.Tags = tags
	}
	return p, nil
}
