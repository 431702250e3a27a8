package roster

import (
	"errors"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/team"
	"github.com/riskibarqy/club-roster/internal/platform/uniquelist"
)

// ReadOnly exposes the ordered contents of a roster.
type ReadOnly interface {
	Persons() []player.Person
	Teams() []team.Team
	Positions() []position.Position
}

// Roster owns every player, team and position and enforces the invariants
// between them:
//   - names are unique per kind, ignoring case
//   - every player references a stored team, and a stored position or NONE
//   - a team has at most one captain
//   - teams and positions in use cannot be deleted
//
// A failed operation leaves the roster unchanged. Roster is not safe for
// concurrent use; callers serialise access.
type Roster struct {
	persons   *uniquelist.List[player.Person]
	teams     *uniquelist.List[team.Team]
	positions *uniquelist.List[position.Position]
}

func New() *Roster {
	return &Roster{
		persons:   uniquelist.New(player.Person.SameIdentity, player.Person.Equal),
		teams:     uniquelist.New(team.Team.SameIdentity, team.Team.Equal),
		positions: uniquelist.New(position.Position.SameIdentity, position.Position.Equal),
	}
}

// FromSnapshot builds a roster from src. Teams and positions are loaded
// before the players that reference them, and the result is checked against
// every invariant before it is returned.
func FromSnapshot(src ReadOnly) (*Roster, error) {
	r := New()

	teams := src.Teams()
	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
	}
	if err := r.teams.SetItems(teams); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, crerr.Wrap(ErrDuplicateTeam, "teams"))
	}

	positions := src.Positions()
	for _, ps := range positions {
		if err := ps.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		if ps.Name.IsNone() {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, crerr.Wrapf(ErrDuplicatePosition, "position=%s is reserved", position.NameNone))
		}
	}
	if err := r.positions.SetItems(positions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, crerr.Wrap(ErrDuplicatePosition, "positions"))
	}

	persons := src.Persons()
	resolved := make([]player.Person, 0, len(persons))
	for _, p := range persons {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: person=%s: %w", ErrInvalidSnapshot, p.Name, err)
		}
		next, err := r.resolveReferences(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		resolved = append(resolved, next)
	}
	if err := r.persons.SetItems(resolved); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, crerr.Wrap(ErrDuplicatePerson, "persons"))
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return r, nil
}

// ResetData replaces all content with src. The roster is untouched when src
// violates an invariant.
func (r *Roster) ResetData(src ReadOnly) error {
	next, err := FromSnapshot(src)
	if err != nil {
		return err
	}
	*r = *next
	return nil
}

func (r *Roster) Persons() []player.Person {
	return r.persons.Items()
}

func (r *Roster) Teams() []team.Team {
	return r.teams.Items()
}

func (r *Roster) Positions() []position.Position {
	return r.positions.Items()
}

func (r *Roster) Snapshot() Snapshot {
	return Snapshot{
		TeamList:     r.Teams(),
		PositionList: r.Positions(),
		PersonList:   r.Persons(),
	}
}

func (r *Roster) HasPerson(name player.Name) bool {
	return r.persons.Contains(player.Person{Name: name})
}

func (r *Roster) HasTeam(name team.Name) bool {
	return r.teams.Contains(team.New(name))
}

// HasPosition reports whether name is stored. NONE is never stored.
func (r *Roster) HasPosition(name position.Name) bool {
	return r.positions.Contains(position.New(name))
}

func (r *Roster) FindPersonByName(name player.Name) (player.Person, error) {
	p, err := r.persons.Find(func(candidate player.Person) bool {
		return candidate.Name.SameAs(name)
	})
	if err != nil {
		return player.Person{}, crerr.Wrapf(ErrPersonNotFound, "person=%s", name)
	}
	return p, nil
}

func (r *Roster) FindTeamByName(name team.Name) (team.Team, error) {
	t, err := r.teams.Find(func(candidate team.Team) bool {
		return candidate.Name.SameAs(name)
	})
	if err != nil {
		return team.Team{}, crerr.Wrapf(ErrTeamNotFound, "team=%s", name)
	}
	return t, nil
}

func (r *Roster) FindPositionByName(name position.Name) (position.Position, error) {
	ps, err := r.positions.Find(func(candidate position.Position) bool {
		return candidate.Name.SameAs(name)
	})
	if err != nil {
		return position.Position{}, crerr.Wrapf(ErrPositionNotFound, "position=%s", name)
	}
	return ps, nil
}

// AddPerson stores p after checking its name is free and its team and
// position exist. Team and position names are normalised to the stored
// spelling.
func (r *Roster) AddPerson(p player.Person) error {
	if r.persons.Contains(p) {
		return crerr.Wrapf(ErrDuplicatePerson, "person=%s", p.Name)
	}
	resolved, err := r.resolveReferences(p)
	if err != nil {
		return err
	}
	if resolved.Captain {
		if current, ok := r.CaptainOf(resolved.Team); ok {
			return crerr.Wrapf(ErrIllegalCaptainTransition, "team=%s already captained by %s", resolved.Team, current.Name)
		}
	}
	if err := r.persons.Add(resolved); err != nil {
		return crerr.Wrapf(ErrDuplicatePerson, "person=%s", p.Name)
	}
	return nil
}

// SetPerson replaces target with edited. When edited keeps the captaincy on
// a team that already has a different captain, the captaincy is dropped.
func (r *Roster) SetPerson(target, edited player.Person) error {
	resolved, err := r.resolveReferences(edited)
	if err != nil {
		return err
	}
	if resolved.Captain {
		if current, ok := r.CaptainOf(resolved.Team); ok && !current.SameIdentity(target) {
			resolved.Captain = false
		}
	}

	if err := r.persons.Replace(target, resolved); err != nil {
		if errors.Is(err, uniquelist.ErrDuplicate) {
			return crerr.Wrapf(ErrDuplicatePerson, "person=%s", edited.Name)
		}
		return crerr.Wrapf(ErrPersonNotFound, "person=%s", target.Name)
	}
	return nil
}

func (r *Roster) RemovePerson(p player.Person) error {
	if err := r.persons.Remove(p); err != nil {
		return crerr.Wrapf(ErrPersonNotFound, "person=%s", p.Name)
	}
	return nil
}

func (r *Roster) AddTeam(t team.Team) error {
	if err := r.teams.Add(t); err != nil {
		return crerr.Wrapf(ErrDuplicateTeam, "team=%s", t.Name)
	}
	return nil
}

// IsTeamEmpty reports whether no player references name.
func (r *Roster) IsTeamEmpty(name team.Name) bool {
	return len(r.TeamMembers(name)) == 0
}

func (r *Roster) DeleteTeam(name team.Name) error {
	stored, err := r.FindTeamByName(name)
	if err != nil {
		return err
	}
	if !r.IsTeamEmpty(stored.Name) {
		return crerr.Wrapf(ErrTeamNotEmpty, "team=%s members=%d", stored.Name, len(r.TeamMembers(stored.Name)))
	}
	if err := r.teams.Remove(stored); err != nil {
		return crerr.Wrapf(ErrTeamNotFound, "team=%s", name)
	}
	return nil
}

// AddPosition stores ps. The NONE marker is reserved.
func (r *Roster) AddPosition(ps position.Position) error {
	if ps.Name.IsNone() {
		return crerr.Wrapf(ErrDuplicatePosition, "position=%s is reserved", position.NameNone)
	}
	if err := r.positions.Add(ps); err != nil {
		return crerr.Wrapf(ErrDuplicatePosition, "position=%s", ps.Name)
	}
	return nil
}

// IsPositionAssigned reports whether any player holds name.
func (r *Roster) IsPositionAssigned(name position.Name) bool {
	for _, p := range r.persons.Items() {
		if p.PositionName().SameAs(name) {
			return true
		}
	}
	return false
}

func (r *Roster) DeletePosition(name position.Name) error {
	stored, err := r.FindPositionByName(name)
	if err != nil {
		return err
	}
	if r.IsPositionAssigned(stored.Name) {
		return crerr.Wrapf(ErrPositionAssigned, "position=%s", stored.Name)
	}
	if err := r.positions.Remove(stored); err != nil {
		return crerr.Wrapf(ErrPositionNotFound, "position=%s", name)
	}
	return nil
}

// TeamMembers returns the players referencing name in roster order.
func (r *Roster) TeamMembers(name team.Name) []player.Person {
	out := make([]player.Person, 0)
	for _, p := range r.persons.Items() {
		if p.Team.SameAs(name) {
			out = append(out, p)
		}
	}
	return out
}

// CaptainOf returns the captain of name, if any.
func (r *Roster) CaptainOf(name team.Name) (player.Person, bool) {
	for _, p := range r.persons.Items() {
		if p.Captain && p.Team.SameAs(name) {
			return p, true
		}
	}
	return player.Person{}, false
}

// AssignCaptain makes the named player captain of their team, stripping the
// previous captain in the same call.
func (r *Roster) AssignCaptain(name player.Name) (player.Person, error) {
	target, err := r.FindPersonByName(name)
	if err != nil {
		return player.Person{}, err
	}
	if target.Captain {
		return player.Person{}, crerr.Wrapf(ErrIllegalCaptainTransition, "person=%s is already captain", target.Name)
	}

	previous, hasPrevious := r.CaptainOf(target.Team)
	if hasPrevious {
		if err := r.persons.Replace(previous, previous.WithCaptain(false)); err != nil {
			return player.Person{}, crerr.Wrapf(err, "strip captain %s", previous.Name)
		}
	}

	promoted := target.WithCaptain(true)
	if err := r.persons.Replace(target, promoted); err != nil {
		err = crerr.Wrapf(err, "assign captain %s", target.Name)
		if hasPrevious {
			if rollbackErr := r.persons.Replace(previous.WithCaptain(false), previous); rollbackErr != nil {
				err = errors.Join(err, crerr.Wrapf(rollbackErr, "restore captain %s", previous.Name))
			}
		}
		return player.Person{}, err
	}
	return promoted, nil
}

func (r *Roster) StripCaptain(name player.Name) (player.Person, error) {
	target, err := r.FindPersonByName(name)
	if err != nil {
		return player.Person{}, err
	}
	if !target.Captain {
		return player.Person{}, crerr.Wrapf(ErrIllegalCaptainTransition, "person=%s is not captain", target.Name)
	}
	return r.replace(target, target.WithCaptain(false))
}

// AssignInjury adds injury to the named player. FIT is rejected; it is
// restored only through ClearInjuries.
func (r *Roster) AssignInjury(name player.Name, injury player.Injury) (player.Person, error) {
	target, err := r.FindPersonByName(name)
	if err != nil {
		return player.Person{}, err
	}
	edited, err := target.WithInjury(injury)
	if err != nil {
		return player.Person{}, err
	}
	return r.replace(target, edited)
}

// ClearInjuries resets the named player's injuries to {FIT}.
func (r *Roster) ClearInjuries(name player.Name) (player.Person, error) {
	target, err := r.FindPersonByName(name)
	if err != nil {
		return player.Person{}, err
	}
	return r.replace(target, target.WithoutInjuries())
}

// AssignPosition moves the named player to a stored position or to NONE.
func (r *Roster) AssignPosition(name player.Name, pos position.Name) (player.Person, error) {
	target, err := r.FindPersonByName(name)
	if err != nil {
		return player.Person{}, err
	}
	edited := target.WithPosition(pos)
	resolved, err := r.resolveReferences(edited)
	if err != nil {
		return player.Person{}, err
	}
	return r.replace(target, resolved)
}

// Validate checks every roster invariant. Mutations keep them, so a failure
// here means a bug or a hand-built roster.
func (r *Roster) Validate() error {
	persons := r.persons.Items()
	captains := make(map[string]player.Name)
	for i, p := range persons {
		for _, other := range persons[i+1:] {
			if p.SameIdentity(other) {
				return crerr.Wrapf(ErrDuplicatePerson, "person=%s", p.Name)
			}
		}
		if !r.HasTeam(p.Team) {
			return crerr.Wrapf(ErrTeamNotFound, "person=%s team=%s", p.Name, p.Team)
		}
		if !p.PositionName().IsNone() && !r.HasPosition(p.PositionName()) {
			return crerr.Wrapf(ErrPositionNotFound, "person=%s position=%s", p.Name, p.PositionName())
		}
		if p.Captain {
			key := strings.ToLower(string(p.Team))
			if existing, ok := captains[key]; ok {
				return crerr.Wrapf(ErrIllegalCaptainTransition, "team=%s captains=%s,%s", p.Team, existing, p.Name)
			}
			captains[key] = p.Name
		}
	}
	return nil
}

func (r *Roster) replace(target, edited player.Person) (player.Person, error) {
	if err := r.persons.Replace(target, edited); err != nil {
		return player.Person{}, crerr.Wrapf(ErrPersonNotFound, "person=%s", target.Name)
	}
	return edited, nil
}

func (r *Roster) resolveReferences(p player.Person) (player.Person, error) {
	storedTeam, err := r.FindTeamByName(p.Team)
	if err != nil {
		return player.Person{}, crerr.Wrapf(err, "person=%s", p.Name)
	}
	p.Team = storedTeam.Name

	if p.PositionName().IsNone() {
		p.Position = position.NameNone
		return p, nil
	}
	storedPosition, err := r.FindPositionByName(p.Position)
	if err != nil {
		return player.Person{}, crerr.Wrapf(err, "person=%s", p.Name)
	}
	p.Position = storedPosition.Name
	return p, nil
}
