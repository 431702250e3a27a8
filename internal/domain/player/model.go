package player

import (
	"fmt"

	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/team"
	"github.com/riskibarqy/club-roster/internal/platform/validation"
)

// Person is a player registered with the club. Relations to Team and
// Position are held by name. Persons are values: the With* methods return a
// modified copy and the roster swaps it in for the original.
type Person struct {
	Name     Name
	Phone    Phone
	Email    Email
	Address  Address
	Team     team.Name
	Position position.Name
	Injuries InjurySet
	Tags     TagSet
	Captain  bool
}

func (p Person) Validate() error {
	if err := validation.Var("name", string(p.Name), validation.RuleWords); err != nil {
		return err
	}
	if err := validation.Var("phone", string(p.Phone), validation.RulePhone); err != nil {
		return err
	}
	if err := validation.Var("email", string(p.Email), validation.RuleEmail); err != nil {
		return err
	}
	if err := validation.Var("address", string(p.Address), validation.RuleAddress); err != nil {
		return err
	}
	if err := validation.Var("team name", string(p.Team), validation.RuleWords); err != nil {
		return err
	}
	if !p.Position.IsNone() {
		if err := validation.Var("position name", string(p.Position), validation.RuleAlnum); err != nil {
			return err
		}
	}

	return nil
}

// SameIdentity reports whether both persons share a name ignoring case.
func (p Person) SameIdentity(other Person) bool {
	return p.Name.SameAs(other.Name)
}

// Equal reports whether every field matches.
func (p Person) Equal(other Person) bool {
	return p.Name == other.Name &&
		p.Phone == other.Phone &&
		p.Email == other.Email &&
		p.Address == other.Address &&
		p.Team == other.Team &&
		p.PositionName() == other.PositionName() &&
		p.Captain == other.Captain &&
		p.Injuries.Equal(other.Injuries) &&
		p.Tags.Equal(other.Tags)
}

// PositionName returns the assigned position, NONE when unset.
func (p Person) PositionName() position.Name {
	if p.Position.IsNone() {
		return position.NameNone
	}
	return p.Position
}

func (p Person) IsInjured() bool {
	return p.Injuries.IsInjured()
}

func (p Person) WithInjury(injury Injury) (Person, error) {
	injuries, err := p.Injuries.Add(injury)
	if err != nil {
		return p, fmt.Errorf("person=%s: %w", p.Name, err)
	}
	p.Injuries = injuries
	return p, nil
}

func (p Person) WithoutInjuries() Person {
	p.Injuries = p.Injuries.Cleared()
	return p
}

func (p Person) WithCaptain(captain bool) Person {
	p.Captain = captain
	return p
}

func (p Person) WithPosition(name position.Name) Person {
	if name.IsNone() {
		name = position.NameNone
	}
	p.Position = name
	return p
}

func (p Person) WithTeam(name team.Name) Person {
	p.Team = name
	return p
}

func (p Person) String() string {
	return fmt.Sprintf("%s; Phone: %s; Email: %s; Address: %s; Team: %s; Position: %s; Injuries: %s; Tags: %v; Captain: %t",
		p.Name, p.Phone, p.Email, p.Address, p.Team, p.PositionName(), p.Injuries, p.Tags.Tags(), p.Captain)
}
