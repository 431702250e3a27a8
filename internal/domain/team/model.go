package team

import (
	"strings"

	"github.com/riskibarqy/club-roster/internal/platform/validation"
)

// Name identifies a team. Comparison ignores case.
type Name string

func NewName(raw string) (Name, error) {
	value := strings.TrimSpace(raw)
	if err := validation.Var("team name", value, validation.RuleWords); err != nil {
		return "", err
	}
	return Name(value), nil
}

func IsValidName(raw string) bool {
	return validation.Valid(raw, validation.RuleWords)
}

func (n Name) SameAs(other Name) bool {
	return strings.EqualFold(string(n), string(other))
}

func (n Name) String() string {
	return string(n)
}

// Team is a squad inside the club. Membership is derived from the players
// that reference the team by name.
type Team struct {
	Name Name
}

func New(name Name) Team {
	return Team{Name: name}
}

func (t Team) Validate() error {
	return validation.Var("team name", string(t.Name), validation.RuleWords)
}

// SameIdentity reports whether both teams carry the same name ignoring case.
func (t Team) SameIdentity(other Team) bool {
	return t.Name.SameAs(other.Name)
}

// Equal reports whether both teams match field by field.
func (t Team) Equal(other Team) bool {
	return t.Name == other.Name
}
