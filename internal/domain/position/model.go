package position

import (
	"strings"

	"github.com/riskibarqy/club-roster/internal/platform/validation"
)

// Name identifies a playing position such as GK or LW. Comparison ignores
// case.
type Name string

// NameNone marks a player without an assigned position. It is never stored
// as a Position.
const NameNone Name = "NONE"

func NewName(raw string) (Name, error) {
	value := strings.TrimSpace(raw)
	if err := validation.Var("position name", value, validation.RuleAlnum); err != nil {
		return "", err
	}
	return Name(value), nil
}

func IsValidName(raw string) bool {
	return validation.Valid(raw, validation.RuleAlnum)
}

func (n Name) SameAs(other Name) bool {
	return strings.EqualFold(string(n), string(other))
}

func (n Name) IsNone() bool {
	return n == "" || n.SameAs(NameNone)
}

func (n Name) String() string {
	if n == "" {
		return string(NameNone)
	}
	return string(n)
}

// Position is a playing role players can be assigned to.
type Position struct {
	Name Name
}

func New(name Name) Position {
	return Position{Name: name}
}

func (p Position) Validate() error {
	return validation.Var("position name", string(p.Name), validation.RuleAlnum)
}

func (p Position) SameIdentity(other Position) bool {
	return p.Name.SameAs(other.Name)
}

func (p Position) Equal(other Position) bool {
	return p.Name == other.Name
}
