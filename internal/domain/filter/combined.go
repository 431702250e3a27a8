package filter

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/club-roster/internal/domain/player"
)

var (
	ErrNoCriteria         = errors.New("at least one filter criterion is required")
	ErrDuplicateCriterion = errors.New("filter criterion supplied more than once")
	ErrUnknownCriterion   = errors.New("unknown filter criterion")
)

// Kind names a field players can be filtered on.
type Kind string

const (
	KindTeam     Kind = "team"
	KindInjury   Kind = "injury"
	KindPosition Kind = "position"
)

// Criterion is one field/query pair of a combined filter.
type Criterion struct {
	Kind  Kind
	Query string
}

// Combined is the conjunction of up to one criterion per kind.
type Combined struct {
	criteria []Criterion
	match    Predicate[player.Person]
}

func NewCombined(criteria ...Criterion) (Combined, error) {
	if len(criteria) == 0 {
		return Combined{}, ErrNoCriteria
	}

	seen := make(map[Kind]struct{}, len(criteria))
	predicates := make([]Predicate[player.Person], 0, len(criteria))
	for _, c := range criteria {
		if _, exists := seen[c.Kind]; exists {
			return Combined{}, fmt.Errorf("%w: %s", ErrDuplicateCriterion, c.Kind)
		}
		seen[c.Kind] = struct{}{}

		switch c.Kind {
		case KindTeam:
			predicates = append(predicates, ByTeam(c.Query))
		case KindInjury:
			predicates = append(predicates, ByInjury(c.Query))
		case KindPosition:
			predicates = append(predicates, ByPosition(c.Query))
		default:
			return Combined{}, fmt.Errorf("%w: %q", ErrUnknownCriterion, c.Kind)
		}
	}

	return Combined{
		criteria: append([]Criterion(nil), criteria...),
		match:    And(predicates...),
	}, nil
}

func (c Combined) Predicate() Predicate[player.Person] {
	if c.match == nil {
		return All[player.Person]()
	}
	return c.match
}

func (c Combined) Criteria() []Criterion {
	return append([]Criterion(nil), c.criteria...)
}
