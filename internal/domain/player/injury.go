package player

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-roster/internal/platform/validation"
)

// Injury is a medical status label. Comparison ignores case.
type Injury string

// InjuryFit is the label carried by players with no injury.
const InjuryFit Injury = "FIT"

func NewInjury(raw string) (Injury, error) {
	value := strings.TrimSpace(raw)
	if err := validation.Var("injury", value, validation.RuleWords); err != nil {
		return "", err
	}
	return Injury(value), nil
}

func IsValidInjury(raw string) bool {
	return validation.Valid(raw, validation.RuleWords)
}

func (i Injury) SameAs(other Injury) bool {
	return strings.EqualFold(string(i), string(other))
}

func (i Injury) IsFit() bool {
	return i.SameAs(InjuryFit)
}

func (i Injury) String() string {
	return string(i)
}

// InjurySet holds a player's injuries. It is never empty: the zero value
// reads as {FIT}, and FIT never coexists with a real injury. Values are
// immutable; every change returns a new set.
type InjurySet struct {
	labels []Injury
}

// FitInjurySet returns {FIT}.
func FitInjurySet() InjurySet {
	return InjurySet{}
}

// NewInjurySet builds a set from labels. An empty input or a lone FIT yields
// {FIT}. FIT alongside a real injury is rejected, as are case-insensitive
// duplicates.
func NewInjurySet(labels ...Injury) (InjurySet, error) {
	set := InjurySet{}
	sawFit := false
	for _, label := range labels {
		if label.IsFit() {
			sawFit = true
			continue
		}
		if err := validation.Var("injury", string(label), validation.RuleWords); err != nil {
			return InjurySet{}, err
		}
		if set.Contains(label) {
			return InjurySet{}, crerr.Wrapf(ErrDuplicateInjury, "injury=%s", label)
		}
		set.labels = append(set.labels, label)
	}
	if sawFit && len(set.labels) > 0 {
		return InjurySet{}, crerr.Wrapf(ErrMixedInjurySet, "injuries=%v", labels)
	}
	return set, nil
}

// Add returns a new set with injury included. FIT is dropped when the first
// real injury is added.
func (s InjurySet) Add(injury Injury) (InjurySet, error) {
	if injury.IsFit() {
		return s, ErrIllegalInjuryAssignment
	}
	if s.Contains(injury) {
		return s, crerr.Wrapf(ErrDuplicateInjury, "injury=%s", injury)
	}

	labels := make([]Injury, 0, len(s.labels)+1)
	labels = append(labels, s.labels...)
	labels = append(labels, injury)
	return InjurySet{labels: labels}, nil
}

// Cleared returns {FIT}.
func (s InjurySet) Cleared() InjurySet {
	return InjurySet{}
}

// Contains reports membership ignoring case. FIT is a member exactly when no
// real injury is present.
func (s InjurySet) Contains(injury Injury) bool {
	if injury.IsFit() {
		return len(s.labels) == 0
	}
	for _, label := range s.labels {
		if label.SameAs(injury) {
			return true
		}
	}
	return false
}

func (s InjurySet) IsInjured() bool {
	return len(s.labels) > 0
}

// Labels returns the set's members in assignment order.
func (s InjurySet) Labels() []Injury {
	if len(s.labels) == 0 {
		return []Injury{InjuryFit}
	}
	out := make([]Injury, 0, len(s.labels))
	out = append(out, s.labels...)
	return out
}

func (s InjurySet) Len() int {
	if len(s.labels) == 0 {
		return 1
	}
	return len(s.labels)
}

// Equal compares members by exact label regardless of order.
func (s InjurySet) Equal(other InjurySet) bool {
	if len(s.labels) != len(other.labels) {
		return false
	}
	for _, label := range s.labels {
		found := false
		for _, candidate := range other.labels {
			if label == candidate {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s InjurySet) String() string {
	labels := s.Labels()
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, string(label))
	}
	return strings.Join(parts, ", ")
}
