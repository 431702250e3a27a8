package filter

import (
	"strings"

	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/team"
)

// Predicate tests a single entity. Predicates never mutate their input.
type Predicate[T any] func(T) bool

// All matches everything.
func All[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// And matches when every predicate matches. With no predicates it matches
// everything.
func And[T any](predicates ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range predicates {
			if p != nil && !p(v) {
				return false
			}
		}
		return true
	}
}

// ContainsWordIgnoreCase reports whether sentence contains word as a whole
// whitespace-delimited token, ignoring case.
func ContainsWordIgnoreCase(sentence, word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}
	for _, token := range strings.Fields(sentence) {
		if strings.EqualFold(token, word) {
			return true
		}
	}
	return false
}

func containsAnyKeyword(sentence string, keywords []string) bool {
	for _, keyword := range keywords {
		if ContainsWordIgnoreCase(sentence, keyword) {
			return true
		}
	}
	return false
}

// ByTeam matches players whose team name contains any token of query as a
// whole word. An empty query matches every player.
func ByTeam(query string) Predicate[player.Person] {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return All[player.Person]()
	}
	return func(p player.Person) bool {
		return containsAnyKeyword(string(p.Team), keywords)
	}
}

// ByInjury matches players carrying query as one of their injury labels. An
// empty query matches every player.
func ByInjury(query string) Predicate[player.Person] {
	label := player.Injury(strings.TrimSpace(query))
	if label == "" {
		return All[player.Person]()
	}
	return func(p player.Person) bool {
		return p.Injuries.Contains(label)
	}
}

// ByPosition matches players whose position contains any token of query as a
// whole word. An empty query matches every player.
func ByPosition(query string) Predicate[player.Person] {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return All[player.Person]()
	}
	return func(p player.Person) bool {
		return containsAnyKeyword(string(p.PositionName()), keywords)
	}
}

// NameContainsKeywords matches players whose name holds any keyword as a
// whole word.
func NameContainsKeywords(keywords []string) Predicate[player.Person] {
	return func(p player.Person) bool {
		return containsAnyKeyword(string(p.Name), keywords)
	}
}

func IsCaptain() Predicate[player.Person] {
	return func(p player.Person) bool {
		return p.Captain
	}
}

// IsInjured matches players with any injury other than FIT.
func IsInjured() Predicate[player.Person] {
	return func(p player.Person) bool {
		return p.IsInjured()
	}
}

func TeamNameContainsKeywords(keywords []string) Predicate[team.Team] {
	return func(t team.Team) bool {
		return containsAnyKeyword(string(t.Name), keywords)
	}
}

func PositionNameContainsKeywords(keywords []string) Predicate[position.Position] {
	return func(ps position.Position) bool {
		return containsAnyKeyword(string(ps.Name), keywords)
	}
}
