package roster

import (
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/team"
)

// Snapshot is a detached copy of roster content, used to persist and
// restore state. Teams and positions come before the players that
// reference them.
type Snapshot struct {
	TeamList     []team.Team
	PositionList []position.Position
	PersonList   []player.Person
}

func (s Snapshot) Persons() []player.Person {
	return append([]player.Person(nil), s.PersonList...)
}

func (s Snapshot) Teams() []team.Team {
	return append([]team.Team(nil), s.TeamList...)
}

func (s Snapshot) Positions() []position.Position {
	return append([]position.Position(nil), s.PositionList...)
}

func (s Snapshot) IsEmpty() bool {
	return len(s.TeamList) == 0 && len(s.PositionList) == 0 && len(s.PersonList) == 0
}
