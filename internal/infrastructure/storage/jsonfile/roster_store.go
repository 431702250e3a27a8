package jsonfile

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/domain/team"
)

type rosterDocument struct {
	Teams     []teamRecord     `json:"teams"`
	Positions []positionRecord `json:"positions"`
	Persons   []personRecord   `json:"persons"`
}

type teamRecord struct {
	Name string `json:"name"`
}

type positionRecord struct {
	Name string `json:"name"`
}

type personRecord struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Address  string   `json:"address"`
	Team     string   `json:"team"`
	Position string   `json:"position"`
	Injuries []string `json:"injuries"`
	Tags     []string `json:"tags"`
	Captain  bool     `json:"captain"`
}

// RosterStore keeps the roster as one JSON document on disk.
type RosterStore struct {
	mu   sync.Mutex
	path string
}

func NewRosterStore(path string) *RosterStore {
	return &RosterStore{path: path}
}

func (s *RosterStore) Path() string {
	return s.path
}

func (s *RosterStore) Load(_ context.Context) (roster.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found, err := readFile(s.path)
	if err != nil || !found {
		return roster.Snapshot{}, false, err
	}

	var doc rosterDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return roster.Snapshot{}, true, crerr.Wrapf(roster.ErrInvalidSnapshot, "decode %s: %v", s.path, err)
	}
	snapshot, err := doc.toSnapshot()
	if err != nil {
		return roster.Snapshot{}, true, crerr.Wrapf(roster.ErrInvalidSnapshot, "%s: %v", s.path, err)
	}
	return snapshot, true, nil
}

func (s *RosterStore) Save(_ context.Context, src roster.ReadOnly) error {
	data, err := sonic.ConfigStd.MarshalIndent(newRosterDocument(src), "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode roster")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFile(s.path, data)
}

func newRosterDocument(src roster.ReadOnly) rosterDocument {
	teams := src.Teams()
	positions := src.Positions()
	persons := src.Persons()

	doc := rosterDocument{
		Teams:     make([]teamRecord, 0, len(teams)),
		Positions: make([]positionRecord, 0, len(positions)),
		Persons:   make([]personRecord, 0, len(persons)),
	}
	for _, t := range teams {
		doc.Teams = append(doc.Teams, teamRecord{Name: string(t.Name)})
	}
	for _, ps := range positions {
		doc.Positions = append(doc.Positions, positionRecord{Name: string(ps.Name)})
	}
	for _, p := range persons {
		injuries := p.Injuries.Labels()
		injuryLabels := make([]string, 0, len(injuries))
		for _, injury := range injuries {
			injuryLabels = append(injuryLabels, string(injury))
		}
		tags := p.Tags.Tags()
		tagLabels := make([]string, 0, len(tags))
		for _, tag := range tags {
			tagLabels = append(tagLabels, string(tag))
		}

		doc.Persons = append(doc.Persons, personRecord{
			Name:     string(p.Name),
			Phone:    string(p.Phone),
			Email:    string(p.Email),
			Address:  string(p.Address),
			Team:     string(p.Team),
			Position: string(p.PositionName()),
			Injuries: injuryLabels,
			Tags:     tagLabels,
			Captain:  p.Captain,
		})
	}
	return doc
}

// toSnapshot converts records to domain values. Cross-entity invariants are
// left to the roster.
func (d rosterDocument) toSnapshot() (roster.Snapshot, error) {
	snapshot := roster.Snapshot{
		TeamList:     make([]team.Team, 0, len(d.Teams)),
		PositionList: make([]position.Position, 0, len(d.Positions)),
		PersonList:   make([]player.Person, 0, len(d.Persons)),
	}
	for _, t := range d.Teams {
		snapshot.TeamList = append(snapshot.TeamList, team.New(team.Name(t.Name)))
	}
	for _, ps := range d.Positions {
		snapshot.PositionList = append(snapshot.PositionList, position.New(position.Name(ps.Name)))
	}
	for _, rec := range d.Persons {
		p, err := rec.toPerson()
		if err != nil {
			return roster.Snapshot{}, err
		}
		snapshot.PersonList = append(snapshot.PersonList, p)
	}
	return snapshot, nil
}

func (r personRecord) toPerson() (player.Person, error) {
	injuries := make([]player.Injury, 0, len(r.Injuries))
	for _, label := range r.Injuries {
		injuries = append(injuries, player.Injury(label))
	}
	injurySet, err := player.NewInjurySet(injuries...)
	if err != nil {
		return player.Person{}, crerr.Wrapf(err, "person=%s", r.Name)
	}

	tags := make([]player.Tag, 0, len(r.Tags))
	for _, tag := range r.Tags {
		tags = append(tags, player.Tag(tag))
	}
	tagSet, err := player.NewTagSet(tags...)
	if err != nil {
		return player.Person{}, crerr.Wrapf(err, "person=%s", r.Name)
	}

	return player.Person{
		Name:     player.Name(r.Name),
		Phone:    player.Phone(r.Phone),
		Email:    player.Email(r.Email),
		Address:  player.Address(r.Address),
		Team:     team.Name(r.Team),
		Position: position.Name(r.Position),
		Injuries: injurySet,
		Tags:     tagSet,
		Captain:  r.Captain,
	}, nil
}
