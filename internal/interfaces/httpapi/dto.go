package httpapi

import (
	"context"

	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/prefs"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/domain/team"
)

type playerDTO struct {
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

type teamDTO struct {
	Name    string `json:"name"`
	Members int    `json:"members,omitempty"`
}

type positionDTO struct {
	Name string `json:"name"`
}

type rosterDTO struct {
	Teams     []teamDTO     `json:"teams"`
	Positions []positionDTO `json:"positions"`
	Players   []playerDTO   `json:"players"`
}

type guiSettingsDTO struct {
	WindowWidth  float64 `json:"windowWidth"`
	WindowHeight float64 `json:"windowHeight"`
	X            *int    `json:"x,omitempty"`
	Y            *int    `json:"y,omitempty"`
}

type preferencesDTO struct {
	GUISettings    guiSettingsDTO `json:"guiSettings"`
	RosterFilePath string         `json:"rosterFilePath"`
}

func playerToDTO(ctx context.Context, p player.Person) playerDTO {
	_, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	injuries := p.Injuries.Labels()
	injuryLabels := make([]string, 0, len(injuries))
	for _, injury := range injuries {
		injuryLabels = append(injuryLabels, injury.String())
	}

	tags := p.Tags.Tags()
	tagLabels := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagLabels = append(tagLabels, string(tag))
	}

	return playerDTO{
		Name:     p.Name.String(),
		Phone:    string(p.Phone),
		Email:    string(p.Email),
		Address:  string(p.Address),
		Team:     p.Team.String(),
		Position: p.PositionName().String(),
		Injuries: injuryLabels,
		Tags:     tagLabels,
		Captain:  p.Captain,
	}
}

func playersToDTO(ctx context.Context, persons []player.Person) []playerDTO {
	items := make([]playerDTO, 0, len(persons))
	for _, p := range persons {
		items = append(items, playerToDTO(ctx, p))
	}
	return items
}

func teamsToDTO(teams []team.Team) []teamDTO {
	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamDTO{Name: t.Name.String()})
	}
	return items
}

func positionsToDTO(positions []position.Position) []positionDTO {
	items := make([]positionDTO, 0, len(positions))
	for _, ps := range positions {
		items = append(items, positionDTO{Name: ps.Name.String()})
	}
	return items
}

func rosterToDTO(ctx context.Context, src roster.ReadOnly) rosterDTO {
	persons := src.Persons()
	teams := teamsToDTO(src.Teams())
	for i := range teams {
		for _, p := range persons {
			if p.Team.SameAs(team.Name(teams[i].Name)) {
				teams[i].Members++
			}
		}
	}

	return rosterDTO{
		Teams:     teams,
		Positions: positionsToDTO(src.Positions()),
		Players:   playersToDTO(ctx, persons),
	}
}

func preferencesToDTO(p prefs.UserPrefs) preferencesDTO {
	return preferencesDTO{
		GUISettings: guiSettingsDTO{
			WindowWidth:  p.GUI.WindowWidth,
			WindowHeight: p.GUI.WindowHeight,
			X:            p.GUI.X,
			Y:            p.GUI.Y,
		},
		RosterFilePath: p.RosterFilePath,
	}
}
