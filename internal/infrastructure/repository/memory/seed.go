package memory

import (
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/domain/team"
)

const (
	TeamU12Blue = team.Name("U12 Blue")
	TeamU12Red  = team.Name("U12 Red")
	TeamU16     = team.Name("U16")
)

func SeedTeams() []team.Team {
	return []team.Team{
		team.New(TeamU12Blue),
		team.New(TeamU12Red),
		team.New(TeamU16),
	}
}

func SeedPositions() []position.Position {
	return []position.Position{
		position.New("GK"),
		position.New("LW"),
		position.New("ST"),
	}
}

func SeedPersons() []player.Person {
	hamstring, _ := player.NewInjurySet("Hamstring")
	friends, _ := player.NewTagSet("friends")
	colleagues, _ := player.NewTagSet("colleagues", "friends")

	return []player.Person{
		{
			Name: "Alex Yeoh", Phone: "87438807", Email: "alexyeoh@example.com",
			Address: "Blk 30 Geylang Street 29, #06-40",
			Team:    TeamU12Blue, Position: "GK", Tags: friends, Captain: true,
		},
		{
			Name: "Bernice Yu", Phone: "99272758", Email: "berniceyu@example.com",
			Address: "Blk 30 Lorong 3 Serangoon Gardens, #07-18",
			Team:    TeamU12Blue, Position: "LW", Tags: colleagues,
		},
		{
			Name: "Charlotte Oliveiro", Phone: "93210283", Email: "charlotte@example.com",
			Address: "Blk 11 Ang Mo Kio Street 74, #11-04",
			Team:    TeamU12Red, Position: position.NameNone, Injuries: hamstring,
		},
		{
			Name: "David Li", Phone: "91031282", Email: "lidavid@example.com",
			Address: "Blk 436 Serangoon Gardens Street 26, #16-43",
			Team:    TeamU16, Position: "ST", Captain: true,
		},
		{
			Name: "Irfan Ibrahim", Phone: "92492021", Email: "irfan@example.com",
			Address: "Blk 47 Tampines Street 20, #17-35",
			Team:    TeamU16, Position: position.NameNone,
		},
	}
}

// SeedSnapshot is the sample roster served before anything has been saved.
func SeedSnapshot() roster.Snapshot {
	return roster.Snapshot{
		TeamList:     SeedTeams(),
		PositionList: SeedPositions(),
		PersonList:   SeedPersons(),
	}
}
