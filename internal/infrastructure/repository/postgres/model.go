package postgres

import (
	"database/sql"
	"time"
)

const rosterMetaID = 1

type rosterMetaTableModel struct {
	ID      int       `db:"id"`
	SavedAt time.Time `db:"saved_at"`
}

type teamTableModel struct {
	Name      string `db:"name"`
	SortOrder int    `db:"sort_order"`
}

type positionTableModel struct {
	Name      string `db:"name"`
	SortOrder int    `db:"sort_order"`
}

type playerTableModel struct {
	Name         string         `db:"name"`
	Phone        string         `db:"phone"`
	Email        string         `db:"email"`
	Address      string         `db:"address"`
	TeamName     string         `db:"team_name"`
	PositionName sql.NullString `db:"position_name"`
	Captain      bool           `db:"captain"`
	SortOrder    int            `db:"sort_order"`
}

type playerLabelTableModel struct {
	PlayerName string `db:"player_name"`
	Label      string `db:"label"`
	SortOrder  int    `db:"sort_order"`
}
