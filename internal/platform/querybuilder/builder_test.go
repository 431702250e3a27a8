package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("name", "sort_order").
		From("roster_teams").
		Where(Eq("name", "U16")).
		OrderBy("sort_order").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT name, sort_order FROM roster_teams WHERE name = $1 ORDER BY sort_order LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "U16" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("name").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("roster_positions").
		Columns("name", "sort_order").
		Values("GK", 0).
		Values("LW", 1).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO roster_positions (name, sort_order) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "GK" || args[3] != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("roster_positions").Columns("name", "sort_order").Values("GK").ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Name      string `db:"name"`
		SortOrder int    `db:"sort_order"`
		Ignored   string `db:"-"`
		internal  string
	}

	query, args, err := InsertModel("roster_teams", row{Name: "U16", SortOrder: 2, internal: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO roster_teams (name, sort_order) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "U16" || args[1] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type label struct {
		PlayerName string `db:"player_name"`
		Label      string `db:"label"`
		SortOrder  int    `db:"sort_order"`
	}

	query, args, err := InsertModels("roster_player_tags", []label{
		{PlayerName: "Amy", Label: "friends", SortOrder: 0},
		{PlayerName: "Amy", Label: "colleagues", SortOrder: 1},
	}, "")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO roster_player_tags (player_name, label, sort_order) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[4] != "colleagues" || args[5] != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[label]("roster_player_tags", nil, ""); err == nil {
		t.Fatalf("expected error for empty rows")
	}
	if _, _, err := InsertModels("roster_teams", []any{label{}, struct {
		Name string `db:"name"`
	}{}}, ""); err == nil {
		t.Fatalf("expected error for mixed row types")
	}
}

func TestColumns(t *testing.T) {
	type row struct {
		Name      string `db:"name"`
		SortOrder int    `db:"sort_order,omitempty"`
		Skipped   string
	}

	cols, err := Columns(&row{})
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if len(cols) != 2 || cols[0] != "name" || cols[1] != "sort_order" {
		t.Fatalf("unexpected columns: %v", cols)
	}
	if _, err := Columns(42); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("roster_players").ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM roster_players" || len(args) != 0 {
		t.Fatalf("unexpected delete query: %s %+v", query, args)
	}

	query, args, err = DeleteFrom("roster_meta").Where(Eq("id", 1)).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM roster_meta WHERE id = $1" || len(args) != 1 {
		t.Fatalf("unexpected delete query: %s %+v", query, args)
	}
}
