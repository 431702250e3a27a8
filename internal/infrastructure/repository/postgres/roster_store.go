package postgres

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/position"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/domain/team"
	qb "github.com/riskibarqy/club-roster/internal/platform/querybuilder"
	"github.com/riskibarqy/club-roster/internal/platform/resilience"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	tableMeta           = "roster_meta"
	tableTeams          = "roster_teams"
	tablePositions      = "roster_positions"
	tablePlayers        = "roster_players"
	tablePlayerInjuries = "roster_player_injuries"
	tablePlayerTags     = "roster_player_tags"
)

var tracer = otel.Tracer("club-roster/internal/infrastructure/repository/postgres")

// RosterStore persists the roster as a full snapshot. Every save replaces
// the stored rows inside one transaction.
type RosterStore struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

func NewRosterStore(db *sqlx.DB) *RosterStore {
	return &RosterStore{db: db, now: time.Now}
}

// WithCircuitBreaker guards Load and Save. Once the database keeps failing
// calls are rejected with resilience.ErrCircuitOpen until the open timeout
// passes.
func (s *RosterStore) WithCircuitBreaker(cfg resilience.CircuitBreakerConfig) *RosterStore {
	s.breaker = resilience.NewCircuitBreaker(cfg, isDatabaseFailure)
	return s
}

func (s *RosterStore) Load(ctx context.Context) (roster.Snapshot, bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.RosterStore.Load")
	defer span.End()

	var (
		snapshot roster.Snapshot
		found    bool
	)
	err := s.guard(func() error {
		var err error
		snapshot, found, err = s.load(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
	}
	return snapshot, found, err
}

func (s *RosterStore) load(ctx context.Context) (roster.Snapshot, bool, error) {
	query, args, err := qb.Select("id", "saved_at").From(tableMeta).
		Where(qb.Eq("id", rosterMetaID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Snapshot{}, false, crerr.Wrap(err, "build select roster meta query")
	}
	var meta rosterMetaTableModel
	if err := s.get(ctx, &meta, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Snapshot{}, false, nil
		}
		return roster.Snapshot{}, false, crerr.Wrap(err, "select roster meta")
	}

	teams, err := selectRows[teamTableModel](ctx, s, tableTeams, "sort_order")
	if err != nil {
		return roster.Snapshot{}, false, err
	}
	positions, err := selectRows[positionTableModel](ctx, s, tablePositions, "sort_order")
	if err != nil {
		return roster.Snapshot{}, false, err
	}
	players, err := selectRows[playerTableModel](ctx, s, tablePlayers, "sort_order")
	if err != nil {
		return roster.Snapshot{}, false, err
	}
	injuries, err := selectRows[playerLabelTableModel](ctx, s, tablePlayerInjuries, "player_name", "sort_order")
	if err != nil {
		return roster.Snapshot{}, false, err
	}
	tags, err := selectRows[playerLabelTableModel](ctx, s, tablePlayerTags, "player_name", "sort_order")
	if err != nil {
		return roster.Snapshot{}, false, err
	}

	snapshot, err := buildSnapshot(teams, positions, players, injuries, tags)
	if err != nil {
		return roster.Snapshot{}, true, crerr.Wrapf(roster.ErrInvalidSnapshot, "stored roster: %v", err)
	}
	return snapshot, true, nil
}

func (s *RosterStore) Save(ctx context.Context, src roster.ReadOnly) error {
	ctx, span := tracer.Start(ctx, "postgres.RosterStore.Save")
	defer span.End()

	err := s.guard(func() error {
		return s.save(ctx, src)
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		attribute.Int("roster.persons", len(src.Persons())),
		attribute.Int("roster.teams", len(src.Teams())),
		attribute.Int("roster.positions", len(src.Positions())),
	)
	return nil
}

func (s *RosterStore) save(ctx context.Context, src roster.ReadOnly) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx save roster")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{tablePlayers, tableTeams, tablePositions} {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return crerr.Wrapf(err, "build delete %s query", table)
		}
		if err := s.exec(ctx, tx, query, args...); err != nil {
			return crerr.Wrapf(err, "clear %s", table)
		}
	}

	rows := snapshotRows(src)
	if err := insertRows(ctx, s, tx, tableTeams, rows.teams); err != nil {
		return err
	}
	if err := insertRows(ctx, s, tx, tablePositions, rows.positions); err != nil {
		return err
	}
	if err := insertRows(ctx, s, tx, tablePlayers, rows.players); err != nil {
		return err
	}
	if err := insertRows(ctx, s, tx, tablePlayerInjuries, rows.injuries); err != nil {
		return err
	}
	if err := insertRows(ctx, s, tx, tablePlayerTags, rows.tags); err != nil {
		return err
	}

	meta := rosterMetaTableModel{ID: rosterMetaID, SavedAt: s.now().UTC()}
	query, args, err := qb.InsertModel(tableMeta, meta, "ON CONFLICT (id) DO UPDATE SET saved_at = EXCLUDED.saved_at")
	if err != nil {
		return crerr.Wrap(err, "build upsert roster meta query")
	}
	if err := s.exec(ctx, tx, query, args...); err != nil {
		return crerr.Wrap(err, "upsert roster meta")
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit save roster tx")
	}
	return nil
}

func (s *RosterStore) guard(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	err := s.breaker.Execute(fn)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return crerr.Wrap(err, "postgres roster store")
	}
	return err
}

// isDatabaseFailure reports whether err means the database itself is
// unhealthy. Rejected content and cancelled requests do not count.
func isDatabaseFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, roster.ErrInvalidSnapshot):
		return false
	case errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

// insertRows writes rows in one statement. Integrity violations mean the
// snapshot itself is inconsistent.
func insertRows[T any](ctx context.Context, s *RosterStore, tx *sqlx.Tx, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	query, args, err := qb.InsertModels(table, rows, "")
	if err != nil {
		return crerr.Wrapf(err, "build insert %s query", table)
	}
	if err := s.exec(ctx, tx, query, args...); err != nil {
		if isIntegrityViolation(err) {
			return crerr.Wrapf(roster.ErrInvalidSnapshot, "insert %s: %v", table, err)
		}
		return crerr.Wrapf(err, "insert %s", table)
	}
	return nil
}

// selectRows reads every row of table into T, selecting T's db columns.
func selectRows[T any](ctx context.Context, s *RosterStore, table string, orderBy ...string) ([]T, error) {
	var zero T
	columns, err := qb.Columns(zero)
	if err != nil {
		return nil, crerr.Wrapf(err, "columns for %s", table)
	}
	query, args, err := qb.Select(columns...).From(table).OrderBy(orderBy...).ToSQL()
	if err != nil {
		return nil, crerr.Wrapf(err, "build select %s query", table)
	}

	ctx, span := startQuerySpan(ctx, "postgres.select", query)
	defer span.End()

	var rows []T
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		span.RecordError(err)
		return nil, crerr.Wrapf(err, "select %s", table)
	}
	return rows, nil
}

func (s *RosterStore) get(ctx context.Context, dest any, query string, args ...any) error {
	ctx, span := startQuerySpan(ctx, "postgres.get", query)
	defer span.End()

	if err := s.db.GetContext(ctx, dest, query, args...); err != nil {
		if !isNotFound(err) {
			span.RecordError(err)
		}
		return err
	}
	return nil
}

func (s *RosterStore) exec(ctx context.Context, tx *sqlx.Tx, query string, args ...any) error {
	ctx, span := startQuerySpan(ctx, "postgres.exec", query)
	defer span.End()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func startQuerySpan(ctx context.Context, name, query string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.statement", formatQueryForTrace(query)),
		),
	)
}

func buildSnapshot(
	teams []teamTableModel,
	positions []positionTableModel,
	players []playerTableModel,
	injuries []playerLabelTableModel,
	tags []playerLabelTableModel,
) (roster.Snapshot, error) {
	injuriesByPlayer := make(map[string][]player.Injury, len(injuries))
	for _, row := range injuries {
		injuriesByPlayer[row.PlayerName] = append(injuriesByPlayer[row.PlayerName], player.Injury(row.Label))
	}
	tagsByPlayer := make(map[string][]player.Tag, len(tags))
	for _, row := range tags {
		tagsByPlayer[row.PlayerName] = append(tagsByPlayer[row.PlayerName], player.Tag(row.Label))
	}

	snapshot := roster.Snapshot{
		TeamList:     make([]team.Team, 0, len(teams)),
		PositionList: make([]position.Position, 0, len(positions)),
		PersonList:   make([]player.Person, 0, len(players)),
	}
	for _, row := range teams {
		snapshot.TeamList = append(snapshot.TeamList, team.New(team.Name(row.Name)))
	}
	for _, row := range positions {
		snapshot.PositionList = append(snapshot.PositionList, position.New(position.Name(row.Name)))
	}
	for _, row := range players {
		injurySet, err := player.NewInjurySet(injuriesByPlayer[row.Name]...)
		if err != nil {
			return roster.Snapshot{}, crerr.Wrapf(err, "person=%s", row.Name)
		}
		tagSet, err := player.NewTagSet(tagsByPlayer[row.Name]...)
		if err != nil {
			return roster.Snapshot{}, crerr.Wrapf(err, "person=%s", row.Name)
		}

		positionName := position.NameNone
		if row.PositionName.Valid {
			positionName = position.Name(row.PositionName.String)
		}
		snapshot.PersonList = append(snapshot.PersonList, player.Person{
			Name:     player.Name(row.Name),
			Phone:    player.Phone(row.Phone),
			Email:    player.Email(row.Email),
			Address:  player.Address(row.Address),
			Team:     team.Name(row.TeamName),
			Position: positionName,
			Injuries: injurySet,
			Tags:     tagSet,
			Captain:  row.Captain,
		})
	}
	return snapshot, nil
}

type snapshotTableRows struct {
	teams     []teamTableModel
	positions []positionTableModel
	players   []playerTableModel
	injuries  []playerLabelTableModel
	tags      []playerLabelTableModel
}

// snapshotRows flattens src into table rows. Sort orders keep the roster's
// insertion order. FIT is not stored; a player without injury rows is fit.
func snapshotRows(src roster.ReadOnly) snapshotTableRows {
	teams := src.Teams()
	positions := src.Positions()
	persons := src.Persons()

	rows := snapshotTableRows{
		teams:     make([]teamTableModel, 0, len(teams)),
		positions: make([]positionTableModel, 0, len(positions)),
		players:   make([]playerTableModel, 0, len(persons)),
	}
	for i, t := range teams {
		rows.teams = append(rows.teams, teamTableModel{Name: string(t.Name), SortOrder: i})
	}
	for i, ps := range positions {
		rows.positions = append(rows.positions, positionTableModel{Name: string(ps.Name), SortOrder: i})
	}
	for i, p := range persons {
		positionName := ""
		if !p.PositionName().IsNone() {
			positionName = string(p.PositionName())
		}
		rows.players = append(rows.players, playerTableModel{
			Name:         string(p.Name),
			Phone:        string(p.Phone),
			Email:        string(p.Email),
			Address:      string(p.Address),
			TeamName:     string(p.Team),
			PositionName: nullablePosition(positionName),
			Captain:      p.Captain,
			SortOrder:    i,
		})
		if p.IsInjured() {
			for j, label := range p.Injuries.Labels() {
				rows.injuries = append(rows.injuries, playerLabelTableModel{PlayerName: string(p.Name), Label: string(label), SortOrder: j})
			}
		}
		for j, tag := range p.Tags.Tags() {
			rows.tags = append(rows.tags, playerLabelTableModel{PlayerName: string(p.Name), Label: string(tag), SortOrder: j})
		}
	}
	return rows
}
