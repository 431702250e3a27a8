package roster

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/platform/uniquelist"
)

// Per-kind errors wrap the generic uniquelist errors, so
// errors.Is(err, uniquelist.ErrDuplicate) holds for every duplicate.
var (
	ErrDuplicatePerson   = crerr.Wrap(uniquelist.ErrDuplicate, "person")
	ErrDuplicateTeam     = crerr.Wrap(uniquelist.ErrDuplicate, "team")
	ErrDuplicatePosition = crerr.Wrap(uniquelist.ErrDuplicate, "position")

	ErrPersonNotFound   = crerr.Wrap(uniquelist.ErrNotFound, "person")
	ErrTeamNotFound     = crerr.Wrap(uniquelist.ErrNotFound, "team")
	ErrPositionNotFound = crerr.Wrap(uniquelist.ErrNotFound, "position")

	ErrTeamNotEmpty             = crerr.New("team still has players")
	ErrPositionAssigned         = crerr.New("position is assigned to a player")
	ErrIllegalCaptainTransition = crerr.New("illegal captain transition")
	ErrInvalidSnapshot          = crerr.New("invalid roster snapshot")
)

// Injury errors live next to the injury set; aliased here so callers can
// match the whole taxonomy from one package.
var (
	ErrIllegalInjuryAssignment = player.ErrIllegalInjuryAssignment
	ErrDuplicateInjury         = player.ErrDuplicateInjury
)
