package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/club-roster/internal/domain/filter"
	"github.com/riskibarqy/club-roster/internal/domain/player"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/platform/uniquelist"
	"github.com/riskibarqy/club-roster/internal/platform/validation"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict with roster state")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify tags a domain error with the use case category callers map on.
// The domain error stays in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, roster.ErrInvalidSnapshot):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, uniquelist.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, uniquelist.ErrDuplicate),
		errors.Is(err, roster.ErrTeamNotEmpty),
		errors.Is(err, roster.ErrPositionAssigned),
		errors.Is(err, roster.ErrIllegalCaptainTransition),
		errors.Is(err, player.ErrDuplicateInjury):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, player.ErrIllegalInjuryAssignment),
		errors.Is(err, player.ErrMixedInjurySet),
		errors.Is(err, player.ErrDuplicateTag),
		errors.Is(err, validation.ErrInvalidValue),
		errors.Is(err, filter.ErrNoCriteria),
		errors.Is(err, filter.ErrDuplicateCriterion),
		errors.Is(err, filter.ErrUnknownCriterion):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
