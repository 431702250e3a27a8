package player

import crerr "github.com/cockroachdb/errors"

var (
	ErrIllegalInjuryAssignment = crerr.New("FIT cannot be assigned as an injury")
	ErrDuplicateInjury         = crerr.New("injury already assigned")
	ErrMixedInjurySet          = crerr.New("FIT cannot be combined with other injuries")
	ErrDuplicateTag            = crerr.New("duplicate tag")
)
