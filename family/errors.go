package family

import "errors"

var (
	ErrEmptyLabels       = errors.New("hole must have at least one option label")
	ErrHoleOutOfRange    = errors.New("hole index out of range")
	ErrEmptyOptions      = errors.New("option set must not be empty")
	ErrOptionOutOfRange  = errors.New("option index out of range")
	ErrNotSubset         = errors.New("options are not a subset of the hole's assumed options")
	ErrOverlappingGroups = errors.New("split groups overlap")
	ErrArity             = errors.New("number of values does not match number of holes")

	// ErrMalformedHoleName is returned when a hole name does not follow the
	// Kind([observation],memory) convention of controller holes.
	ErrMalformedHoleName = errors.New("malformed hole name")
)
