package tendererrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error surfaced by the core wraps exactly one of these,
// so callers can classify with errors.Is and map to a transport status.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrDependency = errors.New("dependency failure") // state already committed
)

// Specific conditions, pre-wrapped with their kind.
var (
	ErrTenderNotFound      = fmt.Errorf("tender %w", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)

	ErrTenderClosed     = fmt.Errorf("%w: Tender is closed", ErrConflict)
	ErrDeadlinePassed   = fmt.Errorf("%w: Deadline passed", ErrConflict)
	ErrTenderArchived   = fmt.Errorf("%w: tender already archived", ErrConflict)
	ErrNotPending       = fmt.Errorf("%w: application no longer pending", ErrConflict)
	ErrAcceptedExists   = fmt.Errorf("%w: tender has an accepted application", ErrConflict)
	ErrArchivedReadOnly = fmt.Errorf("%w: archived tender cannot be edited", ErrConflict)
)
