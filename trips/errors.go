package trips

import "errors"

var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrDayNotFound   = errors.New("day not found")
	ErrEventNotFound = errors.New("event to update not found")

	// ErrConflictExceeded is returned when the conditional-write retry
	// loop runs out of attempts against concurrent writers.
	ErrConflictExceeded = errors.New("too many concurrent writes, giving up")

	errRevisionConflict = errors.New("revision conflict")
)

// NotFound reports whether err belongs to the not-found class.
func NotFound(err error) bool {
	return errors.Is(err, ErrTripNotFound) ||
		errors.Is(err, ErrDayNotFound) ||
		errors.Is(err, ErrEventNotFound)
}
