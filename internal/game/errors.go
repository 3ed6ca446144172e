package game

import (
	"errors"
	"fmt"
)

// ErrIllegalAction marks an action or choice target that is not legal in the
// current state: wrong phase, invalid index, or a target outside the offered
// option set. The state is unchanged and the caller may retry.
var ErrIllegalAction = errors.New("illegal action")

// ErrProtocolViolation marks a decision-protocol breach: a choice submitted
// when none was requested, or a value not in the most recently offered set.
var ErrProtocolViolation = errors.New("protocol violation")

// ErrCatalog marks a duplicate or malformed card definition at catalog load.
// Fatal: game construction fails.
var ErrCatalog = errors.New("catalog integrity error")

// ErrResolverDefect marks an internal resolver invariant breach, such as the
// center re-trigger cap being exceeded. These are defects to fix, never
// conditions to suppress.
var ErrResolverDefect = errors.New("resolver defect")

func illegalf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrIllegalAction}, args...)...)
}

func protocolf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrProtocolViolation}, args...)...)
}

func catalogf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCatalog}, args...)...)
}

func defectf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrResolverDefect}, args...)...)
}
