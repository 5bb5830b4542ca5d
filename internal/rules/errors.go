package rules

import "fmt"

// Reason identifies which rule-set invariant a configuration violated
type Reason int

const (
	InvalidDeckCount Reason = iota + 1
	InvalidPlayerCount
	InvalidBetRange
	InvalidMaxHands
	InvalidDoubleDownWhitelist
	InvalidShuffleThreshold
)

// String returns the string representation of a reason
func (r Reason) String() string {
	switch r {
	case InvalidDeckCount:
		return "must have at least 1 deck"
	case InvalidPlayerCount:
		return "must have at least 1 player"
	case InvalidBetRange:
		return "min bet must be positive and not exceed max bet"
	case InvalidMaxHands:
		return "must allow at least 2 hands"
	case InvalidDoubleDownWhitelist:
		return "double down totals must be between 3 and 20"
	case InvalidShuffleThreshold:
		return "reshuffle threshold must not be negative"
	default:
		return "unknown rule-set error"
	}
}

// Error is returned by New when a Config breaks a rule-set invariant
type Error struct {
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "invalid rules: " + e.Reason.String()
	}
	return fmt.Sprintf("invalid rules: %s (%s)", e.Reason, e.Detail)
}

// Is matches any *Error with the same Reason, so the sentinels below work
// with errors.Is regardless of Detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == e.Reason
}

var (
	ErrInvalidDeckCount           = &Error{Reason: InvalidDeckCount}
	ErrInvalidPlayerCount         = &Error{Reason: InvalidPlayerCount}
	ErrInvalidBetRange            = &Error{Reason: InvalidBetRange}
	ErrInvalidMaxHands            = &Error{Reason: InvalidMaxHands}
	ErrInvalidDoubleDownWhitelist = &Error{Reason: InvalidDoubleDownWhitelist}
	ErrInvalidShuffleThreshold    = &Error{Reason: InvalidShuffleThreshold}
)

func invalid(r Reason, format string, args ...any) error {
	return &Error{Reason: r, Detail: fmt.Sprintf(format, args...)}
}
