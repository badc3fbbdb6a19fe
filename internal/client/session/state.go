package session

import "errors"

// State is the resolution state of a session.
type State int

const (
	Unresolved State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyAuthenticated = errors.New("already logged in")
	ErrNotResolved          = errors.New("session not resolved yet")
	ErrAlreadyResolved      = errors.New("session already resolved")
	ErrNotAuthenticated     = errors.New("not logged in")
)
