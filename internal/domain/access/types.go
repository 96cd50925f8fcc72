package access

import "errors"

var (
	ErrUnauthenticated  = errors.New("authentication credentials were not provided")
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
)

// Identity is the caller as resolved from the bearer token. The zero value is
// the anonymous caller.
type Identity struct {
	UserID uint
}

func (i Identity) Anonymous() bool { return i.UserID == 0 }

type Decision string

const (
	Allow           Decision = "allow"
	Unauthenticated Decision = "unauthenticated"
	Forbidden       Decision = "forbidden"
)

// Err maps a decision onto the error a handler should report, nil for Allow.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case Unauthenticated:
		return ErrUnauthenticated
	default:
		return ErrPermissionDenied
	}
}
