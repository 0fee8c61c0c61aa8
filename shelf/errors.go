package shelf

import "errors"

// Sentinel errors raised by this package. Callers classify with errors.Is;
// wrapped context never hides the sentinel.
var (
	// ErrNotFound indicates that the requested key is absent.
	ErrNotFound = errors.New("key not found")

	// ErrClosed indicates use of a shelf after Close. Only Close itself
	// is idempotent; every other operation on a closed shelf fails.
	ErrClosed = errors.New("shelf is closed")

	// ErrDecode indicates that stored bytes could not be reconstituted
	// into a value by the typed shelf's codec.
	ErrDecode = errors.New("cannot decode stored value")

	// ErrReleaseWithoutAcquire indicates a registry release with no
	// matching acquire. It is a programming error: tolerating it would
	// close a shared connection still in use elsewhere.
	ErrReleaseWithoutAcquire = errors.New("release without matching acquire")
)

// IsNotFound reports whether err indicates a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
