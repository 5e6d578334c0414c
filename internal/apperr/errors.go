package apperr

import "errors"

// Sentinel errors for the storefront core. Callers classify failures with
// errors.Is; anything wrapping ErrAtomicUnitAborted was rolled back in full.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrRoleUnresolvable      = errors.New("role unresolvable for authenticated identity")
	ErrDuplicateProductID    = errors.New("duplicate product id")
	ErrProductNotFound       = errors.New("product not found")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInvalidPrice          = errors.New("invalid price")
	ErrMergeScopeViolation   = errors.New("merge scoped to a different owner")
	ErrConnectionUnavailable = errors.New("session connection unavailable")
	ErrAtomicUnitAborted     = errors.New("atomic unit aborted")
	ErrNotPermitted          = errors.New("operation not permitted for role")
)

// IsFatal reports whether err should terminate the session. Domain errors are
// recoverable; only a lost connection ends the session (see session.Registry).
func IsFatal(err error) bool {
	return errors.Is(err, ErrConnectionUnavailable)
}
