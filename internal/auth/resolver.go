package auth

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Principal is an authenticated identity together with the live store handle
// bound to it. The handle is the only channel for the session's operations;
// no secondary elevated handle exists.
type Principal struct {
	ID   string
	Conn *sqlx.DB
}

// Release closes the principal's store handle. Safe to call once; the session
// layer guarantees exactly-once release on every exit path.
func (p *Principal) Release() error {
	if p == nil || p.Conn == nil {
		return nil
	}
	return p.Conn.Close()
}

// Resolver turns a credential pair into a principal and exactly one role.
// Authentication failures and unresolvable roles are distinct errors;
// neither is retried here.
type Resolver interface {
	Authenticate(ctx context.Context, identifier, secret string) (*Principal, error)
	ResolveRole(ctx context.Context, p *Principal) (Role, error)
}
