package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/onlineretail/storefront/config"
	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/auth"
)

// Resolver authenticates by opening a Postgres connection with the end user's
// own database login. The store itself is therefore the credential authority,
// and its GRANTs remain an enforcement point independent of the session gate.
type Resolver struct {
	cfg *config.PostgresConfig
}

func NewResolver(cfg *config.PostgresConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

func (r *Resolver) Authenticate(ctx context.Context, identifier, secret string) (*auth.Principal, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		r.cfg.Host, r.cfg.Port, identifier, secret, r.cfg.DBName, r.cfg.SSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidCredentials, err)
	}

	// One session, one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Duration(r.cfg.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(r.cfg.ConnMaxIdleTime) * time.Second)

	// The store's view of the identity is canonical, not the submitted string.
	var principalID string
	if err := db.GetContext(ctx, &principalID, "SELECT CURRENT_USER"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", apperr.ErrConnectionUnavailable, err)
	}

	return &auth.Principal{ID: principalID, Conn: db}, nil
}

func (r *Resolver) ResolveRole(ctx context.Context, p *auth.Principal) (auth.Role, error) {
	var token sql.NullString
	err := p.Conn.GetContext(ctx, &token, "SELECT online_retail.get_current_user_roles()")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.RoleUnknown, apperr.ErrRoleUnresolvable
		}
		return auth.RoleUnknown, fmt.Errorf("%w: %v", apperr.ErrConnectionUnavailable, err)
	}
	if !token.Valid || token.String == "" {
		return auth.RoleUnknown, apperr.ErrRoleUnresolvable
	}
	return auth.ParseRole(token.String)
}
