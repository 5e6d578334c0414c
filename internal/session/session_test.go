package session

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/auth"
	"github.com/onlineretail/storefront/internal/cart"
	"github.com/onlineretail/storefront/internal/product"
	"github.com/onlineretail/storefront/internal/report"
)

type fakeResolver struct {
	AuthenticateFn func(ctx context.Context, identifier, secret string) (*auth.Principal, error)
	ResolveRoleFn  func(ctx context.Context, p *auth.Principal) (auth.Role, error)
}

func (f *fakeResolver) Authenticate(ctx context.Context, id, secret string) (*auth.Principal, error) {
	return f.AuthenticateFn(ctx, id, secret)
}

func (f *fakeResolver) ResolveRole(ctx context.Context, p *auth.Principal) (auth.Role, error) {
	return f.ResolveRoleFn(ctx, p)
}

// mockHandle builds a principal whose handle is a sqlmock connection, so the
// tests can assert the handle was released exactly when expected.
func mockHandle(t *testing.T, id string) (*auth.Principal, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return &auth.Principal{ID: id, Conn: sqlx.NewDb(db, "sqlmock")}, mock
}

func resolverFor(t *testing.T, role auth.Role) (auth.Resolver, sqlmock.Sqlmock) {
	t.Helper()
	principal, mock := mockHandle(t, "u1")
	return &fakeResolver{
		AuthenticateFn: func(_ context.Context, id, secret string) (*auth.Principal, error) {
			if secret != "good" {
				return nil, apperr.ErrInvalidCredentials
			}
			return principal, nil
		},
		ResolveRoleFn: func(context.Context, *auth.Principal) (auth.Role, error) {
			if role == auth.RoleUnknown {
				return auth.RoleUnknown, apperr.ErrRoleUnresolvable
			}
			return role, nil
		},
	}, mock
}

func TestLoginEntersMatchingRoleState(t *testing.T) {
	tests := []struct {
		role auth.Role
		want State
	}{
		{auth.RoleCustomer, CustomerSession},
		{auth.RoleRetailer, RetailerSession},
		{auth.RoleManager, ManagerSession},
		{auth.RoleAdministrator, AdministratorSession},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			resolver, _ := resolverFor(t, tt.role)
			reg := NewRegistry(resolver, nil, nil, zap.NewNop())

			sess, err := reg.Login(context.Background(), "u1", "good")
			require.NoError(t, err)
			assert.Equal(t, tt.want, sess.State())
			assert.Equal(t, "u1", sess.Owner())

			got, ok := reg.Get(sess.ID)
			require.True(t, ok)
			assert.Same(t, sess, got)
		})
	}
}

func TestLoginBadCredentials(t *testing.T) {
	resolver, _ := resolverFor(t, auth.RoleCustomer)
	reg := NewRegistry(resolver, nil, nil, zap.NewNop())

	_, err := reg.Login(context.Background(), "u1", "bad")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestLoginUnresolvableRoleReleasesHandle(t *testing.T) {
	resolver, mock := resolverFor(t, auth.RoleUnknown)
	reg := NewRegistry(resolver, nil, nil, zap.NewNop())

	mock.ExpectClose()

	_, err := reg.Login(context.Background(), "u1", "good")
	assert.ErrorIs(t, err, apperr.ErrRoleUnresolvable)
	assert.NoError(t, mock.ExpectationsWereMet(), "handle must be released on role failure")
}

func TestLogoutReleasesHandleAndInvalidatesSession(t *testing.T) {
	resolver, mock := resolverFor(t, auth.RoleCustomer)
	reg := NewRegistry(resolver, nil, nil, zap.NewNop())

	sess, err := reg.Login(context.Background(), "u1", "good")
	require.NoError(t, err)

	mock.ExpectClose()
	require.NoError(t, reg.Logout(sess.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, Unauthenticated, sess.State())

	// The token is gone and the stale handle refuses further work.
	_, ok := reg.Get(sess.ID)
	assert.False(t, ok)

	err = sess.WithCart(func(cart.UseCase) error { return nil })
	assert.ErrorIs(t, err, apperr.ErrConnectionUnavailable)

	assert.ErrorIs(t, reg.Logout(sess.ID), apperr.ErrConnectionUnavailable)
}

func TestCapabilityGatingPerRole(t *testing.T) {
	tests := []struct {
		role        auth.Role
		cart        bool
		catalog     bool
		reports     bool
		description string
	}{
		{auth.RoleCustomer, true, false, false, "customer shops only"},
		{auth.RoleRetailer, false, true, false, "retailer manages catalog only"},
		{auth.RoleManager, false, false, true, "manager reports only"},
		{auth.RoleAdministrator, true, true, true, "administrator has oversight"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			resolver, _ := resolverFor(t, tt.role)
			reg := NewRegistry(resolver, nil, nil, zap.NewNop())
			sess, err := reg.Login(context.Background(), "u1", "good")
			require.NoError(t, err)

			// Browsing is open to every authenticated role.
			assert.NoError(t, sess.WithBrowse(func(product.UseCase) error { return nil }))

			check := func(permitted bool, err error) {
				if permitted {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, apperr.ErrNotPermitted)
				}
			}
			check(tt.cart, sess.WithCart(func(cart.UseCase) error { return nil }))
			check(tt.catalog, sess.WithCatalog(func(product.UseCase) error { return nil }))
			check(tt.reports, sess.WithReports(func(report.Repository) error { return nil }))
		})
	}
}

func TestReloginReResolvesRole(t *testing.T) {
	// The role is re-resolved on every login; a promotion between sessions
	// must be visible after logout/login, never served from a stale cache.
	roles := []auth.Role{auth.RoleCustomer, auth.RoleManager}
	call := 0
	resolver := &fakeResolver{
		AuthenticateFn: func(context.Context, string, string) (*auth.Principal, error) {
			principal, mock := mockHandle(t, "u1")
			mock.ExpectClose()
			return principal, nil
		},
		ResolveRoleFn: func(context.Context, *auth.Principal) (auth.Role, error) {
			role := roles[call]
			call++
			return role, nil
		},
	}
	reg := NewRegistry(resolver, nil, nil, zap.NewNop())

	first, err := reg.Login(context.Background(), "u1", "good")
	require.NoError(t, err)
	assert.Equal(t, CustomerSession, first.State())
	require.NoError(t, reg.Logout(first.ID))

	second, err := reg.Login(context.Background(), "u1", "good")
	require.NoError(t, err)
	assert.Equal(t, ManagerSession, second.State())
}

func TestCloseAllReleasesEverySession(t *testing.T) {
	resolver, mock := resolverFor(t, auth.RoleCustomer)
	reg := NewRegistry(resolver, nil, nil, zap.NewNop())

	sess, err := reg.Login(context.Background(), "u1", "good")
	require.NoError(t, err)

	mock.ExpectClose()
	reg.CloseAll()
	assert.NoError(t, mock.ExpectationsWereMet())

	_, ok := reg.Get(sess.ID)
	assert.False(t, ok)
}
