package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/auth"
	cartRepoPkg "github.com/onlineretail/storefront/internal/cart/repository"
	cartUCPkg "github.com/onlineretail/storefront/internal/cart/usecase"
	prodRepoPkg "github.com/onlineretail/storefront/internal/product/repository"
	prodUCPkg "github.com/onlineretail/storefront/internal/product/usecase"
	reportRepoPkg "github.com/onlineretail/storefront/internal/report/repository"
)

// Registry drives login and logout transitions and tracks live sessions by
// token. The resolver is the only path into an authenticated state; every
// login re-resolves the role, so a stale role never crosses a logout/login
// boundary.
type Registry struct {
	resolver auth.Resolver
	cache    *redis.Client
	events   *kafka.Writer
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(resolver auth.Resolver, cache *redis.Client, events *kafka.Writer, log *zap.Logger) *Registry {
	return &Registry{
		resolver: resolver,
		cache:    cache,
		events:   events,
		logger:   log,
		sessions: make(map[string]*Session),
	}
}

// Login authenticates, resolves the role, and builds the session's capability
// set over the principal's own handle. Any failure releases the handle and
// leaves the caller in Unauthenticated; a partially-authenticated session is
// never registered.
func (r *Registry) Login(ctx context.Context, identifier, secret string) (*Session, error) {
	principal, err := r.resolver.Authenticate(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}

	role, err := r.resolver.ResolveRole(ctx, principal)
	if err != nil {
		if relErr := principal.Release(); relErr != nil {
			r.logger.Warn("failed to release handle after role failure",
				zap.String("principal", principal.ID), zap.Error(relErr))
		}
		return nil, err
	}

	prodRepo := prodRepoPkg.NewPGRepository(principal.Conn)
	cartRepo := cartRepoPkg.NewPGRepository(principal.Conn)
	reportRepo := reportRepoPkg.NewPGRepository(principal.Conn)

	sess := &Session{
		ID:        uuid.New().String(),
		principal: principal,
		role:      role,
		products:  prodUCPkg.NewProductUseCase(prodRepo, r.cache, r.logger),
		cart:      cartUCPkg.NewCartUseCase(cartRepo, r.events, r.logger),
		reports:   reportRepo,
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	r.logger.Info("session opened",
		zap.String("principal", principal.ID),
		zap.Stringer("role", role))
	return sess, nil
}

func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[token]
	return sess, ok
}

// Logout always returns the session to Unauthenticated and releases its
// handle. An unknown or already-released token is ErrConnectionUnavailable.
func (r *Registry) Logout(token string) error {
	r.mu.Lock()
	sess, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()

	if !ok {
		return apperr.ErrConnectionUnavailable
	}

	err := sess.Close()
	r.logger.Info("session closed",
		zap.String("principal", sess.Owner()),
		zap.Stringer("role", sess.Role()))
	return err
}

// CloseAll releases every live session, for server shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, sess := range r.sessions {
		if err := sess.Close(); err != nil {
			r.logger.Warn("failed to close session", zap.String("token", token), zap.Error(err))
		}
		delete(r.sessions, token)
	}
}
