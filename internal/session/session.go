package session

import (
	"fmt"
	"sync"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/auth"
	"github.com/onlineretail/storefront/internal/cart"
	"github.com/onlineretail/storefront/internal/product"
	"github.com/onlineretail/storefront/internal/report"
)

// Session binds an authenticated principal, its resolved role, and the single
// store handle the principal owns. Operations and Close are serialized on one
// mutex, so logout waits for any in-flight atomic unit to finish and the
// handle is never closed under a running operation.
type Session struct {
	ID string

	principal *auth.Principal
	role      auth.Role

	products product.UseCase
	cart     cart.UseCase
	reports  report.Repository

	mu     sync.Mutex
	closed bool
}

func (s *Session) Owner() string {
	return s.principal.ID
}

func (s *Session) Role() auth.Role {
	return s.role
}

// State reports the machine's current position. A closed session is back at
// Unauthenticated.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Unauthenticated
	}
	return stateForRole(s.role)
}

func (s *Session) guard(c Capability) error {
	if s.closed {
		return apperr.ErrConnectionUnavailable
	}
	if !roleCan(s.role, c) {
		return fmt.Errorf("%w: role %s", apperr.ErrNotPermitted, s.role)
	}
	return nil
}

// WithBrowse runs fn against the read-only product views.
func (s *Session) WithBrowse(fn func(product.UseCase) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(CapBrowse); err != nil {
		return err
	}
	return fn(s.products)
}

// WithCatalog runs fn against the inventory consistency manager's write surface.
func (s *Session) WithCatalog(fn func(product.UseCase) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(CapManageCatalog); err != nil {
		return err
	}
	return fn(s.products)
}

// WithCart runs fn against the staging and merge pipeline.
func (s *Session) WithCart(fn func(cart.UseCase) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(CapShop); err != nil {
		return err
	}
	return fn(s.cart)
}

// WithReports runs fn against the read-only reporting surface.
func (s *Session) WithReports(fn func(report.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(CapViewReports); err != nil {
		return err
	}
	return fn(s.reports)
}

// Close releases the principal's store handle exactly once and parks the
// machine at Unauthenticated. It blocks until any in-flight operation
// completes its unit of work.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.principal.Release()
}
