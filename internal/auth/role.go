package auth

import (
	"fmt"

	"github.com/onlineretail/storefront/internal/apperr"
)

// Role is the closed set of capability classes a principal can hold. Roles are
// resolved server-side from the store's role token; there is no default.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleRetailer
	RoleManager
	RoleAdministrator
)

// Store-issued role tokens, as returned by
// online_retail.get_current_user_roles().
const (
	tokenCustomer      = "customer_role"
	tokenRetailer      = "retailer_role"
	tokenManager       = "manager_role"
	tokenAdministrator = "administrator_role"
)

// ParseRole maps a store role token onto the closed Role enum. An unmapped
// token is ErrRoleUnresolvable, never a silent fallthrough to some default.
func ParseRole(token string) (Role, error) {
	switch token {
	case tokenCustomer:
		return RoleCustomer, nil
	case tokenRetailer:
		return RoleRetailer, nil
	case tokenManager:
		return RoleManager, nil
	case tokenAdministrator:
		return RoleAdministrator, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: token %q", apperr.ErrRoleUnresolvable, token)
	}
}

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleRetailer:
		return "retailer"
	case RoleManager:
		return "manager"
	case RoleAdministrator:
		return "administrator"
	default:
		return "unknown"
	}
}
