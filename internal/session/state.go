package session

import "github.com/onlineretail/storefront/internal/auth"

// State is the session state machine's position. There is no error state:
// every failed login leaves the machine in Unauthenticated, and the four
// authenticated states are reachable only through a successful login.
type State int

const (
	Unauthenticated State = iota
	CustomerSession
	RetailerSession
	ManagerSession
	AdministratorSession
)

func (s State) String() string {
	switch s {
	case CustomerSession:
		return "customer_session"
	case RetailerSession:
		return "retailer_session"
	case ManagerSession:
		return "manager_session"
	case AdministratorSession:
		return "administrator_session"
	default:
		return "unauthenticated"
	}
}

func stateForRole(r auth.Role) State {
	switch r {
	case auth.RoleCustomer:
		return CustomerSession
	case auth.RoleRetailer:
		return RetailerSession
	case auth.RoleManager:
		return ManagerSession
	case auth.RoleAdministrator:
		return AdministratorSession
	default:
		return Unauthenticated
	}
}

// Capability is one gated operation family of the core.
type Capability int

const (
	// CapBrowse covers the read-only product views.
	CapBrowse Capability = iota
	// CapShop covers the cart staging and merge pipeline.
	CapShop
	// CapManageCatalog covers product/inventory pair writes.
	CapManageCatalog
	// CapViewReports covers the read-only reporting surface.
	CapViewReports
)

var roleCapabilities = map[auth.Role]map[Capability]bool{
	auth.RoleCustomer: {
		CapBrowse: true,
		CapShop:   true,
	},
	auth.RoleRetailer: {
		CapBrowse:        true,
		CapManageCatalog: true,
	},
	auth.RoleManager: {
		CapBrowse:      true,
		CapViewReports: true,
	},
	// Oversight role: everything.
	auth.RoleAdministrator: {
		CapBrowse:        true,
		CapShop:          true,
		CapManageCatalog: true,
		CapViewReports:   true,
	},
}

func roleCan(r auth.Role, c Capability) bool {
	return roleCapabilities[r][c]
}
