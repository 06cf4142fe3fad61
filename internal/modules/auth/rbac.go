package auth

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// ParseRole maps a stored role string onto the closed enumeration.
// Unknown strings yield an empty role, which holds no permissions.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return Role(s)
	}
	return ""
}

// Permission names a single gated capability.
type Permission string

const (
	PermSubmitJobs        Permission = "jobs:submit"
	PermViewOwnJobs       Permission = "jobs:view_own"
	PermManageJobs        Permission = "jobs:manage"
	PermDeleteJobs        Permission = "jobs:delete"
	PermManageCustomers   Permission = "customers:manage"
	PermRequestQuotes     Permission = "quotes:request"
	PermManageQuotes      Permission = "quotes:manage"
	PermManageInvoices    Permission = "invoices:manage"
	PermViewAnalytics     Permission = "analytics:view"
	PermManageDeliveries  Permission = "deliveries:manage"
	PermManagePayroll     Permission = "payroll:manage"
	PermManageSettings    Permission = "settings:manage"
	PermManageShowcase    Permission = "showcase:manage"
	PermSendNotifications Permission = "notifications:send"
	PermManageUsers       Permission = "users:manage"
)

// rolePermissions is the single permission table. Checks go through Can;
// nothing else compares role strings.
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermSubmitJobs:        true,
		PermViewOwnJobs:       true,
		PermManageJobs:        true,
		PermDeleteJobs:        true,
		PermManageCustomers:   true,
		PermRequestQuotes:     true,
		PermManageQuotes:      true,
		PermManageInvoices:    true,
		PermViewAnalytics:     true,
		PermManageDeliveries:  true,
		PermManagePayroll:     true,
		PermManageSettings:    true,
		PermManageShowcase:    true,
		PermSendNotifications: true,
		PermManageUsers:       true,
	},
	RoleStaff: {
		PermSubmitJobs:        true,
		PermViewOwnJobs:       true,
		PermManageJobs:        true,
		PermManageCustomers:   true,
		PermManageQuotes:      true,
		PermManageInvoices:    true,
		PermViewAnalytics:     true,
		PermManageDeliveries:  true,
		PermManageShowcase:    true,
		PermSendNotifications: true,
	},
	RoleCustomer: {
		PermSubmitJobs:    true,
		PermViewOwnJobs:   true,
		PermRequestQuotes: true,
	},
}

// Can reports whether a role holds a permission.
func Can(role Role, perm Permission) bool {
	return rolePermissions[role][perm]
}
