package enum

// Role names
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Permission names
const (
	PermViewDashboard   = "view-dashboard"
	PermCreateBills     = "create-bills"
	PermManageProducts  = "manage-products"
	PermManageServices  = "manage-services"
	PermManageCustomers = "manage-customers"
	PermViewReports     = "view-reports"
	PermManageUsers     = "manage-users"
	PermManageSettings  = "manage-settings"
)

// AllPermissions lists every permission seeded for the admin role.
var AllPermissions = []string{
	PermViewDashboard,
	PermCreateBills,
	PermManageProducts,
	PermManageServices,
	PermManageCustomers,
	PermViewReports,
	PermManageUsers,
	PermManageSettings,
}

// StaffPermissions is what counter staff can do.
var StaffPermissions = []string{
	PermViewDashboard,
	PermCreateBills,
	PermManageCustomers,
}
