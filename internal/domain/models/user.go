package models

import "time"

// Role is a staff role controlling which operations a user may perform.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleReceptionist Role = "receptionist"
	RoleHousekeeper  Role = "housekeeper"
	RoleMaintenance  Role = "maintenance"
)

var roleLabels = map[Role]string{
	RoleAdmin:        "Administrador",
	RoleManager:      "Gerente",
	RoleReceptionist: "Recepcionista",
	RoleHousekeeper:  "Gobernanta",
	RoleMaintenance:  "Mantenimiento",
}

// Valid reports whether r is a provisioned role.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the role's display name.
func (r Role) Label() string {
	return roleLabels[r]
}

// Permission names a discrete capability granted to roles.
type Permission string

const (
	PermViewDashboard Permission = "view_dashboard"

	PermViewShifts       Permission = "view_shifts"
	PermCreateShift      Permission = "create_shift"
	PermEditShift        Permission = "edit_shift"
	PermDeleteShift      Permission = "delete_shift"
	PermViewShiftHistory Permission = "view_shift_history"

	PermCheckin  Permission = "checkin"
	PermCheckout Permission = "checkout"

	PermViewFinances Permission = "view_finances"
	PermManageCash   Permission = "manage_caja"
	PermViewReports  Permission = "view_reports"

	PermViewUsers  Permission = "view_users"
	PermCreateUser Permission = "create_user"
	PermEditUser   Permission = "edit_user"
	PermDeleteUser Permission = "delete_user"

	PermViewMetrics    Permission = "view_metrics"
	PermViewAllMetrics Permission = "view_all_metrics"

	PermViewAlerts        Permission = "view_alerts"
	PermCreateAlert       Permission = "create_alert"
	PermEditAlert         Permission = "edit_alert"
	PermDeleteAlert       Permission = "delete_alert"
	PermCreateGlobalAlert Permission = "create_global_alert"
)

var allPermissions = []Permission{
	PermViewDashboard,
	PermViewShifts, PermCreateShift, PermEditShift, PermDeleteShift, PermViewShiftHistory,
	PermCheckin, PermCheckout,
	PermViewFinances, PermManageCash, PermViewReports,
	PermViewUsers, PermCreateUser, PermEditUser, PermDeleteUser,
	PermViewMetrics, PermViewAllMetrics,
	PermViewAlerts, PermCreateAlert, PermEditAlert, PermDeleteAlert, PermCreateGlobalAlert,
}

var rolePermissions = map[Role][]Permission{
	RoleAdmin: allPermissions,
	RoleManager: {
		PermViewDashboard,
		PermViewShifts, PermViewShiftHistory,
		PermViewFinances, PermViewReports,
		PermViewUsers,
		PermViewMetrics, PermViewAllMetrics,
		PermViewAlerts, PermCreateAlert, PermEditAlert, PermDeleteAlert, PermCreateGlobalAlert,
	},
	RoleReceptionist: {
		PermViewDashboard,
		PermViewShifts, PermCreateShift, PermViewShiftHistory,
		PermCheckin, PermCheckout,
		PermManageCash,
		PermViewAlerts, PermCreateAlert,
	},
	RoleHousekeeper: {
		PermViewDashboard,
		PermViewAlerts, PermCreateAlert,
	},
	RoleMaintenance: {
		PermViewDashboard,
		PermViewAlerts, PermCreateAlert,
	},
}

// RolePermissions returns the permissions granted to a role.
func RolePermissions(role Role) []Permission {
	return rolePermissions[role]
}

// HasPermission reports whether the given role grants a permission.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// User is a provisioned staff account. Passwords are stored bcrypt-hashed
// and never serialized back out.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	Phone        string    `bson:"phone" json:"phone"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
