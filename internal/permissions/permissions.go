package permissions

import (
	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
)

// Capability is an opaque token naming one permitted action or view. The
// client-side check is advisory only; the backend is the enforcement point.
type Capability string

const (
	CapViewAdminDashboard      Capability = "view_admin_dashboard"
	CapViewDepartmentDashboard Capability = "view_department_dashboard"
	CapViewManagementDashboard Capability = "view_management_dashboard"

	CapViewCategories   Capability = "view_categories"
	CapCreateCategories Capability = "create_categories"
	CapEditCategories   Capability = "edit_categories"
	CapDeleteCategories Capability = "delete_categories"

	CapViewAllocations   Capability = "view_allocations"
	CapCreateAllocations Capability = "create_allocations"
	CapEditAllocations   Capability = "edit_allocations"
	CapDeleteAllocations Capability = "delete_allocations"

	CapViewRequests   Capability = "view_requests"
	CapCreateRequests Capability = "create_requests"
	CapReviewRequests Capability = "review_requests"

	CapViewAnalytics Capability = "view_analytics"

	CapViewReports     Capability = "view_reports"
	CapGenerateReports Capability = "generate_reports"

	CapViewNotifications Capability = "view_notifications"

	CapManageUsers Capability = "manage_users"
)

// roleGrants is the static, total role-to-capability mapping. Every known
// role maps to a defined set; anything else resolves to nil (fail-closed).
var roleGrants = map[userDatamodel.Role][]Capability{
	userDatamodel.RoleFinanceAdmin: {
		CapViewAdminDashboard,
		CapViewCategories,
		CapCreateCategories,
		CapEditCategories,
		CapDeleteCategories,
		CapViewAllocations,
		CapCreateAllocations,
		CapEditAllocations,
		CapDeleteAllocations,
		CapViewRequests,
		CapReviewRequests,
		CapViewAnalytics,
		CapViewReports,
		CapGenerateReports,
		CapViewNotifications,
		CapManageUsers,
	},
	userDatamodel.RoleDepartmentHead: {
		CapViewDepartmentDashboard,
		CapViewCategories,
		CapViewAllocations,
		CapViewRequests,
		CapCreateRequests,
		CapViewReports,
		CapViewNotifications,
	},
	userDatamodel.RoleManagement: {
		CapViewManagementDashboard,
		CapViewCategories,
		CapViewAllocations,
		CapViewRequests,
		CapViewAnalytics,
		CapViewReports,
		CapGenerateReports,
		CapViewNotifications,
	},
}

// routeCapabilities maps navigation entries to the capabilities that make
// them visible. A route is offered when the role holds any one of them.
var routeCapabilities = map[string][]Capability{
	"/dashboard": {
		CapViewAdminDashboard,
		CapViewDepartmentDashboard,
		CapViewManagementDashboard,
	},
	"/categories":    {CapViewCategories},
	"/allocations":   {CapViewAllocations},
	"/requests":      {CapViewRequests},
	"/analytics":     {CapViewAnalytics},
	"/reports":       {CapViewReports},
	"/notifications": {CapViewNotifications},
	"/users":         {CapManageUsers},
}

type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

// HasPermission reports whether the role holds at least one of the required
// capabilities (OR semantics). An empty requirement or unknown role is always
// false.
func (c *Checker) HasPermission(role userDatamodel.Role, required ...Capability) bool {
	if len(required) == 0 {
		return false
	}
	grants := roleGrants[role]
	for _, granted := range grants {
		for _, req := range required {
			if granted == req {
				return true
			}
		}
	}
	return false
}

// Grants returns a copy of the capability set for a role; empty for an
// unrecognized role.
func (c *Checker) Grants(role userDatamodel.Role) []Capability {
	grants := roleGrants[role]
	out := make([]Capability, len(grants))
	copy(out, grants)
	return out
}

func (c *Checker) CanAccessRoute(role userDatamodel.Role, route string) bool {
	required, ok := routeCapabilities[route]
	if !ok {
		return false
	}
	return c.HasPermission(role, required...)
}

// VisibleRoutes derives the navigation entries offered to a role. Order is
// stable for rendering.
func (c *Checker) VisibleRoutes(role userDatamodel.Role) []string {
	ordered := []string{
		"/dashboard", "/categories", "/allocations", "/requests",
		"/analytics", "/reports", "/notifications", "/users",
	}
	var visible []string
	for _, route := range ordered {
		if c.CanAccessRoute(role, route) {
			visible = append(visible, route)
		}
	}
	return visible
}

func (c *Checker) CanReviewRequests(role userDatamodel.Role) bool {
	return c.HasPermission(role, CapReviewRequests)
}

func (c *Checker) CanManageCategories(role userDatamodel.Role) bool {
	return c.HasPermission(role, CapCreateCategories, CapEditCategories, CapDeleteCategories)
}

func (c *Checker) CanManageAllocations(role userDatamodel.Role) bool {
	return c.HasPermission(role, CapCreateAllocations, CapEditAllocations, CapDeleteAllocations)
}

func (c *Checker) IsAdmin(role userDatamodel.Role) bool {
	return c.HasPermission(role, CapViewAdminDashboard)
}
