package user

import "time"

// Role is the closed role enumeration used by the backend. There is no
// hierarchy between roles, only a flat capability mapping.
type Role int

const (
	RoleUnknown        Role = 0
	RoleFinanceAdmin   Role = 1
	RoleDepartmentHead Role = 2
	RoleManagement     Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleFinanceAdmin:
		return "FinanceAdmin"
	case RoleDepartmentHead:
		return "DepartmentHead"
	case RoleManagement:
		return "Management"
	default:
		return "Unknown"
	}
}

// Label returns the human-readable role name used on screens.
func (r Role) Label() string {
	switch r {
	case RoleFinanceAdmin:
		return "Finance Admin"
	case RoleDepartmentHead:
		return "Department Head"
	case RoleManagement:
		return "Management"
	default:
		return "Unknown"
	}
}

func (r Role) IsValid() bool {
	return r == RoleFinanceAdmin || r == RoleDepartmentHead || r == RoleManagement
}

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// Department is the directory entry derived either from the dedicated
// /departments endpoint or from the management summary rollup.
type Department struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	TotalAllocation float64   `json:"totalAllocation"`
	TotalSpent      float64   `json:"totalSpent"`
	CategoriesCount int       `json:"categoriesCount"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}
