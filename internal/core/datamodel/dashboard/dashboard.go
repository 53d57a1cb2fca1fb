package dashboard

// ManagementDashboard is the organization-wide summary payload returned by
// /management/dashboard (and, minus trends, /dashboard/management).
type ManagementDashboard struct {
	Summary           OrgSummary         `json:"summary"`
	UtilizationTrends []UtilizationTrend `json:"utilizationTrends"`
}

type OrgSummary struct {
	GrandTotalAllocation float64             `json:"grandTotalAllocation"`
	GrandTotalSpent      float64             `json:"grandTotalSpent"`
	Departments          []DepartmentSummary `json:"departments"`
}

type DepartmentSummary struct {
	DepartmentID    int64             `json:"departmentId"`
	DepartmentName  string            `json:"departmentName"`
	TotalAllocation float64           `json:"totalAllocation"`
	TotalSpent      float64           `json:"totalSpent"`
	Categories      []CategorySummary `json:"categories"`
}

type CategorySummary struct {
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Allocation   float64 `json:"allocation"`
	Spent        float64 `json:"spent"`
}

type UtilizationTrend struct {
	DepartmentID          int64   `json:"departmentId"`
	DepartmentName        string  `json:"departmentName"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	IsHighUtilization     bool    `json:"isHighUtilization"`
}

// DepartmentPerformance is one row of /management/performance.
type DepartmentPerformance struct {
	DepartmentID          int64   `json:"departmentId"`
	DepartmentName        string  `json:"departmentName"`
	TotalBudget           float64 `json:"totalBudget"`
	TotalSpent            float64 `json:"totalSpent"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	PerformanceScore      float64 `json:"performanceScore"`
}
