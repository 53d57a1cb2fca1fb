package dashboard

import (
	allocationDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/allocation"
	categoryDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/category"
	dashboardDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/dashboard"
	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
)

// Band statuses, ordered from worst to best.
const (
	StatusExceeded = "exceeded"
	StatusWarning  = "warning"
	StatusInfo     = "info"
	StatusGood     = "good"
)

// BandConfig maps a utilization percentage to a status. Thresholds are
// inclusive lower bounds checked worst-first.
type BandConfig struct {
	Exceeded float64
	Warning  float64
	Info     float64
}

// HelperBands is the banding used by badge and progress helpers.
var HelperBands = BandConfig{Exceeded: 100, Warning: 90, Info: 75}

// TableBands is the coarser banding used by department tables.
var TableBands = BandConfig{Exceeded: 100, Warning: 80, Info: 60}

func (c BandConfig) Status(utilization float64) string {
	switch {
	case utilization >= c.Exceeded:
		return StatusExceeded
	case utilization >= c.Warning:
		return StatusWarning
	case utilization >= c.Info:
		return StatusInfo
	default:
		return StatusGood
	}
}

type AdminView struct {
	TotalCategories   int
	ActiveAllocations int
	PendingRequests   int
	TotalBudget       float64
	Summary           *dashboardDatamodel.OrgSummary
	Failures          map[string]string
}

type CategoryRow struct {
	CategoryID   int64
	CategoryName string
	Allocation   float64
	Spent        float64
	Utilization  int
	Status       string
}

type DepartmentView struct {
	DepartmentID    int64
	DepartmentName  string
	TotalAllocation float64
	TotalSpent      float64
	Utilization     int
	Categories      []CategoryRow
	Requests        []requestDatamodel.Request
	HasData         bool
	Failures        map[string]string
}

type DepartmentRow struct {
	DepartmentID    int64
	DepartmentName  string
	TotalAllocation float64
	TotalSpent      float64
	Utilization     int
	Status          string
}

type ManagementView struct {
	GrandTotalAllocation float64
	GrandTotalSpent      float64
	OverallUtilization   int
	Departments          []DepartmentRow
	HighUtilization      []dashboardDatamodel.UtilizationTrend
	Performance          []dashboardDatamodel.DepartmentPerformance
	Failures             map[string]string
}

// BuildAdminView derives the admin headline numbers. Total budget is the sum
// of category limits, not of allocations.
func BuildAdminView(
	categories []categoryDatamodel.Category,
	allocations []allocationDatamodel.Allocation,
	pending []requestDatamodel.Request,
	summary *dashboardDatamodel.OrgSummary,
) AdminView {
	view := AdminView{
		TotalCategories:   len(categories),
		ActiveAllocations: len(allocations),
		Summary:           summary,
		Failures:          map[string]string{},
	}
	for _, cat := range categories {
		view.TotalBudget += cat.Limit
	}
	for _, req := range pending {
		if req.Status == requestDatamodel.StatusPending {
			view.PendingRequests++
		}
	}
	return view
}

// BuildDepartmentView extracts one department's slice of the organization
// summary. A department absent from the rollup yields an empty view with
// HasData false, never an error.
func BuildDepartmentView(
	summary *dashboardDatamodel.OrgSummary,
	departmentID int64,
	requests []requestDatamodel.Request,
) DepartmentView {
	view := DepartmentView{
		DepartmentID: departmentID,
		Requests:     requests,
		Failures:     map[string]string{},
	}
	if summary == nil {
		return view
	}
	for _, dept := range summary.Departments {
		if dept.DepartmentID != departmentID {
			continue
		}
		view.HasData = true
		view.DepartmentName = dept.DepartmentName
		view.TotalAllocation = dept.TotalAllocation
		view.TotalSpent = dept.TotalSpent
		view.Utilization = allocationDatamodel.Utilization(dept.TotalSpent, dept.TotalAllocation)
		for _, cat := range dept.Categories {
			utilization := allocationDatamodel.Utilization(cat.Spent, cat.Allocation)
			view.Categories = append(view.Categories, CategoryRow{
				CategoryID:   cat.CategoryID,
				CategoryName: cat.CategoryName,
				Allocation:   cat.Allocation,
				Spent:        cat.Spent,
				Utilization:  utilization,
				Status:       HelperBands.Status(float64(utilization)),
			})
		}
		break
	}
	return view
}

// BuildManagementView computes grand totals and the high-utilization list.
// A department is highlighted when the backend flags it or its utilization
// reaches 90 percent.
func BuildManagementView(
	md *dashboardDatamodel.ManagementDashboard,
	performance []dashboardDatamodel.DepartmentPerformance,
) ManagementView {
	view := ManagementView{
		Performance: performance,
		Failures:    map[string]string{},
	}
	if md == nil {
		return view
	}
	view.GrandTotalAllocation = md.Summary.GrandTotalAllocation
	view.GrandTotalSpent = md.Summary.GrandTotalSpent
	view.OverallUtilization = allocationDatamodel.Utilization(md.Summary.GrandTotalSpent, md.Summary.GrandTotalAllocation)

	for _, dept := range md.Summary.Departments {
		utilization := allocationDatamodel.Utilization(dept.TotalSpent, dept.TotalAllocation)
		view.Departments = append(view.Departments, DepartmentRow{
			DepartmentID:    dept.DepartmentID,
			DepartmentName:  dept.DepartmentName,
			TotalAllocation: dept.TotalAllocation,
			TotalSpent:      dept.TotalSpent,
			Utilization:     utilization,
			Status:          TableBands.Status(float64(utilization)),
		})
	}
	for _, trend := range md.UtilizationTrends {
		if trend.IsHighUtilization || trend.UtilizationPercentage >= 90 {
			view.HighUtilization = append(view.HighUtilization, trend)
		}
	}
	return view
}

// MergeRequests refreshes a request list with newer rows without letting a
// terminal request revert to pending from a staler source. Rows only present
// in the incoming list are appended.
func MergeRequests(current, incoming []requestDatamodel.Request) []requestDatamodel.Request {
	byID := make(map[int64]requestDatamodel.Request, len(current))
	order := make([]int64, 0, len(current))
	for _, req := range current {
		byID[req.ID] = req
		order = append(order, req.ID)
	}
	for _, req := range incoming {
		existing, seen := byID[req.ID]
		if !seen {
			byID[req.ID] = req
			order = append(order, req.ID)
			continue
		}
		if existing.Status.IsTerminal() && !req.Status.IsTerminal() {
			continue
		}
		byID[req.ID] = req
	}
	merged := make([]requestDatamodel.Request, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	return merged
}
