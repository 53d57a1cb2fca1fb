package dashboard

import (
	dashboardDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/dashboard"
)

type categorySummaryWire struct {
	CategoryID   int64   `json:"CategoryId"`
	CategoryName string  `json:"CategoryName"`
	Allocation   float64 `json:"Allocation"`
	Spent        float64 `json:"Spent"`
}

type departmentSummaryWire struct {
	DepartmentID    int64                 `json:"DepartmentId"`
	DepartmentName  string                `json:"DepartmentName"`
	TotalAllocation float64               `json:"TotalAllocation"`
	TotalSpent      float64               `json:"TotalSpent"`
	Categories      []categorySummaryWire `json:"Categories"`
}

type orgSummaryWire struct {
	GrandTotalAllocation float64                 `json:"GrandTotalAllocation"`
	GrandTotalSpent      float64                 `json:"GrandTotalSpent"`
	Departments          []departmentSummaryWire `json:"Departments"`
}

func (w orgSummaryWire) toDomain() dashboardDatamodel.OrgSummary {
	summary := dashboardDatamodel.OrgSummary{
		GrandTotalAllocation: w.GrandTotalAllocation,
		GrandTotalSpent:      w.GrandTotalSpent,
		Departments:          make([]dashboardDatamodel.DepartmentSummary, 0, len(w.Departments)),
	}
	for _, dept := range w.Departments {
		ds := dashboardDatamodel.DepartmentSummary{
			DepartmentID:    dept.DepartmentID,
			DepartmentName:  dept.DepartmentName,
			TotalAllocation: dept.TotalAllocation,
			TotalSpent:      dept.TotalSpent,
			Categories:      make([]dashboardDatamodel.CategorySummary, 0, len(dept.Categories)),
		}
		for _, cat := range dept.Categories {
			ds.Categories = append(ds.Categories, dashboardDatamodel.CategorySummary{
				CategoryID:   cat.CategoryID,
				CategoryName: cat.CategoryName,
				Allocation:   cat.Allocation,
				Spent:        cat.Spent,
			})
		}
		summary.Departments = append(summary.Departments, ds)
	}
	return summary
}

type trendWire struct {
	DepartmentID          int64   `json:"DepartmentId"`
	DepartmentName        string  `json:"DepartmentName"`
	UtilizationPercentage float64 `json:"UtilizationPercentage"`
	IsHighUtilization     bool    `json:"IsHighUtilization"`
}

type managementDashboardWire struct {
	Summary           orgSummaryWire `json:"Summary"`
	UtilizationTrends []trendWire    `json:"UtilizationTrends"`
}

func (w managementDashboardWire) toDomain() dashboardDatamodel.ManagementDashboard {
	md := dashboardDatamodel.ManagementDashboard{
		Summary:           w.Summary.toDomain(),
		UtilizationTrends: make([]dashboardDatamodel.UtilizationTrend, 0, len(w.UtilizationTrends)),
	}
	for _, t := range w.UtilizationTrends {
		md.UtilizationTrends = append(md.UtilizationTrends, dashboardDatamodel.UtilizationTrend{
			DepartmentID:          t.DepartmentID,
			DepartmentName:        t.DepartmentName,
			UtilizationPercentage: t.UtilizationPercentage,
			IsHighUtilization:     t.IsHighUtilization,
		})
	}
	return md
}

type performanceWire struct {
	DepartmentID          int64   `json:"DepartmentId"`
	DepartmentName        string  `json:"DepartmentName"`
	TotalBudget           float64 `json:"TotalBudget"`
	TotalSpent            float64 `json:"TotalSpent"`
	UtilizationPercentage float64 `json:"UtilizationPercentage"`
	PerformanceScore      float64 `json:"PerformanceScore"`
}

func (w performanceWire) toDomain() dashboardDatamodel.DepartmentPerformance {
	return dashboardDatamodel.DepartmentPerformance{
		DepartmentID:          w.DepartmentID,
		DepartmentName:        w.DepartmentName,
		TotalBudget:           w.TotalBudget,
		TotalSpent:            w.TotalSpent,
		UtilizationPercentage: w.UtilizationPercentage,
		PerformanceScore:      w.PerformanceScore,
	}
}
