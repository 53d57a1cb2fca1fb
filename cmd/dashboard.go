package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/dashboard"
	"github.com/frahmantamala/budget-allocation/internal/permissions"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard for the current role",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}

		ctx := context.Background()
		switch {
		case deps.Perms.HasPermission(u.Role, permissions.CapViewAdminDashboard):
			renderAdminView(deps.Loader.LoadAdminView(ctx))
		case deps.Perms.HasPermission(u.Role, permissions.CapViewDepartmentDashboard):
			if u.DepartmentID == nil {
				return internal.NewValidationError("account has no department assigned", internal.ErrCodeValidationFailed)
			}
			renderDepartmentView(deps.Loader.LoadDepartmentView(ctx, *u.DepartmentID))
		case deps.Perms.HasPermission(u.Role, permissions.CapViewManagementDashboard):
			renderManagementView(deps.Loader.LoadManagementView(ctx))
		default:
			return internal.ErrAccessDenied
		}
		return nil
	},
}

func renderFailures(failures map[string]string) {
	for panel, msg := range failures {
		fmt.Printf("! %s unavailable: %s\n", panel, msg)
	}
}

func renderAdminView(view dashboard.AdminView) {
	fmt.Println("Organization overview")
	fmt.Printf("  Categories:         %d\n", view.TotalCategories)
	fmt.Printf("  Active allocations: %d\n", view.ActiveAllocations)
	fmt.Printf("  Pending requests:   %d\n", view.PendingRequests)
	fmt.Printf("  Total budget:       %s\n", formatMoney(view.TotalBudget))

	if view.Summary != nil {
		table := newTable()
		fmt.Fprintln(table, "DEPARTMENT\tALLOCATED\tSPENT")
		for _, dept := range view.Summary.Departments {
			fmt.Fprintf(table, "%s\t%s\t%s\n",
				dept.DepartmentName, formatMoney(dept.TotalAllocation), formatMoney(dept.TotalSpent))
		}
		table.Flush()
	}
	renderFailures(view.Failures)
}

func renderDepartmentView(view dashboard.DepartmentView) {
	if !view.HasData {
		fmt.Println("No budget data recorded for this department yet.")
		renderFailures(view.Failures)
		return
	}

	fmt.Printf("%s\n", view.DepartmentName)
	fmt.Printf("  Allocated: %s  Spent: %s  Utilization: %s\n",
		formatMoney(view.TotalAllocation), formatMoney(view.TotalSpent), formatPercent(view.Utilization))

	table := newTable()
	fmt.Fprintln(table, "CATEGORY\tALLOCATED\tSPENT\tUTILIZATION\tSTATUS")
	for _, row := range view.Categories {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
			row.CategoryName, formatMoney(row.Allocation), formatMoney(row.Spent),
			formatPercent(row.Utilization), row.Status)
	}
	table.Flush()

	if len(view.Requests) > 0 {
		fmt.Println("Recent requests:")
		table = newTable()
		fmt.Fprintln(table, "ID\tAMOUNT\tSTATUS\tREASON")
		for _, req := range view.Requests {
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\n",
				req.ID, formatMoney(req.Amount), req.Status.String(), req.Reason)
		}
		table.Flush()
	}
	renderFailures(view.Failures)
}

func renderManagementView(view dashboard.ManagementView) {
	fmt.Println("Organization totals")
	fmt.Printf("  Allocated: %s  Spent: %s  Utilization: %s\n",
		formatMoney(view.GrandTotalAllocation), formatMoney(view.GrandTotalSpent),
		formatPercent(view.OverallUtilization))

	table := newTable()
	fmt.Fprintln(table, "DEPARTMENT\tALLOCATED\tSPENT\tUTILIZATION\tSTATUS")
	for _, row := range view.Departments {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
			row.DepartmentName, formatMoney(row.TotalAllocation), formatMoney(row.TotalSpent),
			formatPercent(row.Utilization), row.Status)
	}
	table.Flush()

	if len(view.HighUtilization) > 0 {
		fmt.Println("High utilization:")
		for _, trend := range view.HighUtilization {
			fmt.Printf("  %s at %.0f%%\n", trend.DepartmentName, trend.UtilizationPercentage)
		}
	}
	if len(view.Performance) > 0 {
		fmt.Println("Performance:")
		table = newTable()
		fmt.Fprintln(table, "DEPARTMENT\tBUDGET\tSPENT\tUTILIZATION\tSCORE")
		for _, row := range view.Performance {
			fmt.Fprintf(table, "%s\t%s\t%s\t%.0f%%\t%.1f\n",
				row.DepartmentName, formatMoney(row.TotalBudget), formatMoney(row.TotalSpent),
				row.UtilizationPercentage, row.PerformanceScore)
		}
		table.Flush()
	}
	renderFailures(view.Failures)
}
