package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/allocation"
	allocationDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/allocation"
	"github.com/frahmantamala/budget-allocation/internal/permissions"
)

var (
	allocationDepartmentID int64
	allocationCategoryID   int64
	allocationAmount       float64
	allocationTimeframe    string
	allocationNewSpent     float64
)

var allocationsCmd = &cobra.Command{
	Use:   "allocations",
	Short: "Manage department budget allocations",
}

var allocationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List allocations, optionally for one department",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		ctx := context.Background()
		var allocations []allocationDatamodel.Allocation
		if allocationDepartmentID > 0 {
			allocations, err = deps.Allocations.GetByDepartment(ctx, allocationDepartmentID)
		} else {
			allocations, err = deps.Allocations.GetAll(ctx)
		}
		if err != nil {
			return err
		}

		table := newTable()
		fmt.Fprintln(table, "ID\tDEPARTMENT\tCATEGORY\tAMOUNT\tSPENT\tUTILIZATION\tTIMEFRAME")
		for _, a := range allocations {
			marker := ""
			if a.IsOverBudget() {
				marker = " (over budget)"
			}
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%s%s\t%s\n",
				a.ID, a.DepartmentName, a.CategoryName, formatMoney(a.Amount),
				formatMoney(a.Spent), formatPercent(a.Utilization()), marker, a.Timeframe)
		}
		return table.Flush()
	},
}

var allocationsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an allocation",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}
		if !deps.Perms.HasPermission(u.Role, permissions.CapCreateAllocations) {
			return internal.ErrAccessDenied
		}

		created, err := deps.Allocations.Create(context.Background(), allocation.AllocationDTO{
			DepartmentID: allocationDepartmentID,
			CategoryID:   allocationCategoryID,
			Amount:       allocationAmount,
			Timeframe:    allocationTimeframe,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created allocation %d\n", created.ID)
		return nil
	},
}

var allocationsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an allocation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}
		if !deps.Perms.HasPermission(u.Role, permissions.CapEditAllocations) {
			return internal.ErrAccessDenied
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		updated, err := deps.Allocations.Update(context.Background(), id, allocation.AllocationDTO{
			DepartmentID: allocationDepartmentID,
			CategoryID:   allocationCategoryID,
			Amount:       allocationAmount,
			Timeframe:    allocationTimeframe,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated allocation %d\n", updated.ID)
		return nil
	},
}

var allocationsSpendCmd = &cobra.Command{
	Use:   "spend <id>",
	Short: "Record spending against an allocation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}
		if !deps.Perms.HasPermission(u.Role, permissions.CapEditAllocations) {
			return internal.ErrAccessDenied
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		updated, err := deps.Allocations.UpdateSpent(context.Background(), id, allocationNewSpent)
		if err != nil {
			return err
		}
		fmt.Printf("Allocation %d now at %s spent (%s)\n",
			updated.ID, formatMoney(updated.Spent), formatPercent(updated.Utilization()))
		return nil
	},
}

var allocationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an allocation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}
		if !deps.Perms.HasPermission(u.Role, permissions.CapDeleteAllocations) {
			return internal.ErrAccessDenied
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := deps.Allocations.Delete(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted allocation %d\n", id)
		return nil
	},
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationFieldError("id", "id must be a positive number", internal.ErrCodeValidationFailed)
	}
	return id, nil
}

func init() {
	allocationsListCmd.Flags().Int64Var(&allocationDepartmentID, "department", 0, "Filter by department ID")
	for _, c := range []*cobra.Command{allocationsCreateCmd, allocationsUpdateCmd} {
		c.Flags().Int64Var(&allocationDepartmentID, "department", 0, "Department ID")
		c.Flags().Int64Var(&allocationCategoryID, "category", 0, "Category ID")
		c.Flags().Float64Var(&allocationAmount, "amount", 0, "Allocated amount")
		c.Flags().StringVar(&allocationTimeframe, "timeframe", "Monthly", "Timeframe")
	}
	allocationsSpendCmd.Flags().Float64Var(&allocationNewSpent, "spent", 0, "New total spent amount")

	allocationsCmd.AddCommand(allocationsListCmd)
	allocationsCmd.AddCommand(allocationsCreateCmd)
	allocationsCmd.AddCommand(allocationsUpdateCmd)
	allocationsCmd.AddCommand(allocationsSpendCmd)
	allocationsCmd.AddCommand(allocationsDeleteCmd)
}
