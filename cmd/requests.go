package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-allocation/internal"
	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
	"github.com/frahmantamala/budget-allocation/internal/permissions"
	"github.com/frahmantamala/budget-allocation/internal/request"
)

var (
	requestDepartmentID int64
	requestCategoryID   int64
	requestAmount       float64
	requestReason       string
	reviewApprove       bool
	reviewReject        bool
	reviewNote          string
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Manage budget requests",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending requests, or a department's requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		ctx := context.Background()
		var requests []requestDatamodel.Request
		if requestDepartmentID > 0 {
			requests, err = deps.Requests.GetByDepartment(ctx, requestDepartmentID)
		} else {
			requests, err = deps.Requests.GetPending(ctx)
		}
		if err != nil {
			return err
		}

		table := newTable()
		fmt.Fprintln(table, "ID\tDEPARTMENT\tCATEGORY\tAMOUNT\tSTATUS\tREASON")
		for _, req := range requests {
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%s\n",
				req.ID, req.DepartmentName, req.CategoryName,
				formatMoney(req.Amount), req.Status.String(), req.Reason)
		}
		return table.Flush()
	},
}

var requestsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a budget request",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}
		if !deps.Perms.HasPermission(u.Role, permissions.CapCreateRequests) {
			return internal.ErrAccessDenied
		}

		departmentID := requestDepartmentID
		if departmentID == 0 && u.DepartmentID != nil {
			departmentID = *u.DepartmentID
		}

		created, err := deps.Requests.Create(context.Background(), request.CreateRequestDTO{
			DepartmentID: departmentID,
			CategoryID:   requestCategoryID,
			Amount:       requestAmount,
			Reason:       requestReason,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Submitted request %d (%s)\n", created.ID, created.Status.String())
		return nil
	},
}

var requestsReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Approve or reject a pending request",
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
		if !deps.Perms.CanReviewRequests(u.Role) {
			return internal.ErrAccessDenied
		}
		if reviewApprove == reviewReject {
			return internal.NewValidationError("pass exactly one of --approve or --reject", internal.ErrCodeValidationFailed)
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		reviewed, err := deps.Requests.Review(context.Background(), request.ReviewDTO{
			RequestID:    id,
			Approve:      reviewApprove,
			ReviewerNote: reviewNote,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Request %d is now %s\n", reviewed.ID, reviewed.Status.String())
		return nil
	},
}

var requestsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show request statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		var departmentID *int64
		if requestDepartmentID > 0 {
			departmentID = &requestDepartmentID
		}
		stats, err := deps.Requests.GetStatistics(context.Background(), departmentID)
		if err != nil {
			return err
		}
		fmt.Printf("Total: %d  Pending: %d  Approved: %d  Rejected: %d\n",
			stats.Total, stats.Pending, stats.Approved, stats.Rejected)
		return nil
	},
}

func init() {
	requestsListCmd.Flags().Int64Var(&requestDepartmentID, "department", 0, "Department ID")
	requestsStatsCmd.Flags().Int64Var(&requestDepartmentID, "department", 0, "Department ID")
	requestsCreateCmd.Flags().Int64Var(&requestDepartmentID, "department", 0, "Department ID (defaults to your own)")
	requestsCreateCmd.Flags().Int64Var(&requestCategoryID, "category", 0, "Category ID")
	requestsCreateCmd.Flags().Float64Var(&requestAmount, "amount", 0, "Requested amount")
	requestsCreateCmd.Flags().StringVar(&requestReason, "reason", "", "Why the budget is needed")
	requestsReviewCmd.Flags().BoolVar(&reviewApprove, "approve", false, "Approve the request")
	requestsReviewCmd.Flags().BoolVar(&reviewReject, "reject", false, "Reject the request")
	requestsReviewCmd.Flags().StringVar(&reviewNote, "note", "", "Reviewer note")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsCreateCmd)
	requestsCmd.AddCommand(requestsReviewCmd)
	requestsCmd.AddCommand(requestsStatsCmd)
}
