package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/category"
	categoryDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/category"
	"github.com/frahmantamala/budget-allocation/internal/permissions"
)

var (
	categoryName      string
	categoryLimit     float64
	categoryTimeframe string
	categoryThreshold float64
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage budget categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		categories, err := deps.Categories.GetAll(context.Background())
		if err != nil {
			return err
		}

		table := newTable()
		fmt.Fprintln(table, "ID\tNAME\tLIMIT\tTIMEFRAME\tTHRESHOLD")
		for _, cat := range categories {
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%.0f%%\n",
				cat.ID, cat.Name, formatMoney(cat.Limit), cat.Timeframe, cat.ThresholdPercent)
		}
		return table.Flush()
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}
		if !deps.Perms.HasPermission(u.Role, permissions.CapCreateCategories) {
			return internal.ErrAccessDenied
		}

		created, err := deps.Categories.Create(context.Background(), category.CategoryDTO{
			Name:             categoryName,
			Limit:            categoryLimit,
			Timeframe:        categoryDatamodel.Timeframe(categoryTimeframe),
			ThresholdPercent: categoryThreshold,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created category %d (%s)\n", created.ID, created.Name)
		return nil
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a category",
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
		if !deps.Perms.HasPermission(u.Role, permissions.CapEditCategories) {
			return internal.ErrAccessDenied
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		updated, err := deps.Categories.Update(context.Background(), id, category.CategoryDTO{
			Name:             categoryName,
			Limit:            categoryLimit,
			Timeframe:        categoryDatamodel.Timeframe(categoryTimeframe),
			ThresholdPercent: categoryThreshold,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated category %d\n", updated.ID)
		return nil
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
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
		if !deps.Perms.HasPermission(u.Role, permissions.CapDeleteCategories) {
			return internal.ErrAccessDenied
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		message, err := deps.Categories.Delete(context.Background(), id)
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "Category name")
		c.Flags().Float64Var(&categoryLimit, "limit", 0, "Budget limit")
		c.Flags().StringVar(&categoryTimeframe, "timeframe", "Monthly", "Timeframe (Monthly, Quarterly, Yearly, Semi-Annual, Annual)")
		c.Flags().Float64Var(&categoryThreshold, "threshold", 80, "Alert threshold percent")
	}
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesUpdateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)
}
