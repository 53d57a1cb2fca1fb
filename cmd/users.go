package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-allocation/internal"
	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
	"github.com/frahmantamala/budget-allocation/internal/permissions"
	"github.com/frahmantamala/budget-allocation/internal/user"
)

var (
	userName         string
	userEmail        string
	userPassword     string
	userRole         int
	userDepartmentID int64
	userActive       bool
	oldPassword      string
	newPassword      string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

func requireUserAdmin(deps *Dependencies) (userDatamodel.User, error) {
	u, err := deps.requireUser()
	if err != nil {
		return u, err
	}
	if !deps.Perms.HasPermission(u.Role, permissions.CapManageUsers) {
		return u, internal.ErrAccessDenied
	}
	return u, nil
}

func userDTOFromFlags(cmd *cobra.Command) user.UserDTO {
	dto := user.UserDTO{
		Name:     userName,
		Email:    userEmail,
		Password: userPassword,
		Role:     userDatamodel.Role(userRole),
		IsActive: userActive,
	}
	if cmd.Flags().Changed("department") {
		departmentID := userDepartmentID
		dto.DepartmentID = &departmentID
	}
	return dto
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := requireUserAdmin(deps); err != nil {
			return err
		}

		users, err := deps.Users.GetAll(context.Background())
		if err != nil {
			return err
		}

		table := newTable()
		fmt.Fprintln(table, "ID\tNAME\tEMAIL\tROLE\tDEPARTMENT\tACTIVE")
		for _, u := range users {
			department := "-"
			if u.DepartmentID != nil {
				department = fmt.Sprintf("%d", *u.DepartmentID)
			}
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%t\n",
				u.ID, u.Name, u.Email, u.Role.Label(), department, u.IsActive)
		}
		return table.Flush()
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := requireUserAdmin(deps); err != nil {
			return err
		}

		created, err := deps.Users.Create(context.Background(), userDTOFromFlags(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Created user %d (%s)\n", created.ID, created.Email)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := requireUserAdmin(deps); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		updated, err := deps.Users.Update(context.Background(), id, userDTOFromFlags(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Updated user %d\n", updated.ID)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		current, err := requireUserAdmin(deps)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := deps.Users.Delete(context.Background(), id, current.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted user %d\n", id)
		return nil
	},
}

var usersToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a user's active status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := requireUserAdmin(deps); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		toggled, err := deps.Users.ToggleStatus(context.Background(), id)
		if err != nil {
			return err
		}
		state := "inactive"
		if toggled.IsActive {
			state = "active"
		}
		fmt.Printf("User %d is now %s\n", toggled.ID, state)
		return nil
	},
}

var usersPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your own password",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		current, err := deps.requireUser()
		if err != nil {
			return err
		}

		if err := deps.Users.ChangePassword(context.Background(), current.ID, oldPassword, newPassword); err != nil {
			return err
		}
		fmt.Println("Password changed")
		return nil
	},
}

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List departments",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		departments, err := deps.Users.Departments(context.Background())
		if err != nil {
			return err
		}

		table := newTable()
		fmt.Fprintln(table, "ID\tNAME\tALLOCATED\tSPENT\tCATEGORIES")
		for _, d := range departments {
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%d\n",
				d.ID, d.Name, formatMoney(d.TotalAllocation), formatMoney(d.TotalSpent), d.CategoriesCount)
		}
		return table.Flush()
	},
}

func init() {
	for _, c := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userName, "name", "", "Full name")
		c.Flags().StringVar(&userEmail, "email", "", "Email address")
		c.Flags().StringVar(&userPassword, "password", "", "Password (optional on update)")
		c.Flags().IntVar(&userRole, "role", 2, "Role (1=FinanceAdmin, 2=DepartmentHead, 3=Management)")
		c.Flags().Int64Var(&userDepartmentID, "department", 0, "Department ID")
		c.Flags().BoolVar(&userActive, "active", true, "Account enabled")
	}
	usersPasswdCmd.Flags().StringVar(&oldPassword, "old", "", "Current password")
	usersPasswdCmd.Flags().StringVar(&newPassword, "new", "", "New password")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersToggleCmd)
	usersCmd.AddCommand(usersPasswdCmd)
	usersCmd.AddCommand(departmentsCmd)
}
