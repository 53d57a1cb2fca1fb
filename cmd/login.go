package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-allocation/internal/auth"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}

		password := loginPassword
		if password == "" {
			password = os.Getenv("BUDGET_PASSWORD")
		}

		u, err := deps.Auth.Login(context.Background(), auth.LoginDTO{
			Email:    loginEmail,
			Password: password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", u.Name, u.Role.Label())
		if exp, ok := deps.Sessions.TokenExpiresAt(); ok {
			fmt.Printf("Session valid until %s\n", exp.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if err := deps.Auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\nRole: %s\n", u.Name, u.Email, u.Role.Label())
		if u.DepartmentID != nil {
			fmt.Printf("Department: %d\n", *u.DepartmentID)
		}
		fmt.Println("Available sections:")
		for _, route := range deps.Perms.VisibleRoutes(u.Role) {
			fmt.Printf("  %s\n", route)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (or set BUDGET_PASSWORD)")
	loginCmd.MarkFlagRequired("email")
}
