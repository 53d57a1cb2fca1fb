package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "View and manage notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		notifications, err := deps.Notifications.GetAll(context.Background())
		if err != nil {
			return err
		}

		table := newTable()
		fmt.Fprintln(table, "ID\tREAD\tTITLE\tMESSAGE")
		for _, n := range notifications {
			read := " "
			if n.IsRead {
				read = "*"
			}
			fmt.Fprintf(table, "%d\t%s\t%s\t%s\n", n.ID, read, n.Title, n.Message)
		}
		return table.Flush()
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark one notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := deps.Notifications.MarkRead(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("Notification %d marked read\n", id)
		return nil
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		if err := deps.Notifications.MarkAllRead(context.Background()); err != nil {
			return err
		}
		fmt.Println("All notifications marked read")
		return nil
	},
}

var notificationsUnreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Show the unread notification count",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		if _, err := deps.requireUser(); err != nil {
			return err
		}

		count, err := deps.Notifications.UnreadCount(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d unread\n", count)
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	notificationsCmd.AddCommand(notificationsUnreadCmd)
}
