package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNotificationsCmd() *cobra.Command {
	var (
		unreadOnly bool
		markRead   bool
		deleteRead bool
	)

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show and manage stored notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir()
			if err != nil {
				return err
			}
			st, err := openStore(dir, newLogger(false))
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if markRead {
				if err := st.MarkAllRead(); err != nil {
					return err
				}
				fmt.Fprintln(out, "All notifications marked read.")
				return nil
			}
			if deleteRead {
				if err := st.DeleteRead(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Read notifications deleted.")
				return nil
			}

			rows, err := st.Notifications(unreadOnly)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No notifications.")
				return nil
			}
			for _, n := range rows {
				marker := " "
				if !n.Read {
					marker = "*"
				}
				fmt.Fprintf(out, "%s [%s] %s — %s (%s)\n",
					marker, n.Type, n.Title, n.Message, n.Timestamp.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only show unread notifications")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "mark all notifications as read")
	cmd.Flags().BoolVar(&deleteRead, "delete-read", false, "delete notifications already marked read")
	return cmd
}
