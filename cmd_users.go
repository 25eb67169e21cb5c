package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quote-desk/client"
)

var usersURL string

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Work with the users of a running server",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := client.NewUsersClient(usersURL, logger).List(cmd.Context())
		if res.Degraded && res.Err != "" {
			logger.Warn("showing placeholder users", zap.String("reason", res.Err))
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s; showing placeholder data\n", res.Err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSTATUS\tPOLICIES\tJOINED")
		for _, u := range res.Users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", u.ID, u.Name, u.Email, u.Status, u.Policies, u.JoinDate)
		}
		return tw.Flush()
	},
}
