package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// orgCmd groups organization subcommands.
var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "List and select organizations",
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations you are a member of",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		for _, m := range sess.Memberships() {
			marker := " "
			if m.OrganizationID == sess.OrganizationID() {
				marker = "*"
			}
			fmt.Printf(" %s %-30s %s (%s)\n", marker, m.OrganizationName, m.OrganizationID, m.Role)
		}
		return nil
	},
}

var orgSelectCmd = &cobra.Command{
	Use:   "select <organization-id>",
	Short: "Select the active organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		if err := sess.SelectOrganization(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Active organization: %s\n", args[0])
		return nil
	},
}

func init() {
	orgCmd.AddCommand(orgListCmd)
	orgCmd.AddCommand(orgSelectCmd)
}
