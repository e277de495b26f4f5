package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// kennelsCmd lists kennel occupancy.
var kennelsCmd = &cobra.Command{
	Use:   "kennels",
	Short: "List kennels and occupancy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		kennels, err := client.ListKennels(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tZONE\tOCCUPANCY")
		for _, kennel := range kennels {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\n",
				kennel.ID, kennel.Name, kennel.Zone, kennel.Occupied, kennel.Capacity)
		}
		return w.Flush()
	},
}
