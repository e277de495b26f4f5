package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"shelterhub/internal/format"
	"shelterhub/internal/shelterapi"
)

var (
	animalsSpecies string
	animalsStatus  string
	animalsKennel  string
)

// animalsCmd groups animal subcommands.
var animalsCmd = &cobra.Command{
	Use:   "animals",
	Short: "List and inspect sheltered animals",
}

var animalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List animals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		animals, err := client.ListAnimals(cmd.Context(), shelterapi.AnimalFilter{
			Species:  animalsSpecies,
			Status:   animalsStatus,
			KennelID: animalsKennel,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSPECIES\tSTATUS\tKENNEL")
		for _, animal := range animals {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				animal.ID,
				animal.Name,
				animal.Species,
				format.AnimalStatusLabel(animal.Status),
				animal.KennelID,
			)
		}
		return w.Flush()
	},
}

var animalsShowCmd = &cobra.Command{
	Use:   "show <animal-id>",
	Short: "Show one animal with medical history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		animal, err := client.GetAnimal(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", animal.Name, animal.Species)
		fmt.Printf("Status:  %s\n", format.AnimalStatusLabel(animal.Status))
		if animal.Breed != "" {
			fmt.Printf("Breed:   %s\n", animal.Breed)
		}
		if animal.WeightKg > 0 {
			fmt.Printf("Weight:  %.1f kg\n", animal.WeightKg)
		}
		if animal.KennelID != "" {
			fmt.Printf("Kennel:  %s\n", animal.KennelID)
		}
		if animal.ChipNumber != "" {
			fmt.Printf("Chip:    %s\n", animal.ChipNumber)
		}
		if animal.Description != "" {
			fmt.Printf("\n%s\n", animal.Description)
		}

		records, err := client.ListMedicalRecords(cmd.Context(), animal.ID)
		if err != nil {
			return err
		}
		if len(records) > 0 {
			now := time.Now()
			fmt.Println("\nMedical history:")
			for _, record := range records {
				fmt.Printf("  %s - %s (%s)\n",
					format.DateLabel(record.PerformedAt, now), record.Title, record.Type)
				if record.NextDueAt != nil {
					fmt.Printf("    next due %s\n", format.DateLabel(*record.NextDueAt, now))
				}
			}
		}
		return nil
	},
}

func init() {
	animalsListCmd.Flags().StringVar(&animalsSpecies, "species", "", "Filter by species")
	animalsListCmd.Flags().StringVar(&animalsStatus, "status", "", "Filter by status")
	animalsListCmd.Flags().StringVar(&animalsKennel, "kennel", "", "Filter by kennel id")

	animalsCmd.AddCommand(animalsListCmd)
	animalsCmd.AddCommand(animalsShowCmd)
}
