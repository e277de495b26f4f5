package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shelterhub/internal/format"
	"shelterhub/internal/shelterapi"
)

var feedingAnimal string

// feedingCmd lists feeding plans with computed energy requirements.
var feedingCmd = &cobra.Command{
	Use:   "feeding",
	Short: "List feeding plans with daily energy requirements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		plans, err := client.ListFeedingPlans(cmd.Context(), feedingAnimal)
		if err != nil {
			return err
		}

		animals, err := client.ListAnimals(cmd.Context(), shelterapi.AnimalFilter{})
		if err != nil {
			return err
		}
		weights := make(map[string]shelterapi.Animal, len(animals))
		for _, animal := range animals {
			weights[animal.ID] = animal
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ANIMAL\tFOOD\tG/DAY\tMEALS\tKCAL/DAY")
		for _, plan := range plans {
			name := plan.AnimalID
			kcal := "-"
			if animal, ok := weights[plan.AnimalID]; ok {
				name = animal.Name
				if animal.WeightKg > 0 {
					kcal = fmt.Sprintf("%.0f", format.MER(animal.WeightKg, plan.EnergyFactor))
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				name, plan.FoodType, plan.GramsPerDay, plan.MealsPerDay, kcal)
		}
		return w.Flush()
	},
}

func init() {
	feedingCmd.Flags().StringVar(&feedingAnimal, "animal", "", "Only plans for this animal id")
}
