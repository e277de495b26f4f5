package bot

import (
	"fmt"
	"strings"
	"time"

	"shelterhub/internal/format"
	"shelterhub/internal/shelterapi"
)

// FormatStart formats the welcome message.
func FormatStart(userName, orgName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("👋 Hello, *%s*!\n", userName))
	if orgName != "" {
		sb.WriteString(fmt.Sprintf("Shelter: *%s*\n", orgName))
	}
	sb.WriteString("\nAvailable commands:\n")
	sb.WriteString("/animals - list sheltered animals\n")
	sb.WriteString("/tasks - open tasks with quick complete\n")
	sb.WriteString("/feeding - feeding plans and daily energy\n")
	sb.WriteString("/hotel - hotel reservations\n")
	sb.WriteString("/kennels - kennel occupancy\n")

	return sb.String()
}

// FormatAnimals formats the animal list.
func FormatAnimals(animals []shelterapi.Animal) string {
	var sb strings.Builder

	sb.WriteString("🐾 *Animals*\n\n")

	if len(animals) == 0 {
		sb.WriteString("No animals registered.\n")
		return sb.String()
	}

	for _, animal := range animals {
		sb.WriteString(fmt.Sprintf("%s *%s*", format.SpeciesEmoji(animal.Species), animal.Name))
		if animal.Breed != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", animal.Breed))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("   %s %s\n",
			format.AnimalStatusEmoji(animal.Status),
			format.AnimalStatusLabel(animal.Status)))
		if animal.KennelID != "" {
			sb.WriteString(fmt.Sprintf("   Kennel: `%s`\n", animal.KennelID))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatAnimalDetail formats a single animal with its medical history.
func FormatAnimalDetail(animal *shelterapi.Animal, records []shelterapi.MedicalRecord, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s *%s*\n", format.SpeciesEmoji(animal.Species), animal.Name))
	sb.WriteString(fmt.Sprintf("Status: %s %s\n",
		format.AnimalStatusEmoji(animal.Status),
		format.AnimalStatusLabel(animal.Status)))
	if animal.Breed != "" {
		sb.WriteString(fmt.Sprintf("Breed: %s\n", animal.Breed))
	}
	if animal.WeightKg > 0 {
		sb.WriteString(fmt.Sprintf("Weight: %.1f kg\n", animal.WeightKg))
	}
	if animal.ChipNumber != "" {
		sb.WriteString(fmt.Sprintf("Chip: `%s`\n", animal.ChipNumber))
	}
	if animal.Description != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", animal.Description))
	}

	if len(records) > 0 {
		sb.WriteString("\n💉 *Medical history*\n")
		for _, record := range records {
			sb.WriteString(fmt.Sprintf("• %s (%s)\n",
				record.Title, format.DateLabel(record.PerformedAt, now)))
			if record.NextDueAt != nil {
				sb.WriteString(fmt.Sprintf("   Next due: %s\n",
					format.DateLabel(*record.NextDueAt, now)))
			}
		}
	}

	return sb.String()
}

// FormatTasks formats the open task list.
func FormatTasks(tasks []shelterapi.Task, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("📋 *Open Tasks*\n\n")

	if len(tasks) == 0 {
		sb.WriteString("Nothing to do. 🎉\n")
		return sb.String()
	}

	for i, task := range tasks {
		sb.WriteString(fmt.Sprintf("%d. %s *%s*\n", i+1, format.TaskTypeEmoji(task.Type), task.Title))
		if task.DueAt != nil {
			sb.WriteString(fmt.Sprintf("   Due: %s %s\n",
				format.DateLabel(*task.DueAt, now), format.Time(*task.DueAt)))
		}
		if task.AnimalID != "" {
			sb.WriteString(fmt.Sprintf("   Animal: `%s`\n", task.AnimalID))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatFeedingPlans formats feeding plans with the computed daily energy
// requirement for each animal.
func FormatFeedingPlans(plans []shelterapi.FeedingPlan, animals map[string]shelterapi.Animal) string {
	var sb strings.Builder

	sb.WriteString("🍽 *Feeding Plans*\n\n")

	if len(plans) == 0 {
		sb.WriteString("No feeding plans configured.\n")
		return sb.String()
	}

	for _, plan := range plans {
		name := plan.AnimalID
		var weight float64
		if animal, ok := animals[plan.AnimalID]; ok {
			name = fmt.Sprintf("%s %s", format.SpeciesEmoji(animal.Species), animal.Name)
			weight = animal.WeightKg
		}

		sb.WriteString(fmt.Sprintf("*%s*\n", name))
		sb.WriteString(fmt.Sprintf("   %s, %d g/day over %d meals\n",
			plan.FoodType, plan.GramsPerDay, plan.MealsPerDay))
		if weight > 0 {
			sb.WriteString(fmt.Sprintf("   Energy: %.0f kcal/day (RER %.0f)\n",
				format.MER(weight, plan.EnergyFactor), format.RER(weight)))
		}
		if plan.Notes != "" {
			sb.WriteString(fmt.Sprintf("   _%s_\n", plan.Notes))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatReservations formats hotel reservations.
func FormatReservations(reservations []shelterapi.HotelReservation, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("🛎 *Hotel Reservations*\n\n")

	if len(reservations) == 0 {
		sb.WriteString("No reservations.\n")
		return sb.String()
	}

	for i, reservation := range reservations {
		sb.WriteString(fmt.Sprintf("%d. %s *%s* - %s\n",
			i+1,
			format.SpeciesEmoji(reservation.Species),
			reservation.AnimalName,
			format.ReservationStatusLabel(reservation.Status)))
		sb.WriteString(fmt.Sprintf("   Owner: %s\n", reservation.OwnerName))
		sb.WriteString(fmt.Sprintf("   %s to %s\n",
			format.DateLabel(reservation.CheckIn, now),
			format.DateLabel(reservation.CheckOut, now)))
		if reservation.PricePerDay > 0 {
			days := reservation.CheckOut.Sub(reservation.CheckIn).Hours() / 24
			sb.WriteString(fmt.Sprintf("   Price: %.2f/day (total %.2f)\n",
				reservation.PricePerDay, reservation.PricePerDay*days))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatKennels formats kennel occupancy.
func FormatKennels(kennels []shelterapi.Kennel) string {
	var sb strings.Builder

	sb.WriteString("🏠 *Kennels*\n\n")

	if len(kennels) == 0 {
		sb.WriteString("No kennels configured.\n")
		return sb.String()
	}

	for _, kennel := range kennels {
		marker := "🟢"
		if kennel.Occupied >= kennel.Capacity {
			marker = "🔴"
		}
		sb.WriteString(fmt.Sprintf("%s *%s*", marker, kennel.Name))
		if kennel.Zone != "" {
			sb.WriteString(fmt.Sprintf(" (zone %s)", kennel.Zone))
		}
		sb.WriteString(fmt.Sprintf("\n   Occupancy: %d/%d\n", kennel.Occupied, kennel.Capacity))
		if kennel.Notes != "" {
			sb.WriteString(fmt.Sprintf("   _%s_\n", kennel.Notes))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskReminder formats the reminder message for tasks due soon.
func FormatTaskReminder(tasks []shelterapi.Task, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("⏰ *Tasks due soon*\n\n")
	for _, task := range tasks {
		sb.WriteString(fmt.Sprintf("%s *%s*", format.TaskTypeEmoji(task.Type), task.Title))
		if task.DueAt != nil {
			sb.WriteString(fmt.Sprintf(" at %s", format.Time(*task.DueAt)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatError formats an error for display to the user.
func FormatError(err error) string {
	if shelterapi.IsUnauthenticated(err) {
		return "🔒 Session expired and could not be renewed. Check the bot's account credentials."
	}
	return fmt.Sprintf("⚠️ Something went wrong: %v", err)
}
