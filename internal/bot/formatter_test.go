package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shelterhub/internal/shelterapi"
)

func TestFormatAnimals(t *testing.T) {
	animals := []shelterapi.Animal{
		{Name: "Rex", Species: "dog", Breed: "mixed", Status: shelterapi.AnimalStatusAvailable, KennelID: "ken_1"},
		{Name: "Luna", Species: "cat", Status: shelterapi.AnimalStatusIntake},
	}

	out := FormatAnimals(animals)
	assert.Contains(t, out, "🐶 *Rex* (mixed)")
	assert.Contains(t, out, "Available")
	assert.Contains(t, out, "🐱 *Luna*")
	assert.Contains(t, out, "In intake")
	assert.Contains(t, out, "`ken_1`")
}

func TestFormatAnimals_Empty(t *testing.T) {
	out := FormatAnimals(nil)
	assert.Contains(t, out, "No animals registered")
}

func TestFormatTasks(t *testing.T) {
	now := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	due := now.Add(2 * time.Hour)

	tasks := []shelterapi.Task{
		{Title: "Morning feeding", Type: shelterapi.TaskTypeFeeding, DueAt: &due, AnimalID: "anm_1"},
		{Title: "Clean zone A", Type: shelterapi.TaskTypeCleaning},
	}

	out := FormatTasks(tasks, now)
	assert.Contains(t, out, "1. 🍽 *Morning feeding*")
	assert.Contains(t, out, "Due: Today 11:00")
	assert.Contains(t, out, "2. 🧹 *Clean zone A*")
}

func TestFormatFeedingPlans_EnergyComputation(t *testing.T) {
	animals := map[string]shelterapi.Animal{
		"anm_1": {ID: "anm_1", Name: "Rex", Species: "dog", WeightKg: 16},
	}
	plans := []shelterapi.FeedingPlan{
		{AnimalID: "anm_1", FoodType: "dry adult", GramsPerDay: 320, MealsPerDay: 2, EnergyFactor: 1.6},
	}

	out := FormatFeedingPlans(plans, animals)
	assert.Contains(t, out, "🐶 Rex")
	assert.Contains(t, out, "dry adult, 320 g/day over 2 meals")
	// RER(16) = 70 * 16^0.75 = 560, MER = 1.6 * 560 = 896.
	assert.Contains(t, out, "896 kcal/day")
	assert.Contains(t, out, "RER 560")
}

func TestFormatFeedingPlans_UnknownAnimal(t *testing.T) {
	plans := []shelterapi.FeedingPlan{
		{AnimalID: "anm_missing", FoodType: "wet", GramsPerDay: 100, MealsPerDay: 1},
	}

	out := FormatFeedingPlans(plans, map[string]shelterapi.Animal{})
	assert.Contains(t, out, "anm_missing")
	assert.NotContains(t, out, "kcal")
}

func TestFormatReservations(t *testing.T) {
	now := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	checkIn := time.Date(2025, 6, 12, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(48 * time.Hour)

	reservations := []shelterapi.HotelReservation{
		{
			AnimalName:  "Bella",
			Species:     "dog",
			OwnerName:   "J. Smith",
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			Status:      shelterapi.ReservationStatusBooked,
			PricePerDay: 25,
		},
	}

	out := FormatReservations(reservations, now)
	assert.Contains(t, out, "🐶 *Bella* - Booked")
	assert.Contains(t, out, "Owner: J. Smith")
	assert.Contains(t, out, "Tomorrow")
	assert.Contains(t, out, "25.00/day (total 50.00)")
}

func TestFormatKennels(t *testing.T) {
	kennels := []shelterapi.Kennel{
		{Name: "K-01", Zone: "A", Capacity: 2, Occupied: 1},
		{Name: "K-02", Capacity: 1, Occupied: 1},
	}

	out := FormatKennels(kennels)
	assert.Contains(t, out, "🟢 *K-01* (zone A)")
	assert.Contains(t, out, "Occupancy: 1/2")
	assert.Contains(t, out, "🔴 *K-02*")
}

func TestFormatError_Unauthenticated(t *testing.T) {
	err := shelterapi.ErrUnauthenticated
	assert.Contains(t, FormatError(err), "Session expired")
}
