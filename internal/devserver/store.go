package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shelterhub/internal/idgen"
	"shelterhub/internal/shelterapi"
)

// userRecord is a seeded account on the stub server.
type userRecord struct {
	shelterapi.User
	PasswordHash []byte
	Memberships  []shelterapi.Membership
}

// Store is the stub server's in-memory state. It exists so clients have
// something realistic to talk to during development; it deliberately
// implements no shelter business rules.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*userRecord // keyed by email
	animals      map[string]shelterapi.Animal
	kennels      map[string]shelterapi.Kennel
	tasks        map[string]shelterapi.Task
	plans        map[string]shelterapi.FeedingPlan
	reservations map[string]shelterapi.HotelReservation
	medical      map[string]shelterapi.MedicalRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*userRecord),
		animals:      make(map[string]shelterapi.Animal),
		kennels:      make(map[string]shelterapi.Kennel),
		tasks:        make(map[string]shelterapi.Task),
		plans:        make(map[string]shelterapi.FeedingPlan),
		reservations: make(map[string]shelterapi.HotelReservation),
		medical:      make(map[string]shelterapi.MedicalRecord),
	}
}

// Seed fills the store with a default organization, one staff account
// (staff@shelter.local / password) and a handful of records.
func (s *Store) Seed() error {
	now := time.Now().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users["staff@shelter.local"] = &userRecord{
		User: shelterapi.User{
			ID:        idgen.PrefixUser + "seed-staff",
			Email:     "staff@shelter.local",
			Name:      "Seed Staff",
			CreatedAt: now,
		},
		PasswordHash: hash,
		Memberships: []shelterapi.Membership{
			{OrganizationID: "org_seed", OrganizationName: "Seed Shelter", Role: "admin"},
		},
	}

	kennel := shelterapi.Kennel{
		ID:        idgen.NewKennel(),
		Name:      "K-01",
		Zone:      "A",
		Capacity:  2,
		Occupied:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.kennels[kennel.ID] = kennel

	animal := shelterapi.Animal{
		ID:        idgen.NewAnimal(),
		Name:      "Rex",
		Species:   "dog",
		Breed:     "mixed",
		Sex:       "male",
		WeightKg:  18.5,
		Status:    shelterapi.AnimalStatusAvailable,
		KennelID:  kennel.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.animals[animal.ID] = animal

	due := now.Add(2 * time.Hour)
	task := shelterapi.Task{
		ID:        idgen.NewTask(),
		Title:     "Morning feeding",
		Type:      shelterapi.TaskTypeFeeding,
		Status:    shelterapi.TaskStatusOpen,
		AnimalID:  animal.ID,
		DueAt:     &due,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks[task.ID] = task

	plan := shelterapi.FeedingPlan{
		ID:           idgen.NewFeedingPlan(),
		AnimalID:     animal.ID,
		FoodType:     "dry adult",
		GramsPerDay:  320,
		MealsPerDay:  2,
		EnergyFactor: 1.6,
		StartDate:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.plans[plan.ID] = plan

	return nil
}

// FindUser returns the seeded user for email, or nil.
func (s *Store) FindUser(email string) *userRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[strings.ToLower(email)]
}

// FindUserByID returns the seeded user for id, or nil.
func (s *Store) FindUserByID(id string) *userRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// sortedByID keeps list responses stable between calls.
func sortedByID[T any](items map[string]T) []T {
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(items))
	for _, key := range keys {
		out = append(out, items[key])
	}
	return out
}
