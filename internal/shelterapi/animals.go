package shelterapi

import (
	"context"
	"net/url"
	"time"
)

// Animal represents a sheltered animal.
type Animal struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed,omitempty"`
	Sex         string     `json:"sex,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	WeightKg    float64    `json:"weight_kg,omitempty"`
	Status      string     `json:"status"`
	KennelID    string     `json:"kennel_id,omitempty"`
	ChipNumber  string     `json:"chip_number,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Animal statuses as defined by the backend.
const (
	AnimalStatusIntake    = "intake"
	AnimalStatusAvailable = "available"
	AnimalStatusFostered  = "fostered"
	AnimalStatusAdopted   = "adopted"
	AnimalStatusHotel     = "hotel"
)

// AnimalFilter narrows ListAnimals results.
type AnimalFilter struct {
	Species  string
	Status   string
	KennelID string
}

// CreateAnimalRequest is the payload for creating an animal.
type CreateAnimalRequest struct {
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed,omitempty"`
	Sex         string     `json:"sex,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	WeightKg    float64    `json:"weight_kg,omitempty"`
	KennelID    string     `json:"kennel_id,omitempty"`
	ChipNumber  string     `json:"chip_number,omitempty"`
	Description string     `json:"description,omitempty"`
}

// UpdateAnimalRequest is the payload for a partial animal update. Nil
// fields are left unchanged by the backend.
type UpdateAnimalRequest struct {
	Name        *string    `json:"name,omitempty"`
	Status      *string    `json:"status,omitempty"`
	WeightKg    *float64   `json:"weight_kg,omitempty"`
	KennelID    *string    `json:"kennel_id,omitempty"`
	Description *string    `json:"description,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
}

// ListAnimals retrieves animals, optionally filtered.
func (c *Client) ListAnimals(ctx context.Context, filter AnimalFilter) ([]Animal, error) {
	query := url.Values{}
	if filter.Species != "" {
		query.Set("species", filter.Species)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.KennelID != "" {
		query.Set("kennel_id", filter.KennelID)
	}

	path := "/animals"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var animals []Animal
	if err := c.Get(ctx, path, &animals); err != nil {
		return nil, err
	}
	return animals, nil
}

// GetAnimal retrieves a single animal by id.
func (c *Client) GetAnimal(ctx context.Context, id string) (*Animal, error) {
	var animal Animal
	if err := c.Get(ctx, "/animals/"+id, &animal); err != nil {
		return nil, err
	}
	return &animal, nil
}

// CreateAnimal registers a new animal.
func (c *Client) CreateAnimal(ctx context.Context, req CreateAnimalRequest) (*Animal, error) {
	var animal Animal
	if err := c.Post(ctx, "/animals", req, &animal); err != nil {
		return nil, err
	}
	return &animal, nil
}

// UpdateAnimal applies a partial update to an animal.
func (c *Client) UpdateAnimal(ctx context.Context, id string, req UpdateAnimalRequest) (*Animal, error) {
	var animal Animal
	if err := c.Patch(ctx, "/animals/"+id, req, &animal); err != nil {
		return nil, err
	}
	return &animal, nil
}

// DeleteAnimal removes an animal record.
func (c *Client) DeleteAnimal(ctx context.Context, id string) error {
	return c.Delete(ctx, "/animals/"+id)
}
