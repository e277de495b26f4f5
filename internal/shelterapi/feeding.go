package shelterapi

import (
	"context"
	"net/url"
	"time"
)

// FeedingPlan describes what and how much an animal is fed per day.
type FeedingPlan struct {
	ID           string    `json:"id"`
	AnimalID     string    `json:"animal_id"`
	FoodType     string    `json:"food_type"`
	GramsPerDay  int       `json:"grams_per_day"`
	MealsPerDay  int       `json:"meals_per_day"`
	EnergyFactor float64   `json:"energy_factor,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	StartDate    time.Time `json:"start_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateFeedingPlanRequest is the payload for creating a feeding plan.
type CreateFeedingPlanRequest struct {
	AnimalID     string    `json:"animal_id"`
	FoodType     string    `json:"food_type"`
	GramsPerDay  int       `json:"grams_per_day"`
	MealsPerDay  int       `json:"meals_per_day"`
	EnergyFactor float64   `json:"energy_factor,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	StartDate    time.Time `json:"start_date"`
}

// UpdateFeedingPlanRequest is the payload for a partial plan update.
type UpdateFeedingPlanRequest struct {
	FoodType     *string  `json:"food_type,omitempty"`
	GramsPerDay  *int     `json:"grams_per_day,omitempty"`
	MealsPerDay  *int     `json:"meals_per_day,omitempty"`
	EnergyFactor *float64 `json:"energy_factor,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// ListFeedingPlans retrieves feeding plans, optionally for one animal.
func (c *Client) ListFeedingPlans(ctx context.Context, animalID string) ([]FeedingPlan, error) {
	path := "/feeding-plans"
	if animalID != "" {
		query := url.Values{}
		query.Set("animal_id", animalID)
		path += "?" + query.Encode()
	}

	var plans []FeedingPlan
	if err := c.Get(ctx, path, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetFeedingPlan retrieves a single feeding plan by id.
func (c *Client) GetFeedingPlan(ctx context.Context, id string) (*FeedingPlan, error) {
	var plan FeedingPlan
	if err := c.Get(ctx, "/feeding-plans/"+id, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateFeedingPlan registers a new feeding plan.
func (c *Client) CreateFeedingPlan(ctx context.Context, req CreateFeedingPlanRequest) (*FeedingPlan, error) {
	var plan FeedingPlan
	if err := c.Post(ctx, "/feeding-plans", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateFeedingPlan applies a partial update to a feeding plan.
func (c *Client) UpdateFeedingPlan(ctx context.Context, id string, req UpdateFeedingPlanRequest) (*FeedingPlan, error) {
	var plan FeedingPlan
	if err := c.Patch(ctx, "/feeding-plans/"+id, req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
