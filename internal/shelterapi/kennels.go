package shelterapi

import (
	"context"
	"time"
)

// Kennel represents one enclosure.
type Kennel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Zone      string    `json:"zone,omitempty"`
	Capacity  int       `json:"capacity"`
	Occupied  int       `json:"occupied"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateKennelRequest is the payload for creating a kennel.
type CreateKennelRequest struct {
	Name     string `json:"name"`
	Zone     string `json:"zone,omitempty"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes,omitempty"`
}

// UpdateKennelRequest is the payload for a partial kennel update.
type UpdateKennelRequest struct {
	Name     *string `json:"name,omitempty"`
	Zone     *string `json:"zone,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ListKennels retrieves all kennels of the selected organization.
func (c *Client) ListKennels(ctx context.Context) ([]Kennel, error) {
	var kennels []Kennel
	if err := c.Get(ctx, "/kennels", &kennels); err != nil {
		return nil, err
	}
	return kennels, nil
}

// GetKennel retrieves a single kennel by id.
func (c *Client) GetKennel(ctx context.Context, id string) (*Kennel, error) {
	var kennel Kennel
	if err := c.Get(ctx, "/kennels/"+id, &kennel); err != nil {
		return nil, err
	}
	return &kennel, nil
}

// CreateKennel registers a new kennel.
func (c *Client) CreateKennel(ctx context.Context, req CreateKennelRequest) (*Kennel, error) {
	var kennel Kennel
	if err := c.Post(ctx, "/kennels", req, &kennel); err != nil {
		return nil, err
	}
	return &kennel, nil
}

// UpdateKennel applies a partial update to a kennel.
func (c *Client) UpdateKennel(ctx context.Context, id string, req UpdateKennelRequest) (*Kennel, error) {
	var kennel Kennel
	if err := c.Patch(ctx, "/kennels/"+id, req, &kennel); err != nil {
		return nil, err
	}
	return &kennel, nil
}
