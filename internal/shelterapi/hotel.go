package shelterapi

import (
	"context"
	"net/url"
	"time"
)

// HotelReservation represents a paid boarding stay for a guest animal.
type HotelReservation struct {
	ID          string    `json:"id"`
	AnimalName  string    `json:"animal_name"`
	Species     string    `json:"species,omitempty"`
	OwnerName   string    `json:"owner_name"`
	OwnerPhone  string    `json:"owner_phone,omitempty"`
	KennelID    string    `json:"kennel_id,omitempty"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Status      string    `json:"status"`
	PricePerDay float64   `json:"price_per_day,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Reservation statuses as defined by the backend.
const (
	ReservationStatusBooked     = "booked"
	ReservationStatusCheckedIn  = "checked_in"
	ReservationStatusCheckedOut = "checked_out"
	ReservationStatusCancelled  = "cancelled"
)

// CreateReservationRequest is the payload for creating a reservation.
type CreateReservationRequest struct {
	AnimalName  string    `json:"animal_name"`
	Species     string    `json:"species,omitempty"`
	OwnerName   string    `json:"owner_name"`
	OwnerPhone  string    `json:"owner_phone,omitempty"`
	KennelID    string    `json:"kennel_id,omitempty"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	PricePerDay float64   `json:"price_per_day,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// ListReservations retrieves hotel reservations, optionally by status.
func (c *Client) ListReservations(ctx context.Context, status string) ([]HotelReservation, error) {
	path := "/hotel-reservations"
	if status != "" {
		query := url.Values{}
		query.Set("status", status)
		path += "?" + query.Encode()
	}

	var reservations []HotelReservation
	if err := c.Get(ctx, path, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetReservation retrieves a single reservation by id.
func (c *Client) GetReservation(ctx context.Context, id string) (*HotelReservation, error) {
	var reservation HotelReservation
	if err := c.Get(ctx, "/hotel-reservations/"+id, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CreateReservation books a new hotel stay.
func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest) (*HotelReservation, error) {
	var reservation HotelReservation
	if err := c.Post(ctx, "/hotel-reservations", req, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CheckInReservation marks a reservation as checked in.
func (c *Client) CheckInReservation(ctx context.Context, id string) (*HotelReservation, error) {
	return c.setReservationStatus(ctx, id, ReservationStatusCheckedIn)
}

// CheckOutReservation marks a reservation as checked out.
func (c *Client) CheckOutReservation(ctx context.Context, id string) (*HotelReservation, error) {
	return c.setReservationStatus(ctx, id, ReservationStatusCheckedOut)
}

// CancelReservation cancels a reservation.
func (c *Client) CancelReservation(ctx context.Context, id string) (*HotelReservation, error) {
	return c.setReservationStatus(ctx, id, ReservationStatusCancelled)
}

func (c *Client) setReservationStatus(ctx context.Context, id, status string) (*HotelReservation, error) {
	req := struct {
		Status string `json:"status"`
	}{
		Status: status,
	}

	var reservation HotelReservation
	if err := c.Patch(ctx, "/hotel-reservations/"+id, req, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}
