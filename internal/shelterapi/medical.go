package shelterapi

import (
	"context"
	"net/url"
	"time"
)

// MedicalRecord represents one veterinary event for an animal.
type MedicalRecord struct {
	ID          string     `json:"id"`
	AnimalID    string     `json:"animal_id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	VetName     string     `json:"vet_name,omitempty"`
	PerformedAt time.Time  `json:"performed_at"`
	NextDueAt   *time.Time `json:"next_due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Medical record types as defined by the backend.
const (
	MedicalTypeVaccination = "vaccination"
	MedicalTypeTreatment   = "treatment"
	MedicalTypeExam        = "exam"
	MedicalTypeSurgery     = "surgery"
)

// CreateMedicalRecordRequest is the payload for recording a veterinary event.
type CreateMedicalRecordRequest struct {
	AnimalID    string     `json:"animal_id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	VetName     string     `json:"vet_name,omitempty"`
	PerformedAt time.Time  `json:"performed_at"`
	NextDueAt   *time.Time `json:"next_due_at,omitempty"`
}

// ListMedicalRecords retrieves medical records, optionally for one animal.
func (c *Client) ListMedicalRecords(ctx context.Context, animalID string) ([]MedicalRecord, error) {
	path := "/medical-records"
	if animalID != "" {
		query := url.Values{}
		query.Set("animal_id", animalID)
		path += "?" + query.Encode()
	}

	var records []MedicalRecord
	if err := c.Get(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetMedicalRecord retrieves a single medical record by id.
func (c *Client) GetMedicalRecord(ctx context.Context, id string) (*MedicalRecord, error) {
	var record MedicalRecord
	if err := c.Get(ctx, "/medical-records/"+id, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateMedicalRecord records a new veterinary event.
func (c *Client) CreateMedicalRecord(ctx context.Context, req CreateMedicalRecordRequest) (*MedicalRecord, error) {
	var record MedicalRecord
	if err := c.Post(ctx, "/medical-records", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
