package shelterapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListAnimals_Filter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/animals", r.URL.Path)
		assert.Equal(t, "dog", r.URL.Query().Get("species"))
		assert.Equal(t, "available", r.URL.Query().Get("status"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Animal{
			{ID: "anm_1", Name: "Rex", Species: "dog", Status: "available"},
		})
	}))
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	animals, err := client.ListAnimals(context.Background(), AnimalFilter{
		Species: "dog",
		Status:  AnimalStatusAvailable,
	})
	require.NoError(t, err)
	require.Len(t, animals, 1)
	assert.Equal(t, "Rex", animals[0].Name)
}

func TestClient_CompleteTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tasks/tsk_1", r.URL.Path)

		var req struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, TaskStatusDone, req.Status)

		now := time.Now()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Task{
			ID:          "tsk_1",
			Title:       "Morning feeding",
			Type:        TaskTypeFeeding,
			Status:      TaskStatusDone,
			CompletedAt: &now,
		})
	}))
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	task, err := client.CompleteTask(context.Background(), "tsk_1")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusDone, task.Status)
	assert.NotNil(t, task.CompletedAt)
}

func TestClient_ReservationCheckIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/hotel-reservations/res_1", r.URL.Path)

		var req struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, ReservationStatusCheckedIn, req.Status)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HotelReservation{
			ID:     "res_1",
			Status: ReservationStatusCheckedIn,
		})
	}))
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	reservation, err := client.CheckInReservation(context.Background(), "res_1")
	require.NoError(t, err)
	assert.Equal(t, ReservationStatusCheckedIn, reservation.Status)
}

func TestClient_DeleteAnimal_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	require.NoError(t, client.DeleteAnimal(context.Background(), "anm_1"))
}

func TestClient_NotFoundError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "animal not found", "code": "NOT_FOUND"}`))
	}))
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	_, err := client.GetAnimal(context.Background(), "anm_missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "animal not found", apiErr.Message)
}
