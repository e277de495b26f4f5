package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelterhub/internal/shelterapi"
)

func TestCallbackRoundTrip(t *testing.T) {
	data := CallbackData{Action: "task", SubAction: "done", Index: 3}

	raw := MarshalCallback(data)
	require.NotEmpty(t, raw)
	// Telegram limits callback payloads to 64 bytes.
	assert.LessOrEqual(t, len(raw), 64)

	parsed, err := UnmarshalCallback(raw)
	require.NoError(t, err)
	assert.Equal(t, data, *parsed)
}

func TestUnmarshalCallback_Invalid(t *testing.T) {
	_, err := UnmarshalCallback("not json")
	assert.Error(t, err)
}

func TestBuildTaskButtons(t *testing.T) {
	tasks := []shelterapi.Task{
		{ID: "tsk_1", Title: "Morning feeding", Type: shelterapi.TaskTypeFeeding},
		{ID: "tsk_2", Title: "Walk Rex", Type: shelterapi.TaskTypeWalk},
	}

	markup := BuildTaskButtons(tasks)
	// One row per task plus the cancel row.
	require.Len(t, markup.InlineKeyboard, 3)

	first, err := UnmarshalCallback(*markup.InlineKeyboard[0][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, "task", first.Action)
	assert.Equal(t, "done", first.SubAction)
	assert.Equal(t, 0, first.Index)

	second, err := UnmarshalCallback(*markup.InlineKeyboard[1][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Index)

	cancel, err := UnmarshalCallback(*markup.InlineKeyboard[2][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, "cancel", cancel.Action)
}

func TestBuildReservationButtons_StatusTransitions(t *testing.T) {
	reservations := []shelterapi.HotelReservation{
		{ID: "res_1", AnimalName: "Bella", Status: shelterapi.ReservationStatusBooked},
		{ID: "res_2", AnimalName: "Milo", Status: shelterapi.ReservationStatusCheckedIn},
		{ID: "res_3", AnimalName: "Gone", Status: shelterapi.ReservationStatusCheckedOut},
	}

	markup := BuildReservationButtons(reservations)
	// Checked-out reservations get no button; two transitions plus cancel.
	require.Len(t, markup.InlineKeyboard, 3)

	checkin, err := UnmarshalCallback(*markup.InlineKeyboard[0][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, "hotel", checkin.Action)
	assert.Equal(t, "checkin", checkin.SubAction)
	assert.Equal(t, 0, checkin.Index)

	checkout, err := UnmarshalCallback(*markup.InlineKeyboard[1][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, "checkout", checkout.SubAction)
	assert.Equal(t, 1, checkout.Index)
}
