package bot

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shelterhub/internal/format"
	"shelterhub/internal/shelterapi"
)

// CallbackData represents the data embedded in callback buttons. Telegram
// caps callback payloads at 64 bytes, so lists are referenced by index and
// re-resolved against a fresh fetch when the button fires.
type CallbackData struct {
	Action    string `json:"a"`            // Action type (task, hotel, animal, cancel)
	SubAction string `json:"sa,omitempty"` // Sub-action (done, checkin, checkout, show)
	Index     int    `json:"i,omitempty"`  // Item index in the last listed set
}

// MarshalCallback converts CallbackData to a JSON string.
func MarshalCallback(data CallbackData) string {
	b, err := json.Marshal(data)
	if err != nil {
		// Should never happen with simple structs
		return ""
	}
	return string(b)
}

// UnmarshalCallback parses callback data from a JSON string.
func UnmarshalCallback(data string) (*CallbackData, error) {
	var cb CallbackData
	if err := json.Unmarshal([]byte(data), &cb); err != nil {
		return nil, fmt.Errorf("failed to unmarshal callback: %w", err)
	}
	return &cb, nil
}

// BuildTaskButtons creates one "done" button per open task.
func BuildTaskButtons(tasks []shelterapi.Task) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i, task := range tasks {
		callback := MarshalCallback(CallbackData{
			Action:    "task",
			SubAction: "done",
			Index:     i,
		})

		label := fmt.Sprintf("✅ %d. %s %s", i+1, format.TaskTypeEmoji(task.Type), task.Title)
		btn := tgbotapi.NewInlineKeyboardButtonData(label, callback)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{btn})
	}

	cancelBtn := tgbotapi.NewInlineKeyboardButtonData(
		"❌ Cancel",
		MarshalCallback(CallbackData{Action: "cancel"}),
	)
	rows = append(rows, []tgbotapi.InlineKeyboardButton{cancelBtn})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BuildAnimalButtons creates one detail button per listed animal.
func BuildAnimalButtons(animals []shelterapi.Animal) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i, animal := range animals {
		callback := MarshalCallback(CallbackData{
			Action:    "animal",
			SubAction: "show",
			Index:     i,
		})

		label := fmt.Sprintf("%s %s", format.SpeciesEmoji(animal.Species), animal.Name)
		btn := tgbotapi.NewInlineKeyboardButtonData(label, callback)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{btn})
	}

	cancelBtn := tgbotapi.NewInlineKeyboardButtonData(
		"❌ Cancel",
		MarshalCallback(CallbackData{Action: "cancel"}),
	)
	rows = append(rows, []tgbotapi.InlineKeyboardButton{cancelBtn})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BuildReservationButtons creates the status-transition button for each
// reservation: booked gets a check-in button, checked-in gets check-out.
func BuildReservationButtons(reservations []shelterapi.HotelReservation) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i, reservation := range reservations {
		var label, subAction string
		switch reservation.Status {
		case shelterapi.ReservationStatusBooked:
			label = fmt.Sprintf("🔑 Check in %s", reservation.AnimalName)
			subAction = "checkin"
		case shelterapi.ReservationStatusCheckedIn:
			label = fmt.Sprintf("🏁 Check out %s", reservation.AnimalName)
			subAction = "checkout"
		default:
			continue
		}

		callback := MarshalCallback(CallbackData{
			Action:    "hotel",
			SubAction: subAction,
			Index:     i,
		})
		btn := tgbotapi.NewInlineKeyboardButtonData(label, callback)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{btn})
	}

	cancelBtn := tgbotapi.NewInlineKeyboardButtonData(
		"❌ Cancel",
		MarshalCallback(CallbackData{Action: "cancel"}),
	)
	rows = append(rows, []tgbotapi.InlineKeyboardButton{cancelBtn})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BuildMainMenuButtons creates main menu shortcut buttons.
func BuildMainMenuButtons() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐾 Animals", "/animals"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Tasks", "/tasks"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍽 Feeding", "/feeding"),
			tgbotapi.NewInlineKeyboardButtonData("🛎 Hotel", "/hotel"),
		),
	)
}

// BuildQuickActionsButtons creates compact action buttons for attaching to
// responses.
func BuildQuickActionsButtons() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐾 Animals", "/animals"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Tasks", "/tasks"),
			tgbotapi.NewInlineKeyboardButtonData("🛎 Hotel", "/hotel"),
		),
	)
}
