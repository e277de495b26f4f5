package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shelterhub/internal/shelterapi"
)

// handleStart shows the welcome message and the main menu.
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	var userName, orgName string
	if user := b.session.User(); user != nil {
		userName = user.Name
	}
	for _, m := range b.session.Memberships() {
		if m.OrganizationID == b.session.OrganizationID() {
			orgName = m.OrganizationName
			break
		}
	}

	return b.sendMessage(message.Chat.ID,
		FormatStart(userName, orgName), BuildMainMenuButtons())
}

// handleAnimals lists animals with per-animal detail buttons.
func (b *Bot) handleAnimals(ctx context.Context, message *tgbotapi.Message) error {
	animals, err := b.client.ListAnimals(ctx, shelterapi.AnimalFilter{})
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	return b.sendMessage(message.Chat.ID,
		FormatAnimals(animals), BuildAnimalButtons(animals))
}

// handleTasks lists open tasks with per-task complete buttons.
func (b *Bot) handleTasks(ctx context.Context, message *tgbotapi.Message) error {
	tasks, err := b.openTasks(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	return b.sendMessage(message.Chat.ID,
		FormatTasks(tasks, time.Now()), BuildTaskButtons(tasks))
}

// handleFeeding lists feeding plans with the computed energy requirements.
func (b *Bot) handleFeeding(ctx context.Context, message *tgbotapi.Message) error {
	plans, err := b.client.ListFeedingPlans(ctx, "")
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	animals, err := b.client.ListAnimals(ctx, shelterapi.AnimalFilter{})
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	animalsByID := make(map[string]shelterapi.Animal, len(animals))
	for _, animal := range animals {
		animalsByID[animal.ID] = animal
	}

	return b.sendMessage(message.Chat.ID,
		FormatFeedingPlans(plans, animalsByID), BuildQuickActionsButtons())
}

// handleHotel lists reservations with check-in and check-out buttons.
func (b *Bot) handleHotel(ctx context.Context, message *tgbotapi.Message) error {
	reservations, err := b.activeReservations(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	return b.sendMessage(message.Chat.ID,
		FormatReservations(reservations, time.Now()), BuildReservationButtons(reservations))
}

// handleKennels lists kennel occupancy.
func (b *Bot) handleKennels(ctx context.Context, message *tgbotapi.Message) error {
	kennels, err := b.client.ListKennels(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	return b.sendMessage(message.Chat.ID,
		FormatKennels(kennels), BuildQuickActionsButtons())
}

// handleTaskAction completes the task behind a button. The index refers to
// the open-task list, which is re-fetched so a stale button cannot complete
// the wrong task silently; a mismatch simply reports the task as gone.
func (b *Bot) handleTaskAction(ctx context.Context, message *tgbotapi.Message, data *CallbackData) error {
	if data.SubAction != "done" {
		return b.sendMessage(message.Chat.ID, "Unknown action.", nil)
	}

	tasks, err := b.openTasks(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}
	if data.Index < 0 || data.Index >= len(tasks) {
		return b.editMessage(message.Chat.ID, message.MessageID,
			"That task is gone. Use /tasks for a fresh list.", BuildQuickActionsButtons())
	}

	task := tasks[data.Index]
	done, err := b.client.CompleteTask(ctx, task.ID)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	b.logger.Info("task completed via bot", "task_id", done.ID)

	remaining := append(tasks[:data.Index], tasks[data.Index+1:]...)
	text := fmt.Sprintf("✅ Done: *%s*\n\n%s", done.Title, FormatTasks(remaining, time.Now()))
	return b.editMessage(message.Chat.ID, message.MessageID,
		text, BuildTaskButtons(remaining))
}

// handleHotelAction performs the check-in or check-out behind a button.
func (b *Bot) handleHotelAction(ctx context.Context, message *tgbotapi.Message, data *CallbackData) error {
	reservations, err := b.activeReservations(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}
	if data.Index < 0 || data.Index >= len(reservations) {
		return b.editMessage(message.Chat.ID, message.MessageID,
			"That reservation is gone. Use /hotel for a fresh list.", BuildQuickActionsButtons())
	}

	reservation := reservations[data.Index]

	var updated *shelterapi.HotelReservation
	switch data.SubAction {
	case "checkin":
		updated, err = b.client.CheckInReservation(ctx, reservation.ID)
	case "checkout":
		updated, err = b.client.CheckOutReservation(ctx, reservation.ID)
	default:
		return b.sendMessage(message.Chat.ID, "Unknown action.", nil)
	}
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	b.logger.Info("reservation updated via bot",
		"reservation_id", updated.ID,
		"status", updated.Status,
	)

	refreshed, err := b.activeReservations(ctx)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}
	return b.editMessage(message.Chat.ID, message.MessageID,
		FormatReservations(refreshed, time.Now()), BuildReservationButtons(refreshed))
}

// handleAnimalAction shows the detail view behind an animal button.
func (b *Bot) handleAnimalAction(ctx context.Context, message *tgbotapi.Message, data *CallbackData) error {
	if data.SubAction != "show" {
		return b.sendMessage(message.Chat.ID, "Unknown action.", nil)
	}

	animals, err := b.client.ListAnimals(ctx, shelterapi.AnimalFilter{})
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}
	if data.Index < 0 || data.Index >= len(animals) {
		return b.editMessage(message.Chat.ID, message.MessageID,
			"That animal is gone. Use /animals for a fresh list.", BuildQuickActionsButtons())
	}

	animal := animals[data.Index]
	records, err := b.client.ListMedicalRecords(ctx, animal.ID)
	if err != nil {
		return b.sendMessage(message.Chat.ID, FormatError(err), nil)
	}

	return b.editMessage(message.Chat.ID, message.MessageID,
		FormatAnimalDetail(&animal, records, time.Now()), BuildQuickActionsButtons())
}

func (b *Bot) openTasks(ctx context.Context) ([]shelterapi.Task, error) {
	return b.client.ListTasks(ctx, shelterapi.TaskFilter{
		Status: shelterapi.TaskStatusOpen,
	})
}

// activeReservations returns reservations that still have a pending status
// transition, in a stable order for index-based buttons.
func (b *Bot) activeReservations(ctx context.Context) ([]shelterapi.HotelReservation, error) {
	all, err := b.client.ListReservations(ctx, "")
	if err != nil {
		return nil, err
	}

	active := make([]shelterapi.HotelReservation, 0, len(all))
	for _, reservation := range all {
		switch reservation.Status {
		case shelterapi.ReservationStatusBooked, shelterapi.ReservationStatusCheckedIn:
			active = append(active, reservation)
		}
	}
	return active, nil
}
