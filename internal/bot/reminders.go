package bot

import (
	"context"
	"log/slog"
	"time"

	"shelterhub/internal/shelterapi"
)

// TaskLister is the slice of the API client the reminder poller needs.
type TaskLister interface {
	ListTasks(ctx context.Context, filter shelterapi.TaskFilter) ([]shelterapi.Task, error)
}

// Notifier delivers a reminder message to a chat.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// Reminder periodically checks for open tasks that are due soon and posts
// them to the configured staff chat. Each task is announced once; completed
// tasks drop out of the open list and their dedupe entries are pruned.
type Reminder struct {
	tasks     TaskLister
	notifier  Notifier
	chatID    int64
	interval  time.Duration
	dueWithin time.Duration
	stopChan  chan struct{}
	logger    *slog.Logger

	notified map[string]struct{}
}

// NewReminder creates a reminder poller.
func NewReminder(tasks TaskLister, notifier Notifier, chatID int64, interval, dueWithin time.Duration, logger *slog.Logger) *Reminder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reminder{
		tasks:      tasks,
		notifier:   notifier,
		chatID:     chatID,
		interval:   interval,
		dueWithin:  dueWithin,
		stopChan:   make(chan struct{}),
		logger:     logger.With("component", "reminders"),
		notified:   make(map[string]struct{}),
	}
}

// Start begins the reminder loop.
func (r *Reminder) Start() {
	r.logger.Info("Reminder poller started",
		"interval", r.interval,
		"due_within", r.dueWithin,
	)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.tick(context.Background())
		case <-r.stopChan:
			r.logger.Info("Reminder poller stopped")
			return
		}
	}
}

// Stop terminates the reminder loop.
func (r *Reminder) Stop() {
	close(r.stopChan)
}

func (r *Reminder) tick(ctx context.Context) {
	due, err := r.tasks.ListTasks(ctx, shelterapi.TaskFilter{
		Status:    shelterapi.TaskStatusOpen,
		DueWithin: r.dueWithin,
	})
	if err != nil {
		r.logger.Error("Failed to list due tasks", "error", err)
		return
	}

	open := make(map[string]struct{}, len(due))
	fresh := make([]shelterapi.Task, 0, len(due))
	for _, task := range due {
		open[task.ID] = struct{}{}
		if _, seen := r.notified[task.ID]; !seen {
			fresh = append(fresh, task)
		}
	}

	// Prune tasks that are no longer due, so a task that is re-opened
	// later gets announced again.
	for id := range r.notified {
		if _, stillOpen := open[id]; !stillOpen {
			delete(r.notified, id)
		}
	}

	if len(fresh) == 0 {
		return
	}

	if err := r.notifier.Notify(r.chatID, FormatTaskReminder(fresh, time.Now())); err != nil {
		r.logger.Error("Failed to send reminder", "error", err)
		return
	}

	for _, task := range fresh {
		r.notified[task.ID] = struct{}{}
	}

	r.logger.Info("Reminder sent", "tasks", len(fresh))
}

// Notify implements Notifier on the bot itself.
func (b *Bot) Notify(chatID int64, text string) error {
	return b.sendMessage(chatID, text, nil)
}
