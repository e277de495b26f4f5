package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelterhub/internal/shelterapi"
)

type mockTaskLister struct {
	tasks []shelterapi.Task
	err   error
}

func (m *mockTaskLister) ListTasks(ctx context.Context, filter shelterapi.TaskFilter) ([]shelterapi.Task, error) {
	return m.tasks, m.err
}

type mockNotifier struct {
	messages []string
	chatIDs  []int64
}

func (m *mockNotifier) Notify(chatID int64, text string) error {
	m.chatIDs = append(m.chatIDs, chatID)
	m.messages = append(m.messages, text)
	return nil
}

func newTestReminder(lister TaskLister, notifier Notifier) *Reminder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReminder(lister, notifier, 42, time.Minute, time.Hour, logger)
}

func TestReminder_NotifiesOnce(t *testing.T) {
	due := time.Now().Add(30 * time.Minute)
	lister := &mockTaskLister{tasks: []shelterapi.Task{
		{ID: "tsk_1", Title: "Morning feeding", Type: shelterapi.TaskTypeFeeding, DueAt: &due},
	}}
	notifier := &mockNotifier{}
	reminder := newTestReminder(lister, notifier)

	reminder.tick(context.Background())
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, int64(42), notifier.chatIDs[0])
	assert.Contains(t, notifier.messages[0], "Morning feeding")

	// The same task is not announced again.
	reminder.tick(context.Background())
	assert.Len(t, notifier.messages, 1)
}

func TestReminder_NewTaskTriggersNewMessage(t *testing.T) {
	due := time.Now().Add(30 * time.Minute)
	lister := &mockTaskLister{tasks: []shelterapi.Task{
		{ID: "tsk_1", Title: "Morning feeding", DueAt: &due},
	}}
	notifier := &mockNotifier{}
	reminder := newTestReminder(lister, notifier)

	reminder.tick(context.Background())
	require.Len(t, notifier.messages, 1)

	lister.tasks = append(lister.tasks, shelterapi.Task{ID: "tsk_2", Title: "Walk Rex", DueAt: &due})
	reminder.tick(context.Background())
	require.Len(t, notifier.messages, 2)

	// Only the new task appears in the second reminder.
	assert.Contains(t, notifier.messages[1], "Walk Rex")
	assert.NotContains(t, notifier.messages[1], "Morning feeding")
}

func TestReminder_CompletedTaskIsPruned(t *testing.T) {
	due := time.Now().Add(30 * time.Minute)
	lister := &mockTaskLister{tasks: []shelterapi.Task{
		{ID: "tsk_1", Title: "Morning feeding", DueAt: &due},
	}}
	notifier := &mockNotifier{}
	reminder := newTestReminder(lister, notifier)

	reminder.tick(context.Background())
	require.Len(t, notifier.messages, 1)

	// Task disappears (completed), then shows up again later.
	lister.tasks = nil
	reminder.tick(context.Background())
	require.Len(t, notifier.messages, 1)

	lister.tasks = []shelterapi.Task{{ID: "tsk_1", Title: "Morning feeding", DueAt: &due}}
	reminder.tick(context.Background())
	assert.Len(t, notifier.messages, 2)
}

func TestReminder_ListErrorDoesNotNotify(t *testing.T) {
	lister := &mockTaskLister{err: assert.AnError}
	notifier := &mockNotifier{}
	reminder := newTestReminder(lister, notifier)

	reminder.tick(context.Background())
	assert.Empty(t, notifier.messages)
}
