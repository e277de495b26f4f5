package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"shelterhub/internal/format"
	"shelterhub/internal/shelterapi"
)

var (
	tasksStatus    string
	tasksType      string
	tasksAnimal    string
	tasksDueWithin time.Duration
)

// tasksCmd groups task subcommands.
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List and complete shelter tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		tasks, err := client.ListTasks(cmd.Context(), shelterapi.TaskFilter{
			Status:    tasksStatus,
			Type:      tasksType,
			AnimalID:  tasksAnimal,
			DueWithin: tasksDueWithin,
		})
		if err != nil {
			return err
		}

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS\tDUE")
		for _, task := range tasks {
			due := "-"
			if task.DueAt != nil {
				due = fmt.Sprintf("%s %s", format.DateLabel(*task.DueAt, now), format.Time(*task.DueAt))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				task.ID, task.Title, task.Type, task.Status, due)
		}
		return w.Flush()
	},
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		task, err := client.CompleteTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Done: %s\n", task.Title)
		return nil
	},
}

func init() {
	tasksListCmd.Flags().StringVar(&tasksStatus, "status", shelterapi.TaskStatusOpen, "Filter by status (open, done, or empty for all)")
	tasksListCmd.Flags().StringVar(&tasksType, "type", "", "Filter by type (feeding, walk, cleaning, medical)")
	tasksListCmd.Flags().StringVar(&tasksAnimal, "animal", "", "Filter by animal id")
	tasksListCmd.Flags().DurationVar(&tasksDueWithin, "due-within", 0, "Only tasks due within this duration (e.g. 2h)")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksDoneCmd)
}
