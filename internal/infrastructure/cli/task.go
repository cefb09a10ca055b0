package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/application"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage individual tasks",
}

// parseWhen accepts "2006-01-02 15:04" or a bare date, which schedules at
// the start of the working day.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t.Add(9 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected 'YYYY-MM-DD HH:MM' or 'YYYY-MM-DD')", s)
}

func createTaskCommand(use, short, event string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := loadServicesForCurrentDir()
			if err != nil {
				return err
			}
			task, err := services.Schedule.TransitionTask(args[0], event)
			if err != nil {
				return MapError(fmt.Errorf("failed to %s task: %w", use, err))
			}
			fmt.Printf("Task %s is now %s.\n", task.ID, task.Status.DisplayName())
			return nil
		},
	}
}

// Flag variables for task add / move / complete
var (
	taskChannel  string
	taskType     string
	taskEstimate string
	taskAt       string
	taskNotes    string
	taskForce    bool
	taskMoveTo   string
	taskActual   float64
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Schedule a new task in the current week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		var contentType schedule.ContentType
		if taskType != "" {
			contentType, err = schedule.ParseContentType(taskType)
			if err != nil {
				return err
			}
		}

		start, err := parseWhen(taskAt)
		if err != nil {
			return err
		}

		task, err := services.Schedule.AddTask(application.AddTaskParams{
			Channel:     taskChannel,
			Title:       args[0],
			ContentType: contentType,
			Estimate:    taskEstimate,
			Start:       start,
			Notes:       taskNotes,
			Force:       taskForce,
		})
		if err != nil {
			return MapError(fmt.Errorf("failed to add task: %w", err))
		}

		fmt.Printf("Scheduled %s: %s %s (%.1fh, %s)\n",
			task.ID, task.ScheduledStart.Format("Mon 15:04"), task.Title, task.EstimatedHours, task.ChannelID)
		return nil
	},
}

var taskFromTemplateCmd = &cobra.Command{
	Use:   "add-from-template <template>",
	Short: "Schedule a task using a template's type and estimate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		start, err := parseWhen(taskAt)
		if err != nil {
			return err
		}

		task, err := services.Schedule.AddTaskFromTemplate(args[0], taskChannel, start, taskForce)
		if err != nil {
			return MapError(fmt.Errorf("failed to add task from template: %w", err))
		}

		fmt.Printf("Scheduled %s: %s %s (%.1fh, %s)\n",
			task.ID, task.ScheduledStart.Format("Mon 15:04"), task.Title, task.EstimatedHours, task.ChannelID)
		return nil
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task-id>",
	Short: "Move a task to a new start time, keeping its duration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		newStart, err := parseWhen(taskMoveTo)
		if err != nil {
			return err
		}

		task, err := services.Schedule.MoveTask(args[0], newStart, taskForce)
		if err != nil {
			return MapError(fmt.Errorf("failed to move task: %w", err))
		}

		fmt.Printf("Moved %s to %s.\n", task.ID, task.ScheduledStart.Format("Mon 2006-01-02 15:04"))
		return nil
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		var actual *float64
		if cmd.Flags().Changed("actual") {
			actual = &taskActual
		}

		task, err := services.Schedule.CompleteTask(args[0], actual)
		if err != nil {
			return MapError(fmt.Errorf("failed to complete task: %w", err))
		}

		if task.ActualHours != nil {
			fmt.Printf("Task %s completed in %.1fh (estimated %.1fh).\n",
				task.ID, *task.ActualHours, task.EstimatedHours)
		} else {
			fmt.Printf("Task %s completed.\n", task.ID)
		}
		return nil
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:   "remove <task-id>",
	Short: "Remove a task from the schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := services.Schedule.RemoveTask(args[0]); err != nil {
			return MapError(fmt.Errorf("failed to remove task: %w", err))
		}
		fmt.Printf("Task %s removed.\n", args[0])
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskChannel, "channel", "c", "", "Channel ID or name (required)")
	taskAddCmd.Flags().StringVarP(&taskType, "type", "t", "", "Content type (defaults to the channel's)")
	taskAddCmd.Flags().StringVarP(&taskEstimate, "estimate", "e", "", "Estimated effort, e.g. 4, 2.5h or 90m (required)")
	taskAddCmd.Flags().StringVar(&taskAt, "at", "", "Start time as 'YYYY-MM-DD HH:MM' (required)")
	taskAddCmd.Flags().StringVar(&taskNotes, "notes", "", "Free-form notes")
	taskAddCmd.Flags().BoolVar(&taskForce, "force", false, "Schedule even if it overlaps existing tasks")
	_ = taskAddCmd.MarkFlagRequired("channel")
	_ = taskAddCmd.MarkFlagRequired("estimate")
	_ = taskAddCmd.MarkFlagRequired("at")

	taskFromTemplateCmd.Flags().StringVarP(&taskChannel, "channel", "c", "", "Channel ID or name (required)")
	taskFromTemplateCmd.Flags().StringVar(&taskAt, "at", "", "Start time as 'YYYY-MM-DD HH:MM' (required)")
	taskFromTemplateCmd.Flags().BoolVar(&taskForce, "force", false, "Schedule even if it overlaps existing tasks")
	_ = taskFromTemplateCmd.MarkFlagRequired("channel")
	_ = taskFromTemplateCmd.MarkFlagRequired("at")

	taskMoveCmd.Flags().StringVar(&taskMoveTo, "to", "", "New start time as 'YYYY-MM-DD HH:MM' (required)")
	taskMoveCmd.Flags().BoolVar(&taskForce, "force", false, "Move even if it overlaps existing tasks")
	_ = taskMoveCmd.MarkFlagRequired("to")

	taskCompleteCmd.Flags().Float64Var(&taskActual, "actual", 0, "Actual hours spent")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskFromTemplateCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(createTaskCommand("start", "Start working on a task", "start"))
	taskCmd.AddCommand(createTaskCommand("stop", "Stop a task and return it to planned", "stop"))
	taskCmd.AddCommand(taskCompleteCmd)
	taskCmd.AddCommand(createTaskCommand("reopen", "Reopen a completed task", "reopen"))
	taskCmd.AddCommand(createTaskCommand("resume", "Resume an overdue task", "resume"))
	taskCmd.AddCommand(taskRemoveCmd)

	RootCmd.AddCommand(taskCmd)
}
