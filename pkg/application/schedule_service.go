package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain"
	"github.com/felixgeelhaar/cadence/pkg/domain/conflict"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/google/uuid"
)

type ScheduleService struct {
	repo     domain.WorkspaceRepository
	audit    domain.AuditLogger
	detector *conflict.Detector
}

func NewScheduleService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *ScheduleService {
	return &ScheduleService{
		repo:     repo,
		audit:    audit,
		detector: conflict.NewDetector(),
	}
}

// AddTaskParams collects everything needed to schedule a new task.
type AddTaskParams struct {
	Channel     string // channel ID or name
	Title       string
	ContentType schedule.ContentType
	Estimate    string // "4", "4.5h", "90m"
	Start       time.Time
	Notes       string
	Force       bool // schedule even if it overlaps existing tasks
}

// AddTask schedules a new task in the current week. Unless forced, the
// task must not overlap any existing task.
func (s *ScheduleService) AddTask(params AddTaskParams) (*schedule.Task, error) {
	hours, err := schedule.ParseHours(params.Estimate)
	if err != nil {
		return nil, err
	}

	channel, err := s.resolveChannel(params.Channel)
	if err != nil {
		return nil, err
	}
	if !channel.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrChannelArchived, channel.Name)
	}

	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}
	if week.StartDate.IsZero() {
		week.StartDate = schedule.WeekStartOf(params.Start)
	}

	now := time.Now()
	contentType := params.ContentType
	if contentType == "" {
		contentType = channel.ContentType
	}
	task := schedule.Task{
		ID:             uuid.New().String(),
		ChannelID:      channel.ID,
		Title:          params.Title,
		ContentType:    contentType,
		EstimatedHours: hours,
		Status:         schedule.StatusPlanned,
		ScheduledStart: params.Start,
		ScheduledEnd:   params.Start.Add(time.Duration(hours * float64(time.Hour))),
		Notes:          params.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if !params.Force {
		if !s.detector.CanSchedule(task, week.Tasks) {
			return nil, fmt.Errorf("%w: %s", ErrSchedulingConflict, s.describeBlockers(task, week.Tasks))
		}
	}

	week.Tasks = append(week.Tasks, task)
	week.UpdatedAt = now
	if err := s.repo.SaveWeek(week); err != nil {
		return nil, err
	}

	if err := s.audit.Log("task.add", map[string]interface{}{
		"task_id":    task.ID,
		"channel_id": task.ChannelID,
		"title":      task.Title,
		"hours":      task.EstimatedHours,
	}); err != nil {
		return nil, err
	}

	return &task, nil
}

// AddTaskFromTemplate schedules a task carrying a template's content type,
// estimate, and name.
func (s *ScheduleService) AddTaskFromTemplate(templateRef, channelRef string, start time.Time, force bool) (*schedule.Task, error) {
	templates, err := s.repo.LoadTemplates()
	if err != nil {
		return nil, err
	}

	var tpl *schedule.Template
	for i := range templates {
		if templates[i].ID == templateRef || strings.EqualFold(templates[i].Name, templateRef) {
			tpl = &templates[i]
			break
		}
	}
	if tpl == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateRef)
	}

	task, err := s.AddTask(AddTaskParams{
		Channel:     channelRef,
		Title:       tpl.Name,
		ContentType: tpl.ContentType,
		Estimate:    schedule.FormatHours(tpl.EstimatedHours),
		Start:       start,
		Force:       force,
	})
	if err != nil {
		return nil, err
	}

	// Re-save with the template link; AddTask has already persisted the task.
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}
	if stored := week.TaskByID(task.ID); stored != nil {
		stored.TemplateID = tpl.ID
		if err := s.repo.SaveWeek(week); err != nil {
			return nil, err
		}
		task = stored
	}

	return task, nil
}

// MoveTask shifts a task to a new start, keeping its duration. Unless
// forced, the new position must not overlap other tasks.
func (s *ScheduleService) MoveTask(taskID string, newStart time.Time, force bool) (*schedule.Task, error) {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}

	task := week.TaskByID(taskID)
	if task == nil {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	duration := task.Duration()
	moved := *task
	moved.ScheduledStart = newStart
	moved.ScheduledEnd = newStart.Add(duration)

	if !force {
		if !s.detector.CanSchedule(moved, week.Tasks) {
			return nil, fmt.Errorf("%w: %s", ErrSchedulingConflict, s.describeBlockers(moved, week.Tasks))
		}
	}

	task.ScheduledStart = moved.ScheduledStart
	task.ScheduledEnd = moved.ScheduledEnd
	task.UpdatedAt = time.Now()
	week.UpdatedAt = task.UpdatedAt

	if err := s.repo.SaveWeek(week); err != nil {
		return nil, err
	}

	if err := s.audit.Log("task.move", map[string]interface{}{
		"task_id":   task.ID,
		"new_start": newStart.Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}

	return task, nil
}

// TransitionTask drives a task through its lifecycle. Picking work up
// (start, resume) is vetoed when the task's channel is archived.
func (s *ScheduleService) TransitionTask(taskID string, event string) (*schedule.Task, error) {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}

	task := week.TaskByID(taskID)
	if task == nil {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	channels, err := s.repo.LoadChannels()
	if err != nil {
		return nil, err
	}
	guard := func(tid string, ev string) bool {
		if ev != "start" && ev != "resume" {
			return true
		}
		for _, ch := range channels {
			if ch.ID == task.ChannelID {
				return ch.IsActive
			}
		}
		// Unknown channel: do not block lifecycle, analysis flags it.
		return true
	}

	fsm, err := schedule.NewTaskStateMachine(string(task.Status), task.ID, guard)
	if err != nil {
		return nil, err
	}
	if err := fsm.Transition(event); err != nil {
		return nil, err
	}

	task.Status = fsm.CurrentStatus()
	task.UpdatedAt = time.Now()
	week.UpdatedAt = task.UpdatedAt

	if err := s.repo.SaveWeek(week); err != nil {
		return nil, err
	}

	if err := s.audit.Log("task.transition", map[string]interface{}{
		"task_id": task.ID,
		"event":   event,
		"status":  string(task.Status),
	}); err != nil {
		return nil, err
	}

	return task, nil
}

// CompleteTask finishes a task, optionally recording the actual hours
// spent for later estimate calibration.
func (s *ScheduleService) CompleteTask(taskID string, actualHours *float64) (*schedule.Task, error) {
	task, err := s.TransitionTask(taskID, "complete")
	if err != nil {
		return nil, err
	}

	if actualHours != nil {
		week, err := s.repo.LoadWeek()
		if err != nil {
			return nil, err
		}
		if stored := week.TaskByID(taskID); stored != nil {
			stored.ActualHours = actualHours
			if err := s.repo.SaveWeek(week); err != nil {
				return nil, err
			}
			task = stored
		}
	}

	return task, nil
}

// RemoveTask deletes a task from the week.
func (s *ScheduleService) RemoveTask(taskID string) error {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return err
	}

	for i := range week.Tasks {
		if week.Tasks[i].ID == taskID {
			removed := week.Tasks[i]
			week.Tasks = append(week.Tasks[:i], week.Tasks[i+1:]...)
			week.UpdatedAt = time.Now()
			if err := s.repo.SaveWeek(week); err != nil {
				return err
			}
			return s.audit.Log("task.remove", map[string]interface{}{
				"task_id": removed.ID,
				"title":   removed.Title,
			})
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// MarkOverdue lapses every active task whose scheduled end has passed.
// Returns the IDs of the tasks that lapsed.
func (s *ScheduleService) MarkOverdue(now time.Time) ([]string, error) {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}

	var lapsed []string
	for i := range week.Tasks {
		task := &week.Tasks[i]
		if !task.Status.IsActive() || !task.ScheduledEnd.Before(now) {
			continue
		}
		next, err := task.Status.TransitionWith("lapse")
		if err != nil {
			continue
		}
		task.Status = next
		task.UpdatedAt = now
		lapsed = append(lapsed, task.ID)
	}
	if len(lapsed) == 0 {
		return nil, nil
	}

	week.UpdatedAt = now
	if err := s.repo.SaveWeek(week); err != nil {
		return nil, err
	}

	if err := s.audit.Log("week.lapse", map[string]interface{}{
		"count":    len(lapsed),
		"task_ids": lapsed,
	}); err != nil {
		return nil, err
	}

	return lapsed, nil
}

// RollWeek advances the schedule by one week: completed tasks are dropped
// (their history lives in the event log), unfinished tasks move with the
// week, shifted forward seven days.
func (s *ScheduleService) RollWeek() (*schedule.Week, error) {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	carried := make([]schedule.Task, 0, len(week.Tasks))
	dropped := 0
	for _, task := range week.Tasks {
		if task.Status.IsComplete() {
			dropped++
			continue
		}
		task.ScheduledStart = task.ScheduledStart.AddDate(0, 0, 7)
		task.ScheduledEnd = task.ScheduledEnd.AddDate(0, 0, 7)
		task.UpdatedAt = now
		carried = append(carried, task)
	}

	next := &schedule.Week{
		StartDate:     week.StartDate.AddDate(0, 0, 7),
		Tasks:         carried,
		CapacityHours: week.CapacityHours,
		UpdatedAt:     now,
	}
	if err := s.repo.SaveWeek(next); err != nil {
		return nil, err
	}

	if err := s.audit.Log("week.roll", map[string]interface{}{
		"week_start": next.StartDate.Format("2006-01-02"),
		"carried":    len(carried),
		"dropped":    dropped,
	}); err != nil {
		return nil, err
	}

	return next, nil
}

// CurrentWeek returns the stored week.
func (s *ScheduleService) CurrentWeek() (*schedule.Week, error) {
	return s.repo.LoadWeek()
}

func (s *ScheduleService) resolveChannel(idOrName string) (*schedule.Channel, error) {
	channels, err := s.repo.LoadChannels()
	if err != nil {
		return nil, err
	}
	for i := range channels {
		if channels[i].ID == idOrName || strings.EqualFold(channels[i].Name, idOrName) {
			return &channels[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, idOrName)
}

// describeBlockers names the tasks a candidate collides with, for error
// messages.
func (s *ScheduleService) describeBlockers(task schedule.Task, existing []schedule.Task) string {
	var parts []string
	for _, other := range existing {
		if other.ID == task.ID {
			continue
		}
		if s.detector.HasOverlap(task, other) {
			parts = append(parts, fmt.Sprintf("'%s' (%d min overlap)", other.Title, s.detector.OverlapMinutes(task, other)))
		}
	}
	return strings.Join(parts, ", ")
}
