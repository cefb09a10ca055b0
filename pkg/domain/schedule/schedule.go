package schedule

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

type TaskStatus string

const (
	StatusPlanned    TaskStatus = "planned"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusOverdue    TaskStatus = "overdue"
)

type ContentType string

const (
	ContentVideo      ContentType = "video"
	ContentShort      ContentType = "short"
	ContentLivestream ContentType = "livestream"
	ContentPost       ContentType = "post"
	ContentPodcast    ContentType = "podcast"
	ContentNewsletter ContentType = "newsletter"
)

// ParseContentType parses a string into a ContentType.
func ParseContentType(s string) (ContentType, error) {
	switch ct := ContentType(s); ct {
	case ContentVideo, ContentShort, ContentLivestream, ContentPost, ContentPodcast, ContentNewsletter:
		return ct, nil
	}
	return "", fmt.Errorf("invalid content type %q (expected video, short, livestream, post, podcast or newsletter)", s)
}

// Task is a single scheduled piece of content work within a week.
type Task struct {
	ID             string      `json:"id" yaml:"id"`
	ChannelID      string      `json:"channel_id" yaml:"channel_id"`
	TemplateID     string      `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	Title          string      `json:"title" yaml:"title"`
	ContentType    ContentType `json:"content_type" yaml:"content_type"`
	EstimatedHours float64     `json:"estimated_hours" yaml:"estimated_hours"`
	Status         TaskStatus  `json:"status" yaml:"status"`
	ScheduledStart time.Time   `json:"scheduled_start" yaml:"scheduled_start"`
	ScheduledEnd   time.Time   `json:"scheduled_end" yaml:"scheduled_end"`
	ActualHours    *float64    `json:"actual_hours,omitempty" yaml:"actual_hours,omitempty"`
	Notes          string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" yaml:"updated_at"`
}

// Validate checks the structural integrity of a task record.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task has no id")
	}
	if t.Title == "" {
		return fmt.Errorf("task %s has no title", t.ID)
	}
	if t.ChannelID == "" {
		return fmt.Errorf("task %s has no channel", t.ID)
	}
	if t.EstimatedHours <= 0 {
		return fmt.Errorf("task %s has non-positive estimate: %v", t.ID, t.EstimatedHours)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("task %s has invalid status: %s", t.ID, t.Status)
	}
	if !t.ScheduledEnd.After(t.ScheduledStart) {
		return fmt.Errorf("task %s ends at or before its start", t.ID)
	}
	return nil
}

// Duration returns the scheduled block length.
func (t *Task) Duration() time.Duration {
	return t.ScheduledEnd.Sub(t.ScheduledStart)
}

// Week is the planning unit: a start date plus the tasks scheduled in it.
// TotalScheduledHours and IsOverloaded are denormalized and recomputed by
// the workload engine; the stored values are display hints only.
type Week struct {
	StartDate           time.Time `json:"start_date" yaml:"start_date"`
	Tasks               []Task    `json:"tasks" yaml:"tasks"`
	TotalScheduledHours float64   `json:"total_scheduled_hours" yaml:"total_scheduled_hours"`
	IsOverloaded        bool      `json:"is_overloaded" yaml:"is_overloaded"`
	CapacityHours       float64   `json:"capacity_hours" yaml:"capacity_hours"`
	UpdatedAt           time.Time `json:"updated_at" yaml:"updated_at"`
}

// TaskByID returns a pointer into the week's task slice, or nil.
func (w *Week) TaskByID(id string) *Task {
	for i := range w.Tasks {
		if w.Tasks[i].ID == id {
			return &w.Tasks[i]
		}
	}
	return nil
}

// Hash returns a deterministic hash of the week structure, used to detect
// schedule changes between analysis runs.
func (w *Week) Hash() string {
	h := sha256.New()
	h.Write([]byte(w.StartDate.Format(time.RFC3339)))
	for _, t := range w.Tasks {
		h.Write([]byte(t.ID))
		h.Write([]byte(t.Status))
		h.Write([]byte(t.ScheduledStart.Format(time.RFC3339)))
		h.Write([]byte(fmt.Sprintf("%.2f", t.EstimatedHours)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
