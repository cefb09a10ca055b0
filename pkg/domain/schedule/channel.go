package schedule

import (
	"fmt"
	"time"
)

// PostingSchedule describes a channel's publishing cadence. It is advisory
// metadata for slot suggestions and display, not a hard constraint.
type PostingSchedule struct {
	Frequency     string   `json:"frequency" yaml:"frequency"` // e.g. "weekly", "biweekly", "daily"
	PreferredDays []string `json:"preferred_days,omitempty" yaml:"preferred_days,omitempty"`
	PreferredTime string   `json:"preferred_time,omitempty" yaml:"preferred_time,omitempty"` // "HH:MM"
}

// Channel is a distribution outlet (a YouTube channel, a newsletter, a blog).
// Tasks reference channels by ID; the workload engine aggregates per channel.
type Channel struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	ContentType     ContentType     `json:"content_type" yaml:"content_type"`
	PostingSchedule PostingSchedule `json:"posting_schedule" yaml:"posting_schedule"`
	Color           string          `json:"color,omitempty" yaml:"color,omitempty"`
	IsActive        bool            `json:"is_active" yaml:"is_active"`
	CreatedAt       time.Time       `json:"created_at" yaml:"created_at"`
}

// Validate checks the structural integrity of a channel record.
func (c *Channel) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("channel has no id")
	}
	if c.Name == "" {
		return fmt.Errorf("channel %s has no name", c.ID)
	}
	if c.PostingSchedule.PreferredTime != "" {
		if _, _, err := ParseClock(c.PostingSchedule.PreferredTime); err != nil {
			return fmt.Errorf("channel %s: %w", c.ID, err)
		}
	}
	return nil
}

// Template is a reusable blueprint for recurring content work. Creating a
// task from a template copies its content type and estimate.
type Template struct {
	ID             string      `json:"id" yaml:"id"`
	Name           string      `json:"name" yaml:"name"`
	ContentType    ContentType `json:"content_type" yaml:"content_type"`
	EstimatedHours float64     `json:"estimated_hours" yaml:"estimated_hours"`
	Checklist      []string    `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	CreatedAt      time.Time   `json:"created_at" yaml:"created_at"`
}

// Validate checks the structural integrity of a template record.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template has no id")
	}
	if t.Name == "" {
		return fmt.Errorf("template %s has no name", t.ID)
	}
	if t.EstimatedHours <= 0 {
		return fmt.Errorf("template %s has non-positive estimate: %v", t.ID, t.EstimatedHours)
	}
	return nil
}
