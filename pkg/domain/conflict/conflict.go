package conflict

import (
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

// Conflict is a pair of tasks whose scheduled blocks overlap.
type Conflict struct {
	Task1          schedule.Task `json:"task1" yaml:"task1"`
	Task2          schedule.Task `json:"task2" yaml:"task2"`
	OverlapMinutes int           `json:"overlap_minutes" yaml:"overlap_minutes"`
}

// TimeSlot is a free block offered for scheduling.
type TimeSlot struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Duration returns the slot length.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// SlotSuggestion is a labeled alternative slot for a conflicted task.
type SlotSuggestion struct {
	Slot  TimeSlot `json:"slot" yaml:"slot"`
	Label string   `json:"label" yaml:"label"`
}

// WorkingHours bounds the schedulable window of a day.
type WorkingHours struct {
	Start string `json:"start" yaml:"start"` // "HH:MM"
	End   string `json:"end" yaml:"end"`     // "HH:MM"
}

// windowOn resolves the working window on a given calendar date.
func (w WorkingHours) windowOn(date time.Time) (time.Time, time.Time, error) {
	sh, sm, err := schedule.ParseClock(w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eh, em, err := schedule.ParseClock(w.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return schedule.AtClock(date, sh, sm), schedule.AtClock(date, eh, em), nil
}
