package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

const (
	// maxAlternatives caps the combined suggestion list for one task.
	maxAlternatives = 5
	// maxNextDayAlternatives caps the next-day portion of that list.
	maxNextDayAlternatives = 2
	// alternativeWindowDays is how far ahead SuggestAlternatives searches.
	alternativeWindowDays = 7
)

// FindAvailableSlots scans each day in [startDate, endDate) for free blocks
// of at least durationHours inside the working window. Each qualifying gap
// yields exactly one slot, clipped to the requested duration at the gap's
// earliest point.
func (d *Detector) FindAvailableSlots(durationHours float64, tasks []schedule.Task, startDate, endDate time.Time, hours WorkingHours) ([]TimeSlot, error) {
	if durationHours <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %v", durationHours)
	}
	need := time.Duration(durationHours * float64(time.Hour))

	slots := make([]TimeSlot, 0)
	for date := schedule.DateOf(startDate); date.Before(endDate); date = date.AddDate(0, 0, 1) {
		winStart, winEnd, err := hours.windowOn(date)
		if err != nil {
			return nil, err
		}
		if !winEnd.After(winStart) {
			continue
		}

		daySlots := freeSlotsInWindow(need, tasksOnDate(tasks, date), winStart, winEnd)
		slots = append(slots, daySlots...)
	}
	return slots, nil
}

// freeSlotsInWindow walks the day's tasks in start order, keeping a cursor
// at the latest busy end seen so far. Overlapping tasks therefore never
// fabricate a gap inside time already covered.
func freeSlotsInWindow(need time.Duration, busy []schedule.Task, winStart, winEnd time.Time) []TimeSlot {
	sort.SliceStable(busy, func(i, j int) bool {
		return busy[i].ScheduledStart.Before(busy[j].ScheduledStart)
	})

	slots := make([]TimeSlot, 0)
	cursor := winStart
	emit := func(gapEnd time.Time) {
		if gapEnd.Sub(cursor) >= need {
			slots = append(slots, TimeSlot{Start: cursor, End: cursor.Add(need)})
		}
	}

	for _, t := range busy {
		gapEnd := t.ScheduledStart
		if gapEnd.After(winEnd) {
			gapEnd = winEnd
		}
		emit(gapEnd)
		if t.ScheduledEnd.After(cursor) {
			cursor = t.ScheduledEnd
		}
		if !cursor.Before(winEnd) {
			return slots
		}
	}
	emit(winEnd)
	return slots
}

func tasksOnDate(tasks []schedule.Task, date time.Time) []schedule.Task {
	out := make([]schedule.Task, 0)
	for _, t := range tasks {
		if schedule.SameDate(t.ScheduledStart, date) {
			out = append(out, t)
		}
	}
	return out
}

// SuggestAlternatives offers replacement slots for a conflicted task,
// searching a seven-day window from the task's own date with the task's
// scheduled duration. Same-day slots come first, then at most two next-day
// slots, five suggestions in total.
func (d *Detector) SuggestAlternatives(task schedule.Task, others []schedule.Task, hours WorkingHours) ([]SlotSuggestion, error) {
	date := schedule.DateOf(task.ScheduledStart)
	duration := task.Duration().Hours()

	// The task itself must not block its own alternatives.
	relevant := make([]schedule.Task, 0, len(others))
	for _, o := range others {
		if o.ID == task.ID {
			continue
		}
		relevant = append(relevant, o)
	}

	slots, err := d.FindAvailableSlots(duration, relevant, date, date.AddDate(0, 0, alternativeWindowDays), hours)
	if err != nil {
		return nil, err
	}

	nextDate := date.AddDate(0, 0, 1)
	suggestions := make([]SlotSuggestion, 0, maxAlternatives)

	for _, slot := range slots {
		if len(suggestions) >= maxAlternatives {
			break
		}
		if !schedule.SameDate(slot.Start, date) {
			continue
		}
		suggestions = append(suggestions, SlotSuggestion{Slot: slot, Label: "Same day, different time"})
	}

	nextDay := 0
	for _, slot := range slots {
		if len(suggestions) >= maxAlternatives || nextDay >= maxNextDayAlternatives {
			break
		}
		if !schedule.SameDate(slot.Start, nextDate) {
			continue
		}
		suggestions = append(suggestions, SlotSuggestion{Slot: slot, Label: "Next day"})
		nextDay++
	}

	return suggestions, nil
}
