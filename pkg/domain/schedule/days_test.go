package schedule_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

func TestDayName(t *testing.T) {
	// January 4th 2026 is a Sunday; the names follow time.Weekday order.
	sunday := time.Date(2026, time.January, 4, 12, 0, 0, 0, time.UTC)
	want := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

	for i, name := range want {
		day := sunday.AddDate(0, 0, i)
		if got := schedule.DayName(day); got != name {
			t.Errorf("DayName(%s) = %q, want %q", day.Format("2006-01-02"), got, name)
		}
	}
}

func TestIsDayName(t *testing.T) {
	if !schedule.IsDayName("Monday") {
		t.Error("Monday should be a valid day name")
	}
	if schedule.IsDayName("monday") {
		t.Error("day names are case sensitive")
	}
	if schedule.IsDayName("Mon") {
		t.Error("abbreviations are not day names")
	}
}

func TestSameDate(t *testing.T) {
	morning := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)

	if !schedule.SameDate(morning, evening) {
		t.Error("times on the same calendar date should match")
	}
	if schedule.SameDate(evening, nextDay) {
		t.Error("midnight starts a new date")
	}
}

func TestDateOf(t *testing.T) {
	at := time.Date(2026, time.March, 10, 17, 45, 30, 999, time.UTC)
	got := schedule.DateOf(at)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("DateOf did not truncate to midnight: %s", got)
	}
	if !schedule.SameDate(got, at) {
		t.Errorf("DateOf changed the calendar date: %s", got)
	}
	if got.Location() != at.Location() {
		t.Errorf("DateOf changed the location: %s", got.Location())
	}
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			"midweek",
			time.Date(2026, time.January, 7, 15, 30, 0, 0, time.UTC), // Wednesday
			time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday itself",
			time.Date(2026, time.January, 4, 23, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			"saturday",
			time.Date(2026, time.January, 10, 1, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schedule.WeekStartOf(tt.at); !got.Equal(tt.want) {
				t.Errorf("WeekStartOf(%s) = %s, want %s", tt.at, got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{"09:00", 9, 0, false},
		{"17:30", 17, 30, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"nine", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, m, err := schedule.ParseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && (h != tt.hour || m != tt.minute) {
				t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.input, h, m, tt.hour, tt.minute)
			}
		})
	}
}

func TestAtClock(t *testing.T) {
	date := time.Date(2026, time.March, 10, 17, 45, 12, 34, time.UTC)
	got := schedule.AtClock(date, 9, 30)

	want := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AtClock = %s, want %s", got, want)
	}
}
