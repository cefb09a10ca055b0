package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

// --- Workspace layout tests ---

func TestInitializeAndIsInitialized(t *testing.T) {
	d := t.TempDir()
	r := NewFilesystemRepository(d)

	if r.IsInitialized() {
		t.Error("fresh directory should not be initialized")
	}
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !r.IsInitialized() {
		t.Error("expected initialized after Initialize")
	}
	if _, err := os.Stat(filepath.Join(d, CadenceDir)); err != nil {
		t.Errorf("expected %s directory, got %v", CadenceDir, err)
	}
}

func TestResolvePath(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())

	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"plain file", "schedule.json", false},
		{"empty", "", true},
		{"traversal", "../outside.yaml", true},
		{"nested", "sub/dir.yaml", true},
		{"absolute-ish", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ResolvePath(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResolvePath(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}

// --- Channel round-trip tests ---

func TestSaveAndLoadChannels(t *testing.T) {
	tests := []struct {
		name     string
		channels []schedule.Channel
	}{
		{"empty", []schedule.Channel{}},
		{"two channels", []schedule.Channel{
			{ID: "ch1", Name: "Main", ContentType: schedule.ContentVideo, IsActive: true},
			{ID: "ch2", Name: "Podcast", ContentType: schedule.ContentPodcast, IsActive: false,
				PostingSchedule: schedule.PostingSchedule{Frequency: "weekly", PreferredTime: "10:00"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := t.TempDir()
			r := NewFilesystemRepository(d)
			if err := r.Initialize(); err != nil {
				t.Fatal(err)
			}

			if err := r.SaveChannels(tt.channels); err != nil {
				t.Fatalf("SaveChannels: %v", err)
			}
			loaded, err := r.LoadChannels()
			if err != nil {
				t.Fatalf("LoadChannels: %v", err)
			}
			if len(loaded) != len(tt.channels) {
				t.Fatalf("channels = %d, want %d", len(loaded), len(tt.channels))
			}
			for i, ch := range tt.channels {
				if loaded[i].ID != ch.ID || loaded[i].Name != ch.Name {
					t.Errorf("channel[%d] = %+v, want %+v", i, loaded[i], ch)
				}
			}
		})
	}
}

func TestLoadChannels_MissingFile(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())
	_ = r.Initialize()

	channels, err := r.LoadChannels()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(channels) != 0 {
		t.Errorf("expected empty channels, got %d", len(channels))
	}
}

// --- Template round-trip tests ---

func TestSaveAndLoadTemplates(t *testing.T) {
	d := t.TempDir()
	r := NewFilesystemRepository(d)
	_ = r.Initialize()

	templates := []schedule.Template{
		{ID: "tpl1", Name: "Weekly video", ContentType: schedule.ContentVideo, EstimatedHours: 6,
			Checklist: []string{"script", "record", "edit"}},
		{ID: "tpl2", Name: "Newsletter", ContentType: schedule.ContentNewsletter, EstimatedHours: 2},
	}

	if err := r.SaveTemplates(templates); err != nil {
		t.Fatalf("SaveTemplates: %v", err)
	}
	loaded, err := r.LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("templates = %d, want 2", len(loaded))
	}
	if loaded[0].EstimatedHours != 6 || len(loaded[0].Checklist) != 3 {
		t.Errorf("template[0] round-trip mismatch: %+v", loaded[0])
	}
}

func TestLoadTemplates_InvalidYAML(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())
	_ = r.Initialize()

	path, _ := r.ResolvePath(TemplatesFile)
	if err := os.WriteFile(path, []byte("[}invalid"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := r.LoadTemplates()
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

// --- Week round-trip tests ---

func TestSaveAndLoadWeek(t *testing.T) {
	d := t.TempDir()
	r := NewFilesystemRepository(d)
	_ = r.Initialize()

	start := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	week := &schedule.Week{
		StartDate:     time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC),
		CapacityHours: 40,
		Tasks: []schedule.Task{{
			ID:             "t1",
			ChannelID:      "ch1",
			Title:          "Edit video",
			ContentType:    schedule.ContentVideo,
			EstimatedHours: 4,
			Status:         schedule.StatusPlanned,
			ScheduledStart: start,
			ScheduledEnd:   start.Add(4 * time.Hour),
		}},
	}

	if err := r.SaveWeek(week); err != nil {
		t.Fatalf("SaveWeek: %v", err)
	}
	loaded, err := r.LoadWeek()
	if err != nil {
		t.Fatalf("LoadWeek: %v", err)
	}
	if !loaded.StartDate.Equal(week.StartDate) {
		t.Errorf("StartDate = %s, want %s", loaded.StartDate, week.StartDate)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].ID != "t1" {
		t.Errorf("tasks round-trip mismatch: %+v", loaded.Tasks)
	}
	if loaded.Tasks[0].Status != schedule.StatusPlanned {
		t.Errorf("status = %s, want planned", loaded.Tasks[0].Status)
	}
}

func TestLoadWeek_MissingReturnsEmpty(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())
	_ = r.Initialize()

	week, err := r.LoadWeek()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if week == nil || len(week.Tasks) != 0 {
		t.Errorf("expected empty week, got %+v", week)
	}
}

func TestLoadWeek_SchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"tasks not array", `{"start_date": "2026-01-04T00:00:00Z", "tasks": {}}`},
		{"missing start_date", `{"tasks": []}`},
		{"task missing channel", `{"start_date": "2026-01-04T00:00:00Z", "tasks": [{"id": "t1", "title": "x", "estimated_hours": 4, "status": "planned", "scheduled_start": "2026-01-05T10:00:00Z", "scheduled_end": "2026-01-05T14:00:00Z"}]}`},
		{"negative estimate", `{"start_date": "2026-01-04T00:00:00Z", "tasks": [{"id": "t1", "channel_id": "ch1", "title": "x", "estimated_hours": -4, "status": "planned", "scheduled_start": "2026-01-05T10:00:00Z", "scheduled_end": "2026-01-05T14:00:00Z"}]}`},
		{"unknown status", `{"start_date": "2026-01-04T00:00:00Z", "tasks": [{"id": "t1", "channel_id": "ch1", "title": "x", "estimated_hours": 4, "status": "paused", "scheduled_start": "2026-01-05T10:00:00Z", "scheduled_end": "2026-01-05T14:00:00Z"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewFilesystemRepository(t.TempDir())
			_ = r.Initialize()

			path, _ := r.ResolvePath(ScheduleFile)
			if err := os.WriteFile(path, []byte(tt.body), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := r.LoadWeek()
			if err == nil {
				t.Error("expected schema validation error")
			}
		})
	}
}

func TestLoadWeek_InvalidJSON(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())
	_ = r.Initialize()

	path, _ := r.ResolvePath(ScheduleFile)
	if err := os.WriteFile(path, []byte("{invalid"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := r.LoadWeek()
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

// --- Settings round-trip tests ---

func TestSaveAndLoadSettings(t *testing.T) {
	d := t.TempDir()
	r := NewFilesystemRepository(d)
	_ = r.Initialize()

	cfg := &domain.PlannerSettings{
		WeeklyCapacityHours:          30,
		MaxDailyHours:                6,
		WorkingDays:                  []string{"Monday", "Wednesday", "Friday"},
		WorkingHoursStart:            "10:00",
		WorkingHoursEnd:              "16:00",
		AllowCrossChannelRebalancing: true,
	}

	if err := r.SaveSettings(cfg); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	loaded, err := r.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if loaded.WeeklyCapacityHours != 30 {
		t.Errorf("WeeklyCapacityHours = %v, want 30", loaded.WeeklyCapacityHours)
	}
	if len(loaded.WorkingDays) != 3 {
		t.Errorf("WorkingDays = %v, want 3 days", loaded.WorkingDays)
	}
}

func TestLoadSettings_MissingReturnsDefaults(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())
	_ = r.Initialize()

	cfg, err := r.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if cfg.WeeklyCapacityHours != 40 {
		t.Errorf("default WeeklyCapacityHours = %v, want 40", cfg.WeeklyCapacityHours)
	}
	if len(cfg.WorkingDays) != 5 {
		t.Errorf("default WorkingDays = %v, want Mon-Fri", cfg.WorkingDays)
	}
}

func TestLoadSettings_PartialFileNormalized(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())
	_ = r.Initialize()

	path, _ := r.ResolvePath(SettingsFile)
	if err := os.WriteFile(path, []byte("weekly_capacity_hours: 20\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := r.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if cfg.WeeklyCapacityHours != 20 {
		t.Errorf("WeeklyCapacityHours = %v, want 20", cfg.WeeklyCapacityHours)
	}
	if cfg.MaxDailyHours != 8 {
		t.Errorf("MaxDailyHours should normalize to 8, got %v", cfg.MaxDailyHours)
	}
	if cfg.WorkingHoursStart != "09:00" {
		t.Errorf("WorkingHoursStart should normalize to 09:00, got %s", cfg.WorkingHoursStart)
	}
}

// --- History tests ---

func TestAppendAndLoadHistory(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())
	_ = r.Initialize()

	first := domain.MetricSnapshot{
		WeekStart:           time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC),
		TotalScheduledHours: 30,
		CapacityHours:       40,
		UtilizationPercent:  75,
		RecordedAt:          time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC),
	}
	second := first
	second.WeekStart = first.WeekStart.AddDate(0, 0, 7)
	second.UtilizationPercent = 90

	if err := r.AppendHistory(first); err != nil {
		t.Fatalf("AppendHistory: %v", err)
	}
	if err := r.AppendHistory(second); err != nil {
		t.Fatalf("AppendHistory: %v", err)
	}

	history, err := r.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d entries, want 2", len(history))
	}
	if history[1].UtilizationPercent != 90 {
		t.Errorf("history[1].UtilizationPercent = %v, want 90", history[1].UtilizationPercent)
	}
}

func TestLoadHistory_MissingFile(t *testing.T) {
	r := NewFilesystemRepository(t.TempDir())
	_ = r.Initialize()

	history, err := r.LoadHistory()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d", len(history))
	}
}

// --- Audit (events) round-trip tests ---

func TestRecordAndLoadEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []domain.Event
	}{
		{"empty", nil},
		{"single", []domain.Event{{ID: "e1", Action: "task.start"}}},
		{"multiple", []domain.Event{
			{ID: "e1", Action: "task.add"},
			{ID: "e2", Action: "task.complete"},
			{ID: "e3", Action: "suggestion.apply"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := t.TempDir()
			r := NewFilesystemRepository(d)
			if err := r.Initialize(); err != nil {
				t.Fatal(err)
			}

			for _, ev := range tt.events {
				if err := r.RecordEvent(ev); err != nil {
					t.Fatalf("RecordEvent: %v", err)
				}
			}

			loaded, err := r.LoadEvents()
			if err != nil {
				t.Fatalf("LoadEvents: %v", err)
			}
			if len(loaded) != len(tt.events) {
				t.Errorf("expected %d events, got %d", len(tt.events), len(loaded))
			}
			for i, ev := range tt.events {
				if loaded[i].ID != ev.ID {
					t.Errorf("event[%d] ID = %s, want %s", i, loaded[i].ID, ev.ID)
				}
			}
		})
	}
}

func TestLoadEvents_MalformedLines(t *testing.T) {
	d := t.TempDir()
	r := NewFilesystemRepository(d)
	if err := r.Initialize(); err != nil {
		t.Fatal(err)
	}

	if err := r.RecordEvent(domain.Event{ID: "good", Action: "test"}); err != nil {
		t.Fatal(err)
	}

	path, _ := r.ResolvePath(EventsFile)
	f, _ := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if _, err := f.Write([]byte("NOT JSON\n")); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	if err := r.RecordEvent(domain.Event{ID: "good2", Action: "test2"}); err != nil {
		t.Fatal(err)
	}

	events, err := r.LoadEvents()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 good events (skipping malformed), got %d", len(events))
	}
}

// --- Write error handling ---

func TestSaveWeek_ReadonlyDir(t *testing.T) {
	d := t.TempDir()
	r := NewFilesystemRepository(d)
	_ = r.Initialize()

	if err := os.Chmod(filepath.Join(d, CadenceDir), 0400); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := os.Chmod(filepath.Join(d, CadenceDir), 0700); err != nil {
			t.Fatal(err)
		}
	}()

	err := r.SaveWeek(&schedule.Week{StartDate: time.Now()})
	if err == nil {
		t.Error("expected write error on readonly dir")
	}
}

// --- Workspace inspector tests ---

func TestWorkspaceInspector(t *testing.T) {
	inspector := NewWorkspaceInspector()
	d := t.TempDir()

	emptyFile := filepath.Join(d, "empty.yaml")
	if err := os.WriteFile(emptyFile, []byte(""), 0600); err != nil {
		t.Fatal(err)
	}
	fullFile := filepath.Join(d, "full.yaml")
	if err := os.WriteFile(fullFile, []byte("content"), 0600); err != nil {
		t.Fatal(err)
	}

	exists, err := inspector.FileExists(fullFile)
	if err != nil || !exists {
		t.Errorf("FileExists(%s) = %v, %v; want true", fullFile, exists, err)
	}
	exists, err = inspector.FileExists(filepath.Join(d, "missing.yaml"))
	if err != nil || exists {
		t.Errorf("FileExists(missing) = %v, %v; want false", exists, err)
	}

	notEmpty, err := inspector.FileNotEmpty(fullFile)
	if err != nil || !notEmpty {
		t.Errorf("FileNotEmpty(full) = %v, %v; want true", notEmpty, err)
	}
	notEmpty, err = inspector.FileNotEmpty(emptyFile)
	if err != nil || notEmpty {
		t.Errorf("FileNotEmpty(empty) = %v, %v; want false", notEmpty, err)
	}
}
