package application_test

import (
	"github.com/felixgeelhaar/cadence/pkg/domain"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

// MockRepo is an in-memory WorkspaceRepository. Load methods mirror the
// filesystem contract: a missing artifact loads as its empty value, never
// as nil.
type MockRepo struct {
	Channels    []schedule.Channel
	Templates   []schedule.Template
	Week        *schedule.Week
	Settings    *domain.PlannerSettings
	History     []domain.MetricSnapshot
	Events      []domain.Event
	Initialized bool
	SaveError   error
	LoadError   error
}

func (m *MockRepo) Initialize() error   { m.Initialized = true; return nil }
func (m *MockRepo) IsInitialized() bool { return m.Initialized }

func (m *MockRepo) SaveChannels(channels []schedule.Channel) error {
	m.Channels = channels
	return m.SaveError
}

func (m *MockRepo) LoadChannels() ([]schedule.Channel, error) {
	if m.Channels == nil {
		return []schedule.Channel{}, m.LoadError
	}
	return m.Channels, m.LoadError
}

func (m *MockRepo) SaveTemplates(templates []schedule.Template) error {
	m.Templates = templates
	return m.SaveError
}

func (m *MockRepo) LoadTemplates() ([]schedule.Template, error) {
	if m.Templates == nil {
		return []schedule.Template{}, m.LoadError
	}
	return m.Templates, m.LoadError
}

func (m *MockRepo) SaveWeek(week *schedule.Week) error { m.Week = week; return m.SaveError }

func (m *MockRepo) LoadWeek() (*schedule.Week, error) {
	if m.Week == nil {
		return &schedule.Week{Tasks: []schedule.Task{}}, m.LoadError
	}
	return m.Week, m.LoadError
}

func (m *MockRepo) SaveSettings(cfg *domain.PlannerSettings) error {
	m.Settings = cfg
	return m.SaveError
}

func (m *MockRepo) LoadSettings() (*domain.PlannerSettings, error) {
	if m.Settings == nil {
		return domain.DefaultPlannerSettings(), m.LoadError
	}
	return m.Settings, m.LoadError
}

func (m *MockRepo) AppendHistory(snapshot domain.MetricSnapshot) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.History = append(m.History, snapshot)
	return nil
}

func (m *MockRepo) LoadHistory() ([]domain.MetricSnapshot, error) {
	if m.History == nil {
		return []domain.MetricSnapshot{}, m.LoadError
	}
	return m.History, m.LoadError
}

func (m *MockRepo) RecordEvent(event domain.Event) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockRepo) LoadEvents() ([]domain.Event, error) {
	if m.Events == nil {
		return []domain.Event{}, m.LoadError
	}
	return m.Events, m.LoadError
}

// lastEvent returns the most recently recorded event, or nil.
func (m *MockRepo) lastEvent() *domain.Event {
	if len(m.Events) == 0 {
		return nil
	}
	return &m.Events[len(m.Events)-1]
}
