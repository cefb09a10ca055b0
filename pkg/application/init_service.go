package application

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

type InitService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewInitService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *InitService {
	return &InitService{repo: repo, audit: audit}
}

// InitializeWorkspace creates the .cadence directory with default settings
// and an empty schedule anchored to the current week.
func (s *InitService) InitializeWorkspace() error {
	if s.repo.IsInitialized() {
		return ErrAlreadyInitialized
	}

	if err := s.repo.Initialize(); err != nil {
		return fmt.Errorf("initialize workspace: %w", err)
	}

	settings := domain.DefaultPlannerSettings()
	if err := s.repo.SaveSettings(settings); err != nil {
		return fmt.Errorf("write default settings: %w", err)
	}
	if err := s.repo.SaveChannels([]schedule.Channel{}); err != nil {
		return fmt.Errorf("write channel roster: %w", err)
	}
	if err := s.repo.SaveTemplates([]schedule.Template{}); err != nil {
		return fmt.Errorf("write template list: %w", err)
	}

	now := time.Now()
	week := &schedule.Week{
		StartDate:     schedule.WeekStartOf(now),
		Tasks:         []schedule.Task{},
		CapacityHours: settings.WeeklyCapacityHours,
		UpdatedAt:     now,
	}
	if err := s.repo.SaveWeek(week); err != nil {
		return fmt.Errorf("write empty schedule: %w", err)
	}

	return s.audit.Log("workspace.init", map[string]interface{}{
		"week_start": week.StartDate.Format("2006-01-02"),
	})
}
