package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/google/uuid"
)

type TemplateService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewTemplateService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *TemplateService {
	return &TemplateService{repo: repo, audit: audit}
}

func (s *TemplateService) AddTemplate(name string, contentType schedule.ContentType, estimatedHours float64, checklist []string) (*schedule.Template, error) {
	templates, err := s.repo.LoadTemplates()
	if err != nil {
		return nil, err
	}

	tpl := schedule.Template{
		ID:             uuid.New().String(),
		Name:           name,
		ContentType:    contentType,
		EstimatedHours: estimatedHours,
		Checklist:      checklist,
		CreatedAt:      time.Now(),
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	templates = append(templates, tpl)
	if err := s.repo.SaveTemplates(templates); err != nil {
		return nil, err
	}

	if err := s.audit.Log("template.add", map[string]interface{}{
		"template_id": tpl.ID,
		"name":        tpl.Name,
	}); err != nil {
		return nil, err
	}

	return &tpl, nil
}

func (s *TemplateService) ListTemplates() ([]schedule.Template, error) {
	return s.repo.LoadTemplates()
}

// GetTemplate resolves a template by ID or exact name.
func (s *TemplateService) GetTemplate(idOrName string) (*schedule.Template, error) {
	templates, err := s.repo.LoadTemplates()
	if err != nil {
		return nil, err
	}

	for i := range templates {
		if templates[i].ID == idOrName || strings.EqualFold(templates[i].Name, idOrName) {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, idOrName)
}

func (s *TemplateService) RemoveTemplate(idOrName string) error {
	templates, err := s.repo.LoadTemplates()
	if err != nil {
		return err
	}

	for i := range templates {
		if templates[i].ID == idOrName || strings.EqualFold(templates[i].Name, idOrName) {
			removed := templates[i]
			templates = append(templates[:i], templates[i+1:]...)
			if err := s.repo.SaveTemplates(templates); err != nil {
				return err
			}
			return s.audit.Log("template.remove", map[string]interface{}{
				"template_id": removed.ID,
				"name":        removed.Name,
			})
		}
	}
	return fmt.Errorf("%w: %s", ErrTemplateNotFound, idOrName)
}
