package application_test

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/cadence/pkg/application"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

func TestTemplateService_AddAndGet(t *testing.T) {
	repo := &MockRepo{}
	service := application.NewTemplateService(repo, application.NewAuditService(repo))

	// 1. Add
	tpl, err := service.AddTemplate("Weekly Video", schedule.ContentVideo, 6, []string{"script", "record", "edit"})
	if err != nil {
		t.Fatal(err)
	}
	if tpl.ID == "" {
		t.Error("Expected a generated id")
	}
	if len(tpl.Checklist) != 3 {
		t.Errorf("expected 3 checklist items, got %d", len(tpl.Checklist))
	}

	// 2. Non-positive estimate is rejected
	if _, err := service.AddTemplate("Broken", schedule.ContentShort, 0, nil); err == nil {
		t.Error("Expected validation error for zero estimate")
	}

	// 3. Get by name
	got, err := service.GetTemplate("weekly video")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != tpl.ID {
		t.Errorf("expected %s, got %s", tpl.ID, got.ID)
	}

	// 4. Unknown template
	if _, err := service.GetTemplate("missing"); !errors.Is(err, application.ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateService_Remove(t *testing.T) {
	repo := &MockRepo{
		Templates: []schedule.Template{
			{ID: "tpl-1", Name: "Video", ContentType: schedule.ContentVideo, EstimatedHours: 4},
			{ID: "tpl-2", Name: "Short", ContentType: schedule.ContentShort, EstimatedHours: 1},
		},
	}
	service := application.NewTemplateService(repo, application.NewAuditService(repo))

	if err := service.RemoveTemplate("Video"); err != nil {
		t.Fatal(err)
	}
	if len(repo.Templates) != 1 || repo.Templates[0].ID != "tpl-2" {
		t.Error("Expected only tpl-2 to remain")
	}
	if ev := repo.lastEvent(); ev == nil || ev.Action != "template.remove" {
		t.Error("Expected template.remove audit event")
	}

	if err := service.RemoveTemplate("Video"); !errors.Is(err, application.ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}
