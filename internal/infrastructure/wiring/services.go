package wiring

import (
	"github.com/felixgeelhaar/cadence/pkg/application"
)

// AppServices exposes the application layer services wired together with a
// workspace.
type AppServices struct {
	Workspace *Workspace
	Init      *application.InitService
	Channel   *application.ChannelService
	Template  *application.TemplateService
	Schedule  *application.ScheduleService
	Planner   *application.PlannerService
	Audit     *application.AuditService // Concrete service for read operations like GetTimeline
}

// BuildAppServices wires every application service to the workspace at root.
func BuildAppServices(root string) *AppServices {
	workspace := NewWorkspace(root)

	return &AppServices{
		Workspace: workspace,
		Init:      application.NewInitService(workspace.Repo, workspace.Audit),
		Channel:   application.NewChannelService(workspace.Repo, workspace.Audit),
		Template:  application.NewTemplateService(workspace.Repo, workspace.Audit),
		Schedule:  application.NewScheduleService(workspace.Repo, workspace.Audit),
		Planner:   application.NewPlannerService(workspace.Repo, workspace.Audit),
		Audit:     workspace.Audit,
	}
}
