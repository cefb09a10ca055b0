package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/cadence/pkg/domain/workload"
	"github.com/felixgeelhaar/cadence/pkg/storage"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("CADENCE_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		p := tea.NewProgram(initialModel(root))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var loadOK = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var loadWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var loadOver = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type model struct {
	table     table.Model
	weekStart string
	metrics   *workload.Metrics
	warnings  []workload.Warning
	err       error
}

func initialModel(root string) model {
	repo := storage.NewFilesystemRepository(root)

	week, err := repo.LoadWeek()
	if err != nil {
		return model{err: err}
	}

	channels, err := repo.LoadChannels()
	if err != nil {
		return model{err: err}
	}

	settings, err := repo.LoadSettings()
	if err != nil {
		return model{err: err}
	}

	calc := workload.NewCalculator()
	dailyCapacity := calc.DailyCapacity(settings.WeeklyCapacityHours, settings.WorkingDays)
	metrics := calc.Calculate(week, channels, dailyCapacity)
	warnings := calc.DetectWarnings(metrics, settings.WorkingDays)

	columns := []table.Column{
		{Title: "Status", Width: 11},
		{Title: "When", Width: 10},
		{Title: "Hours", Width: 6},
		{Title: "Channel", Width: 16},
		{Title: "Task", Width: 32},
		{Title: "ID", Width: 12},
	}

	names := channelNames(channels)
	rows := []table.Row{}
	for _, t := range sortTasks(week.Tasks) {
		channel := names[t.ChannelID]
		if channel == "" {
			channel = t.ChannelID
		}
		rows = append(rows, table.Row{
			string(t.Status),
			t.ScheduledStart.Format("Mon 15:04"),
			fmt.Sprintf("%.1f", t.EstimatedHours),
			channel,
			t.Title,
			t.ID,
		})
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))

	tbl.SetStyles(s)

	return model{
		table:     tbl,
		weekStart: week.StartDate.Format("2006-01-02"),
		metrics:   metrics,
		warnings:  warnings,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(fmt.Sprintf("Cadence  week of %s", m.weekStart))

	capacityStyle := loadOK
	if m.metrics.IsOverloaded {
		capacityStyle = loadOver
	} else if m.metrics.UtilizationPercent >= 90 {
		capacityStyle = loadWarn
	}
	capacityText := capacityStyle.Render(fmt.Sprintf("%.1fh / %.1fh (%.1f%% utilized)",
		m.metrics.TotalScheduledHours, m.metrics.CapacityHours, m.metrics.UtilizationPercent))

	warningView := ""
	if len(m.warnings) > 0 {
		warningView = loadOver.Render("\nWARNINGS:\n")
		for _, w := range m.warnings {
			warningView += fmt.Sprintf("- [%s] %s\n", w.Severity, w.Message)
		}
	} else {
		warningView = loadOK.Render("\nCapacity: OK")
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			capacityText,
			"\nThis Week:",
			m.table.View(),
			warningView,
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
