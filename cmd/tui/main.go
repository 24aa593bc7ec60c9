package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/shiptrack/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/shiptrack/internal/config"
	"github.com/MrJamesThe3rd/shiptrack/internal/database"
	"github.com/MrJamesThe3rd/shiptrack/internal/export"
	"github.com/MrJamesThe3rd/shiptrack/internal/importer"
	"github.com/MrJamesThe3rd/shiptrack/internal/logger"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
	shipmentStore "github.com/MrJamesThe3rd/shiptrack/internal/shipment/store"
)

type model struct {
	appName         string
	loc             *time.Location
	shipmentService *shipment.Service
	importService   *importer.Service
	exportService   *export.Service

	currentView View

	listView    view.ListModel
	summaryView view.SummaryModel
	importView  view.ImportModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewList    View = 1
	ViewSummary View = 2
	ViewImport  View = 3
	ViewExport  View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go somewhere when a file is configured.
	if cfg.Log.File != "" {
		slog.SetDefault(logger.New(cfg.App.Env, cfg.Log.File).With("app", cfg.App.Name+"-tui"))
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	shipmentSvc := shipment.NewService(shipmentStore.New(db, loc))
	impSvc := importer.NewService()
	expSvc := export.NewService(shipmentSvc)

	return model{
		appName:         cfg.App.Name,
		loc:             loc,
		shipmentService: shipmentSvc,
		importService:   impSvc,
		exportService:   expSvc,
		currentView:     ViewMenu,
		listView:        view.NewListModel(shipmentSvc, loc),
		summaryView:     view.NewSummaryModel(shipmentSvc, loc),
		importView:      view.NewImportModel(shipmentSvc, impSvc),
		exportView:      view.NewExportModel(expSvc, loc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.shipmentService, m.loc)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.shipmentService, m.loc)

				return m, m.summaryView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.shipmentService, m.importService)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.loc)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Shipments\n" +
				"2. Summary\n" +
				"3. Import Shipments\n" +
				"4. Export Shipments\n\n" +
				"q. Quit",
		)
	case ViewList:
		return m.listView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
