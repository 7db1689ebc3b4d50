package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

type model struct {
	appName       string
	txService     *transaction.Service
	engine        *report.Engine
	vocab         transaction.Vocabulary
	importService *importer.Service
	exportService *export.Service

	currentView View

	dashboardView view.DashboardModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewImport    View = 2
	ViewExport    View = 3
)

func initialModel(cfg *config.Config) (model, error) {
	txSvc := transaction.NewService(txStore.New(cfg.DB.Path))

	ctx, cancel := view.DbCtx()
	defer cancel()

	if err := txSvc.Initialize(ctx); err != nil {
		return model{}, err
	}

	vocab := transaction.Vocabulary{Categories: cfg.Categories}
	engine := report.NewEngine(txSvc, report.CurrentPeriod(time.Now()))
	impSvc := importer.NewService(importer.NewParser(vocab, time.Local), txSvc)
	expSvc := export.NewService(txSvc)

	return model{
		appName:       cfg.App.Name,
		txService:     txSvc,
		engine:        engine,
		vocab:         vocab,
		importService: impSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(txSvc, engine, vocab),
		importView:    view.NewImportModel(impSvc),
		exportView:    view.NewExportModel(expSvc, engine.Period()),
	}, nil
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
				m.currentView = ViewDashboard
				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.engine.Period())

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
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
				"1. Monthly Dashboard\n" +
				"2. Import Transactions\n" +
				"3. Export Month\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.withHelp(m.dashboardView.View(), m.dashboardView.ShortHelp())
	case ViewImport:
		return m.withHelp(m.importView.View(), m.importView.ShortHelp())
	case ViewExport:
		return m.withHelp(m.exportView.View(), m.exportView.ShortHelp())
	}

	return "Unknown View"
}

func (m model) withHelp(body, help string) string {
	return body + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	m, err := initialModel(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "path", cfg.DB.Path, "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.TUIFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Log.TUIFile, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Log.Level})))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
