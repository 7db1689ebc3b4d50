package view

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

const (
	exportTimeout = 2 * time.Minute
	exportDir     = "exports"
	yearSpan      = 5
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

// exportFields are bound to the export form.
type exportFields struct {
	Year       int
	MonthIndex int
	Path       string
}

func (f exportFields) period() report.Period {
	return report.Period{Year: f.Year, MonthIndex: f.MonthIndex}
}

func (f exportFields) path() string {
	if p := strings.TrimSpace(f.Path); p != "" {
		return p
	}

	return filepath.Join(exportDir, export.FileName(f.period()))
}

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	err     error
	fields  *exportFields
	form    *huh.Form
	spinner spinner.Model
	written string
}

// NewExportModel starts the form on period, typically the month shown on the dashboard.
func NewExportModel(svc *export.Service, period report.Period) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	fields := &exportFields{Year: period.Year, MonthIndex: period.MonthIndex}

	return ExportModel{
		exportService: svc,
		state:         exportStateForm,
		fields:        fields,
		form:          buildExportForm(fields),
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Transactions" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.fields.period(), m.fields.path()))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.written = result.path

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	return m, nil
}

func buildExportForm(f *exportFields) *huh.Form {
	years := report.AvailableYears(time.Now(), yearSpan)
	if !slices.Contains(years, f.Year) {
		years = append(years, f.Year)
		slices.SortFunc(years, func(a, b int) int { return b - a })
	}

	yearOpts := make([]huh.Option[int], len(years))
	for i, y := range years {
		yearOpts[i] = huh.NewOption(fmt.Sprint(y), y)
	}

	monthOpts := make([]huh.Option[int], len(report.MonthNames))
	for i, name := range report.MonthNames {
		monthOpts[i] = huh.NewOption(name, i)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Key("year").
				Title("Year").
				Options(yearOpts...).
				Value(&f.Year),

			huh.NewSelect[int]().
				Key("month").
				Title("Month").
				Options(monthOpts...).
				Value(&f.MonthIndex),

			huh.NewInput().
				Key("path").
				Title("Output File").
				Description("Empty for " + filepath.Join(exportDir, "tally-YYYY-MM.csv")).
				Value(&f.Path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing report...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%s written to %s", m.fields.period().String(), m.written),
		),
	)
}

type exportResultMsg struct {
	path string
	err  error
}

func (m ExportModel) runExportCmd(period report.Period, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		if err := m.exportService.ExportToFile(ctx, period, path); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path}
	}
}
