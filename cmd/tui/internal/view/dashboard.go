package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type dashboardState int

const (
	dashboardStateBrowse dashboardState = iota
	dashboardStateAdd
	dashboardStateDelete
)

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	panelStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

// DashboardModel shows one month: totals, its transactions and the expense breakdown.
type DashboardModel struct {
	CommonModel
	txService *transaction.Service
	engine    *report.Engine
	vocab     transaction.Vocabulary

	state   dashboardState
	table   table.Model
	form    *huh.Form
	entry   *entryFields
	confirm *bool
	target  *transaction.Transaction

	loading bool
	err     error
	status  string
}

func NewDashboardModel(txSvc *transaction.Service, engine *report.Engine, vocab transaction.Vocabulary) DashboardModel {
	columns := []table.Column{
		{Title: "Date", Width: 17},
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 32},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		txService: txSvc,
		engine:    engine,
		vocab:     vocab,
		table:     t,
		loading:   true,
	}
}

// Period is the month currently shown.
func (m DashboardModel) Period() report.Period {
	return m.engine.Period()
}

func (m DashboardModel) Title() string { return "Monthly Dashboard" }

func (m DashboardModel) ShortHelp() string {
	switch m.state {
	case dashboardStateAdd, dashboardStateDelete:
		return "Navigate form | Esc: cancel"
	}

	return "←/→: month | [/]: year | t: today | a: add | d: delete | r: reload | Esc: back"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false
		if msg.err != nil {
			// The engine keeps its previous snapshot.
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.engine.Load(msg.txs)
		m.refreshTable()

		return m, nil

	case mutationMsg:
		m.state = dashboardStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			slog.Error("transaction change failed", "error", msg.err)
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-24, 5))

		return m, nil
	}

	switch m.state {
	case dashboardStateAdd:
		return m.updateAdd(msg)
	case dashboardStateDelete:
		return m.updateDelete(msg)
	}

	return m.updateBrowse(msg)
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			return m.setPeriod(m.Period().Prev())
		case "right", "l":
			return m.setPeriod(m.Period().Next())
		case "[":
			p := m.Period()
			return m.setPeriod(report.Period{Year: p.Year - 1, MonthIndex: p.MonthIndex})
		case "]":
			p := m.Period()
			return m.setPeriod(report.Period{Year: p.Year + 1, MonthIndex: p.MonthIndex})
		case "t":
			return m.setPeriod(report.CurrentPeriod(time.Now()))
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "d", "delete":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) setPeriod(p report.Period) (tea.Model, tea.Cmd) {
	if err := m.engine.SetPeriod(p.Year, p.MonthIndex); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.status = ""
	m.refreshTable()
	m.table.GotoTop()

	return m, nil
}

func (m DashboardModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.entry = &entryFields{}
	m.form = buildEntryForm(m.entry, m.vocab)
	m.state = dashboardStateAdd
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m DashboardModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	txs := m.engine.View().Transactions

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(txs) {
		return m, nil
	}

	m.target = txs[idx]
	m.confirm = new(bool)
	m.form = buildDeleteForm(m.target, m.confirm)
	m.state = dashboardStateDelete
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m DashboardModel) updateForm(msg tea.Msg) (DashboardModel, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = dashboardStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil, false
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	return m, cmd, m.form.State == huh.StateCompleted
}

func (m DashboardModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd, done := m.updateForm(msg)
	if !done {
		return m, cmd
	}

	return m, m.addCmd(m.entry.input())
}

func (m DashboardModel) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd, done := m.updateForm(msg)
	if !done {
		return m, cmd
	}

	if !*m.confirm {
		m.state = dashboardStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(m.target.ID)
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	view := m.engine.View()

	header := titleStyle.Render(fmt.Sprintf("◀  %s  ▶", view.Period.String()))

	balanceStyle := incomeStyle
	if view.TotalBalance.IsNegative() {
		balanceStyle = expenseStyle
	}

	totals := fmt.Sprintf("Income %s   Expense %s   Balance %s",
		incomeStyle.Render(FormatAmount(view.TotalIncome)),
		expenseStyle.Render(FormatAmount(view.TotalExpense)),
		balanceStyle.Render(FormatAmount(view.TotalBalance)),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		totals,
		"",
		tableView,
		"",
		lipgloss.NewStyle().Bold(true).Render("Expenses by category"),
		renderBreakdown(view.CategoryBreakdown, view.TotalExpense),
	)

	if m.form != nil {
		title := "Add Transaction"
		if m.state == dashboardStateDelete {
			title = "Delete Transaction"
		}

		panel := panelStyle.Width(48).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.err != nil {
		content = expenseStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *DashboardModel) refreshTable() {
	txs := m.engine.View().Transactions

	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			tx.Category,
			FormatSigned(tx),
			tx.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Messages

type loadDashboardMsg struct {
	txs []*transaction.Transaction
	err error
}

type mutationMsg struct {
	status string
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx)

		return loadDashboardMsg{txs: txs, err: err}
	}
}

func (m DashboardModel) addCmd(in transaction.Input) tea.Cmd {
	vocab := m.vocab

	return func() tea.Msg {
		params, err := in.Parse(vocab, time.Local)
		if err != nil {
			return mutationMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.txService.Add(ctx, params)
		if err != nil {
			return mutationMsg{err: err}
		}

		return mutationMsg{status: fmt.Sprintf("Added %s %s on %s.", tx.Category, FormatAmount(tx.Amount), FormatDate(tx.Date))}
	}
}

func (m DashboardModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Delete(ctx, id); err != nil {
			return mutationMsg{err: err}
		}

		return mutationMsg{status: "Transaction deleted."}
	}
}
