package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

const barWidth = 30

var barColors = []lipgloss.Color{"205", "63", "39", "214", "46", "170", "226", "33"}

// renderBreakdown draws one horizontal bar per category, scaled to its share of total.
func renderBreakdown(items []report.CategoryAmount, total decimal.Decimal) string {
	if len(items) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No expenses this month.")
	}

	nameWidth := 0
	for _, c := range items {
		nameWidth = max(nameWidth, lipgloss.Width(c.Category))
	}

	lines := make([]string, 0, len(items))

	for i, c := range items {
		share := c.Share(total)
		filled := int(share.Mul(decimal.NewFromInt(barWidth)).Div(decimal.NewFromInt(100)).Round(0).IntPart())
		if filled == 0 && c.Amount.IsPositive() {
			filled = 1
		}

		bar := lipgloss.NewStyle().Foreground(barColors[i%len(barColors)]).Render(strings.Repeat("█", filled))
		pad := strings.Repeat(" ", barWidth-filled)

		name := lipgloss.NewStyle().Width(nameWidth).Render(c.Category)

		lines = append(lines, fmt.Sprintf("%s %s%s %10s  %5s%%",
			name, bar, pad, FormatAmount(c.Amount), share.StringFixed(1)))
	}

	return strings.Join(lines, "\n")
}
