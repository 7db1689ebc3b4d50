package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Header is the column row shared with the importer's native profile.
var Header = []string{"Date", "Type", "Category", "Amount", "Description"}

// Service writes month reports as semicolon separated CSV.
type Service struct {
	transactions report.Lister
}

// NewService creates a new export Service.
func NewService(transactions report.Lister) *Service {
	return &Service{transactions: transactions}
}

// Export writes the report for period to w.
func (s *Service) Export(ctx context.Context, period report.Period, w io.Writer) error {
	if err := period.Validate(); err != nil {
		return err
	}

	all, err := s.transactions.List(ctx)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	return WriteCSV(w, report.Filter(all, period.Year, period.MonthIndex))
}

// ExportToFile writes the report for period to path, creating parent directories.
func (s *Service) ExportToFile(ctx context.Context, period report.Period, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := s.Export(ctx, period, f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// FileName suggests a file name for a period's export, e.g. "tally-2024-01.csv".
func FileName(period report.Period) string {
	return fmt.Sprintf("tally-%04d-%02d.csv", period.Year, period.MonthIndex+1)
}

// WriteCSV writes the view's rows followed by a blank line and the summary rows.
func WriteCSV(w io.Writer, view report.FilteredView) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range view.Transactions {
		row := []string{
			t.Date.Format(transaction.DateLayout),
			string(t.Type),
			t.Category,
			t.Amount.String(),
			t.Description,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction %d: %w", t.ID, err)
		}
	}

	summary := [][]string{
		{},
		{"Total income", view.TotalIncome.String()},
		{"Total expense", view.TotalExpense.String()},
		{"Balance", view.TotalBalance.String()},
	}

	for _, c := range view.CategoryBreakdown {
		summary = append(summary, []string{"Category", c.Category, c.Amount.String()})
	}

	if err := cw.WriteAll(summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}
