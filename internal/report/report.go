// Package report turns the full transaction set and a selected month into the
// figures a viewer renders: the month's transactions, totals and expense breakdown.
package report

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var ErrInvalidPeriod = errors.New("invalid period: month index must be between 0 and 11")

// MonthNames are indexed by month index (0 = January).
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Period selects one calendar month. MonthIndex is zero based.
type Period struct {
	Year       int
	MonthIndex int
}

func (p Period) Validate() error {
	if p.MonthIndex < 0 || p.MonthIndex > 11 {
		return ErrInvalidPeriod
	}

	return nil
}

func (p Period) String() string {
	if p.Validate() != nil {
		return "invalid period"
	}

	return fmt.Sprintf("%s %d", MonthNames[p.MonthIndex], p.Year)
}

// Next returns the following month, rolling over the year.
func (p Period) Next() Period {
	if p.MonthIndex == 11 {
		return Period{Year: p.Year + 1, MonthIndex: 0}
	}

	return Period{Year: p.Year, MonthIndex: p.MonthIndex + 1}
}

// Prev returns the preceding month, rolling over the year.
func (p Period) Prev() Period {
	if p.MonthIndex == 0 {
		return Period{Year: p.Year - 1, MonthIndex: 11}
	}

	return Period{Year: p.Year, MonthIndex: p.MonthIndex - 1}
}

func (p Period) contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.MonthIndex+1
}

// ParsePeriod reads a year and a 1-based month, as they appear in URLs and file names.
func ParsePeriod(year, month string) (Period, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return Period{}, fmt.Errorf("%w: year %q", ErrInvalidPeriod, year)
	}

	m, err := strconv.Atoi(month)
	if err != nil {
		return Period{}, fmt.Errorf("%w: month %q", ErrInvalidPeriod, month)
	}

	p := Period{Year: y, MonthIndex: m - 1}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}

	return p, nil
}

// CurrentPeriod returns the month containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), MonthIndex: int(now.Month()) - 1}
}

// AvailableYears returns the current year and the span years before it, newest first.
func AvailableYears(now time.Time, span int) []int {
	years := make([]int, 0, span+1)
	for y := now.Year(); y >= now.Year()-span; y-- {
		years = append(years, y)
	}

	return years
}

// CategoryAmount is the summed expense of one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Share returns the category's percentage of total, rounded to two places.
func (c CategoryAmount) Share(total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return c.Amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}

// FilteredView is everything a viewer needs for one period.
type FilteredView struct {
	Period            Period
	Transactions      []*transaction.Transaction
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	TotalBalance      decimal.Decimal
	CategoryBreakdown []CategoryAmount
}

// Filter selects the transactions dated inside the given month and aggregates them.
// It is a pure function of its inputs; the input slice is not modified.
func Filter(all []*transaction.Transaction, year, monthIndex int) FilteredView {
	period := Period{Year: year, MonthIndex: monthIndex}

	view := FilteredView{
		Period:            period,
		Transactions:      []*transaction.Transaction{},
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		TotalBalance:      decimal.Zero,
		CategoryBreakdown: []CategoryAmount{},
	}

	if period.Validate() != nil {
		return view
	}

	for _, tx := range all {
		if period.contains(tx.Date) {
			view.Transactions = append(view.Transactions, tx)
		}
	}

	slices.SortStableFunc(view.Transactions, func(a, b *transaction.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	byCategory := make(map[string]int)

	for _, tx := range view.Transactions {
		switch tx.Type {
		case transaction.TypeIncome:
			view.TotalIncome = view.TotalIncome.Add(tx.Amount)
		case transaction.TypeExpense:
			view.TotalExpense = view.TotalExpense.Add(tx.Amount)

			idx, ok := byCategory[tx.Category]
			if !ok {
				idx = len(view.CategoryBreakdown)
				byCategory[tx.Category] = idx
				view.CategoryBreakdown = append(view.CategoryBreakdown, CategoryAmount{
					Category: tx.Category,
					Amount:   decimal.Zero,
				})
			}

			view.CategoryBreakdown[idx].Amount = view.CategoryBreakdown[idx].Amount.Add(tx.Amount)
		}
	}

	view.TotalBalance = view.TotalIncome.Sub(view.TotalExpense)

	return view
}
