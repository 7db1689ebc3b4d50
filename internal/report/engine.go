package report

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Lister is the read side of the transaction store.
type Lister interface {
	List(ctx context.Context) ([]*transaction.Transaction, error)
}

// Engine holds a snapshot of every transaction plus the selected period and keeps
// the derived view in sync with both. The snapshot is only refreshed by Reload, so
// callers must reload after every add or delete. Not safe for concurrent use.
type Engine struct {
	lister Lister
	all    []*transaction.Transaction
	period Period
	view   FilteredView
}

func NewEngine(lister Lister, period Period) *Engine {
	e := &Engine{lister: lister, period: period}
	e.recompute()

	return e
}

// Reload re-reads every transaction from the store and recomputes the view.
// On error the previous snapshot is kept.
func (e *Engine) Reload(ctx context.Context) error {
	all, err := e.lister.List(ctx)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	e.Load(all)

	return nil
}

// Load replaces the snapshot with all, which the caller fetched itself. Event loops
// that list in the background use it to apply the result on their own goroutine.
func (e *Engine) Load(all []*transaction.Transaction) {
	e.all = all
	e.recompute()
}

// SetPeriod selects another month and recomputes the view from the current snapshot.
func (e *Engine) SetPeriod(year, monthIndex int) error {
	p := Period{Year: year, MonthIndex: monthIndex}
	if err := p.Validate(); err != nil {
		return err
	}

	e.period = p
	e.recompute()

	return nil
}

func (e *Engine) Period() Period {
	return e.period
}

func (e *Engine) View() FilteredView {
	return e.view
}

func (e *Engine) recompute() {
	e.view = Filter(e.all, e.period.Year, e.period.MonthIndex)
}
