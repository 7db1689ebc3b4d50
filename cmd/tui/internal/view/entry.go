package view

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// entryFields are the raw strings bound to the add form.
type entryFields struct {
	Date        string
	Type        string
	Category    string
	Amount      string
	Description string
}

func (f entryFields) input() transaction.Input {
	return transaction.Input{
		Date:        f.Date,
		Type:        f.Type,
		Category:    f.Category,
		Amount:      f.Amount,
		Description: f.Description,
	}
}

func buildEntryForm(f *entryFields, vocab transaction.Vocabulary) *huh.Form {
	types := make([]string, len(transaction.Types))
	for i, t := range transaction.Types {
		types[i] = string(t)
	}

	if f.Type == "" {
		f.Type = string(transaction.TypeExpense)
	}

	var category huh.Field
	if len(vocab.Categories) > 0 {
		category = huh.NewSelect[string]().
			Key("category").
			Title("Category").
			Options(huh.NewOptions(vocab.Categories...)...).
			Value(&f.Category)
	} else {
		category = huh.NewInput().
			Key("category").
			Title("Category").
			Value(&f.Category).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return transaction.ErrMissingCategory
				}
				return nil
			})
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(huh.NewOptions(types...)...).
				Value(&f.Type),

			category,

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(func(s string) error {
					_, err := transaction.ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Description("Empty for now").
				Placeholder("YYYY-MM-DD HH:MM:SS").
				Value(&f.Date).
				Validate(func(s string) error {
					_, err := transaction.ParseDate(s, nil)
					return err
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&f.Description),
		),
	).WithWidth(45).WithShowHelp(false)
}

func buildDeleteForm(tx *transaction.Transaction, confirm *bool) *huh.Form {
	*confirm = false

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this transaction?").
				Description(FormatDate(tx.Date) + "  " + tx.Category + "  " + FormatSigned(tx)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(confirm),
		),
	).WithWidth(45).WithShowHelp(false)
}
