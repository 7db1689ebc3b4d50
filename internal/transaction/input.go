package transaction

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Vocabulary is the presentation-owned set of choices offered to the user.
// An empty category list accepts any non-empty category.
type Vocabulary struct {
	Categories []string
}

func (v Vocabulary) allows(category string) bool {
	return len(v.Categories) == 0 || slices.Contains(v.Categories, category)
}

// Input holds raw user input as entered in a form or request body.
type Input struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Parse converts raw input into CreateParams, rejecting anything the store must never see.
// Dates are interpreted in loc; an empty date is left zero so the service stamps it.
func (in Input) Parse(vocab Vocabulary, loc *time.Location) (CreateParams, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return CreateParams{}, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		return CreateParams{}, ErrMissingCategory
	}

	if !vocab.allows(category) {
		return CreateParams{}, fmt.Errorf("%w %q", ErrUnknownCategory, category)
	}

	typ, err := ParseType(in.Type)
	if err != nil {
		return CreateParams{}, err
	}

	date, err := ParseDate(in.Date, loc)
	if err != nil {
		return CreateParams{}, err
	}

	return CreateParams{
		Date:        date,
		Type:        typ,
		Category:    category,
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
	}, nil
}

// ParseAmount parses a strictly positive decimal. Both "12.50" and "12,50" are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if clean == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	return d, nil
}

// ParseType accepts the stored labels case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidType
	}

	return t, nil
}

// ParseDate accepts DateLayout, a bare date, or an empty string (zero time).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if loc == nil {
		loc = time.Local
	}

	for _, layout := range []string{DateLayout, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w %q (want YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)", ErrInvalidDate, s)
}
