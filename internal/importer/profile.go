package importer

import "strings"

// amountMode determines how the transaction type is derived from a row.
type amountMode int

const (
	// amountTyped means an explicit type column next to a positive amount.
	amountTyped amountMode = iota
	// amountSigned means one signed amount column; negative values are expenses.
	amountSigned
)

// Profile describes the column layout of a supported CSV file.
type Profile struct {
	Name        string
	DateCol     string
	TypeCol     string // used when AmountMode == amountTyped
	CategoryCol string
	AmountCol   string
	DescCol     string // optional
	AmountMode  amountMode
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.CategoryCol, p.AmountCol}
	if p.AmountMode == amountTyped {
		cols = append(cols, p.TypeCol)
	}

	return cols
}

// profiles is the ordered list of layouts tried during detection.
// More specific profiles come first.
var profiles = []Profile{
	{
		Name:        "tally",
		DateCol:     "date",
		TypeCol:     "type",
		CategoryCol: "category",
		AmountCol:   "amount",
		DescCol:     "description",
		AmountMode:  amountTyped,
	},
	{
		Name:        "signed",
		DateCol:     "date",
		CategoryCol: "category",
		AmountCol:   "amount",
		DescCol:     "description",
		AmountMode:  amountSigned,
	},
}

// normalizeHeader makes header matching case and whitespace insensitive.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
