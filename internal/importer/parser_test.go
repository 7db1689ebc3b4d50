package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newParser(categories ...string) *importer.Parser {
	return importer.NewParser(transaction.Vocabulary{Categories: categories}, time.UTC)
}

func TestParser_TypedProfile(t *testing.T) {
	csv := `Date;Type;Category;Amount;Description
2024-01-05 09:30:00;income;Salary;50000;January pay
2024-01-10;Expense;Food;200,50;
`

	txs, err := newParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC), txs[0].Date)
	assert.Equal(t, transaction.TypeIncome, txs[0].Type)
	assert.Equal(t, "Salary", txs[0].Category)
	assert.True(t, decimal.RequireFromString("50000").Equal(txs[0].Amount))
	assert.Equal(t, "January pay", txs[0].Description)

	assert.Equal(t, date(2024, 1, 10), txs[1].Date)
	assert.Equal(t, transaction.TypeExpense, txs[1].Type)
	assert.True(t, decimal.RequireFromString("200.50").Equal(txs[1].Amount))
	assert.Empty(t, txs[1].Description)
}

func TestParser_SignedProfile(t *testing.T) {
	csv := `date;category;amount;description
2026-01-30;Utilities;-588,74;Electricity
2026-01-09;Salary;+8608,52;Wise
`

	txs, err := newParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.True(t, decimal.RequireFromString("588.74").Equal(txs[0].Amount))

	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.True(t, decimal.RequireFromString("8608.52").Equal(txs[1].Amount))
}

func TestParser_HeaderAfterPreamble(t *testing.T) {
	csv := `Monthly report;January 2024
Generated;2024-02-01

 Date ; Type ; Category ; Amount ; Description
2024-01-10;expense;Food;200;Lunch
`

	txs, err := newParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Lunch", txs[0].Description)
}

func TestParser_SkipsUndatedRows(t *testing.T) {
	csv := `Date;Type;Category;Amount;Description
2024-01-10;expense;Food;200;Lunch

Total income;0
Total expense;200
Category;Food;200
`

	txs, err := newParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestParser_Windows1252(t *testing.T) {
	csv := "Date;Type;Category;Amount;Description\n2024-03-01;expense;Food;12,50;Café com pão\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	txs, err := newParser().Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Café com pão", txs[0].Description)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no header",
			csv:     "foo;bar\n1;2\n",
			wantErr: importer.ErrNoHeader,
		},
		{
			name:    "invalid amount",
			csv:     "Date;Type;Category;Amount\n2024-01-10;expense;Food;abc\n",
			wantErr: transaction.ErrInvalidAmount,
			wantMsg: "row 2",
		},
		{
			name:    "zero amount",
			csv:     "Date;Type;Category;Amount\n2024-01-10;expense;Food;0\n",
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name:    "invalid type",
			csv:     "Date;Type;Category;Amount\n2024-01-10;transfer;Food;10\n2024-01-11;expense;Food;10\n",
			wantErr: transaction.ErrInvalidType,
			wantMsg: "row 2",
		},
		{
			name:    "missing category on third record",
			csv:     "Date;Type;Category;Amount\n2024-01-10;expense;Food;10\n2024-01-11;expense; ;10\n",
			wantErr: transaction.ErrMissingCategory,
			wantMsg: "row 3",
		},
		{
			name:    "unknown category",
			csv:     "Date;Type;Category;Amount\n2024-01-10;expense;Gambling;10\n",
			wantErr: transaction.ErrUnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newParser("Food", "Salary").Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, transaction.ErrValidation)

			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
