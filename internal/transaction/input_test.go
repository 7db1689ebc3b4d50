package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1", want: "1"},
		{in: "200.50", want: "200.5"},
		{in: "200,50", want: "200.5"},
		{in: " 0.01 ", want: "0.01"},
		{in: "50000", want: "50000"},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := transaction.ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := transaction.ParseDate("2024-01-05 08:15:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 8, 15, 30, 0, time.UTC), got)

	got, err = transaction.ParseDate("2024-02-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = transaction.ParseDate("", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = transaction.ParseDate("05/01/2024", time.UTC)
	assert.ErrorIs(t, err, transaction.ErrInvalidDate)
}

func TestInput_Parse(t *testing.T) {
	vocab := transaction.Vocabulary{Categories: []string{"Salary", "Food"}}

	tests := []struct {
		name    string
		in      transaction.Input
		wantErr error
	}{
		{
			name: "Valid",
			in: transaction.Input{
				Date: "2024-01-10", Type: "Expense", Category: "Food", Amount: "200", Description: "  lunch ",
			},
		},
		{
			name:    "BadAmount",
			in:      transaction.Input{Type: "expense", Category: "Food", Amount: "ten"},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name:    "MissingCategory",
			in:      transaction.Input{Type: "expense", Amount: "10"},
			wantErr: transaction.ErrMissingCategory,
		},
		{
			name:    "UnknownCategory",
			in:      transaction.Input{Type: "expense", Category: "Casino", Amount: "10"},
			wantErr: transaction.ErrUnknownCategory,
		},
		{
			name:    "BadType",
			in:      transaction.Input{Type: "refund", Category: "Food", Amount: "10"},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name:    "BadDate",
			in:      transaction.Input{Date: "yesterday", Type: "income", Category: "Salary", Amount: "10"},
			wantErr: transaction.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Parse(vocab, time.UTC)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, transaction.ErrValidation)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, transaction.TypeExpense, got.Type)
			assert.Equal(t, "Food", got.Category)
			assert.Equal(t, "lunch", got.Description)
			assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), got.Date)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestInput_Parse_EmptyVocabularyAcceptsAnyCategory(t *testing.T) {
	in := transaction.Input{Type: "income", Category: "Lottery", Amount: "1"}

	got, err := in.Parse(transaction.Vocabulary{}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Lottery", got.Category)
}
