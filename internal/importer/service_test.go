package importer_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type fakeParser struct {
	params []transaction.CreateParams
	err    error
}

func (f fakeParser) Parse(io.Reader) ([]transaction.CreateParams, error) {
	return f.params, f.err
}

type fakeTxImporter struct {
	got []transaction.CreateParams
	n   int
	err error
}

func (f *fakeTxImporter) Import(_ context.Context, params []transaction.CreateParams) (int, error) {
	f.got = params
	return f.n, f.err
}

func TestService_Import(t *testing.T) {
	params := []transaction.CreateParams{
		{Type: transaction.TypeExpense, Category: "Food"},
		{Type: transaction.TypeIncome, Category: "Salary"},
	}

	t.Run("stores parsed rows", func(t *testing.T) {
		txs := &fakeTxImporter{n: 2}
		svc := importer.NewService(fakeParser{params: params}, txs)

		res, err := svc.Import(context.Background(), strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, importer.Result{Parsed: 2, Imported: 2}, res)
		assert.Equal(t, params, txs.got)
	})

	t.Run("parse error stores nothing", func(t *testing.T) {
		txs := &fakeTxImporter{}
		svc := importer.NewService(fakeParser{err: importer.ErrNoHeader}, txs)

		_, err := svc.Import(context.Background(), strings.NewReader(""))
		assert.ErrorIs(t, err, importer.ErrNoHeader)
		assert.Nil(t, txs.got)
	})

	t.Run("storage error reports partial count", func(t *testing.T) {
		storeErr := errors.New("disk full")
		txs := &fakeTxImporter{n: 1, err: storeErr}
		svc := importer.NewService(fakeParser{params: params}, txs)

		res, err := svc.Import(context.Background(), strings.NewReader(""))
		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, importer.Result{Parsed: 2, Imported: 1}, res)
	})
}
