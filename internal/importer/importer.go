package importer

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Importer turns an uploaded file into validated create params.
type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}

// TransactionImporter persists a batch of parsed rows.
type TransactionImporter interface {
	Import(ctx context.Context, params []transaction.CreateParams) (int, error)
}
