package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Result summarizes a finished import.
type Result struct {
	Parsed   int `json:"parsed"`
	Imported int `json:"imported"`
}

type Service struct {
	parser Importer
	txs    TransactionImporter
}

func NewService(parser Importer, txs TransactionImporter) *Service {
	return &Service{
		parser: parser,
		txs:    txs,
	}
}

// Import parses r and stores every row. A parse error rejects the whole file;
// a storage error reports how many rows were stored before it.
func (s *Service) Import(ctx context.Context, r io.Reader) (Result, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return Result{}, fmt.Errorf("parsing file: %w", err)
	}

	n, err := s.txs.Import(ctx, params)
	res := Result{Parsed: len(params), Imported: n}

	if err != nil {
		return res, err
	}

	slog.Info("import finished", "parsed", res.Parsed, "imported", res.Imported)

	return res, nil
}
