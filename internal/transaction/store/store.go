package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Store persists transactions in a SQLite file. Every operation opens the file,
// runs a single statement and closes it again; no handle outlives a call.
type Store struct {
	path string
	loc  *time.Location
}

type Option func(*Store)

// WithLocation sets the zone persisted timestamps are written and read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		s.loc = loc
	}
}

func New(path string, opts ...Option) *Store {
	s := &Store{path: path, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, date, type, category, amount, description
const selectTransactionColumns = `id, date, type, category, amount, description`

func (s *Store) scanTransaction(sc scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var dateStr, typeStr string

	var desc sql.NullString

	if err := sc.Scan(&tx.ID, &dateStr, &typeStr, &tx.Category, &tx.Amount, &desc); err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation(transaction.DateLayout, dateStr, s.loc)
	if err != nil {
		return nil, fmt.Errorf("parsing date of transaction %d: %w", tx.ID, err)
	}

	tx.Date = date
	tx.Type = transaction.Type(typeStr)
	tx.Description = desc.String

	return &tx, nil
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := database.Open(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", transaction.ErrStorage, err)
	}

	return db, nil
}

// Initialize creates the backing file and schema if missing. Existing data is left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	if err := database.Migrate(ctx, s.path); err != nil {
		return fmt.Errorf("%w: initializing store: %w", transaction.ErrStorage, err)
	}

	return nil
}

func (s *Store) Add(ctx context.Context, tx *transaction.Transaction) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	query := `
		INSERT INTO transactions (date, type, category, amount, description)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	err = db.QueryRowContext(ctx, query,
		tx.Date.In(s.loc).Format(transaction.DateLayout),
		string(tx.Type),
		tx.Category,
		tx.Amount.String(),
		tx.Description,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("%w: adding transaction: %w", transaction.ErrStorage, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: deleting transaction %d: %w", transaction.ErrStorage, id, err)
	}

	return nil
}

// ListAll returns every transaction ordered by date descending, ties by id ascending.
func (s *Store) ListAll(ctx context.Context) ([]*transaction.Transaction, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		ORDER BY date DESC, id ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing transactions: %w", transaction.ErrStorage, err)
	}
	defer rows.Close()

	txs := []*transaction.Transaction{}

	for rows.Next() {
		tx, err := s.scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning transaction: %w", transaction.ErrStorage, err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating transactions: %w", transaction.ErrStorage, err)
	}

	return txs, nil
}
