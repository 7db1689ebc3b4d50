package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Initialize(ctx context.Context) error
	Add(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]*Transaction, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock replaces the clock used to stamp transactions created without a date.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Initialize(ctx context.Context) error {
	return s.repo.Initialize(ctx)
}

// Add validates params and persists a new transaction, returning it with its assigned ID.
func (s *Service) Add(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx, err := s.build(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Delete removes the transaction with id. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns every stored transaction, most recent first.
func (s *Service) List(ctx context.Context) ([]*Transaction, error) {
	return s.repo.ListAll(ctx)
}

// Import adds every row one at a time. All rows are validated up front so a bad file
// changes nothing; a storage failure stops the import and reports how many rows landed.
func (s *Service) Import(ctx context.Context, params []CreateParams) (int, error) {
	txs := make([]*Transaction, 0, len(params))

	for i, p := range params {
		tx, err := s.build(p)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs = append(txs, tx)
	}

	for i, tx := range txs {
		if err := s.repo.Add(ctx, tx); err != nil {
			return i, fmt.Errorf("importing row %d: %w", i+1, err)
		}
	}

	return len(txs), nil
}

func (s *Service) build(params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	date := params.Date
	if date.IsZero() {
		date = s.now()
	}

	return &Transaction{
		Date:        date.Truncate(time.Second),
		Type:        params.Type,
		Category:    strings.TrimSpace(params.Category),
		Amount:      params.Amount,
		Description: params.Description,
	}, nil
}
