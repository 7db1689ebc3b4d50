package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// TransactionResponse is the JSON shape of a stored transaction. Amounts are
// decimal strings so clients never see float rounding.
type TransactionResponse struct {
	ID          int64            `json:"id"`
	Date        string           `json:"date"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
}

func ToResponse(tx *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.Format(transaction.DateLayout),
		Type:        tx.Type,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Description: tx.Description,
	}
}

func ToResponseList(txs []*transaction.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}

type vocabularyResponse struct {
	Types      []transaction.Type `json:"types"`
	Categories []string           `json:"categories"`
}
