package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	httptx "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type Handler struct {
	transactions report.Lister
}

func NewHandler(transactions report.Lister) *Handler {
	return &Handler{transactions: transactions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{year}/{month}", h.get)
}

type periodResponse struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

type categoryResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Share    decimal.Decimal `json:"share"`
}

type viewResponse struct {
	Period            periodResponse               `json:"period"`
	Transactions      []httptx.TransactionResponse `json:"transactions"`
	TotalIncome       decimal.Decimal              `json:"total_income"`
	TotalExpense      decimal.Decimal              `json:"total_expense"`
	TotalBalance      decimal.Decimal              `json:"total_balance"`
	CategoryBreakdown []categoryResponse           `json:"category_breakdown"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	period, err := report.ParsePeriod(chi.URLParam(r, "year"), chi.URLParam(r, "month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	all, err := h.transactions.List(r.Context())
	if err != nil {
		slog.Error("failed to list transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	view := report.Filter(all, period.Year, period.MonthIndex)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toViewResponse(view)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toViewResponse(v report.FilteredView) viewResponse {
	breakdown := make([]categoryResponse, len(v.CategoryBreakdown))
	for i, c := range v.CategoryBreakdown {
		breakdown[i] = categoryResponse{
			Category: c.Category,
			Amount:   c.Amount,
			Share:    c.Share(v.TotalExpense),
		}
	}

	return viewResponse{
		Period: periodResponse{
			Year:  v.Period.Year,
			Month: v.Period.MonthIndex + 1,
			Label: v.Period.String(),
		},
		Transactions:      httptx.ToResponseList(v.Transactions),
		TotalIncome:       v.TotalIncome,
		TotalExpense:      v.TotalExpense,
		TotalBalance:      v.TotalBalance,
		CategoryBreakdown: breakdown,
	}
}
