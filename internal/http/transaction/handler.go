package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc   *transaction.Service
	vocab transaction.Vocabulary
	loc   *time.Location
}

func NewHandler(svc *transaction.Service, vocab transaction.Vocabulary, loc *time.Location) *Handler {
	return &Handler{svc: svc, vocab: vocab, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

// VocabularyRoutes serves the choices offered by entry forms.
func (h *Handler) VocabularyRoutes(r chi.Router) {
	r.Get("/", h.vocabulary)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transaction.Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.Parse(h.vocab, h.loc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Add(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(ToResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ToResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) vocabulary(w http.ResponseWriter, _ *http.Request) {
	categories := h.vocab.Categories
	if categories == nil {
		categories = []string{}
	}

	w.Header().Set("Content-Type", "application/json")

	resp := vocabularyResponse{Types: transaction.Types, Categories: categories}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, transaction.ErrValidation) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Error("transaction request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
