package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/adapter/http/dto"
	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	GetBalance(ctx context.Context, accountKey string, asOf *time.Time) (decimal.Decimal, error)
	GetTrialBalance(ctx context.Context, date time.Time) (*usecase.TrialBalance, error)
	GetEntries(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error)
	CheckConsistency(ctx context.Context) (bool, error)
}

// LedgerHandler handles general ledger query HTTP requests.
type LedgerHandler struct {
	ledgerUC  LedgerService
	accountUC AccountService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, accountUC AccountService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, accountUC: accountUC}
}

// GetBalance returns one account's balance, optionally as of a date.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing account key", "")
		return
	}

	asOf, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date", err.Error())
		return
	}

	account, err := h.accountUC.Resolve(r.Context(), key)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), key, asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(account, balance, asOf))
}

// GetTrialBalance returns every account's totals as of a date.
// The date defaults to now.
func (h *LedgerHandler) GetTrialBalance(w http.ResponseWriter, r *http.Request) {
	date, err := parseTimeQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}
	if date == nil {
		now := time.Now().UTC()
		date = &now
	}

	tb, err := h.ledgerUC.GetTrialBalance(r.Context(), *date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build trial balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromUseCase(tb))
}

// ListEntries lists journal entries matching the query filters.
func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}

	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	filter := domain.EntryFilter{
		AccountID:       r.URL.Query().Get("account_id"),
		TransactionType: r.URL.Query().Get("transaction_type"),
		ReferenceType:   r.URL.Query().Get("reference_type"),
		ReferenceID:     r.URL.Query().Get("reference_id"),
		From:            from,
		To:              to,
		Limit:           parseIntQuery(r, "limit", 50),
		Offset:          parseIntQuery(r, "offset", 0),
	}

	entries, err := h.ledgerUC.GetEntries(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// ListAccountEntries lists the entries touching one account.
func (h *LedgerHandler) ListAccountEntries(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing account key", "")
		return
	}

	account, err := h.accountUC.Resolve(r.Context(), key)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}

	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	entries, err := h.ledgerUC.GetEntries(r.Context(), domain.EntryFilter{
		AccountID: account.ID,
		From:      from,
		To:        to,
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// GetEntry retrieves one journal entry with its lines.
func (h *LedgerHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.ledgerUC.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// CheckConsistency verifies system-wide debits equal credits.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	ok, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil && !errors.Is(err, usecase.ErrInconsistentLedger) {
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{Consistent: ok})
}
