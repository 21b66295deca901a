package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tavola/ledger/internal/adapter/http/dto"
	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/usecase"
)

// PostingService defines the behavior needed by PostingHandler.
type PostingService interface {
	PostEvent(ctx context.Context, input usecase.PostEventInput) (*domain.LedgerEntry, error)
	PostEntry(ctx context.Context, input usecase.PostEntryInput) (*domain.LedgerEntry, error)
}

// PostingHandler handles journal posting HTTP requests.
type PostingHandler struct {
	postingUC PostingService
}

// NewPostingHandler creates a new PostingHandler.
func NewPostingHandler(postingUC PostingService) *PostingHandler {
	return &PostingHandler{postingUC: postingUC}
}

// PostEvent posts a named journal event from an amounts bag.
func (h *PostingHandler) PostEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.PostEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amounts", err.Error())
		return
	}

	entry, err := h.postingUC.PostEvent(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post event", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// PostEntry posts a journal entry with caller-supplied lines.
func (h *PostingHandler) PostEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.PostEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lines", err.Error())
		return
	}

	entry, err := h.postingUC.PostEntry(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}
