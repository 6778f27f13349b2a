package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/recording-settlements/pkg/api"
	"github.com/chris/recording-settlements/pkg/mapping"
	"github.com/chris/recording-settlements/pkg/models"
	"github.com/chris/recording-settlements/pkg/storage"
)

// LedgerReader reads a participant's earnings log.
type LedgerReader interface {
	// ListEarnings returns the participant's earnings-log entries in
	// chronological order.
	ListEarnings(ctx context.Context, participantID string) ([]models.EarningsEntry, error)
}

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Reader LedgerReader
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reader LedgerReader) *LedgerHandler {
	return &LedgerHandler{Reader: reader}
}

// ListEarnings handles the logic for listing a participant's earnings log.
func (h *LedgerHandler) ListEarnings(w http.ResponseWriter, r *http.Request, participantID string) {
	domainEntries, err := h.Reader.ListEarnings(r.Context(), participantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve ledger entries: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(domainEntries))
	for i, entry := range domainEntries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEntries); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
