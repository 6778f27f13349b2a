package balances

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/recording-settlements/pkg/api"
	"github.com/chris/recording-settlements/pkg/mapping"
	"github.com/chris/recording-settlements/pkg/storage"
	"github.com/go-playground/validator/v10"
)

// BalanceService exposes balance inquiries and withdrawals.
type BalanceService interface {
	GetBalance(ctx context.Context, participantID string) (int64, error)
	Withdraw(ctx context.Context, participantID string, amountCents int64) (int64, error)
}

// BalancesHandler holds the dependencies for balance-related handlers.
type BalancesHandler struct {
	Service  BalanceService
	Validate *validator.Validate
}

// NewBalancesHandler creates a new BalancesHandler.
func NewBalancesHandler(service BalanceService) *BalancesHandler {
	return &BalancesHandler{Service: service, Validate: validator.New()}
}

// GetBalance handles the logic for retrieving a participant's balance.
func (h *BalancesHandler) GetBalance(w http.ResponseWriter, r *http.Request, participantID string) {
	balanceCents, err := h.Service.GetBalance(r.Context(), participantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve balance: %v", err), http.StatusInternalServerError)
		}
		return
	}

	resp := mapping.ToApiBalanceResponse(participantID, balanceCents)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Withdraw handles the logic for withdrawing from a participant's balance.
func (h *BalancesHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req api.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	newBalance, err := h.Service.Withdraw(r.Context(), req.ParticipantId, req.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, storage.ErrInsufficientFunds):
			http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
		default:
			http.Error(w, fmt.Sprintf("Failed to withdraw: %v", err), http.StatusInternalServerError)
		}
		return
	}

	resp := api.WithdrawResponse{ParticipantId: req.ParticipantId, NewBalanceCents: newBalance}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
