// Package balance provides withdrawals and inquiries against a participant's
// ledger entry. It is an independent entry point into the store: it only ever
// takes participant locks, so it interleaves safely with settlement.
package balance

import (
	"context"

	"github.com/chris/recording-settlements/pkg/models"
	"github.com/chris/recording-settlements/pkg/storage"
	"github.com/rs/zerolog"
)

// Service answers balance inquiries and performs withdrawals.
type Service struct {
	Store  storage.ParticipantStore
	Logger zerolog.Logger
}

// NewService creates a new Service.
func NewService(store storage.ParticipantStore, logger zerolog.Logger) *Service {
	return &Service{Store: store, Logger: logger}
}

// GetBalance returns the participant's current balance in cents.
// Returns ErrNotFound if the participant has never been created.
func (s *Service) GetBalance(ctx context.Context, participantID string) (int64, error) {
	p := s.Store.GetParticipant(participantID)
	if p == nil {
		return 0, storage.ErrNotFound
	}

	lock := s.Store.ParticipantLock(participantID)
	lock.Lock()
	defer lock.Unlock()

	return p.BalanceCents, nil
}

// Withdraw atomically decrements the participant's balance and returns the new
// balance. Concurrent withdrawals for the same participant serialize strictly
// on the participant's lock; the balance can never go negative.
func (s *Service) Withdraw(ctx context.Context, participantID string, amountCents int64) (int64, error) {
	if amountCents <= 0 {
		return 0, storage.ErrInvalidAmount
	}

	lock := s.Store.ParticipantLock(participantID)
	lock.Lock()
	defer lock.Unlock()

	p := s.Store.GetParticipant(participantID)
	if p == nil {
		return 0, storage.ErrNotFound
	}
	if p.BalanceCents < amountCents {
		return 0, storage.ErrInsufficientFunds
	}

	p.BalanceCents -= amountCents

	s.Logger.Debug().
		Str("participant_id", participantID).
		Int64("amount_cents", amountCents).
		Int64("new_balance_cents", p.BalanceCents).
		Msg("withdrawal settled")

	return p.BalanceCents, nil
}

// ListEarnings returns a snapshot of the participant's earnings log in
// insertion (chronological) order.
func (s *Service) ListEarnings(ctx context.Context, participantID string) ([]models.EarningsEntry, error) {
	p := s.Store.GetParticipant(participantID)
	if p == nil {
		return nil, storage.ErrNotFound
	}

	lock := s.Store.ParticipantLock(participantID)
	lock.Lock()
	defer lock.Unlock()

	entries := make([]models.EarningsEntry, 0, len(p.EarningsLog))
	for _, entry := range p.EarningsLog {
		entries = append(entries, *entry)
	}
	return entries, nil
}
