// Package settlement implements the engine that closes recordings and settles
// earnings for their participants, including detection and reversal of
// double-booking fraud.
package settlement

import (
	"context"
	"time"

	"github.com/chris/recording-settlements/pkg/earnings"
	"github.com/chris/recording-settlements/pkg/intervals"
	"github.com/chris/recording-settlements/pkg/models"
	"github.com/chris/recording-settlements/pkg/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine orchestrates recording closure. It validates the span, enforces
// idempotency per recording id, and settles each participant in turn under
// that participant's lock. The engine never retries and never partially
// commits: a call either fails before the recording is marked ended, or the
// recording is ended and every participant is settled.
type Engine struct {
	Store  storage.Storage
	Calc   *earnings.Calculator
	Logger zerolog.Logger
}

// NewEngine creates a new Engine.
func NewEngine(store storage.Storage, calc *earnings.Calculator, logger zerolog.Logger) *Engine {
	return &Engine{Store: store, Calc: calc, Logger: logger}
}

// CloseRecording ends the recording and returns one CreditResult per
// deduplicated participant id, in first-occurrence order.
//
// The recording's lock is held for the whole closure, so concurrent closers of
// the same id race for it and exactly one wins; the rest observe ENDED and
// fail with ErrAlreadyEnded. Participant locks are acquired one at a time,
// sequentially, and never while another participant lock is held, so lock
// ordering between call sites can never conflict.
func (e *Engine) CloseRecording(ctx context.Context, recordingID string, startTime, endTime int64, participantIDs []string) ([]models.CreditResult, error) {
	if endTime <= startTime {
		return nil, storage.ErrInvalidSpan
	}

	participants := dedupe(participantIDs)

	lock := e.Store.RecordingLock(recordingID)
	lock.Lock()
	defer lock.Unlock()

	// 1. Idempotency guard: a recording ends at most once.
	if existing := e.Store.GetRecording(recordingID); existing != nil && existing.Status == models.ENDED {
		return nil, storage.ErrAlreadyEnded
	}

	// 2. Claim the id as ended before per-participant settlement runs.
	e.Store.SetRecording(&models.Recording{
		Id:           recordingID,
		StartTime:    startTime,
		EndTime:      endTime,
		Participants: participants,
		Status:       models.ENDED,
	})

	// 3. Earnings are computed once and shared by every participant.
	earned := e.Calc.Compute(startTime, endTime)
	candidate := intervals.Interval{StartTime: startTime, EndTime: endTime, RecordingId: recordingID}

	// 4. Settle serially, in input order, one participant lock at a time.
	results := make([]models.CreditResult, 0, len(participants))
	for _, participantID := range participants {
		results = append(results, e.settleParticipant(participantID, candidate, earned))
	}

	e.Logger.Info().
		Str("recording_id", recordingID).
		Int("participants", len(results)).
		Int64("earned_cents", earned).
		Msg("recording closed")

	return results, nil
}

// settleParticipant credits or reverses a single participant while holding
// that participant's lock.
func (e *Engine) settleParticipant(participantID string, candidate intervals.Interval, earned int64) models.CreditResult {
	lock := e.Store.ParticipantLock(participantID)
	lock.Lock()
	defer lock.Unlock()

	p := e.Store.GetOrCreateParticipant(participantID)

	conflict, found := p.Intervals.Overlaps(candidate)
	if !found {
		p.EarningsLog = append(p.EarningsLog, newEntry(candidate.RecordingId, earned))
		p.BalanceCents += earned
		p.Intervals.Insert(candidate)
		return models.CreditResult{ParticipantId: participantID, AmountCents: earned, Reason: models.CREDITED}
	}

	// Fraud path. The entry for the new recording is the one zeroed and the
	// prior overlapping credit is the one reversed: fraud is resolved at close
	// time of the conflicting recording, not retroactively re-attributed.
	p.EarningsLog = append(p.EarningsLog, newEntry(candidate.RecordingId, 0))

	// The conflicting interval still goes on file, so recordings closed later
	// collide with it too.
	p.Intervals.Insert(candidate)

	for _, entry := range p.EarningsLog {
		if entry.RecordingID == conflict.RecordingId && !entry.Reversed {
			entry.Reversed = true
			p.BalanceCents -= entry.AmountCents
			if p.BalanceCents < 0 {
				p.BalanceCents = 0
			}
			e.Logger.Info().
				Str("participant_id", participantID).
				Str("recording_id", candidate.RecordingId).
				Str("conflicting_recording_id", conflict.RecordingId).
				Int64("reversed_cents", entry.AmountCents).
				Msg("reversed prior credit after overlap")
			break
		}
	}

	return models.CreditResult{ParticipantId: participantID, AmountCents: 0, Reason: models.FRAUD}
}

// newEntry builds an earnings-log entry for the recording.
func newEntry(recordingID string, amountCents int64) *models.EarningsEntry {
	return &models.EarningsEntry{
		EntryID:     uuid.New().String(),
		RecordingID: recordingID,
		AmountCents: amountCents,
		CreatedAt:   time.Now(),
	}
}

// dedupe removes duplicate ids preserving first-occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
