package models

import (
	"time"

	"github.com/chris/recording-settlements/pkg/intervals"
)

// RecordingStatus defines the possible states of a recording.
type RecordingStatus string

const (
	ACTIVE RecordingStatus = "ACTIVE"
	ENDED  RecordingStatus = "ENDED"
)

// CreditReason explains the outcome of settling one participant of a recording.
type CreditReason string

const (
	// CREDITED means the participant earned the full amount for the recording.
	CREDITED CreditReason = "credited"
	// FRAUD means the recording overlapped one the participant was already on
	// file for; the new entry is zeroed and the prior credit reversed.
	FRAUD CreditReason = "fraud"
)

// Recording represents a time-bounded event with a participant list.
// It transitions ACTIVE -> ENDED exactly once; ENDED is terminal.
type Recording struct {
	Id           string
	StartTime    int64
	EndTime      int64
	Participants []string
	Status       RecordingStatus
}

// EarningsEntry is a single entry in a participant's append-only earnings log.
// Entries are never deleted; a reversed credit is only flagged, exactly once.
type EarningsEntry struct {
	EntryID     string
	RecordingID string
	AmountCents int64
	Reversed    bool
	CreatedAt   time.Time
}

// Participant represents the internal domain model for a participant's ledger:
// the current balance, the append-only earnings log, and the index of every
// recording interval the participant has been credited or flagged for.
//
// Participants are created lazily on first reference and never destroyed while
// the process runs. All mutation happens while holding the participant's lock
// handed out by the store.
type Participant struct {
	Id           string
	BalanceCents int64
	EarningsLog  []*EarningsEntry
	Intervals    intervals.Index
}

// CreditResult is the per-participant outcome of closing a recording.
type CreditResult struct {
	ParticipantId string
	AmountCents   int64
	Reason        CreditReason
}
