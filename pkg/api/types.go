// Package api defines the request and response shapes of the HTTP interface.
package api

import "time"

// EndRecordingRequest is the body of POST /recordings/end.
type EndRecordingRequest struct {
	RecordingId    string   `json:"recordingId" validate:"required"`
	StartTime      int64    `json:"startTime"`
	EndTime        int64    `json:"endTime"`
	ParticipantIds []string `json:"participantIds" validate:"required"`
}

// Credit is the settlement outcome for one participant of an ended recording.
type Credit struct {
	ParticipantId string `json:"participantId"`
	AmountCents   int64  `json:"amountCents"`
	AmountDisplay string `json:"amountDisplay"`
	Reason        string `json:"reason"`
}

// EndRecordingResponse is the body returned by POST /recordings/end.
type EndRecordingResponse struct {
	RecordingId string    `json:"recordingId"`
	Credits     []*Credit `json:"credits"`
}

// BalanceResponse is the body returned by GET /balances/{participantId}.
type BalanceResponse struct {
	ParticipantId  string `json:"participantId"`
	BalanceCents   int64  `json:"balanceCents"`
	BalanceDisplay string `json:"balanceDisplay"`
}

// WithdrawRequest is the body of POST /withdrawals.
type WithdrawRequest struct {
	ParticipantId string `json:"participantId" validate:"required"`
	AmountCents   int64  `json:"amountCents"`
}

// WithdrawResponse is the body returned by POST /withdrawals.
type WithdrawResponse struct {
	ParticipantId   string `json:"participantId"`
	NewBalanceCents int64  `json:"newBalanceCents"`
}

// LedgerEntry is one earnings-log entry as exposed by the ledger listing.
type LedgerEntry struct {
	EntryId     string    `json:"entryId"`
	RecordingId string    `json:"recordingId"`
	AmountCents int64     `json:"amountCents"`
	Reversed    bool      `json:"reversed"`
	CreatedAt   time.Time `json:"createdAt"`
}
