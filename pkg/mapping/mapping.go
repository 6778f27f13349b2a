package mapping

import (
	"fmt"

	"github.com/chris/recording-settlements/pkg/api"
	"github.com/chris/recording-settlements/pkg/models"
)

// FormatCents renders a non-negative amount in cents as a dollar display
// string, e.g. 150 -> "$1.50".
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// ToApiCredit converts a domain CreditResult to an API Credit.
func ToApiCredit(res *models.CreditResult) *api.Credit {
	return &api.Credit{
		ParticipantId: res.ParticipantId,
		AmountCents:   res.AmountCents,
		AmountDisplay: FormatCents(res.AmountCents),
		Reason:        string(res.Reason),
	}
}

// ToApiEndRecordingResponse converts the ordered settlement results for a
// recording into the API response.
func ToApiEndRecordingResponse(recordingID string, results []models.CreditResult) *api.EndRecordingResponse {
	credits := make([]*api.Credit, len(results))
	for i := range results {
		credits[i] = ToApiCredit(&results[i])
	}
	return &api.EndRecordingResponse{
		RecordingId: recordingID,
		Credits:     credits,
	}
}

// ToApiLedgerEntry converts a domain EarningsEntry to an API LedgerEntry.
func ToApiLedgerEntry(entry *models.EarningsEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		EntryId:     entry.EntryID,
		RecordingId: entry.RecordingID,
		AmountCents: entry.AmountCents,
		Reversed:    entry.Reversed,
		CreatedAt:   entry.CreatedAt,
	}
}

// ToApiBalanceResponse builds the balance inquiry response for a participant.
func ToApiBalanceResponse(participantID string, balanceCents int64) *api.BalanceResponse {
	return &api.BalanceResponse{
		ParticipantId:  participantID,
		BalanceCents:   balanceCents,
		BalanceDisplay: FormatCents(balanceCents),
	}
}
