package recordings

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
	"github.com/go-playground/validator/v10"
)

// Settler settles the participants of a recording when it is closed.
type Settler interface {
	// CloseRecording ends the recording and returns one result per
	// deduplicated participant id, in first-occurrence order.
	CloseRecording(ctx context.Context, recordingID string, startTime, endTime int64, participantIDs []string) ([]models.CreditResult, error)
}

// RecordingsHandler holds the dependencies for recording-related handlers.
type RecordingsHandler struct {
	Engine   Settler
	Validate *validator.Validate
}

// NewRecordingsHandler creates a new RecordingsHandler.
func NewRecordingsHandler(engine Settler) *RecordingsHandler {
	return &RecordingsHandler{Engine: engine, Validate: validator.New()}
}

// EndRecording handles the logic for closing a recording and settling its participants.
func (h *RecordingsHandler) EndRecording(w http.ResponseWriter, r *http.Request) {
	var req api.EndRecordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	results, err := h.Engine.CloseRecording(r.Context(), req.RecordingId, req.StartTime, req.EndTime, req.ParticipantIds)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidSpan):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrAlreadyEnded):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to end recording: %v", err), http.StatusInternalServerError)
		}
		return
	}

	resp := mapping.ToApiEndRecordingResponse(req.RecordingId, results)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
