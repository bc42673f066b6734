package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pollboard/api/internal/core/ports"
	"github.com/pollboard/api/pkg/metrics"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	OptionIndex int `json:"option_index"`
}

func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid poll id"})
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid request body"})
		return
	}

	input := ports.VoteInput{
		PollID:      pollID,
		OptionIndex: req.OptionIndex,
	}
	kind := "anonymous"
	if userID := requesterID(r); userID != uuid.Nil {
		input.UserID = uuid.NullUUID{UUID: userID, Valid: true}
		kind = "authenticated"
	}

	if err := h.service.Submit(r.Context(), input); err != nil {
		respondError(w, err)
		return
	}

	metrics.VotesCastCounter.WithLabelValues(kind).Inc()
	respondJSON(w, http.StatusCreated, envelope{})
}

func (h *VoteHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid poll id"})
		return
	}

	results, err := h.service.Results(r.Context(), pollID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"results": results})
}
