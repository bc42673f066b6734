package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pollboard/api/internal/core/ports"
	"github.com/pollboard/api/pkg/metrics"
	"go.uber.org/zap"
)

type PollHandler struct {
	service ports.PollService
	cache   ports.ListingCache
	logger  *zap.Logger
}

func NewPollHandler(service ports.PollService, cache ports.ListingCache, logger *zap.Logger) *PollHandler {
	return &PollHandler{
		service: service,
		cache:   cache,
		logger:  logger,
	}
}

type pollRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid request body"})
		return
	}

	poll, err := h.service.Create(r.Context(), requesterID(r), ports.CreatePollInput{
		Title:   req.Title,
		Options: req.Options,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	metrics.PollsCreatedCounter.Inc()
	respondJSON(w, http.StatusCreated, envelope{"poll": poll})
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid poll id"})
		return
	}

	poll, err := h.service.GetPoll(r.Context(), pollID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"poll": poll})
}

func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid poll id"})
		return
	}

	var req pollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid request body"})
		return
	}

	err = h.service.Update(r.Context(), requesterID(r), ports.UpdatePollInput{
		PollID:  pollID,
		Title:   req.Title,
		Options: req.Options,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{})
}

func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid poll id"})
		return
	}

	if err := h.service.Delete(r.Context(), requesterID(r), pollID); err != nil {
		respondError(w, err)
		return
	}

	metrics.PollsDeletedCounter.Inc()
	respondJSON(w, http.StatusOK, envelope{})
}

func (h *PollHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.ListByOwner(r.Context(), requesterID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"polls": polls})
}

// ListAll serves the admin view: every poll, active or deleted, joined
// to its owner's profile. The rendered payload is cached in Redis and
// dropped on every poll mutation.
func (h *PollHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		cached, err := h.cache.GetListing(r.Context())
		if err != nil {
			h.logger.Warn("listing cache read failed", zap.Error(err))
		} else if cached != "" {
			metrics.ListingCacheHitsCounter.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		metrics.ListingCacheHitsCounter.WithLabelValues("miss").Inc()
	}

	polls, err := h.service.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := json.Marshal(envelope{"polls": polls, "error": nil})
	if err != nil {
		respondError(w, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetListing(r.Context(), string(payload)); err != nil {
			h.logger.Warn("listing cache write failed", zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
