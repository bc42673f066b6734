package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pollboard/api/internal/core/domain"
	"github.com/pollboard/api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := requesterID(r)
	if userID == uuid.Nil {
		respondError(w, domain.ErrUnauthenticated)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondError(w, domain.ErrUserNotFound)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"user": user})
}
