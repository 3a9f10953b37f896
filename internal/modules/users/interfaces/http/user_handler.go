package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/tunelibre/cancionero/internal/modules/users/application"
	"github.com/tunelibre/cancionero/internal/modules/users/domain"
	"github.com/tunelibre/cancionero/internal/shared/utils"
	"github.com/tunelibre/cancionero/internal/shared/validation"
)

// UserService defines the interface for user operations
type UserService interface {
	Register(ctx context.Context, req application.RegisterRequest) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	Update(ctx context.Context, id int64, req application.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /api/usuarios
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, user)
}

// List handles GET /api/usuarios
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.ParsePagination(r)

	users, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.ListResponse{Data: users, Total: total, Limit: limit, Offset: offset})
}

// Get handles GET /api/usuarios/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/usuarios/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	var req application.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/usuarios/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrUserNotFound):
		utils.WriteError(w, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, domain.ErrEmailTaken):
		utils.WriteError(w, http.StatusConflict, "email already registered", nil)
	default:
		log.Printf("[UserHandler] internal error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
