package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/tunelibre/cancionero/internal/modules/favorites/domain"
	songsDomain "github.com/tunelibre/cancionero/internal/modules/songs/domain"
	usersDomain "github.com/tunelibre/cancionero/internal/modules/users/domain"
	"github.com/tunelibre/cancionero/internal/shared/utils"
)

// FavoriteService defines the interface for favorite operations
type FavoriteService interface {
	Mark(ctx context.Context, idUsuario, idCancion int64) (*domain.Favorite, error)
	Unmark(ctx context.Context, idUsuario, idCancion int64) error
	UnmarkByID(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Favorite, error)
	List(ctx context.Context, limit, offset int) ([]domain.Favorite, int, error)
	ListForUser(ctx context.Context, idUsuario int64, limit, offset int) ([]domain.Favorite, int, error)
}

type FavoriteHandler struct {
	service FavoriteService
}

func NewFavoriteHandler(service FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// markRequest is the body for POST /api/favoritos
type markRequest struct {
	IDUsuario int64 `json:"id_usuario"`
	IDCancion int64 `json:"id_cancion"`
}

// Create handles POST /api/favoritos
func (h *FavoriteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	favorite, err := h.service.Mark(r.Context(), req.IDUsuario, req.IDCancion)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, favorite)
}

// Mark handles POST /api/usuarios/{id_usuario}/favoritos/{id_cancion}
func (h *FavoriteHandler) Mark(w http.ResponseWriter, r *http.Request) {
	idUsuario, idCancion, err := parsePair(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id", err)
		return
	}

	favorite, err := h.service.Mark(r.Context(), idUsuario, idCancion)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, favorite)
}

// Unmark handles DELETE /api/usuarios/{id_usuario}/favoritos/{id_cancion}
func (h *FavoriteHandler) Unmark(w http.ResponseWriter, r *http.Request) {
	idUsuario, idCancion, err := parsePair(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id", err)
		return
	}

	if err := h.service.Unmark(r.Context(), idUsuario, idCancion); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /api/favoritos/{id}
func (h *FavoriteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid favorite id", err)
		return
	}

	favorite, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, favorite)
}

// Delete handles DELETE /api/favoritos/{id}
func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid favorite id", err)
		return
	}

	if err := h.service.UnmarkByID(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/favoritos
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.ParsePagination(r)

	favorites, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.ListResponse{Data: favorites, Total: total, Limit: limit, Offset: offset})
}

// ListForUser handles GET /api/usuarios/{id}/favoritos
func (h *FavoriteHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	idUsuario, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id", err)
		return
	}
	limit, offset := utils.ParsePagination(r)

	favorites, total, err := h.service.ListForUser(r.Context(), idUsuario, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.ListResponse{Data: favorites, Total: total, Limit: limit, Offset: offset})
}

func (h *FavoriteHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usersDomain.ErrUserNotFound):
		utils.WriteError(w, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, songsDomain.ErrSongNotFound):
		utils.WriteError(w, http.StatusNotFound, "song not found", nil)
	case errors.Is(err, domain.ErrFavoriteNotFound):
		utils.WriteError(w, http.StatusNotFound, "favorite not found", nil)
	case errors.Is(err, domain.ErrAlreadyFavorite):
		utils.WriteError(w, http.StatusConflict, "song is already marked as favorite", nil)
	default:
		log.Printf("[FavoriteHandler] internal error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func parsePair(r *http.Request) (idUsuario, idCancion int64, err error) {
	idUsuario, err = strconv.ParseInt(r.PathValue("id_usuario"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	idCancion, err = strconv.ParseInt(r.PathValue("id_cancion"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return idUsuario, idCancion, nil
}
