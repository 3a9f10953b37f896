package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tunelibre/cancionero/internal/modules/songs/application"
	"github.com/tunelibre/cancionero/internal/modules/songs/domain"
	"github.com/tunelibre/cancionero/internal/shared/utils"
	"github.com/tunelibre/cancionero/internal/shared/validation"
)

const cacheTTL = 5 * time.Minute

// SongService defines the interface for song operations
type SongService interface {
	Create(ctx context.Context, req application.CreateSongRequest) (*domain.Song, error)
	Get(ctx context.Context, id int64) (*domain.Song, error)
	Search(ctx context.Context, filter domain.SongFilter) ([]domain.Song, int, error)
	Update(ctx context.Context, id int64, req application.UpdateSongRequest) (*domain.Song, error)
	Delete(ctx context.Context, id int64) error
}

// SongHandler serves the /api/canciones resource. The Redis client is
// optional; when nil every read goes straight to the store.
type SongHandler struct {
	service     SongService
	redisClient *redis.Client
}

func NewSongHandler(service SongService, redisClient *redis.Client) *SongHandler {
	return &SongHandler{service: service, redisClient: redisClient}
}

// Create handles POST /api/canciones
func (h *SongHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req application.CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	song, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, song)
}

// List handles GET /api/canciones
func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.ParsePagination(r)

	songs, total, err := h.service.Search(r.Context(), domain.SongFilter{Limit: limit, Offset: offset})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.ListResponse{Data: songs, Total: total, Limit: limit, Offset: offset})
}

// Search handles GET /api/canciones/buscar
func (h *SongHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.ParsePagination(r)
	q := r.URL.Query()

	filter := domain.SongFilter{
		Titulo:  q.Get("titulo"),
		Artista: q.Get("artista"),
		Genero:  q.Get("genero"),
		Limit:   limit,
		Offset:  offset,
	}
	if raw := q.Get("año"); raw != "" {
		anio, err := strconv.Atoi(raw)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "invalid año filter", err)
			return
		}
		filter.Anio = anio
	}

	songs, total, err := h.service.Search(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.ListResponse{Data: songs, Total: total, Limit: limit, Offset: offset})
}

// Get handles GET /api/canciones/{id} with a read-through cache.
func (h *SongHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid song id", err)
		return
	}

	if cached, ok := h.cacheGet(r.Context(), id); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	song, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.cacheSet(r.Context(), song)
	utils.WriteJSON(w, http.StatusOK, song)
}

// Update handles PUT /api/canciones/{id}
func (h *SongHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid song id", err)
		return
	}

	var req application.UpdateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	song, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.cacheInvalidate(r.Context(), id)
	utils.WriteJSON(w, http.StatusOK, song)
}

// Delete handles DELETE /api/canciones/{id}
func (h *SongHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid song id", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.cacheInvalidate(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *SongHandler) cacheGet(ctx context.Context, id int64) ([]byte, bool) {
	if h.redisClient == nil {
		return nil, false
	}
	cached, err := h.redisClient.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	return cached, true
}

func (h *SongHandler) cacheSet(ctx context.Context, song *domain.Song) {
	if h.redisClient == nil {
		return
	}
	payload, err := json.Marshal(song)
	if err != nil {
		return
	}
	if err := h.redisClient.Set(ctx, cacheKey(song.ID), payload, cacheTTL).Err(); err != nil {
		log.Printf("[SongHandler] cache set failed: %v", err)
	}
}

func (h *SongHandler) cacheInvalidate(ctx context.Context, id int64) {
	if h.redisClient == nil {
		return
	}
	if err := h.redisClient.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Printf("[SongHandler] cache invalidation failed: %v", err)
	}
}

func cacheKey(id int64) string {
	return "cancion:" + strconv.FormatInt(id, 10)
}

func (h *SongHandler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrSongNotFound):
		utils.WriteError(w, http.StatusNotFound, "song not found", nil)
	default:
		log.Printf("[SongHandler] internal error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
