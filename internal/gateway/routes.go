package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	favoritesHttp "github.com/tunelibre/cancionero/internal/modules/favorites/interfaces/http"
	songsHttp "github.com/tunelibre/cancionero/internal/modules/songs/interfaces/http"
	usersHttp "github.com/tunelibre/cancionero/internal/modules/users/interfaces/http"
)

// RouterConfig holds the handlers needed for routing
type RouterConfig struct {
	UserHandler     *usersHttp.UserHandler
	SongHandler     *songsHttp.SongHandler
	FavoriteHandler *favoritesHttp.FavoriteHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	// User routes
	mux.HandleFunc("GET /api/usuarios", config.UserHandler.List)
	mux.HandleFunc("POST /api/usuarios", config.UserHandler.Create)
	mux.HandleFunc("GET /api/usuarios/{id}", config.UserHandler.Get)
	mux.HandleFunc("PUT /api/usuarios/{id}", config.UserHandler.Update)
	mux.HandleFunc("DELETE /api/usuarios/{id}", config.UserHandler.Delete)

	// Song routes. The literal /buscar segment takes precedence over
	// the {id} pattern on the same prefix.
	mux.HandleFunc("GET /api/canciones", config.SongHandler.List)
	mux.HandleFunc("POST /api/canciones", config.SongHandler.Create)
	mux.HandleFunc("GET /api/canciones/buscar", config.SongHandler.Search)
	mux.HandleFunc("GET /api/canciones/{id}", config.SongHandler.Get)
	mux.HandleFunc("PUT /api/canciones/{id}", config.SongHandler.Update)
	mux.HandleFunc("DELETE /api/canciones/{id}", config.SongHandler.Delete)

	// Favorite routes
	mux.HandleFunc("GET /api/favoritos", config.FavoriteHandler.List)
	mux.HandleFunc("POST /api/favoritos", config.FavoriteHandler.Create)
	mux.HandleFunc("GET /api/favoritos/{id}", config.FavoriteHandler.Get)
	mux.HandleFunc("DELETE /api/favoritos/{id}", config.FavoriteHandler.Delete)
	mux.HandleFunc("GET /api/usuarios/{id}/favoritos", config.FavoriteHandler.ListForUser)
	mux.HandleFunc("POST /api/usuarios/{id_usuario}/favoritos/{id_cancion}", config.FavoriteHandler.Mark)
	mux.HandleFunc("DELETE /api/usuarios/{id_usuario}/favoritos/{id_cancion}", config.FavoriteHandler.Unmark)

	return mux
}
