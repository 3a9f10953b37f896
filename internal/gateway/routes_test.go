package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	favoritesDomain "github.com/tunelibre/cancionero/internal/modules/favorites/domain"
	favoritesHttp "github.com/tunelibre/cancionero/internal/modules/favorites/interfaces/http"
	songsApp "github.com/tunelibre/cancionero/internal/modules/songs/application"
	songsDomain "github.com/tunelibre/cancionero/internal/modules/songs/domain"
	songsHttp "github.com/tunelibre/cancionero/internal/modules/songs/interfaces/http"
	usersApp "github.com/tunelibre/cancionero/internal/modules/users/application"
	usersDomain "github.com/tunelibre/cancionero/internal/modules/users/domain"
	usersHttp "github.com/tunelibre/cancionero/internal/modules/users/interfaces/http"
)

type noopUserService struct{}

func (noopUserService) Register(ctx context.Context, req usersApp.RegisterRequest) (*usersDomain.User, error) {
	return &usersDomain.User{}, nil
}

func (noopUserService) Get(ctx context.Context, id int64) (*usersDomain.User, error) {
	return &usersDomain.User{ID: id}, nil
}

func (noopUserService) List(ctx context.Context, limit, offset int) ([]usersDomain.User, int, error) {
	return []usersDomain.User{}, 0, nil
}

func (noopUserService) Update(ctx context.Context, id int64, req usersApp.UpdateUserRequest) (*usersDomain.User, error) {
	return &usersDomain.User{ID: id}, nil
}

func (noopUserService) Delete(ctx context.Context, id int64) error { return nil }

type recordingSongService struct {
	searched bool
	gotID    int64
}

func (s *recordingSongService) Create(ctx context.Context, req songsApp.CreateSongRequest) (*songsDomain.Song, error) {
	return &songsDomain.Song{}, nil
}

func (s *recordingSongService) Get(ctx context.Context, id int64) (*songsDomain.Song, error) {
	s.gotID = id
	return &songsDomain.Song{ID: id}, nil
}

func (s *recordingSongService) Search(ctx context.Context, filter songsDomain.SongFilter) ([]songsDomain.Song, int, error) {
	s.searched = true
	return []songsDomain.Song{}, 0, nil
}

func (s *recordingSongService) Update(ctx context.Context, id int64, req songsApp.UpdateSongRequest) (*songsDomain.Song, error) {
	return &songsDomain.Song{ID: id}, nil
}

func (s *recordingSongService) Delete(ctx context.Context, id int64) error { return nil }

type noopFavoriteService struct{}

func (noopFavoriteService) Mark(ctx context.Context, idUsuario, idCancion int64) (*favoritesDomain.Favorite, error) {
	return &favoritesDomain.Favorite{IDUsuario: idUsuario, IDCancion: idCancion}, nil
}

func (noopFavoriteService) Unmark(ctx context.Context, idUsuario, idCancion int64) error { return nil }

func (noopFavoriteService) UnmarkByID(ctx context.Context, id int64) error { return nil }

func (noopFavoriteService) Get(ctx context.Context, id int64) (*favoritesDomain.Favorite, error) {
	return &favoritesDomain.Favorite{ID: id}, nil
}

func (noopFavoriteService) List(ctx context.Context, limit, offset int) ([]favoritesDomain.Favorite, int, error) {
	return []favoritesDomain.Favorite{}, 0, nil
}

func (noopFavoriteService) ListForUser(ctx context.Context, idUsuario int64, limit, offset int) ([]favoritesDomain.Favorite, int, error) {
	return []favoritesDomain.Favorite{}, 0, nil
}

func newTestMux(songs *recordingSongService) *http.ServeMux {
	return SetupRoutes(RouterConfig{
		UserHandler:     usersHttp.NewUserHandler(noopUserService{}),
		SongHandler:     songsHttp.NewSongHandler(songs, nil),
		FavoriteHandler: favoritesHttp.NewFavoriteHandler(noopFavoriteService{}),
	})
}

func TestHealthRoute(t *testing.T) {
	mux := newTestMux(&recordingSongService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestBuscarTakesPrecedenceOverID(t *testing.T) {
	songs := &recordingSongService{}
	mux := newTestMux(songs)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/canciones/buscar?titulo=x", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, songs.searched, "the literal segment must win over the id pattern")
	assert.Zero(t, songs.gotID)
}

func TestSongByIDRoute(t *testing.T) {
	songs := &recordingSongService{}
	mux := newTestMux(songs)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/canciones/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), songs.gotID)
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(&recordingSongService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/canciones", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMarkRouteBindsBothIDs(t *testing.T) {
	mux := newTestMux(&recordingSongService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/usuarios/1/favoritos/2", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}
