package favorites

import (
	"github.com/jmoiron/sqlx"
	"github.com/tunelibre/cancionero/internal/modules/favorites/application"
	persistence "github.com/tunelibre/cancionero/internal/modules/favorites/infrastructure/persistence/postgres"
	favoritesHttp "github.com/tunelibre/cancionero/internal/modules/favorites/interfaces/http"
	songsDomain "github.com/tunelibre/cancionero/internal/modules/songs/domain"
	usersDomain "github.com/tunelibre/cancionero/internal/modules/users/domain"
)

// Module represents the Favorites module
type Module struct {
	repository *persistence.PgFavoriteRepository
	service    application.FavoriteService
	handler    *favoritesHttp.FavoriteHandler
}

// NewModule creates and initializes the Favorites module. The finders
// come from the Users and Songs modules.
func NewModule(db *sqlx.DB, userFinder usersDomain.UserFinder, songFinder songsDomain.SongFinder) *Module {
	repository := persistence.NewFavoriteRepository(db)
	service := application.NewFavoriteService(repository, userFinder, songFinder)
	handler := favoritesHttp.NewFavoriteHandler(service)

	return &Module{
		repository: repository,
		service:    service,
		handler:    handler,
	}
}

// Service returns the favorite service
func (m *Module) Service() application.FavoriteService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *favoritesHttp.FavoriteHandler {
	return m.handler
}
