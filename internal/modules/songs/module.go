package songs

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/tunelibre/cancionero/internal/modules/songs/application"
	"github.com/tunelibre/cancionero/internal/modules/songs/domain"
	persistence "github.com/tunelibre/cancionero/internal/modules/songs/infrastructure/persistence/postgres"
	songsHttp "github.com/tunelibre/cancionero/internal/modules/songs/interfaces/http"
)

// Module represents the Songs module
type Module struct {
	repository *persistence.PgSongRepository
	service    application.SongService
	handler    *songsHttp.SongHandler
}

// NewModule creates and initializes the Songs module. redisClient may
// be nil, disabling the song read cache.
func NewModule(db *sqlx.DB, redisClient *redis.Client) *Module {
	repository := persistence.NewSongRepository(db)
	service := application.NewSongService(repository)
	handler := songsHttp.NewSongHandler(service, redisClient)

	return &Module{
		repository: repository,
		service:    service,
		handler:    handler,
	}
}

// SongFinder returns the song finder interface for use by other modules
func (m *Module) SongFinder() domain.SongFinder {
	return m.repository
}

// Service returns the song service
func (m *Module) Service() application.SongService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *songsHttp.SongHandler {
	return m.handler
}
