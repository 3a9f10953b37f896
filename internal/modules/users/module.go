package users

import (
	"github.com/jmoiron/sqlx"
	"github.com/tunelibre/cancionero/internal/modules/users/application"
	"github.com/tunelibre/cancionero/internal/modules/users/domain"
	persistence "github.com/tunelibre/cancionero/internal/modules/users/infrastructure/persistence/postgres"
	usersHttp "github.com/tunelibre/cancionero/internal/modules/users/interfaces/http"
)

// Module represents the Users module
type Module struct {
	repository *persistence.PgUserRepository
	service    application.UserService
	handler    *usersHttp.UserHandler
}

// NewModule creates and initializes the Users module
func NewModule(db *sqlx.DB) *Module {
	repository := persistence.NewUserRepository(db)
	service := application.NewUserService(repository)
	handler := usersHttp.NewUserHandler(service)

	return &Module{
		repository: repository,
		service:    service,
		handler:    handler,
	}
}

// UserFinder returns the user finder interface for use by other modules
func (m *Module) UserFinder() domain.UserFinder {
	return m.repository
}

// Service returns the user service
func (m *Module) Service() application.UserService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *usersHttp.UserHandler {
	return m.handler
}
