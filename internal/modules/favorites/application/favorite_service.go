package application

import (
	"context"
	"time"

	"github.com/tunelibre/cancionero/internal/modules/favorites/domain"
	songsDomain "github.com/tunelibre/cancionero/internal/modules/songs/domain"
	usersDomain "github.com/tunelibre/cancionero/internal/modules/users/domain"
)

// FavoriteService provides favorite marking operations
type FavoriteService interface {
	Mark(ctx context.Context, idUsuario, idCancion int64) (*domain.Favorite, error)
	Unmark(ctx context.Context, idUsuario, idCancion int64) error
	UnmarkByID(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Favorite, error)
	List(ctx context.Context, limit, offset int) ([]domain.Favorite, int, error)
	ListForUser(ctx context.Context, idUsuario int64, limit, offset int) ([]domain.Favorite, int, error)
}

type favoriteService struct {
	repo       domain.FavoriteRepository
	userFinder usersDomain.UserFinder
	songFinder songsDomain.SongFinder
}

func NewFavoriteService(repo domain.FavoriteRepository, userFinder usersDomain.UserFinder, songFinder songsDomain.SongFinder) FavoriteService {
	return &favoriteService{
		repo:       repo,
		userFinder: userFinder,
		songFinder: songFinder,
	}
}

// Mark records a favorite after verifying both entities exist. The pair
// uniqueness is still decided by the store constraint, so two
// concurrent marks cannot both succeed.
func (s *favoriteService) Mark(ctx context.Context, idUsuario, idCancion int64) (*domain.Favorite, error) {
	exists, err := s.userFinder.Exists(ctx, idUsuario)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, usersDomain.ErrUserNotFound
	}

	exists, err = s.songFinder.Exists(ctx, idCancion)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, songsDomain.ErrSongNotFound
	}

	favorite := &domain.Favorite{
		IDUsuario:    idUsuario,
		IDCancion:    idCancion,
		FechaMarcado: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

func (s *favoriteService) Unmark(ctx context.Context, idUsuario, idCancion int64) error {
	return s.repo.DeleteByPair(ctx, idUsuario, idCancion)
}

func (s *favoriteService) UnmarkByID(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *favoriteService) Get(ctx context.Context, id int64) (*domain.Favorite, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *favoriteService) List(ctx context.Context, limit, offset int) ([]domain.Favorite, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// ListForUser returns the user's favorites in marking order. A missing
// user is reported as not found rather than as an empty list.
func (s *favoriteService) ListForUser(ctx context.Context, idUsuario int64, limit, offset int) ([]domain.Favorite, int, error) {
	exists, err := s.userFinder.Exists(ctx, idUsuario)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, usersDomain.ErrUserNotFound
	}

	return s.repo.ListByUser(ctx, idUsuario, limit, offset)
}
