package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tunelibre/cancionero/internal/modules/favorites/domain"
	songsDomain "github.com/tunelibre/cancionero/internal/modules/songs/domain"
	usersDomain "github.com/tunelibre/cancionero/internal/modules/users/domain"
)

type mockFavoriteRepository struct {
	mock.Mock
}

func (m *mockFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *mockFavoriteRepository) GetByID(ctx context.Context, id int64) (*domain.Favorite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *mockFavoriteRepository) List(ctx context.Context, limit, offset int) ([]domain.Favorite, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Favorite), args.Int(1), args.Error(2)
}

func (m *mockFavoriteRepository) ListByUser(ctx context.Context, idUsuario int64, limit, offset int) ([]domain.Favorite, int, error) {
	args := m.Called(ctx, idUsuario, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Favorite), args.Int(1), args.Error(2)
}

func (m *mockFavoriteRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockFavoriteRepository) DeleteByPair(ctx context.Context, idUsuario, idCancion int64) error {
	args := m.Called(ctx, idUsuario, idCancion)
	return args.Error(0)
}

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newService() (*mockFavoriteRepository, *mockFinder, *mockFinder, FavoriteService) {
	repo := new(mockFavoriteRepository)
	users := new(mockFinder)
	songs := new(mockFinder)
	return repo, users, songs, NewFavoriteService(repo, users, songs)
}

func TestMark_Success(t *testing.T) {
	repo, users, songs, svc := newService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(1)).Return(true, nil).Once()
	songs.On("Exists", ctx, int64(2)).Return(true, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Favorite")).Return(nil).Once()

	favorite, err := svc.Mark(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), favorite.IDUsuario)
	assert.Equal(t, int64(2), favorite.IDCancion)
	assert.False(t, favorite.FechaMarcado.IsZero())
	repo.AssertExpectations(t)
}

func TestMark_UserMissing(t *testing.T) {
	repo, users, _, svc := newService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(9)).Return(false, nil).Once()

	_, err := svc.Mark(ctx, 9, 2)
	assert.ErrorIs(t, err, usersDomain.ErrUserNotFound)
	repo.AssertNotCalled(t, "Create")
}

func TestMark_SongMissing(t *testing.T) {
	repo, users, songs, svc := newService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(1)).Return(true, nil).Once()
	songs.On("Exists", ctx, int64(9)).Return(false, nil).Once()

	_, err := svc.Mark(ctx, 1, 9)
	assert.ErrorIs(t, err, songsDomain.ErrSongNotFound)
	repo.AssertNotCalled(t, "Create")
}

func TestMark_DuplicatePair(t *testing.T) {
	repo, users, songs, svc := newService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(1)).Return(true, nil).Once()
	songs.On("Exists", ctx, int64(2)).Return(true, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Favorite")).Return(domain.ErrAlreadyFavorite).Once()

	_, err := svc.Mark(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorite)
}

func TestUnmark_PassesThrough(t *testing.T) {
	repo, _, _, svc := newService()
	ctx := context.Background()

	repo.On("DeleteByPair", ctx, int64(1), int64(2)).Return(nil).Once()
	assert.NoError(t, svc.Unmark(ctx, 1, 2))

	repo.On("DeleteByPair", ctx, int64(1), int64(3)).Return(domain.ErrFavoriteNotFound).Once()
	assert.ErrorIs(t, svc.Unmark(ctx, 1, 3), domain.ErrFavoriteNotFound)
}

func TestUnmarkByID(t *testing.T) {
	repo, _, _, svc := newService()
	ctx := context.Background()

	repo.On("DeleteByID", ctx, int64(5)).Return(domain.ErrFavoriteNotFound).Once()
	assert.ErrorIs(t, svc.UnmarkByID(ctx, 5), domain.ErrFavoriteNotFound)
}

func TestListForUser_UserMissing(t *testing.T) {
	repo, users, _, svc := newService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(9)).Return(false, nil).Once()

	_, _, err := svc.ListForUser(ctx, 9, 100, 0)
	assert.ErrorIs(t, err, usersDomain.ErrUserNotFound)
	repo.AssertNotCalled(t, "ListByUser")
}

func TestListForUser_EmptyListForExistingUser(t *testing.T) {
	repo, users, _, svc := newService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(1)).Return(true, nil).Once()
	repo.On("ListByUser", ctx, int64(1), 100, 0).Return([]domain.Favorite{}, 0, nil).Once()

	favorites, total, err := svc.ListForUser(ctx, 1, 100, 0)
	assert.NoError(t, err)
	assert.Empty(t, favorites)
	assert.Zero(t, total)
}
