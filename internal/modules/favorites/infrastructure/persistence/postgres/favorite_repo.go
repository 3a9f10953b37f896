package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tunelibre/cancionero/internal/modules/favorites/domain"
	songsDomain "github.com/tunelibre/cancionero/internal/modules/songs/domain"
	usersDomain "github.com/tunelibre/cancionero/internal/modules/users/domain"
)

type PgFavoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository returns a PostgreSQL-backed implementation of
// domain.FavoriteRepository.
func NewFavoriteRepository(db *sqlx.DB) *PgFavoriteRepository {
	return &PgFavoriteRepository{db: db}
}

// Create inserts the favorite. Constraint violations are translated:
// the unique pair constraint to ErrAlreadyFavorite, a foreign key
// violation to the missing parent's not-found error. The constraints
// are the final authority under concurrent requests.
func (r *PgFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	if favorite.FechaMarcado.IsZero() {
		favorite.FechaMarcado = time.Now().UTC()
	}

	query := `
		INSERT INTO favoritos (id_usuario, id_cancion, fecha_marcado)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.GetContext(ctx, &favorite.ID, query,
		favorite.IDUsuario, favorite.IDCancion, favorite.FechaMarcado)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique violation on (id_usuario, id_cancion)
				return domain.ErrAlreadyFavorite
			case "23503": // foreign key violation
				if strings.Contains(pqErr.Constraint, "id_usuario") {
					return usersDomain.ErrUserNotFound
				}
				return songsDomain.ErrSongNotFound
			}
		}
		return err
	}
	return nil
}

func (r *PgFavoriteRepository) GetByID(ctx context.Context, id int64) (*domain.Favorite, error) {
	favorite := &domain.Favorite{}
	query := `SELECT id, id_usuario, id_cancion, fecha_marcado FROM favoritos WHERE id = $1`

	err := r.db.GetContext(ctx, favorite, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrFavoriteNotFound
	}
	if err != nil {
		return nil, err
	}
	return favorite, nil
}

// List returns all favorites in marking (id) order plus the total count.
func (r *PgFavoriteRepository) List(ctx context.Context, limit, offset int) ([]domain.Favorite, int, error) {
	query := `
		SELECT id, id_usuario, id_cancion, fecha_marcado, COUNT(*) OVER() AS total_count
		FROM favoritos
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	return r.selectPage(ctx, query, limit, offset)
}

// ListByUser returns one user's favorites in marking (id) order.
func (r *PgFavoriteRepository) ListByUser(ctx context.Context, idUsuario int64, limit, offset int) ([]domain.Favorite, int, error) {
	query := `
		SELECT id, id_usuario, id_cancion, fecha_marcado, COUNT(*) OVER() AS total_count
		FROM favoritos
		WHERE id_usuario = $3
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	return r.selectPage(ctx, query, limit, offset, idUsuario)
}

func (r *PgFavoriteRepository) selectPage(ctx context.Context, query string, limit, offset int, extra ...interface{}) ([]domain.Favorite, int, error) {
	var results []struct {
		domain.Favorite
		TotalCount int `db:"total_count"`
	}

	args := append([]interface{}{limit, offset}, extra...)
	err := r.db.SelectContext(ctx, &results, query, args...)
	if err != nil {
		return nil, 0, err
	}

	if len(results) == 0 {
		return []domain.Favorite{}, 0, nil
	}

	favorites := make([]domain.Favorite, len(results))
	for i, res := range results {
		favorites[i] = res.Favorite
	}
	return favorites, results[0].TotalCount, nil
}

func (r *PgFavoriteRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favoritos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkDeleted(result)
}

func (r *PgFavoriteRepository) DeleteByPair(ctx context.Context, idUsuario, idCancion int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favoritos WHERE id_usuario = $1 AND id_cancion = $2`, idUsuario, idCancion)
	if err != nil {
		return err
	}
	return checkDeleted(result)
}

func checkDeleted(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
