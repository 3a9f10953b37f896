package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tunelibre/cancionero/internal/modules/users/domain"
)

type PgUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository returns a PostgreSQL-backed implementation of
// domain.UserRepository.
func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// Create inserts the user and fills in the store-assigned id.
// A unique violation on the email index maps to domain.ErrEmailTaken.
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.FechaRegistro.IsZero() {
		user.FechaRegistro = time.Now().UTC()
	}

	query := `INSERT INTO usuarios (nombre, correo, fecha_registro) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.GetContext(ctx, &user.ID, query, user.Nombre, user.Correo, user.FechaRegistro)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, nombre, correo, fecha_registro FROM usuarios WHERE id = $1`

	err := r.db.GetContext(ctx, user, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, correo string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, nombre, correo, fecha_registro FROM usuarios WHERE LOWER(correo) = LOWER($1)`

	err := r.db.GetContext(ctx, user, query, correo)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns a page of users in creation (id) order plus the total count.
func (r *PgUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	var results []struct {
		domain.User
		TotalCount int `db:"total_count"`
	}

	query := `
		SELECT id, nombre, correo, fecha_registro, COUNT(*) OVER() AS total_count
		FROM usuarios
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	err := r.db.SelectContext(ctx, &results, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if len(results) == 0 {
		return []domain.User{}, 0, nil
	}

	users := make([]domain.User, len(results))
	for i, res := range results {
		users[i] = res.User
	}
	return users, results[0].TotalCount, nil
}

func (r *PgUserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE usuarios SET nombre = $1, correo = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, user.Nombre, user.Correo, user.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user row. The favoritos FK is declared
// ON DELETE CASCADE, so dependents disappear in the same statement.
func (r *PgUserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Exists implements domain.UserFinder
func (r *PgUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM usuarios WHERE id = $1)`
	err := r.db.GetContext(ctx, &exists, query, id)
	return exists, err
}
