package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tunelibre/cancionero/internal/modules/songs/domain"
)

type PgSongRepository struct {
	db *sqlx.DB
}

// NewSongRepository returns a PostgreSQL-backed implementation of
// domain.SongRepository.
func NewSongRepository(db *sqlx.DB) *PgSongRepository {
	return &PgSongRepository{db: db}
}

func (r *PgSongRepository) Create(ctx context.Context, song *domain.Song) error {
	if song.FechaCreacion.IsZero() {
		song.FechaCreacion = time.Now().UTC()
	}

	query := `
		INSERT INTO canciones (titulo, artista, album, genero, duracion, anio, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.GetContext(ctx, &song.ID, query,
		song.Titulo, song.Artista, song.Album, song.Genero,
		song.Duracion, song.Anio, song.FechaCreacion)
}

func (r *PgSongRepository) GetByID(ctx context.Context, id int64) (*domain.Song, error) {
	song := &domain.Song{}
	query := `
		SELECT id, titulo, artista, album, genero, duracion, anio, fecha_creacion
		FROM canciones WHERE id = $1
	`
	err := r.db.GetContext(ctx, song, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSongNotFound
	}
	if err != nil {
		return nil, err
	}
	return song, nil
}

// List returns songs matching the filter plus the total match count.
// Text filters are ILIKE substring matches, AND-combined.
func (r *PgSongRepository) List(ctx context.Context, filter domain.SongFilter) ([]domain.Song, int, error) {
	var results []struct {
		domain.Song
		TotalCount int `db:"total_count"`
	}

	query := `
		SELECT id, titulo, artista, album, genero, duracion, anio, fecha_creacion,
		       COUNT(*) OVER() AS total_count
		FROM canciones
		WHERE 1=1
	`
	args := []interface{}{}
	argId := 1

	if filter.Titulo != "" {
		query += fmt.Sprintf(" AND titulo ILIKE $%d", argId)
		args = append(args, "%"+filter.Titulo+"%")
		argId++
	}
	if filter.Artista != "" {
		query += fmt.Sprintf(" AND artista ILIKE $%d", argId)
		args = append(args, "%"+filter.Artista+"%")
		argId++
	}
	if filter.Genero != "" {
		query += fmt.Sprintf(" AND genero ILIKE $%d", argId)
		args = append(args, "%"+filter.Genero+"%")
		argId++
	}
	if filter.Anio > 0 {
		query += fmt.Sprintf(" AND anio = $%d", argId)
		args = append(args, filter.Anio)
		argId++
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argId, argId+1)
	args = append(args, filter.Limit, filter.Offset)

	err := r.db.SelectContext(ctx, &results, query, args...)
	if err != nil {
		return nil, 0, err
	}

	if len(results) == 0 {
		return []domain.Song{}, 0, nil
	}

	songs := make([]domain.Song, len(results))
	for i, res := range results {
		songs[i] = res.Song
	}
	return songs, results[0].TotalCount, nil
}

func (r *PgSongRepository) Update(ctx context.Context, song *domain.Song) error {
	query := `
		UPDATE canciones
		SET titulo = $1, artista = $2, album = $3, genero = $4, duracion = $5, anio = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		song.Titulo, song.Artista, song.Album, song.Genero,
		song.Duracion, song.Anio, song.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

// Delete removes the song row; dependent favoritos follow through the
// ON DELETE CASCADE constraint.
func (r *PgSongRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM canciones WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

// Exists implements domain.SongFinder
func (r *PgSongRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM canciones WHERE id = $1)`
	err := r.db.GetContext(ctx, &exists, query, id)
	return exists, err
}
