package domain

import (
	"context"
	"time"
)

// Song represents one track of the catalog. Album and Genero are
// optional metadata.
type Song struct {
	ID            int64     `json:"id" db:"id"`
	Titulo        string    `json:"titulo" db:"titulo"`
	Artista       string    `json:"artista" db:"artista"`
	Album         *string   `json:"album" db:"album"`
	Genero        *string   `json:"genero" db:"genero"`
	Duracion      int       `json:"duracion" db:"duracion"`
	Anio          int       `json:"año" db:"anio"`
	FechaCreacion time.Time `json:"fecha_creacion" db:"fecha_creacion"`
}

// SongFilter contains the filters for listing and searching songs.
// Text filters match as case-insensitive substrings and are
// AND-combined; Anio matches exactly when set.
type SongFilter struct {
	Titulo  string
	Artista string
	Genero  string
	Anio    int
	Limit   int
	Offset  int
}

// SongRepository defines the contract for song data access
type SongRepository interface {
	Create(ctx context.Context, song *Song) error
	GetByID(ctx context.Context, id int64) (*Song, error)
	List(ctx context.Context, filter SongFilter) ([]Song, int, error)
	Update(ctx context.Context, song *Song) error
	Delete(ctx context.Context, id int64) error
}

// SongFinder provides song lookups for other modules (Favorites)
type SongFinder interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
