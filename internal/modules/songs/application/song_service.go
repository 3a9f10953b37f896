package application

import (
	"context"
	"strings"
	"time"

	"github.com/tunelibre/cancionero/internal/modules/songs/domain"
	"github.com/tunelibre/cancionero/internal/shared/validation"
)

// MaxDuracion caps song duration at one hour, in seconds.
const MaxDuracion = 3600

// MinAnio is the earliest accepted release year.
const MinAnio = 1900

// CreateSongRequest carries the fields accepted when creating a song
type CreateSongRequest struct {
	Titulo   string  `json:"titulo"`
	Artista  string  `json:"artista"`
	Album    *string `json:"album"`
	Genero   *string `json:"genero"`
	Duracion int     `json:"duracion"`
	Anio     int     `json:"año"`
}

// UpdateSongRequest carries a partial song update. Nil fields are left
// untouched.
type UpdateSongRequest struct {
	Titulo   *string `json:"titulo"`
	Artista  *string `json:"artista"`
	Album    *string `json:"album"`
	Genero   *string `json:"genero"`
	Duracion *int    `json:"duracion"`
	Anio     *int    `json:"año"`
}

// SongService provides song catalog operations
type SongService interface {
	Create(ctx context.Context, req CreateSongRequest) (*domain.Song, error)
	Get(ctx context.Context, id int64) (*domain.Song, error)
	Search(ctx context.Context, filter domain.SongFilter) ([]domain.Song, int, error)
	Update(ctx context.Context, id int64, req UpdateSongRequest) (*domain.Song, error)
	Delete(ctx context.Context, id int64) error
}

type songService struct {
	repo domain.SongRepository
}

func NewSongService(repo domain.SongRepository) SongService {
	return &songService{repo: repo}
}

func (s *songService) Create(ctx context.Context, req CreateSongRequest) (*domain.Song, error) {
	song := &domain.Song{
		Titulo:        strings.TrimSpace(req.Titulo),
		Artista:       strings.TrimSpace(req.Artista),
		Album:         req.Album,
		Genero:        req.Genero,
		Duracion:      req.Duracion,
		Anio:          req.Anio,
		FechaCreacion: time.Now().UTC(),
	}

	if err := validateSong(song); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

func (s *songService) Get(ctx context.Context, id int64) (*domain.Song, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns songs matching all set filters; an empty filter lists
// the whole catalog, paginated.
func (s *songService) Search(ctx context.Context, filter domain.SongFilter) ([]domain.Song, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *songService) Update(ctx context.Context, id int64, req UpdateSongRequest) (*domain.Song, error) {
	song, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Titulo != nil {
		song.Titulo = strings.TrimSpace(*req.Titulo)
	}
	if req.Artista != nil {
		song.Artista = strings.TrimSpace(*req.Artista)
	}
	if req.Album != nil {
		song.Album = req.Album
	}
	if req.Genero != nil {
		song.Genero = req.Genero
	}
	if req.Duracion != nil {
		song.Duracion = *req.Duracion
	}
	if req.Anio != nil {
		song.Anio = *req.Anio
	}

	if err := validateSong(song); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

// Delete removes the song; dependent favoritos are removed by the
// store's cascade constraint in the same statement.
func (s *songService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateSong(song *domain.Song) error {
	verr := &validation.Error{}

	if song.Titulo == "" || len(song.Titulo) > 200 {
		verr.Add("titulo", "must be between 1 and 200 characters")
	}
	if song.Artista == "" || len(song.Artista) > 100 {
		verr.Add("artista", "must be between 1 and 100 characters")
	}
	if song.Album != nil && len(*song.Album) > 200 {
		verr.Add("album", "must be at most 200 characters")
	}
	if song.Genero != nil && len(*song.Genero) > 50 {
		verr.Add("genero", "must be at most 50 characters")
	}
	if song.Duracion <= 0 || song.Duracion >= MaxDuracion {
		verr.Add("duracion", "must be between 1 and 3599 seconds")
	}
	if song.Anio < MinAnio || song.Anio > time.Now().Year() {
		verr.Add("año", "must be between 1900 and the current year")
	}

	return verr.Err()
}
