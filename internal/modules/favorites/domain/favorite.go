package domain

import (
	"context"
	"time"
)

// Favorite links a user to a song they marked. The (IDUsuario,
// IDCancion) pair is unique; both sides cascade on parent deletion.
type Favorite struct {
	ID           int64     `json:"id" db:"id"`
	IDUsuario    int64     `json:"id_usuario" db:"id_usuario"`
	IDCancion    int64     `json:"id_cancion" db:"id_cancion"`
	FechaMarcado time.Time `json:"fecha_marcado" db:"fecha_marcado"`
}

// FavoriteRepository defines the contract for favorite data access
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *Favorite) error
	GetByID(ctx context.Context, id int64) (*Favorite, error)
	List(ctx context.Context, limit, offset int) ([]Favorite, int, error)
	ListByUser(ctx context.Context, idUsuario int64, limit, offset int) ([]Favorite, int, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByPair(ctx context.Context, idUsuario, idCancion int64) error
}
