package domain

import (
	"context"
	"time"
)

// User represents a registered listener of the catalog
type User struct {
	ID            int64     `json:"id" db:"id"`
	Nombre        string    `json:"nombre" db:"nombre"`
	Correo        string    `json:"correo" db:"correo"`
	FechaRegistro time.Time `json:"fecha_registro" db:"fecha_registro"`
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, correo string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, int, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}

// UserFinder provides user lookups for other modules (Favorites)
type UserFinder interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
