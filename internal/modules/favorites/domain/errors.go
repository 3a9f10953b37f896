package domain

import "errors"

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyFavorite  = errors.New("song is already a favorite of this user")
)
