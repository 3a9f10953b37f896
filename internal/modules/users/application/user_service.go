package application

import (
	"context"
	"strings"
	"time"

	"github.com/tunelibre/cancionero/internal/modules/users/domain"
	"github.com/tunelibre/cancionero/internal/shared/utils"
	"github.com/tunelibre/cancionero/internal/shared/validation"
)

// RegisterRequest carries the fields accepted when creating a user
type RegisterRequest struct {
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
}

// UpdateUserRequest carries a partial user update. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	Nombre *string `json:"nombre"`
	Correo *string `json:"correo"`
}

// UserService provides user catalog operations
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	repo domain.UserRepository
}

func NewUserService(repo domain.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register validates the request and creates the user. Email uniqueness
// is decided by the store constraint; a concurrent duplicate surfaces as
// domain.ErrEmailTaken even without a prior read.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	nombre := strings.TrimSpace(req.Nombre)
	correo := normalizeEmail(req.Correo)

	if err := validateUserFields(nombre, correo); err != nil {
		return nil, err
	}

	user := &domain.User{
		Nombre:        nombre,
		Correo:        correo,
		FechaRegistro: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update applies the provided fields to an existing user. Changing the
// email re-checks uniqueness through the store constraint, which ignores
// the user's own row because the row keeps its id.
func (s *userService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		user.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Correo != nil {
		user.Correo = normalizeEmail(*req.Correo)
	}

	if err := validateUserFields(user.Nombre, user.Correo); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user. Dependent favoritos go with it through the
// ON DELETE CASCADE constraint, so the removal is atomic in the store.
func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// normalizeEmail lowercases the address; uniqueness is case-insensitive.
func normalizeEmail(correo string) string {
	return strings.ToLower(strings.TrimSpace(correo))
}

func validateUserFields(nombre, correo string) error {
	verr := &validation.Error{}
	if len(nombre) < 2 || len(nombre) > 100 {
		verr.Add("nombre", "must be between 2 and 100 characters")
	}
	if correo == "" {
		verr.Add("correo", "is required")
	} else if !utils.IsValidEmail(correo) {
		verr.Add("correo", "must be a valid email address")
	}
	return verr.Err()
}
