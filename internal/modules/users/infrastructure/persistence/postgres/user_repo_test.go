package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunelibre/cancionero/internal/modules/users/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := sqlx.NewDb(sqlDB, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreate_AssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO usuarios`).
		WithArgs("Ana", "ana@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	user := &domain.User{Nombre: "Ana", Correo: "ana@example.com"}
	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(12), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO usuarios`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "usuarios_correo_key"})

	err := repo.Create(context.Background(), &domain.User{Nombre: "Ana", Correo: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestGetByID_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	registered := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "nombre", "correo", "fecha_registro"}).
		AddRow(int64(1), "Ana", "ana@example.com", registered)
	mock.ExpectQuery(`SELECT id, nombre, correo, fecha_registro FROM usuarios WHERE id`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Nombre)
	assert.Equal(t, registered, user.FechaRegistro)
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT id, nombre, correo, fecha_registro FROM usuarios WHERE id`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "correo", "fecha_registro"}).
		AddRow(int64(3), "Ana", "ana@example.com", time.Now())
	mock.ExpectQuery(`SELECT id, nombre, correo, fecha_registro FROM usuarios WHERE LOWER\(correo\) = LOWER`).
		WithArgs("ANA@example.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
}

func TestList_ReturnsPageAndTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "correo", "fecha_registro", "total_count"}).
		AddRow(int64(1), "Ana", "ana@example.com", time.Now(), 42).
		AddRow(int64(2), "Luis", "luis@example.com", time.Now(), 42)
	mock.ExpectQuery(`SELECT id, nombre, correo, fecha_registro, COUNT\(\*\) OVER\(\) AS total_count`).
		WithArgs(2, 0).
		WillReturnRows(rows)

	users, total, err := repo.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 42, total)
	assert.Equal(t, "Luis", users[1].Nombre)
}

func TestList_EmptyPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT id, nombre, correo, fecha_registro, COUNT\(\*\) OVER\(\) AS total_count`).
		WithArgs(100, 500).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "correo", "fecha_registro", "total_count"}))

	users, total, err := repo.List(context.Background(), 100, 500)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Zero(t, total)
}

func TestUpdate_NoRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE usuarios SET nombre`).
		WithArgs("Ana", "ana@example.com", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.User{ID: 99, Nombre: "Ana", Correo: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE usuarios SET nombre`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "usuarios_correo_key"})

	err := repo.Update(context.Background(), &domain.User{ID: 1, Nombre: "Ana", Correo: "taken@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestDelete_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM usuarios WHERE id`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 1))
}

func TestDelete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM usuarios WHERE id`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), domain.ErrUserNotFound)
}

func TestExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)
}
