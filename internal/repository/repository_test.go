package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmalhotra/bookshelf-service/internal/models"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

var userColumns = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

func TestMigrate(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS books").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Migrate())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_Error(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("connection reset"))

	err := repo.Migrate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to sync schema")
}

func TestCreateUser(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
	}
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, "alice", "a@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.CreateUser(user))
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmail(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery("WHERE email").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "alice", "a@x.com", "hash", now, now))

	user, err := repo.FindUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery("WHERE email").
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail("missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery("WHERE username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindUserByID(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery("WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "alice", "a@x.com", "hash", now, now))

	user, err := repo.FindUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("failed to create user: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}
