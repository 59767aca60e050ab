package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"canvas_shop_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumnNames = []string{"id", "username", "password_hash", "full_name", "email", "role", "is_active", "created_at", "updated_at"}

func TestFindUserByUsernameKeepsHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users WHERE username = $1")).
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows(userColumnNames).
			AddRow("u1", "ana", "$2a$10$hash", "Ana Pop", nil, "account-manager", true, now, now))

	u, err := NewAuthRepository(db).FindUserByUsername(context.Background(), "ana")

	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
	assert.Equal(t, models.RoleAccountManager, u.Role)
	assert.Empty(t, u.Email)
}

func TestFindUserByIDClearsHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users WHERE id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userColumnNames).
			AddRow("u1", "ana", "$2a$10$hash", "Ana Pop", "ana@example.com", "production", true, now, now))

	u, err := NewAuthRepository(db).FindUserByID(context.Background(), "u1")

	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	assert.Equal(t, "ana@example.com", u.Email)
}

func TestFindUserByUsernameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumnNames))

	_, err = NewAuthRepository(db).FindUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserSetsTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admin_users")).
		WithArgs("u2", "ion", "hash", "Ion", nil, "production", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.AdminUser{ID: "u2", Username: "ion", PasswordHash: "hash", FullName: "Ion", Role: models.RoleProduction, IsActive: true}
	require.NoError(t, NewAuthRepository(db).CreateUser(context.Background(), user))
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
