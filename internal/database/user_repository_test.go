package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepoTest(t *testing.T) (*PostgresDB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	postgresDB := &PostgresDB{DB: sqlxDB}

	cleanup := func() {
		db.Close()
	}

	return postgresDB, mock, cleanup
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "first_name", "last_name", "phone",
		"role", "is_active", "created_at", "updated_at",
	})
}

func TestCreateUser(t *testing.T) {
	db, mock, cleanup := setupRepoTest(t)
	defer cleanup()
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		email := "guest@example.com"

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), email, sqlmock.AnyArg(), "Ada", "Lovelace", nil,
				sqlmock.AnyArg(), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		user, err := repo.CreateUser(email, "hashed", "Ada", "Lovelace", nil)
		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, email, user.Email)
		assert.Equal(t, "customer", string(user.Role))
		assert.True(t, user.IsActive)
		assert.NotEqual(t, uuid.Nil, user.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		email := "guest@example.com"

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(fmt.Errorf("duplicate key value violates unique constraint"))

		user, err := repo.CreateUser(email, "hashed", "Ada", "Lovelace", nil)
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "already exists")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(fmt.Errorf("database error"))

		user, err := repo.CreateUser("guest@example.com", "hashed", "Ada", "Lovelace", nil)
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "failed to create user")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByEmail(t *testing.T) {
	db, mock, cleanup := setupRepoTest(t)
	defer cleanup()
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE LOWER\(email\)`).
			WithArgs("guest@example.com").
			WillReturnRows(userRows().AddRow(
				userID, "guest@example.com", "hashed", "Ada", "Lovelace", nil,
				"customer", true, now, now,
			))

		user, err := repo.GetUserByEmail("guest@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "Ada", user.FirstName)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE LOWER\(email\)`).
			WithArgs("missing@example.com").
			WillReturnRows(userRows())

		user, err := repo.GetUserByEmail("missing@example.com")
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByID(t *testing.T) {
	db, mock, cleanup := setupRepoTest(t)
	defer cleanup()
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(userRows().AddRow(
				userID, "manager@example.com", "hashed", "Grace", "Hopper", nil,
				"manager", true, now, now,
			))

		user, err := repo.GetUserByID(userID)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "manager", string(user.Role))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(userRows())

		user, err := repo.GetUserByID(userID)
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateRoleStatus(t *testing.T) {
	db, mock, cleanup := setupRepoTest(t)
	defer cleanup()
	repo := NewUserRepository(db)

	t.Run("Promote To Manager", func(t *testing.T) {
		userID := uuid.New()
		role := "manager"
		now := time.Now()

		mock.ExpectExec(`UPDATE users`).
			WithArgs(userID, sqlmock.AnyArg(), nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(userRows().AddRow(
				userID, "staff@example.com", "hashed", "Grace", "Hopper", nil,
				"manager", true, now, now,
			))

		user, err := repo.UpdateRoleStatus(userID, &role, nil)
		require.NoError(t, err)
		assert.Equal(t, "manager", string(user.Role))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User Not Found", func(t *testing.T) {
		userID := uuid.New()
		active := false

		mock.ExpectExec(`UPDATE users`).
			WithArgs(userID, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		user, err := repo.UpdateRoleStatus(userID, nil, &active)
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountUsers(t *testing.T) {
	db, mock, cleanup := setupRepoTest(t)
	defer cleanup()
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		count, err := repo.CountUsers()
		require.NoError(t, err)
		assert.Equal(t, 42, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
			WillReturnError(fmt.Errorf("database error"))

		count, err := repo.CountUsers()
		assert.Error(t, err)
		assert.Equal(t, 0, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
