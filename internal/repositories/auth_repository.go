package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/pkg/utils"

	"github.com/lib/pq" // For pq.Error
)

// AuthRepository defines the interface for staff account database operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, user *models.AdminUser) error
	// FindUserByUsername returns the user with PasswordHash populated, for login.
	FindUserByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	FindUserByID(ctx context.Context, userID string) (*models.AdminUser, error)
	GetUsers(ctx context.Context) ([]models.AdminUser, error)
	UpdateUser(ctx context.Context, user *models.AdminUser) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	DeleteUser(ctx context.Context, userID string) error
}

type authRepository struct {
	db SQLExecutor
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db SQLExecutor) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `id, username, password_hash, full_name, email, role, is_active, created_at, updated_at`

// CreateUser inserts a new staff account. CreatedAt and UpdatedAt are set when zero.
func (r *authRepository) CreateUser(ctx context.Context, user *models.AdminUser) error {
	query := `INSERT INTO admin_users (` + userColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.FullName, utils.NewNullString(user.Email),
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *authRepository) FindUserByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	query := `SELECT ` + userColumns + ` FROM admin_users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

// FindUserByID retrieves a user by ID. The password hash is cleared.
func (r *authRepository) FindUserByID(ctx context.Context, userID string) (*models.AdminUser, error) {
	query := `SELECT ` + userColumns + ` FROM admin_users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %s: %v", ErrDatabaseError, userID, err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (r *authRepository) GetUsers(ctx context.Context) ([]models.AdminUser, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM admin_users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.AdminUser{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		u.PasswordHash = ""
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating users: %v", ErrDatabaseError, err)
	}
	return users, nil
}

// UpdateUser writes profile fields. Username and password are not touched.
func (r *authRepository) UpdateUser(ctx context.Context, user *models.AdminUser) error {
	user.UpdatedAt = time.Now().UTC()
	query := `UPDATE admin_users SET full_name = $1, email = $2, role = $3, is_active = $4, updated_at = $5 WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		user.FullName, utils.NewNullString(user.Email), user.Role, user.IsActive, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("%w: updating user %s: %v", ErrDatabaseError, user.ID, err)
	}
	return requireAffected(result, "admin_users", user.ID)
}

func (r *authRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE admin_users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("%w: updating password for user %s: %v", ErrDatabaseError, userID, err)
	}
	return requireAffected(result, "admin_users", userID)
}

func (r *authRepository) DeleteUser(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM admin_users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: deleting user %s: %v", ErrDatabaseError, userID, err)
	}
	return requireAffected(result, "admin_users", userID)
}

func scanUser(s scanner) (*models.AdminUser, error) {
	var (
		u     models.AdminUser
		email sql.NullString
	)
	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &email, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	return &u, nil
}
